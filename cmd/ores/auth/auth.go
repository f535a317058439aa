// Package authcmder provides the auth command for storing API credentials.
package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/credentials"
)

const authLongDesc string = `Store Responses API credentials.

Credentials are stored per profile in credentials.toml in the .ores/
directory. Commands use the profile named by --profile (or client.profile),
"default" otherwise. ORES_API_KEY overrides any stored key, and
OPENAI_API_KEY is used when no key is stored.

A profile may also remember the base URL its key belongs to, which is used
unless client.base_url is changed from its default.

Examples:
  ores auth                             Prompt for the default profile's key
  ores auth work                        Prompt for the "work" profile's key
  ores auth local --base-url http://localhost:8787/v1/
  ores auth --list                      List stored profiles
  ores auth --remove work               Remove the "work" profile
  echo $KEY | ores auth                 Pipe the API key from stdin`

const authShortDesc string = "Store Responses API credentials"

type authCommander struct {
	list    bool
	remove  string
	baseURL string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func NewAuthCmd() *cobra.Command {
	cmder := &authCommander{}

	cmd := &cobra.Command{
		Use:   "auth [profile]",
		Short: authShortDesc,
		Long:  authLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
						cmder.in = cmd.InOrStdin()
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()

			mgr, err := credentials.NewManager(cmdconfig.ConfigDir(cmd))
			if err != nil {
				return fmt.Errorf("loading credentials: %w", err)
			}

			switch {
			case cmder.list:
				return cmder.runList(mgr)
			case cmder.remove != "":
				return cmder.runRemove(mgr, cmder.remove)
			default:
				profile := credentials.DefaultProfile
				if len(args) == 1 {
					profile = args[0]
				}
				return cmder.runAuth(mgr, profile)
			}
		},
	}

	cmd.Flags().BoolVar(&cmder.list, "list", false, "List stored profiles")
	cmd.Flags().StringVar(&cmder.remove, "remove", "", "Remove the stored credentials of a profile")
	cmd.Flags().StringVar(&cmder.baseURL, "base-url", "", "Base URL to remember with the key")

	return cmd
}

func (c *authCommander) runAuth(mgr *credentials.Manager, profile string) error {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return errors.New("profile name cannot be empty")
	}

	apiKey, err := c.readAPIKey(profile)
	if err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	cred := credentials.ProfileCredential{
		APIKey:  apiKey,
		BaseURL: strings.TrimSpace(c.baseURL),
	}
	if err := mgr.Set(profile, cred); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\n  %s Stored credentials for profile %s %s\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(profile),
		cliui.DimStyle.Render("("+maskKey(apiKey)+")"),
	)
	if cred.BaseURL != "" {
		fmt.Fprintf(c.out, "  %s %s\n", cliui.DimStyle.Render("base url:"), cliui.ValueStyle.Render(cred.BaseURL))
	}
	if os.Getenv(credentials.EnvAPIKey) != "" {
		fmt.Fprintf(c.out, "  %s %s is set and takes precedence over stored keys.\n",
			cliui.WarnStyle.Render("!"), credentials.EnvAPIKey)
	}

	fmt.Fprintln(c.out)
	return nil
}

func (c *authCommander) runList(mgr *credentials.Manager) error {
	profiles, err := mgr.ListProfiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintf(c.out, "\n  %s No stored credentials.\n", cliui.DimStyle.Render("●"))
		fmt.Fprintf(c.out, "  Use 'ores auth [profile]' to store an API key.\n\n")
		return nil
	}

	fmt.Fprintf(c.out, "\n  %s\n\n", cliui.HeaderStyle.Render("Stored credentials"))
	for _, p := range profiles {
		cred, _, err := mgr.Get(p)
		if err != nil {
			return err
		}

		line := fmt.Sprintf("  %s  %s  %s", cliui.SuccessMark, cliui.KeyStyle.Render(p), cliui.DimStyle.Render(maskKey(cred.APIKey)))
		if cred.BaseURL != "" {
			line += "  " + cliui.DimStyle.Render("→ "+cred.BaseURL)
		}
		fmt.Fprintln(c.out, line)
	}
	fmt.Fprintln(c.out)

	return nil
}

func (c *authCommander) runRemove(mgr *credentials.Manager, profile string) error {
	profile = strings.TrimSpace(profile)

	if err := mgr.Remove(profile); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\n  %s Removed credentials for profile %s.\n\n", cliui.SuccessMark, cliui.KeyStyle.Render(profile))
	return nil
}

// readAPIKey reads an API key from stdin. If stdin is a pipe, it reads the
// first line. Otherwise, it prompts interactively with hidden input.
func (c *authCommander) readAPIKey(profile string) (string, error) {
	f, ok := c.in.(*os.File)
	if ok {
		fi, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("checking stdin: %w", err)
		}
		ok = fi.Mode()&os.ModeCharDevice != 0
	}

	// Piped input
	if !ok {
		scanner := bufio.NewScanner(c.in)
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return "", errors.New("no input received on stdin")
	}

	// Interactive terminal
	fmt.Fprintf(c.errOut, "Enter API key for profile %s: ", profile)

	keyBytes, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.errOut) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	return string(keyBytes), nil
}

// maskKey keeps the first three and last four characters of key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + "..." + key[len(key)-4:]
}
