// Package createcmder provides the create command, a non-streaming request
// to the Responses API.
package createcmder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/responses"
)

type createCommander struct {
	instructions string
	asJSON       bool
	markdown     bool
	cont         bool
	store        bool
	headers      []string

	configDir string
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	errOut    io.Writer
}

const createLongDesc string = `Create a response with a single request.

The output text of the response is printed once it is complete. Use
--json to print the full response resource instead, or --markdown to
render the text for the terminal.

Examples:
  ores create "Explain server-sent events in one paragraph"
  ores create --json "Hello"
  ores create --markdown "Write a short README for a CLI"`

const createShortDesc string = "Create a response without streaming"

func NewCreateCmd() *cobra.Command {
	cmder := &createCommander{}

	cmd := &cobra.Command{
		Use:   "create [prompt]",
		Short: createShortDesc,
		Long:  createLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmder.asJSON && cmder.markdown {
				return errors.New("--json and --markdown cannot be used together")
			}

			cmder.configDir = cmdconfig.ConfigDir(cmd)
			cfg, err := cmdconfig.Load(cmd, cmdconfig.ClientFlags...)
			if err != nil {
				return err
			}
			cmder.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := cmdconfig.ReadPrompt(cmd, args)
			if err != nil {
				return err
			}

			cmder.logger = cmdconfig.Logger(cmd)
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()
			return cmder.run(cmd.Context(), prompt)
		},
	}

	cmdconfig.AddFlags(cmd, cmdconfig.ClientFlags...)
	cmd.Flags().StringVar(&cmder.instructions, "instructions", "", "System instructions for the model")
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Print the response resource as JSON")
	cmd.Flags().BoolVar(&cmder.markdown, "markdown", false, "Render the output text as markdown")
	cmd.Flags().BoolVarP(&cmder.cont, "continue", "c", false, "Continue from the last stored response")
	cmd.Flags().BoolVar(&cmder.store, "store", false, "Store the response and remember its id for --continue")
	cmd.Flags().StringArrayVarP(&cmder.headers, "header", "H", nil, "Extra request header as \"Key: Value\" (repeatable)")

	return cmd
}

func (c *createCommander) run(ctx context.Context, prompt string) error {
	headerOpts, err := cmdconfig.HeaderOptions(c.headers)
	if err != nil {
		return err
	}

	cl, err := cmdconfig.NewClient(c.cfg, c.configDir, c.logger, headerOpts...)
	if err != nil {
		return err
	}

	req := cl.Responses().CreateText(c.cfg.Client.Model, prompt).Store(c.store)
	if c.instructions != "" {
		req.Instructions(c.instructions)
	}
	if c.cont {
		previous, err := cmdconfig.PreviousResponseID(c.configDir)
		if err != nil {
			return err
		}
		req.PreviousResponseID(previous)
	}

	var resp *responses.ResponseResource
	send := func() error {
		var err error
		resp, err = req.Send(ctx)
		return err
	}

	if c.asJSON {
		err = send()
	} else {
		err = cliui.Step(c.errOut, "Creating response", send)
	}
	if err != nil {
		return err
	}

	c.logger.Debug("response created", "response_id", resp.ID, "status", resp.Status)

	if err := c.print(resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("response %s failed: %s: %s", resp.ID, resp.Error.Code, resp.Error.Message)
	}

	if c.store {
		return cmdconfig.RememberResponse(c.configDir, resp)
	}
	return nil
}

func (c *createCommander) print(resp *responses.ResponseResource) error {
	switch {
	case c.asJSON:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)

	case c.markdown:
		rendered, err := cliui.RenderMarkdown(resp.OutputText(), cliui.DefaultWrap)
		if err != nil {
			c.logger.Warn("rendering markdown", "error", err)
		}
		_, err = fmt.Fprint(c.out, rendered)
		return err

	default:
		text := resp.OutputText()
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err := fmt.Fprint(c.out, text)
		return err
	}
}
