package testutils

import (
	"bytes"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/pkg/mockserver"
)

// MockAPI serves the mock Responses API for the current test and returns a
// base url that ends in /v1/.
func MockAPI(cfg mockserver.Config) string {
	srv, err := mockserver.NewServer(cfg)
	Expect(err).NotTo(HaveOccurred())

	ts := httptest.NewServer(srv.Handler())
	DeferCleanup(func() {
		ts.Close()
		Expect(srv.Shutdown()).To(Succeed())
	})
	return ts.URL + "/v1/"
}

// SetEnv sets environment variables for the current test. An empty value
// unsets the variable. The previous values are restored afterwards.
func SetEnv(vars map[string]string) {
	for key, value := range vars {
		prev, had := os.LookupEnv(key)
		DeferCleanup(func() {
			if had {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})

		if value == "" {
			Expect(os.Unsetenv(key)).To(Succeed())
		} else {
			Expect(os.Setenv(key, value)).To(Succeed())
		}
	}
}

// CmdResult is the captured output of one command execution.
type CmdResult struct {
	Stdout string
	Stderr string
	Err    error
}

// ExecuteCmd runs cmd with args, feeding stdin. The persistent --debug and
// --config-dir flags of the root command are added when cmd runs on its own.
func ExecuteCmd(cmd *cobra.Command, stdin string, args ...string) CmdResult {
	if cmd.Flags().Lookup("config-dir") == nil && cmd.PersistentFlags().Lookup("config-dir") == nil {
		cmd.PersistentFlags().String("config-dir", "", "Override path to .ores/ config directory")
	}
	if cmd.Flags().Lookup("debug") == nil && cmd.PersistentFlags().Lookup("debug") == nil {
		cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// StripANSI removes terminal escape sequences from styled output.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
