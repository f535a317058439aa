// Package mockcmder provides the mock command, which serves a local stand-in
// for the Responses API.
package mockcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/mockserver"
)

type mockCommander struct {
	watch      bool
	frameDelay time.Duration

	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

var mockFlags = []string{config.FlagMockListen, config.FlagMockFixture}

const mockLongDesc string = `Serve a mock Responses API.

POST /v1/responses answers with a reply that echoes the input, either as a
JSON response resource or, when "stream" is true, as a server-sent event
stream terminated by [DONE]. GET /ping answers "pong".

--fixture serves a captured stream (for example from "ores stream --tee")
to every streaming request instead. With --watch the fixture is reloaded
when the file changes.

Send the X-Mock-Scenario header to exercise failures:
  failed               stream a response.failed event
  error                stream an error event
  server-error         answer with HTTP 500
  wrong-content-type   answer a streaming request with JSON

Examples:
  ores mock
  ores mock --listen :9000 --frame-delay 50ms
  ores mock --fixture run.sse --watch`

const mockShortDesc string = "Serve a mock Responses API"

func NewMockCmd() *cobra.Command {
	cmder := &mockCommander{}

	cmd := &cobra.Command{
		Use:   "mock",
		Short: mockShortDesc,
		Long:  mockLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdconfig.Load(cmd, mockFlags...)
			if err != nil {
				return err
			}
			cmder.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.logger = cmdconfig.Logger(cmd)
			cmder.out = cmd.OutOrStdout()
			return cmder.run(cmd.Context())
		},
	}

	cmdconfig.AddFlags(cmd, mockFlags...)
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", false, "Reload the fixture when it changes")
	cmd.Flags().DurationVar(&cmder.frameDelay, "frame-delay", 0, "Pause between streamed frames (e.g. 50ms)")

	return cmd
}

func (c *mockCommander) run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := mockserver.NewServer(mockserver.Config{
		ListenAddr:  c.cfg.Mock.Listen,
		FixturePath: c.cfg.Mock.Fixture,
		Watch:       c.watch,
		FrameDelay:  c.frameDelay,
		Logger:      c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating mock server: %w", err)
	}

	ln, err := net.Listen("tcp", c.cfg.Mock.Listen)
	if err != nil {
		srv.Shutdown()
		return fmt.Errorf("listening on %s: %w", c.cfg.Mock.Listen, err)
	}

	fmt.Fprintf(c.out, "%s Mock Responses API listening on %s\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render("http://"+ln.Addr().String()+"/v1/"),
	)
	if c.cfg.Mock.Fixture != "" {
		fmt.Fprintf(c.out, "  %s %s\n", cliui.KeyStyle.Render("fixture:"), cliui.DimStyle.Render(c.cfg.Mock.Fixture))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		srv.Shutdown()
		return err
	case <-ctx.Done():
		c.logger.Info("shutting down mock server")
		return srv.Shutdown()
	}
}
