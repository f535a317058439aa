// Package decodecmder provides the decode command, which replays a captured
// event stream through the stream driver.
package decodecmder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/responses"
	"github.com/papercomputeco/ores/pkg/stream"
)

type decodeCommander struct {
	asJSON bool
	text   bool

	cfg    *config.Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

const decodeLongDesc string = `Decode a captured event stream.

Reads raw server-sent events, as written by "ores stream --tee", from a file
or from stdin ("-" or no argument) and prints one line per decoded event.
Decoding stops at the first error, which is reported after the events that
preceded it.

Examples:
  ores decode run.sse
  ores decode --json run.sse | jq .type
  ores decode --text run.sse
  cat run.sse | ores decode -`

const decodeShortDesc string = "Decode a captured event stream"

func NewDecodeCmd() *cobra.Command {
	cmder := &decodeCommander{}

	cmd := &cobra.Command{
		Use:   "decode [file|-]",
		Short: decodeShortDesc,
		Long:  decodeLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmder.asJSON && cmder.text {
				return errors.New("--json and --text cannot be used together")
			}

			cfg, err := cmdconfig.Load(cmd, config.FlagMaxEventBytes)
			if err != nil {
				return err
			}
			cmder.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.logger = cmdconfig.Logger(cmd)
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			if path == "-" {
				cmder.in = cmd.InOrStdin()
				return cmder.run("stdin")
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening stream capture: %w", err)
			}
			defer f.Close()

			cmder.in = f
			return cmder.run(path)
		},
	}

	cmdconfig.AddFlags(cmd, config.FlagMaxEventBytes)
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Print each decoded event as a JSON line")
	cmd.Flags().BoolVar(&cmder.text, "text", false, "Print only the reassembled output text")

	return cmd
}

func (c *decodeCommander) run(source string) error {
	s, err := stream.New("text/event-stream", c.in,
		stream.WithMaxBufferSize(int(c.cfg.Stream.MaxEventBytes)),
		stream.WithLogger(c.logger),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	var (
		count int
		text  strings.Builder
	)

	for ev, err := range s.All() {
		if err != nil {
			if c.text {
				c.printText(text.String())
			}
			fmt.Fprintf(c.errOut, "%s %s\n", cliui.FailMark, cliui.ErrorStyle.Render(err.Error()))
			return fmt.Errorf("decoding %s after %d events: %w", source, count, err)
		}
		count++

		switch {
		case c.asJSON:
			line, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("encoding %s event: %w", ev.EventType(), err)
			}
			fmt.Fprintln(c.out, string(line))
		case c.text:
			if delta, ok := ev.(*responses.OutputTextDeltaEvent); ok {
				text.WriteString(delta.Delta)
			}
		default:
			fmt.Fprintln(c.out, cliui.EventSummary(ev))
		}
	}

	if c.text {
		c.printText(text.String())
	}

	c.logger.Debug("decoded stream", "source", source, "events", count)
	if !c.asJSON && !c.text {
		fmt.Fprintf(c.errOut, "%s %s\n", cliui.SuccessMark,
			cliui.DimStyle.Render(fmt.Sprintf("%d events decoded from %s", count, source)))
	}
	return nil
}

func (c *decodeCommander) printText(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(c.out, text)
}
