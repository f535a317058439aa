// Package streamcmder provides the stream command, which prints a response
// while its events arrive.
package streamcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/responses"
	"github.com/papercomputeco/ores/pkg/stream"
)

type streamCommander struct {
	instructions string
	showEvents   bool
	teePath      string
	cont         bool
	store        bool
	headers      []string

	configDir string
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	errOut    io.Writer
}

const streamLongDesc string = `Stream a response from the Responses API.

Text deltas are printed to stdout as they arrive. With --events, a summary
line per lifecycle event is printed to stderr. The prompt is read from the
arguments, or from stdin when there are none.

--tee writes the raw event stream to a file that "ores decode" can replay.
--sink records every decoded event to Kafka, SQLite or PostgreSQL.

Examples:
  ores stream "Write a haiku about sockets"
  echo "Summarize this" | ores stream --model gpt-5-mini
  ores stream --store "Pick a number"
  ores stream --continue "Double it"
  ores stream --events --tee run.sse "Hello"
  ores stream --sink sqlite "Hello"`

const streamShortDesc string = "Stream a response"

func NewStreamCmd() *cobra.Command {
	cmder := &streamCommander{}

	cmd := &cobra.Command{
		Use:   "stream [prompt]",
		Short: streamShortDesc,
		Long:  streamLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir = cmdconfig.ConfigDir(cmd)
			cfg, err := cmdconfig.Load(cmd, slices.Concat(cmdconfig.ClientFlags, cmdconfig.SinkFlags)...)
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
	cmdconfig.AddFlags(cmd, cmdconfig.SinkFlags...)
	cmd.Flags().StringVar(&cmder.instructions, "instructions", "", "System instructions for the model")
	cmd.Flags().BoolVarP(&cmder.showEvents, "events", "e", false, "Print a summary line per lifecycle event to stderr")
	cmd.Flags().StringVar(&cmder.teePath, "tee", "", "Write the raw event stream to a file")
	cmd.Flags().BoolVarP(&cmder.cont, "continue", "c", false, "Continue from the last stored response")
	cmd.Flags().BoolVar(&cmder.store, "store", false, "Store the response and remember its id for --continue")
	cmd.Flags().StringArrayVarP(&cmder.headers, "header", "H", nil, "Extra request header as \"Key: Value\" (repeatable)")

	return cmd
}

func (c *streamCommander) run(ctx context.Context, prompt string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

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
		c.logger.Debug("continuing response", "previous_response_id", previous)
		req.PreviousResponseID(previous)
	}

	var opts []stream.Option
	if c.teePath != "" {
		f, err := os.Create(c.teePath)
		if err != nil {
			return fmt.Errorf("creating tee file: %w", err)
		}
		defer f.Close()
		opts = append(opts, stream.WithTee(f))
	}

	rec, err := newRecording(ctx, c.cfg.Sink, c.configDir, c.logger)
	if err != nil {
		return fmt.Errorf("opening event sink: %w", err)
	}
	defer rec.close()

	start := time.Now()
	s, err := req.SendStream(ctx, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	final, err := c.consume(s, rec)
	if err != nil {
		return err
	}

	if c.showEvents {
		fmt.Fprintln(c.errOut, cliui.Summary("stream",
			cliui.Field{Key: "elapsed", Value: cliui.FormatDuration(time.Since(start))},
		))
	}
	if rec != nil {
		stats := rec.close()
		fmt.Fprintln(c.errOut, cliui.Summary("sink",
			cliui.Field{Key: "stream", Value: rec.streamID()},
			cliui.Field{Key: "published", Value: stats.Published},
			cliui.Field{Key: "failed", Value: stats.Failed},
			cliui.Field{Key: "dropped", Value: stats.Dropped},
		))
	}

	if c.store {
		return cmdconfig.RememberResponse(c.configDir, final)
	}
	return nil
}

// consume prints deltas until the stream ends. It returns the last response
// resource carried by a terminal lifecycle event. A response.failed or error
// event ends the command with an error once the stream is drained.
func (c *streamCommander) consume(s *stream.Stream, rec *recording) (*responses.ResponseResource, error) {
	var (
		final   *responses.ResponseResource
		failure error
		wrote   bool
	)

	for ev, err := range s.All() {
		if err != nil {
			if wrote {
				fmt.Fprintln(c.out)
			}
			return final, fmt.Errorf("reading stream: %w", err)
		}

		rec.record(ev)

		switch e := ev.(type) {
		case *responses.OutputTextDeltaEvent:
			fmt.Fprint(c.out, e.Delta)
			wrote = true
		case *responses.RefusalDeltaEvent:
			fmt.Fprint(c.out, cliui.WarnStyle.Render(e.Delta))
			wrote = true
		case *responses.ResponseCompletedEvent:
			final = &e.Response
		case *responses.ResponseIncompleteEvent:
			final = &e.Response
			if e.Response.IncompleteDetails != nil {
				c.logger.Warn("response incomplete", "reason", e.Response.IncompleteDetails.Reason)
			}
		case *responses.ResponseFailedEvent:
			final = &e.Response
			failure = failedError(&e.Response)
		case *responses.ErrorEvent:
			failure = &StreamError{Payload: e.Error}
		case *responses.UnknownEvent:
			c.logger.Debug("skipping unknown event", "type", e.Type)
		}

		if c.showEvents && cliui.IsLifecycle(ev) {
			fmt.Fprintln(c.errOut, cliui.EventSummary(ev))
		}
	}

	if wrote {
		fmt.Fprintln(c.out)
	}
	return final, failure
}

func failedError(r *responses.ResponseResource) error {
	if r.Error == nil {
		return fmt.Errorf("response %s failed", r.ID)
	}
	return fmt.Errorf("response %s failed: %s: %s", r.ID, r.Error.Code, r.Error.Message)
}

// StreamError is an error event received inside the stream.
type StreamError struct {
	Payload responses.ErrorPayload
}

func (e *StreamError) Error() string {
	if e.Payload.Code != nil {
		return fmt.Sprintf("stream error %s: %s", *e.Payload.Code, e.Payload.Message)
	}
	return "stream error: " + e.Payload.Message
}
