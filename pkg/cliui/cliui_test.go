package cliui_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/responses"
)

var _ = Describe("Mark", func() {
	It("distinguishes success from failure", func() {
		Expect(cliui.Mark(nil)).To(Equal(cliui.SuccessMark))
		Expect(cliui.Mark(errors.New("x"))).To(Equal(cliui.FailMark))
		Expect(cliui.SuccessMark).To(ContainSubstring("✓"))
		Expect(cliui.FailMark).To(ContainSubstring("✗"))
	})
})

var _ = Describe("FormatDuration", func() {
	It("uses milliseconds below a second", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("uses seconds with one decimal above", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})
})

var _ = Describe("Summary", func() {
	It("renders the label and each field", func() {
		out := cliui.Summary("response.completed",
			cliui.Field{Key: "id", Value: "resp_1"},
			cliui.Field{Key: "tokens", Value: 42},
		)
		Expect(out).To(ContainSubstring("response.completed"))
		Expect(out).To(ContainSubstring("id"))
		Expect(out).To(ContainSubstring("resp_1"))
		Expect(out).To(ContainSubstring("42"))
	})
})

var _ = Describe("Step", func() {
	It("reports success with a checkmark", func() {
		var buf bytes.Buffer
		err := cliui.Step(&buf, "opening sink", func() error { return nil })
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("opening sink"))
		Expect(buf.String()).To(ContainSubstring("✓"))
	})

	It("returns the step error", func() {
		var buf bytes.Buffer
		boom := errors.New("boom")
		err := cliui.Step(&buf, "opening sink", func() error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(buf.String()).To(ContainSubstring("✗"))
	})
})

var _ = Describe("RenderMarkdown", func() {
	It("renders headings and keeps the text", func() {
		out, err := cliui.RenderMarkdown("# Title\n\nSome *text*.", 40)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Title"))
		Expect(out).To(ContainSubstring("text"))
	})
})

var _ = Describe("EventSummary", func() {
	It("describes lifecycle events by response id and status", func() {
		ev := &responses.ResponseCompletedEvent{
			Type:           responses.EventTypeResponseCompleted,
			SequenceNumber: 7,
			Response: responses.ResponseResource{
				ID:     "resp_42",
				Status: "completed",
				Usage:  &responses.Usage{TotalTokens: 12},
			},
		}
		Expect(cliui.IsLifecycle(ev)).To(BeTrue())

		out := cliui.EventSummary(ev)
		Expect(out).To(ContainSubstring("response.completed"))
		Expect(out).To(ContainSubstring("resp_42"))
		Expect(out).To(ContainSubstring("completed"))
		Expect(out).To(ContainSubstring("12"))
	})

	It("quotes and truncates text deltas", func() {
		ev := &responses.OutputTextDeltaEvent{
			Type:           responses.EventTypeOutputTextDelta,
			SequenceNumber: 3,
			Delta:          strings.Repeat("a", 60),
		}
		Expect(cliui.IsLifecycle(ev)).To(BeFalse())

		out := cliui.EventSummary(ev)
		Expect(out).To(ContainSubstring(`"` + strings.Repeat("a", 40) + `..."`))
	})

	It("reports error events with their code", func() {
		code := "rate_limit_exceeded"
		ev := &responses.ErrorEvent{
			Type:           responses.EventTypeError,
			SequenceNumber: 2,
			Error:          responses.ErrorPayload{Type: "error", Code: &code, Message: "slow down"},
		}
		Expect(cliui.IsLifecycle(ev)).To(BeTrue())

		out := cliui.EventSummary(ev)
		Expect(out).To(ContainSubstring("rate_limit_exceeded"))
		Expect(out).To(ContainSubstring("slow down"))
	})

	It("marks unknown events", func() {
		ev := &responses.UnknownEvent{Type: "response.future", Fields: map[string]json.RawMessage{"a": json.RawMessage(`1`)}}
		Expect(cliui.EventSummary(ev)).To(ContainSubstring("response.future"))
	})

	It("handles null output items", func() {
		ev := &responses.OutputItemAddedEvent{Type: responses.EventTypeOutputItemAdded, SequenceNumber: 1}
		Expect(cliui.EventSummary(ev)).To(ContainSubstring("null"))
	})
})
