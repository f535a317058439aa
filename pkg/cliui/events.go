package cliui

import (
	"github.com/papercomputeco/ores/pkg/responses"
	"github.com/papercomputeco/ores/pkg/utils"
)

const previewLen = 40

// IsLifecycle reports whether ev is one of the response.* lifecycle events
// or an error event.
func IsLifecycle(ev responses.StreamingEvent) bool {
	switch ev.(type) {
	case *responses.ResponseCreatedEvent,
		*responses.ResponseQueuedEvent,
		*responses.ResponseInProgressEvent,
		*responses.ResponseCompletedEvent,
		*responses.ResponseFailedEvent,
		*responses.ResponseIncompleteEvent,
		*responses.ErrorEvent:
		return true
	}
	return false
}

// EventSummary renders one line describing ev: its type, sequence number and
// the fields that identify it.
func EventSummary(ev responses.StreamingEvent) string {
	switch e := ev.(type) {
	case *responses.ResponseCreatedEvent:
		return responseSummary(e.EventType(), e.SequenceNumber, &e.Response)
	case *responses.ResponseQueuedEvent:
		return responseSummary(e.EventType(), e.SequenceNumber, &e.Response)
	case *responses.ResponseInProgressEvent:
		return responseSummary(e.EventType(), e.SequenceNumber, &e.Response)
	case *responses.ResponseCompletedEvent:
		return responseSummary(e.EventType(), e.SequenceNumber, &e.Response)
	case *responses.ResponseFailedEvent:
		return responseSummary(e.EventType(), e.SequenceNumber, &e.Response)
	case *responses.ResponseIncompleteEvent:
		return responseSummary(e.EventType(), e.SequenceNumber, &e.Response)

	case *responses.OutputItemAddedEvent:
		return Summary(e.EventType(), append(seq(e.SequenceNumber), itemFields(e.Item)...)...)
	case *responses.OutputItemDoneEvent:
		return Summary(e.EventType(), append(seq(e.SequenceNumber), itemFields(e.Item)...)...)

	case *responses.OutputTextDeltaEvent:
		return Summary(e.EventType(), seq(e.SequenceNumber, Field{"delta", quote(e.Delta)})...)
	case *responses.OutputTextDoneEvent:
		return Summary(e.EventType(), seq(e.SequenceNumber, Field{"text", quote(e.Text)})...)
	case *responses.RefusalDeltaEvent:
		return Summary(e.EventType(), seq(e.SequenceNumber, Field{"delta", quote(e.Delta)})...)
	case *responses.FunctionCallArgumentsDoneEvent:
		return Summary(e.EventType(), seq(e.SequenceNumber,
			Field{"item", e.ItemID},
			Field{"arguments", quote(e.Arguments)},
		)...)

	case *responses.ErrorEvent:
		fields := seq(e.SequenceNumber, Field{"type", e.Error.Type})
		if e.Error.Code != nil {
			fields = append(fields, Field{"code", *e.Error.Code})
		}
		fields = append(fields, Field{"message", quote(e.Error.Message)})
		return ErrorStyle.Render(e.EventType()) + Summary("", fields...)

	case *responses.UnknownEvent:
		return Summary(e.Type, Field{"fields", len(e.Fields)}, Field{"known", false})
	}

	return Summary(ev.EventType(), seq(sequenceOf(ev))...)
}

func responseSummary(label string, sequence int, r *responses.ResponseResource) string {
	fields := seq(sequence,
		Field{"id", IDStyle.Render(r.ID)},
		Field{"status", r.Status},
	)
	if r.Usage != nil {
		fields = append(fields, Field{"tokens", r.Usage.TotalTokens})
	}
	if r.IncompleteDetails != nil {
		fields = append(fields, Field{"reason", r.IncompleteDetails.Reason})
	}
	if r.Error != nil {
		fields = append(fields, Field{"error", r.Error.Code}, Field{"message", quote(r.Error.Message)})
	}
	return Summary(label, fields...)
}

func itemFields(item *responses.Item) []Field {
	if item == nil {
		return []Field{{"item", "null"}}
	}
	return []Field{{"item", item.ID}, {"item_type", item.Type}}
}

func seq(n int, fields ...Field) []Field {
	return append([]Field{{"seq", n}}, fields...)
}

func quote(s string) string {
	return `"` + utils.Truncate(s, previewLen) + `"`
}

// sequenceOf reads the sequence number of event types without a case above.
func sequenceOf(ev responses.StreamingEvent) int {
	switch e := ev.(type) {
	case *responses.ContentPartAddedEvent:
		return e.SequenceNumber
	case *responses.ContentPartDoneEvent:
		return e.SequenceNumber
	case *responses.ReasoningSummaryPartAddedEvent:
		return e.SequenceNumber
	case *responses.ReasoningSummaryPartDoneEvent:
		return e.SequenceNumber
	case *responses.RefusalDoneEvent:
		return e.SequenceNumber
	case *responses.ReasoningDeltaEvent:
		return e.SequenceNumber
	case *responses.ReasoningDoneEvent:
		return e.SequenceNumber
	case *responses.ReasoningSummaryTextDeltaEvent:
		return e.SequenceNumber
	case *responses.ReasoningSummaryTextDoneEvent:
		return e.SequenceNumber
	case *responses.OutputTextAnnotationAddedEvent:
		return e.SequenceNumber
	case *responses.FunctionCallArgumentsDeltaEvent:
		return e.SequenceNumber
	}
	return -1
}
