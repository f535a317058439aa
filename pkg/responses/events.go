package responses

// Known event types. The value is the JSON "type" discriminator and, when the
// server names its SSE frames, the "event:" line.
const (
	EventTypeResponseCreated            = "response.created"
	EventTypeResponseQueued             = "response.queued"
	EventTypeResponseInProgress         = "response.in_progress"
	EventTypeResponseCompleted          = "response.completed"
	EventTypeResponseFailed             = "response.failed"
	EventTypeResponseIncomplete         = "response.incomplete"
	EventTypeOutputItemAdded            = "response.output_item.added"
	EventTypeOutputItemDone             = "response.output_item.done"
	EventTypeContentPartAdded           = "response.content_part.added"
	EventTypeContentPartDone            = "response.content_part.done"
	EventTypeOutputTextDelta            = "response.output_text.delta"
	EventTypeOutputTextDone             = "response.output_text.done"
	EventTypeReasoningSummaryPartAdded  = "response.reasoning_summary_part.added"
	EventTypeReasoningSummaryPartDone   = "response.reasoning_summary_part.done"
	EventTypeRefusalDelta               = "response.refusal.delta"
	EventTypeRefusalDone                = "response.refusal.done"
	EventTypeReasoningDelta             = "response.reasoning.delta"
	EventTypeReasoningDone              = "response.reasoning.done"
	EventTypeReasoningSummaryTextDelta  = "response.reasoning_summary_text.delta"
	EventTypeReasoningSummaryTextDone   = "response.reasoning_summary_text.done"
	EventTypeOutputTextAnnotationAdded  = "response.output_text.annotation.added"
	EventTypeFunctionCallArgumentsDelta = "response.function_call_arguments.delta"
	EventTypeFunctionCallArgumentsDone  = "response.function_call_arguments.done"
	EventTypeError                      = "error"
)

// StreamingEvent is one decoded event of a streamed response. The concrete
// value is a pointer to one of the *Event structs in this file, or an
// *UnknownEvent for a type this package does not recognize.
type StreamingEvent interface {
	// EventType returns the event's "type" discriminator.
	EventType() string
}

// Required members shared by events of the same shape.
var (
	lifecycleFields       = []string{"sequence_number", "response"}
	outputItemFields      = []string{"sequence_number", "output_index"}
	contentPartFields     = []string{"sequence_number", "item_id", "output_index", "content_index", "part"}
	textDeltaFields       = []string{"sequence_number", "item_id", "output_index", "content_index", "delta", "logprobs"}
	textDoneFields        = []string{"sequence_number", "item_id", "output_index", "content_index", "text", "logprobs"}
	summaryPartFields     = []string{"sequence_number", "item_id", "output_index", "summary_index", "part"}
	contentDeltaFields    = []string{"sequence_number", "item_id", "output_index", "content_index", "delta"}
	refusalDoneFields     = []string{"sequence_number", "item_id", "output_index", "content_index", "refusal"}
	contentTextDoneFields = []string{"sequence_number", "item_id", "output_index", "content_index", "text"}
	summaryDeltaFields    = []string{"sequence_number", "item_id", "output_index", "summary_index", "delta"}
	summaryTextDoneFields = []string{"sequence_number", "item_id", "output_index", "summary_index", "text"}
	annotationFields      = []string{"sequence_number", "item_id", "output_index", "content_index", "annotation_index", "annotation"}
	argumentsDeltaFields  = []string{"sequence_number", "item_id", "output_index", "delta"}
	argumentsDoneFields   = []string{"sequence_number", "item_id", "output_index", "arguments"}
	errorFields           = []string{"sequence_number", "error"}
)

// ResponseCreatedEvent is the first event of every stream.
type ResponseCreatedEvent struct {
	Type           string           `json:"type"`
	SequenceNumber int              `json:"sequence_number"`
	Response       ResponseResource `json:"response"`
}

func (*ResponseCreatedEvent) EventType() string { return EventTypeResponseCreated }

func (e *ResponseCreatedEvent) UnmarshalJSON(data []byte) error {
	type alias ResponseCreatedEvent
	return decodeStrict(data, (*alias)(e), lifecycleFields...)
}

type ResponseQueuedEvent struct {
	Type           string           `json:"type"`
	SequenceNumber int              `json:"sequence_number"`
	Response       ResponseResource `json:"response"`
}

func (*ResponseQueuedEvent) EventType() string { return EventTypeResponseQueued }

func (e *ResponseQueuedEvent) UnmarshalJSON(data []byte) error {
	type alias ResponseQueuedEvent
	return decodeStrict(data, (*alias)(e), lifecycleFields...)
}

type ResponseInProgressEvent struct {
	Type           string           `json:"type"`
	SequenceNumber int              `json:"sequence_number"`
	Response       ResponseResource `json:"response"`
}

func (*ResponseInProgressEvent) EventType() string { return EventTypeResponseInProgress }

func (e *ResponseInProgressEvent) UnmarshalJSON(data []byte) error {
	type alias ResponseInProgressEvent
	return decodeStrict(data, (*alias)(e), lifecycleFields...)
}

// ResponseCompletedEvent carries the final response resource, including usage.
type ResponseCompletedEvent struct {
	Type           string           `json:"type"`
	SequenceNumber int              `json:"sequence_number"`
	Response       ResponseResource `json:"response"`
}

func (*ResponseCompletedEvent) EventType() string { return EventTypeResponseCompleted }

func (e *ResponseCompletedEvent) UnmarshalJSON(data []byte) error {
	type alias ResponseCompletedEvent
	return decodeStrict(data, (*alias)(e), lifecycleFields...)
}

type ResponseFailedEvent struct {
	Type           string           `json:"type"`
	SequenceNumber int              `json:"sequence_number"`
	Response       ResponseResource `json:"response"`
}

func (*ResponseFailedEvent) EventType() string { return EventTypeResponseFailed }

func (e *ResponseFailedEvent) UnmarshalJSON(data []byte) error {
	type alias ResponseFailedEvent
	return decodeStrict(data, (*alias)(e), lifecycleFields...)
}

type ResponseIncompleteEvent struct {
	Type           string           `json:"type"`
	SequenceNumber int              `json:"sequence_number"`
	Response       ResponseResource `json:"response"`
}

func (*ResponseIncompleteEvent) EventType() string { return EventTypeResponseIncomplete }

func (e *ResponseIncompleteEvent) UnmarshalJSON(data []byte) error {
	type alias ResponseIncompleteEvent
	return decodeStrict(data, (*alias)(e), lifecycleFields...)
}

type OutputItemAddedEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	OutputIndex    int    `json:"output_index"`
	Item           *Item  `json:"item,omitempty"`
}

func (*OutputItemAddedEvent) EventType() string { return EventTypeOutputItemAdded }

func (e *OutputItemAddedEvent) UnmarshalJSON(data []byte) error {
	type alias OutputItemAddedEvent
	return decodeStrict(data, (*alias)(e), outputItemFields...)
}

type OutputItemDoneEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	OutputIndex    int    `json:"output_index"`
	Item           *Item  `json:"item,omitempty"`
}

func (*OutputItemDoneEvent) EventType() string { return EventTypeOutputItemDone }

func (e *OutputItemDoneEvent) UnmarshalJSON(data []byte) error {
	type alias OutputItemDoneEvent
	return decodeStrict(data, (*alias)(e), outputItemFields...)
}

type ContentPartAddedEvent struct {
	Type           string      `json:"type"`
	SequenceNumber int         `json:"sequence_number"`
	ItemID         string      `json:"item_id"`
	OutputIndex    int         `json:"output_index"`
	ContentIndex   int         `json:"content_index"`
	Part           ContentPart `json:"part"`
}

func (*ContentPartAddedEvent) EventType() string { return EventTypeContentPartAdded }

func (e *ContentPartAddedEvent) UnmarshalJSON(data []byte) error {
	type alias ContentPartAddedEvent
	return decodeStrict(data, (*alias)(e), contentPartFields...)
}

type ContentPartDoneEvent struct {
	Type           string      `json:"type"`
	SequenceNumber int         `json:"sequence_number"`
	ItemID         string      `json:"item_id"`
	OutputIndex    int         `json:"output_index"`
	ContentIndex   int         `json:"content_index"`
	Part           ContentPart `json:"part"`
}

func (*ContentPartDoneEvent) EventType() string { return EventTypeContentPartDone }

func (e *ContentPartDoneEvent) UnmarshalJSON(data []byte) error {
	type alias ContentPartDoneEvent
	return decodeStrict(data, (*alias)(e), contentPartFields...)
}

// OutputTextDeltaEvent carries one fragment of generated text.
type OutputTextDeltaEvent struct {
	Type           string    `json:"type"`
	SequenceNumber int       `json:"sequence_number"`
	ItemID         string    `json:"item_id"`
	OutputIndex    int       `json:"output_index"`
	ContentIndex   int       `json:"content_index"`
	Delta          string    `json:"delta"`
	Logprobs       []LogProb `json:"logprobs"`
	Obfuscation    *string   `json:"obfuscation,omitempty"`
}

func (*OutputTextDeltaEvent) EventType() string { return EventTypeOutputTextDelta }

func (e *OutputTextDeltaEvent) UnmarshalJSON(data []byte) error {
	type alias OutputTextDeltaEvent
	return decodeStrict(data, (*alias)(e), textDeltaFields...)
}

type OutputTextDoneEvent struct {
	Type           string    `json:"type"`
	SequenceNumber int       `json:"sequence_number"`
	ItemID         string    `json:"item_id"`
	OutputIndex    int       `json:"output_index"`
	ContentIndex   int       `json:"content_index"`
	Text           string    `json:"text"`
	Logprobs       []LogProb `json:"logprobs"`
}

func (*OutputTextDoneEvent) EventType() string { return EventTypeOutputTextDone }

func (e *OutputTextDoneEvent) UnmarshalJSON(data []byte) error {
	type alias OutputTextDoneEvent
	return decodeStrict(data, (*alias)(e), textDoneFields...)
}

type ReasoningSummaryPartAddedEvent struct {
	Type           string      `json:"type"`
	SequenceNumber int         `json:"sequence_number"`
	ItemID         string      `json:"item_id"`
	OutputIndex    int         `json:"output_index"`
	SummaryIndex   int         `json:"summary_index"`
	Part           ContentPart `json:"part"`
}

func (*ReasoningSummaryPartAddedEvent) EventType() string { return EventTypeReasoningSummaryPartAdded }

func (e *ReasoningSummaryPartAddedEvent) UnmarshalJSON(data []byte) error {
	type alias ReasoningSummaryPartAddedEvent
	return decodeStrict(data, (*alias)(e), summaryPartFields...)
}

type ReasoningSummaryPartDoneEvent struct {
	Type           string      `json:"type"`
	SequenceNumber int         `json:"sequence_number"`
	ItemID         string      `json:"item_id"`
	OutputIndex    int         `json:"output_index"`
	SummaryIndex   int         `json:"summary_index"`
	Part           ContentPart `json:"part"`
}

func (*ReasoningSummaryPartDoneEvent) EventType() string { return EventTypeReasoningSummaryPartDone }

func (e *ReasoningSummaryPartDoneEvent) UnmarshalJSON(data []byte) error {
	type alias ReasoningSummaryPartDoneEvent
	return decodeStrict(data, (*alias)(e), summaryPartFields...)
}

type RefusalDeltaEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	ContentIndex   int    `json:"content_index"`
	Delta          string `json:"delta"`
}

func (*RefusalDeltaEvent) EventType() string { return EventTypeRefusalDelta }

func (e *RefusalDeltaEvent) UnmarshalJSON(data []byte) error {
	type alias RefusalDeltaEvent
	return decodeStrict(data, (*alias)(e), contentDeltaFields...)
}

type RefusalDoneEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	ContentIndex   int    `json:"content_index"`
	Refusal        string `json:"refusal"`
}

func (*RefusalDoneEvent) EventType() string { return EventTypeRefusalDone }

func (e *RefusalDoneEvent) UnmarshalJSON(data []byte) error {
	type alias RefusalDoneEvent
	return decodeStrict(data, (*alias)(e), refusalDoneFields...)
}

type ReasoningDeltaEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	ContentIndex   int    `json:"content_index"`
	Delta          string `json:"delta"`
}

func (*ReasoningDeltaEvent) EventType() string { return EventTypeReasoningDelta }

func (e *ReasoningDeltaEvent) UnmarshalJSON(data []byte) error {
	type alias ReasoningDeltaEvent
	return decodeStrict(data, (*alias)(e), contentDeltaFields...)
}

type ReasoningDoneEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	ContentIndex   int    `json:"content_index"`
	Text           string `json:"text"`
}

func (*ReasoningDoneEvent) EventType() string { return EventTypeReasoningDone }

func (e *ReasoningDoneEvent) UnmarshalJSON(data []byte) error {
	type alias ReasoningDoneEvent
	return decodeStrict(data, (*alias)(e), contentTextDoneFields...)
}

type ReasoningSummaryTextDeltaEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	SummaryIndex   int    `json:"summary_index"`
	Delta          string `json:"delta"`
}

func (*ReasoningSummaryTextDeltaEvent) EventType() string { return EventTypeReasoningSummaryTextDelta }

func (e *ReasoningSummaryTextDeltaEvent) UnmarshalJSON(data []byte) error {
	type alias ReasoningSummaryTextDeltaEvent
	return decodeStrict(data, (*alias)(e), summaryDeltaFields...)
}

type ReasoningSummaryTextDoneEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	SummaryIndex   int    `json:"summary_index"`
	Text           string `json:"text"`
}

func (*ReasoningSummaryTextDoneEvent) EventType() string { return EventTypeReasoningSummaryTextDone }

func (e *ReasoningSummaryTextDoneEvent) UnmarshalJSON(data []byte) error {
	type alias ReasoningSummaryTextDoneEvent
	return decodeStrict(data, (*alias)(e), summaryTextDoneFields...)
}

type OutputTextAnnotationAddedEvent struct {
	Type            string     `json:"type"`
	SequenceNumber  int        `json:"sequence_number"`
	ItemID          string     `json:"item_id"`
	OutputIndex     int        `json:"output_index"`
	ContentIndex    int        `json:"content_index"`
	AnnotationIndex int        `json:"annotation_index"`
	Annotation      Annotation `json:"annotation"`
}

func (*OutputTextAnnotationAddedEvent) EventType() string { return EventTypeOutputTextAnnotationAdded }

func (e *OutputTextAnnotationAddedEvent) UnmarshalJSON(data []byte) error {
	type alias OutputTextAnnotationAddedEvent
	return decodeStrict(data, (*alias)(e), annotationFields...)
}

type FunctionCallArgumentsDeltaEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	Delta          string `json:"delta"`
}

func (*FunctionCallArgumentsDeltaEvent) EventType() string { return EventTypeFunctionCallArgumentsDelta }

func (e *FunctionCallArgumentsDeltaEvent) UnmarshalJSON(data []byte) error {
	type alias FunctionCallArgumentsDeltaEvent
	return decodeStrict(data, (*alias)(e), argumentsDeltaFields...)
}

// FunctionCallArgumentsDoneEvent carries the complete JSON arguments string of a function call.
type FunctionCallArgumentsDoneEvent struct {
	Type           string `json:"type"`
	SequenceNumber int    `json:"sequence_number"`
	ItemID         string `json:"item_id"`
	OutputIndex    int    `json:"output_index"`
	Arguments      string `json:"arguments"`
}

func (*FunctionCallArgumentsDoneEvent) EventType() string { return EventTypeFunctionCallArgumentsDone }

func (e *FunctionCallArgumentsDoneEvent) UnmarshalJSON(data []byte) error {
	type alias FunctionCallArgumentsDoneEvent
	return decodeStrict(data, (*alias)(e), argumentsDoneFields...)
}

// ErrorEvent reports a server-side failure inside an otherwise healthy stream.
type ErrorEvent struct {
	Type           string       `json:"type"`
	SequenceNumber int          `json:"sequence_number"`
	Error          ErrorPayload `json:"error"`
}

func (*ErrorEvent) EventType() string { return EventTypeError }

func (e *ErrorEvent) UnmarshalJSON(data []byte) error {
	type alias ErrorEvent
	return decodeStrict(data, (*alias)(e), errorFields...)
}

// knownEvents maps every recognized type to a constructor for its event.
var knownEvents = map[string]func() StreamingEvent{
	EventTypeResponseCreated:            func() StreamingEvent { return &ResponseCreatedEvent{} },
	EventTypeResponseQueued:             func() StreamingEvent { return &ResponseQueuedEvent{} },
	EventTypeResponseInProgress:         func() StreamingEvent { return &ResponseInProgressEvent{} },
	EventTypeResponseCompleted:          func() StreamingEvent { return &ResponseCompletedEvent{} },
	EventTypeResponseFailed:             func() StreamingEvent { return &ResponseFailedEvent{} },
	EventTypeResponseIncomplete:         func() StreamingEvent { return &ResponseIncompleteEvent{} },
	EventTypeOutputItemAdded:            func() StreamingEvent { return &OutputItemAddedEvent{} },
	EventTypeOutputItemDone:             func() StreamingEvent { return &OutputItemDoneEvent{} },
	EventTypeContentPartAdded:           func() StreamingEvent { return &ContentPartAddedEvent{} },
	EventTypeContentPartDone:            func() StreamingEvent { return &ContentPartDoneEvent{} },
	EventTypeOutputTextDelta:            func() StreamingEvent { return &OutputTextDeltaEvent{} },
	EventTypeOutputTextDone:             func() StreamingEvent { return &OutputTextDoneEvent{} },
	EventTypeReasoningSummaryPartAdded:  func() StreamingEvent { return &ReasoningSummaryPartAddedEvent{} },
	EventTypeReasoningSummaryPartDone:   func() StreamingEvent { return &ReasoningSummaryPartDoneEvent{} },
	EventTypeRefusalDelta:               func() StreamingEvent { return &RefusalDeltaEvent{} },
	EventTypeRefusalDone:                func() StreamingEvent { return &RefusalDoneEvent{} },
	EventTypeReasoningDelta:             func() StreamingEvent { return &ReasoningDeltaEvent{} },
	EventTypeReasoningDone:              func() StreamingEvent { return &ReasoningDoneEvent{} },
	EventTypeReasoningSummaryTextDelta:  func() StreamingEvent { return &ReasoningSummaryTextDeltaEvent{} },
	EventTypeReasoningSummaryTextDone:   func() StreamingEvent { return &ReasoningSummaryTextDoneEvent{} },
	EventTypeOutputTextAnnotationAdded:  func() StreamingEvent { return &OutputTextAnnotationAddedEvent{} },
	EventTypeFunctionCallArgumentsDelta: func() StreamingEvent { return &FunctionCallArgumentsDeltaEvent{} },
	EventTypeFunctionCallArgumentsDone:  func() StreamingEvent { return &FunctionCallArgumentsDoneEvent{} },
	EventTypeError:                      func() StreamingEvent { return &ErrorEvent{} },
}

// IsKnownEventType reports whether t is one of the recognized event types.
func IsKnownEventType(t string) bool {
	_, ok := knownEvents[t]
	return ok
}
