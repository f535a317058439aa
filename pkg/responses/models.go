package responses

import (
	"encoding/json"
	"strings"
)

// ResponseResource is the full state of a response as returned by
// POST /responses and carried by the response.* lifecycle events.
type ResponseResource struct {
	ID                 string             `json:"id"`
	Object             string             `json:"object"`
	CreatedAt          int64              `json:"created_at"`
	CompletedAt        *int64             `json:"completed_at,omitempty"`
	Status             string             `json:"status"`
	IncompleteDetails  *IncompleteDetails `json:"incomplete_details,omitempty"`
	Model              string             `json:"model"`
	PreviousResponseID *string            `json:"previous_response_id,omitempty"`
	Instructions       *string            `json:"instructions,omitempty"`
	Output             []Item             `json:"output"`
	Error              *ResponseError     `json:"error,omitempty"`
	Tools              []Tool             `json:"tools"`
	ToolChoice         json.RawMessage    `json:"tool_choice,omitempty"`
	Truncation         Truncation         `json:"truncation"`
	ParallelToolCalls  bool               `json:"parallel_tool_calls"`
	Text               TextField          `json:"text"`
	TopP               float64            `json:"top_p"`
	PresencePenalty    float64            `json:"presence_penalty"`
	FrequencyPenalty   float64            `json:"frequency_penalty"`
	TopLogprobs        int                `json:"top_logprobs"`
	Temperature        float64            `json:"temperature"`
	Reasoning          *Reasoning         `json:"reasoning,omitempty"`
	Usage              *Usage             `json:"usage,omitempty"`
	MaxOutputTokens    *int               `json:"max_output_tokens,omitempty"`
	MaxToolCalls       *int               `json:"max_tool_calls,omitempty"`
	Store              bool               `json:"store"`
	Background         bool               `json:"background"`
	ServiceTier        string             `json:"service_tier"`
	Metadata           json.RawMessage    `json:"metadata"`
	SafetyIdentifier   *string            `json:"safety_identifier,omitempty"`
	PromptCacheKey     *string            `json:"prompt_cache_key,omitempty"`
}

func (r *ResponseResource) UnmarshalJSON(data []byte) error {
	type alias ResponseResource
	if err := decodeStrict(data, (*alias)(r),
		"id", "object", "created_at", "status", "model", "output", "tools",
		"truncation", "parallel_tool_calls", "text", "top_p", "presence_penalty",
		"frequency_penalty", "top_logprobs", "temperature", "store", "background",
		"service_tier",
	); err != nil {
		return err
	}
	// metadata is a free-form value and may be null.
	return requirePresent(data, "metadata")
}

// OutputText concatenates the text of every output_text part of every
// message item in the response output.
func (r *ResponseResource) OutputText() string {
	var sb strings.Builder
	for _, item := range r.Output {
		if item.Type != ItemTypeMessage {
			continue
		}
		for _, part := range item.Content {
			if part.Type == ContentTypeOutputText {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}

// Truncation controls how the service truncates input that exceeds the model
// context window.
type Truncation string

const (
	TruncationAuto     Truncation = "auto"
	TruncationDisabled Truncation = "disabled"
)

type IncompleteDetails struct {
	Reason string `json:"reason"`
}

func (d *IncompleteDetails) UnmarshalJSON(data []byte) error {
	type alias IncompleteDetails
	return decodeStrict(data, (*alias)(d), "reason")
}

// ResponseError is the error attached to a failed response resource.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) UnmarshalJSON(data []byte) error {
	type alias ResponseError
	return decodeStrict(data, (*alias)(e), "code", "message")
}

// TextField is the text output configuration echoed back on a response.
type TextField struct {
	Format    json.RawMessage `json:"format"`
	Verbosity *string         `json:"verbosity,omitempty"`
}

func (t *TextField) UnmarshalJSON(data []byte) error {
	type alias TextField
	if err := json.Unmarshal(data, (*alias)(t)); err != nil {
		return err
	}
	return requirePresent(data, "format")
}

// Reasoning is the reasoning configuration echoed back on a response.
type Reasoning struct {
	Effort  *string `json:"effort,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

type Usage struct {
	InputTokens         int                 `json:"input_tokens"`
	OutputTokens        int                 `json:"output_tokens"`
	TotalTokens         int                 `json:"total_tokens"`
	InputTokensDetails  InputTokensDetails  `json:"input_tokens_details"`
	OutputTokensDetails OutputTokensDetails `json:"output_tokens_details"`
}

func (u *Usage) UnmarshalJSON(data []byte) error {
	type alias Usage
	return decodeStrict(data, (*alias)(u),
		"input_tokens", "output_tokens", "total_tokens",
		"input_tokens_details", "output_tokens_details",
	)
}

type InputTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

func (d *InputTokensDetails) UnmarshalJSON(data []byte) error {
	type alias InputTokensDetails
	return decodeStrict(data, (*alias)(d), "cached_tokens")
}

type OutputTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

func (d *OutputTokensDetails) UnmarshalJSON(data []byte) error {
	type alias OutputTokensDetails
	return decodeStrict(data, (*alias)(d), "reasoning_tokens")
}

// Tool is a tool definition echoed back on a response. Only function tools
// exist today.
type Tool struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
	Strict      bool            `json:"strict"`
}

var toolVariants = map[string][]string{
	"function": {"name", "strict"},
}

func (t *Tool) UnmarshalJSON(data []byte) error {
	type alias Tool
	if err := decodeTagged(data, (*alias)(t), "tool", toolVariants); err != nil {
		return err
	}
	return requirePresent(data, "parameters")
}

// Item types.
const (
	ItemTypeMessage            = "message"
	ItemTypeFunctionCall       = "function_call"
	ItemTypeFunctionCallOutput = "function_call_output"
	ItemTypeReasoning          = "reasoning"
)

// Item is one output item of a response. It is a union discriminated by
// Type; only the fields of that variant are populated.
type Item struct {
	Type string `json:"type"`
	ID   string `json:"id"`

	// message, function_call and function_call_output
	Status string `json:"status,omitempty"`

	// message
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`

	// function_call and function_call_output
	CallID string `json:"call_id,omitempty"`

	// function_call
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`

	// function_call_output: either a JSON string or an array of content parts.
	Output json.RawMessage `json:"output,omitempty"`

	// reasoning
	Summary          []ContentPart `json:"summary,omitempty"`
	EncryptedContent *string       `json:"encrypted_content,omitempty"`
}

var itemVariants = map[string][]string{
	ItemTypeMessage:            {"id", "status", "role", "content"},
	ItemTypeFunctionCall:       {"id", "call_id", "name", "arguments", "status"},
	ItemTypeFunctionCallOutput: {"id", "call_id", "output", "status"},
	ItemTypeReasoning:          {"id", "summary"},
}

func (i *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	return decodeTagged(data, (*alias)(i), "item", itemVariants)
}

// Content part types.
const (
	ContentTypeInputText     = "input_text"
	ContentTypeOutputText    = "output_text"
	ContentTypeText          = "text"
	ContentTypeSummaryText   = "summary_text"
	ContentTypeReasoningText = "reasoning_text"
	ContentTypeRefusal       = "refusal"
	ContentTypeInputImage    = "input_image"
	ContentTypeInputFile     = "input_file"
	ContentTypeInputVideo    = "input_video"
)

// ContentPart is one part of a message, reasoning summary or function call
// output. It is a union discriminated by Type.
type ContentPart struct {
	Type string `json:"type"`

	// input_text, output_text, text, summary_text and reasoning_text
	Text string `json:"text,omitempty"`

	// output_text
	Annotations []Annotation `json:"annotations,omitempty"`
	Logprobs    []LogProb    `json:"logprobs,omitempty"`

	// refusal
	Refusal string `json:"refusal,omitempty"`

	// input_image
	ImageURL *string `json:"image_url,omitempty"`
	Detail   string  `json:"detail,omitempty"`

	// input_file
	Filename string `json:"filename,omitempty"`
	FileURL  string `json:"file_url,omitempty"`

	// input_video
	VideoURL string `json:"video_url,omitempty"`
}

var contentPartVariants = map[string][]string{
	ContentTypeInputText:     {"text"},
	ContentTypeOutputText:    {"text", "annotations", "logprobs"},
	ContentTypeText:          {"text"},
	ContentTypeSummaryText:   {"text"},
	ContentTypeReasoningText: {"text"},
	ContentTypeRefusal:       {"refusal"},
	ContentTypeInputImage:    {"detail"},
	ContentTypeInputFile:     {"filename", "file_url"},
	ContentTypeInputVideo:    {"video_url"},
}

func (p *ContentPart) UnmarshalJSON(data []byte) error {
	type alias ContentPart
	return decodeTagged(data, (*alias)(p), "content part", contentPartVariants)
}

// Annotation is a citation attached to output text.
type Annotation struct {
	Type       string `json:"type"`
	URL        string `json:"url"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	Title      string `json:"title"`
}

var annotationVariants = map[string][]string{
	"url_citation": {"url", "start_index", "end_index", "title"},
}

func (a *Annotation) UnmarshalJSON(data []byte) error {
	type alias Annotation
	return decodeTagged(data, (*alias)(a), "annotation", annotationVariants)
}

type LogProb struct {
	Token       string       `json:"token"`
	Logprob     float64      `json:"logprob"`
	Bytes       []int        `json:"bytes"`
	TopLogprobs []TopLogProb `json:"top_logprobs"`
}

func (l *LogProb) UnmarshalJSON(data []byte) error {
	type alias LogProb
	return decodeStrict(data, (*alias)(l), "token", "logprob", "bytes", "top_logprobs")
}

type TopLogProb struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
	Bytes   []int   `json:"bytes"`
}

func (l *TopLogProb) UnmarshalJSON(data []byte) error {
	type alias TopLogProb
	return decodeStrict(data, (*alias)(l), "token", "logprob", "bytes")
}

// ErrorPayload is the body of an "error" streaming event.
type ErrorPayload struct {
	Type    string             `json:"type"`
	Code    *string            `json:"code,omitempty"`
	Message string             `json:"message"`
	Param   *string            `json:"param,omitempty"`
	Headers *map[string]string `json:"headers,omitempty"`
}

func (e *ErrorPayload) UnmarshalJSON(data []byte) error {
	type alias ErrorPayload
	return decodeStrict(data, (*alias)(e), "type", "message")
}
