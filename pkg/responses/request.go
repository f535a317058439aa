package responses

import (
	"encoding/json"
)

// CreateResponseBody is the JSON body of POST /responses. Nil fields are
// omitted from the request.
type CreateResponseBody struct {
	Model              *string           `json:"model,omitempty"`
	Input              Input             `json:"input,omitempty"`
	PreviousResponseID *string           `json:"previous_response_id,omitempty"`
	Include            []string          `json:"include,omitempty"`
	Tools              []FunctionTool    `json:"tools,omitempty"`
	ToolChoice         ToolChoice        `json:"tool_choice,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	Text               *TextParam        `json:"text,omitempty"`
	Temperature        *float64          `json:"temperature,omitempty"`
	TopP               *float64          `json:"top_p,omitempty"`
	PresencePenalty    *float64          `json:"presence_penalty,omitempty"`
	FrequencyPenalty   *float64          `json:"frequency_penalty,omitempty"`
	ParallelToolCalls  *bool             `json:"parallel_tool_calls,omitempty"`
	Stream             *bool             `json:"stream,omitempty"`
	StreamOptions      *StreamOptions    `json:"stream_options,omitempty"`
	Background         *bool             `json:"background,omitempty"`
	MaxOutputTokens    *int              `json:"max_output_tokens,omitempty"`
	MaxToolCalls       *int              `json:"max_tool_calls,omitempty"`
	Reasoning          *ReasoningParam   `json:"reasoning,omitempty"`
	SafetyIdentifier   *string           `json:"safety_identifier,omitempty"`
	PromptCacheKey     *string           `json:"prompt_cache_key,omitempty"`
	Truncation         *Truncation       `json:"truncation,omitempty"`
	Instructions       *string           `json:"instructions,omitempty"`
	Store              *bool             `json:"store,omitempty"`
	ServiceTier        *string           `json:"service_tier,omitempty"`
	TopLogprobs        *int              `json:"top_logprobs,omitempty"`
}

// Include values.
const (
	IncludeReasoningEncryptedContent = "reasoning.encrypted_content"
	IncludeOutputTextLogprobs        = "message.output_text.logprobs"
)

// Input is the request input: either plain text, interpreted as a single
// user message, or a list of input items.
type Input interface {
	isInput()
}

// TextInput is a plain text input.
type TextInput string

func (TextInput) isInput() {}

// ItemsInput is a list of input items such as messages and function call
// outputs.
type ItemsInput []InputItem

func (ItemsInput) isInput() {}

// InputItem is one item of an ItemsInput. Use the constructors below.
type InputItem struct {
	Type    string          `json:"type"`
	ID      *string         `json:"id,omitempty"`
	Role    string          `json:"role,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
	Status  *string         `json:"status,omitempty"`

	CallID    string          `json:"call_id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Arguments string          `json:"arguments,omitempty"`
	Output    json.RawMessage `json:"output,omitempty"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleDeveloper = "developer"
)

// MessageItem returns a message input item with plain text content.
func MessageItem(role, text string) InputItem {
	content, _ := json.Marshal(text)
	return InputItem{Type: ItemTypeMessage, Role: role, Content: content}
}

// FunctionCallItem replays a function call made by the model in an earlier
// turn.
func FunctionCallItem(callID, name, arguments string) InputItem {
	return InputItem{Type: ItemTypeFunctionCall, CallID: callID, Name: name, Arguments: arguments}
}

// FunctionCallOutputItem returns the text result of a function call.
func FunctionCallOutputItem(callID, output string) InputItem {
	raw, _ := json.Marshal(output)
	return InputItem{Type: ItemTypeFunctionCallOutput, CallID: callID, Output: raw}
}

// ItemReference refers to an item by id, for example one from a previous
// response.
func ItemReference(id string) InputItem {
	return InputItem{Type: "item_reference", ID: &id}
}

// FunctionTool declares a function the model may call.
type FunctionTool struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
	Strict      *bool           `json:"strict,omitempty"`
}

// NewFunctionTool returns a function tool with a JSON schema for its
// parameters.
func NewFunctionTool(name, description string, parameters json.RawMessage) FunctionTool {
	return FunctionTool{Type: "function", Name: name, Description: &description, Parameters: parameters}
}

// ToolChoice is either a ToolChoiceMode or a SpecificFunction.
type ToolChoice interface {
	isToolChoice()
}

// ToolChoiceMode is one of "none", "auto" or "required".
type ToolChoiceMode string

const (
	ToolChoiceNone     ToolChoiceMode = "none"
	ToolChoiceAuto     ToolChoiceMode = "auto"
	ToolChoiceRequired ToolChoiceMode = "required"
)

func (ToolChoiceMode) isToolChoice() {}

// SpecificFunction forces the model to call the named function.
type SpecificFunction struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// ForceFunction returns a tool choice that forces a call to name.
func ForceFunction(name string) SpecificFunction {
	return SpecificFunction{Type: "function", Name: name}
}

func (SpecificFunction) isToolChoice() {}

type TextParam struct {
	Format    json.RawMessage `json:"format,omitempty"`
	Verbosity *string         `json:"verbosity,omitempty"`
}

type StreamOptions struct {
	IncludeObfuscation *bool `json:"include_obfuscation,omitempty"`
}

type ReasoningParam struct {
	Effort  *string `json:"effort,omitempty"`
	Summary *string `json:"summary,omitempty"`
}
