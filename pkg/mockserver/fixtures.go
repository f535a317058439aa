package mockserver

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// DefaultReply is the output text used when a request carries no input.
const DefaultReply = "Hello from the mock!"

// baseResource holds every member a response resource must carry. Fields
// that vary per response are set with sjson.
const baseResource = `{"id":"","object":"response","created_at":0,"status":"in_progress",` +
	`"incomplete_details":null,"model":"","previous_response_id":null,"instructions":null,` +
	`"output":[],"error":null,"tools":[],"tool_choice":"auto","truncation":"disabled",` +
	`"parallel_tool_calls":true,"text":{"format":{"type":"text"}},"top_p":1.0,` +
	`"presence_penalty":0.0,"frequency_penalty":0.0,"top_logprobs":0,"temperature":1.0,` +
	`"reasoning":null,"usage":null,"store":false,"background":false,"service_tier":"default",` +
	`"metadata":{}}`

// reply describes one mocked response.
type reply struct {
	responseID   string
	messageID    string
	model        string
	previousID   string
	text         string
	inputTokens  int
	createdAt    int64
	scenario     string
	errorMessage string
}

func newReply(model, previousID, input, scenario string) *reply {
	text := DefaultReply
	if input != "" {
		text = "You said: " + input
	}

	return &reply{
		responseID:   "resp_" + compactID(),
		messageID:    "msg_" + compactID(),
		model:        model,
		previousID:   previousID,
		text:         text,
		inputTokens:  len(strings.Fields(input)),
		createdAt:    time.Now().Unix(),
		scenario:     scenario,
		errorMessage: "mock failure",
	}
}

func compactID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// chunks splits the reply text into word-sized deltas, keeping whitespace.
func (r *reply) chunks() []string {
	return strings.SplitAfter(r.text, " ")
}

func (r *reply) outputPart(text string) string {
	part := `{"type":"output_text","text":"","annotations":[],"logprobs":[]}`
	part, _ = sjson.Set(part, "text", text)
	return part
}

func (r *reply) messageItem(status string, content ...string) string {
	item := `{"type":"message","id":"","status":"","role":"assistant","content":[]}`
	item, _ = sjson.Set(item, "id", r.messageID)
	item, _ = sjson.Set(item, "status", status)
	for _, part := range content {
		item, _ = sjson.SetRaw(item, "content.-1", part)
	}
	return item
}

func (r *reply) usage() string {
	out := len(r.chunks())
	usage := `{"input_tokens":0,"output_tokens":0,"total_tokens":0,` +
		`"input_tokens_details":{"cached_tokens":0},"output_tokens_details":{"reasoning_tokens":0}}`
	usage, _ = sjson.Set(usage, "input_tokens", r.inputTokens)
	usage, _ = sjson.Set(usage, "output_tokens", out)
	usage, _ = sjson.Set(usage, "total_tokens", r.inputTokens+out)
	return usage
}

// resource renders the response resource in the given status. Completed
// resources carry the full output and usage.
func (r *reply) resource(status string) (string, error) {
	doc := baseResource
	var err error
	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, value)
		}
	}
	setRaw := func(path, raw string) {
		if err == nil {
			doc, err = sjson.SetRaw(doc, path, raw)
		}
	}

	set("id", r.responseID)
	set("created_at", r.createdAt)
	set("model", r.model)
	set("status", status)
	if r.previousID != "" {
		set("previous_response_id", r.previousID)
	}

	switch status {
	case "completed":
		set("completed_at", time.Now().Unix())
		setRaw("output.-1", r.messageItem("completed", r.outputPart(r.text)))
		setRaw("usage", r.usage())
	case "failed":
		set("error", map[string]string{"code": "server_error", "message": r.errorMessage})
	}

	return doc, err
}

// eventWriter renders named SSE frames with increasing sequence numbers.
type eventWriter struct {
	buf bytes.Buffer
	seq int
	err error
}

// emit writes one event. members alternate path and value; values of type
// rawJSON are inserted verbatim.
func (w *eventWriter) emit(typ string, members ...any) {
	if w.err != nil {
		return
	}

	doc := `{}`
	doc, w.err = sjson.Set(doc, "type", typ)
	if w.err == nil {
		doc, w.err = sjson.Set(doc, "sequence_number", w.seq)
	}
	for i := 0; i+1 < len(members) && w.err == nil; i += 2 {
		path := members[i].(string)
		switch v := members[i+1].(type) {
		case rawJSON:
			doc, w.err = sjson.SetRaw(doc, path, string(v))
		default:
			doc, w.err = sjson.Set(doc, path, v)
		}
	}
	if w.err != nil {
		return
	}

	fmt.Fprintf(&w.buf, "event: %s\ndata: %s\n\n", typ, doc)
	w.seq++
}

type rawJSON string

// events renders the complete SSE body for r, terminated by [DONE].
func (r *reply) events() ([]byte, error) {
	w := &eventWriter{}

	created, err := r.resource("in_progress")
	if err != nil {
		return nil, err
	}
	w.emit("response.created", "response", rawJSON(created))
	w.emit("response.in_progress", "response", rawJSON(created))

	switch r.scenario {
	case ScenarioFailed:
		failed, err := r.resource("failed")
		if err != nil {
			return nil, err
		}
		w.emit("response.failed", "response", rawJSON(failed))
		return r.finish(w)

	case ScenarioError:
		w.emit("error", "error", rawJSON(`{"type":"server_error","code":"server_error","message":"mock failure","param":null}`))
		return r.finish(w)
	}

	w.emit("response.output_item.added", "output_index", 0, "item", rawJSON(r.messageItem("in_progress")))
	w.emit("response.content_part.added",
		"item_id", r.messageID, "output_index", 0, "content_index", 0,
		"part", rawJSON(r.outputPart("")))

	for _, delta := range r.chunks() {
		w.emit("response.output_text.delta",
			"item_id", r.messageID, "output_index", 0, "content_index", 0,
			"delta", delta, "logprobs", rawJSON(`[]`))
	}

	w.emit("response.output_text.done",
		"item_id", r.messageID, "output_index", 0, "content_index", 0,
		"text", r.text, "logprobs", rawJSON(`[]`))
	w.emit("response.content_part.done",
		"item_id", r.messageID, "output_index", 0, "content_index", 0,
		"part", rawJSON(r.outputPart(r.text)))
	w.emit("response.output_item.done",
		"output_index", 0, "item", rawJSON(r.messageItem("completed", r.outputPart(r.text))))

	completed, err := r.resource("completed")
	if err != nil {
		return nil, err
	}
	w.emit("response.completed", "response", rawJSON(completed))

	return r.finish(w)
}

func (r *reply) finish(w *eventWriter) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteString("data: [DONE]\n\n")
	return w.buf.Bytes(), nil
}
