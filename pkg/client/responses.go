package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/papercomputeco/ores/pkg/responses"
	"github.com/papercomputeco/ores/pkg/stream"
)

const responsesPath = "responses"

// ResponsesEndpoint creates model responses.
type ResponsesEndpoint struct {
	client *Client
}

// Create starts a request for model with the given input. The request is not
// sent until Send or SendStream.
func (e *ResponsesEndpoint) Create(model string, input responses.Input) *CreateRequest {
	streaming := false
	store := false
	return &CreateRequest{
		client: e.client,
		body: responses.CreateResponseBody{
			Model:  &model,
			Input:  input,
			Stream: &streaming,
			Store:  &store,
		},
	}
}

// CreateText is Create with a plain text input.
func (e *ResponsesEndpoint) CreateText(model, text string) *CreateRequest {
	return e.Create(model, responses.TextInput(text))
}

// CreateRequest is a POST /responses request under construction. Setters
// return the request so calls can be chained.
type CreateRequest struct {
	client *Client
	body   responses.CreateResponseBody
}

// Body returns the request body as it would be sent by Send.
func (r *CreateRequest) Body() responses.CreateResponseBody {
	return r.body
}

func (r *CreateRequest) Instructions(s string) *CreateRequest {
	r.body.Instructions = &s
	return r
}

func (r *CreateRequest) Temperature(t float64) *CreateRequest {
	r.body.Temperature = &t
	return r
}

func (r *CreateRequest) TopP(p float64) *CreateRequest {
	r.body.TopP = &p
	return r
}

func (r *CreateRequest) MaxOutputTokens(n int) *CreateRequest {
	r.body.MaxOutputTokens = &n
	return r
}

func (r *CreateRequest) MaxToolCalls(n int) *CreateRequest {
	r.body.MaxToolCalls = &n
	return r
}

func (r *CreateRequest) Tools(tools ...responses.FunctionTool) *CreateRequest {
	r.body.Tools = tools
	return r
}

func (r *CreateRequest) ToolChoice(choice responses.ToolChoice) *CreateRequest {
	r.body.ToolChoice = choice
	return r
}

func (r *CreateRequest) ParallelToolCalls(b bool) *CreateRequest {
	r.body.ParallelToolCalls = &b
	return r
}

func (r *CreateRequest) Text(t responses.TextParam) *CreateRequest {
	r.body.Text = &t
	return r
}

func (r *CreateRequest) ServiceTier(tier string) *CreateRequest {
	r.body.ServiceTier = &tier
	return r
}

func (r *CreateRequest) Truncation(t responses.Truncation) *CreateRequest {
	r.body.Truncation = &t
	return r
}

func (r *CreateRequest) Reasoning(p responses.ReasoningParam) *CreateRequest {
	r.body.Reasoning = &p
	return r
}

// PreviousResponseID continues the conversation of an earlier stored
// response.
func (r *CreateRequest) PreviousResponseID(id string) *CreateRequest {
	r.body.PreviousResponseID = &id
	return r
}

func (r *CreateRequest) Metadata(m map[string]string) *CreateRequest {
	r.body.Metadata = m
	return r
}

func (r *CreateRequest) Include(values ...string) *CreateRequest {
	r.body.Include = values
	return r
}

func (r *CreateRequest) Store(b bool) *CreateRequest {
	r.body.Store = &b
	return r
}

func (r *CreateRequest) Background(b bool) *CreateRequest {
	r.body.Background = &b
	return r
}

func (r *CreateRequest) StreamOptions(o responses.StreamOptions) *CreateRequest {
	r.body.StreamOptions = &o
	return r
}

func (r *CreateRequest) TopLogprobs(n int) *CreateRequest {
	r.body.TopLogprobs = &n
	return r
}

func (r *CreateRequest) SafetyIdentifier(id string) *CreateRequest {
	r.body.SafetyIdentifier = &id
	return r
}

func (r *CreateRequest) PromptCacheKey(key string) *CreateRequest {
	r.body.PromptCacheKey = &key
	return r
}

// Send posts the request and decodes the response resource.
func (r *CreateRequest) Send(ctx context.Context) (*responses.ResponseResource, error) {
	body := r.body
	streaming := false
	body.Stream = &streaming
	body.StreamOptions = nil

	req, err := r.client.newRequest(ctx, responsesPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out responses.ResponseResource
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

// SendStream posts the request with streaming enabled and returns the event
// stream. The caller must Close it. Cancelling ctx aborts the stream with a
// *stream.TransportError.
func (r *CreateRequest) SendStream(ctx context.Context, opts ...stream.Option) (*stream.Stream, error) {
	body := r.body
	streaming := true
	body.Stream = &streaming

	req, err := r.client.newRequest(ctx, responsesPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := r.client.do(req)
	if err != nil {
		return nil, err
	}

	streamOpts := append([]stream.Option{
		stream.WithMaxBufferSize(r.client.maxEvent),
		stream.WithLogger(r.client.logger),
	}, opts...)

	s, err := stream.FromResponse(resp, streamOpts...)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	return s, nil
}
