// Package mockserver serves canned Responses API traffic for local
// development and end-to-end tests.
//
// POST /v1/responses echoes the request input back as the output text, either
// as a JSON response resource or, when the request sets "stream": true, as a
// complete event stream. A fixture file replaces the synthesized stream with
// raw SSE bytes served verbatim.
package mockserver

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"github.com/papercomputeco/ores/pkg/logger"
)

// Failure scenarios selected with ScenarioHeader.
const (
	// ScenarioFailed streams a response.failed lifecycle event.
	ScenarioFailed = "failed"

	// ScenarioError streams an error event.
	ScenarioError = "error"

	// ScenarioServerError answers with HTTP 500.
	ScenarioServerError = "server-error"

	// ScenarioWrongContentType answers a streaming request with JSON.
	ScenarioWrongContentType = "wrong-content-type"
)

// Config is the mock server configuration.
type Config struct {
	// ListenAddr is the address Run listens on.
	ListenAddr string

	// FixturePath is an optional SSE file served to streaming requests.
	FixturePath string

	// Watch reloads FixturePath when it changes.
	Watch bool

	// FrameDelay pauses between synthesized frames.
	FrameDelay time.Duration

	Logger *slog.Logger
}

// Server is a fiber app answering a subset of the Responses API.
type Server struct {
	config  Config
	app     *fiber.App
	logger  *slog.Logger
	headers *headerHandler

	fixture   atomic.Pointer[[]byte]
	watcher   *fsnotify.Watcher
	watchDone chan struct{}
}

// NewServer creates a server, loading and optionally watching the fixture.
func NewServer(config Config) (*Server, error) {
	log := config.Logger
	if log == nil {
		log = logger.Nop()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:  config,
		app:     app,
		logger:  log,
		headers: &headerHandler{},
	}

	if config.FixturePath != "" {
		if err := s.loadFixture(); err != nil {
			return nil, err
		}
		if config.Watch {
			if err := s.watchFixture(); err != nil {
				return nil, err
			}
		}
	}

	app.Get("/ping", s.handlePing)
	app.Post("/v1/responses", s.handleCreateResponse)

	return s, nil
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting mock server", "listen", s.config.ListenAddr)
	return s.app.Listen(s.config.ListenAddr)
}

// Serve starts the server on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting mock server", "listen", ln.Addr().String())
	return s.app.Listener(ln)
}

// Handler exposes the app as a net/http handler.
func (s *Server) Handler() http.HandlerFunc {
	return adaptor.FiberApp(s.app)
}

// Shutdown stops the fixture watcher and gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.watcher != nil {
		s.watcher.Close()
		<-s.watchDone
		s.watcher = nil
	}
	return s.app.Shutdown()
}

func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (s *Server) handleCreateResponse(c *fiber.Ctx) error {
	s.headers.echoRequestHeaders(c)

	if s.headers.bearerToken(c) == "" {
		return apiError(c, fiber.StatusUnauthorized, "invalid_api_key", "missing bearer token")
	}

	body := c.Body()
	if !gjson.ValidBytes(body) {
		return apiError(c, fiber.StatusBadRequest, "invalid_json", "request body is not valid JSON")
	}

	model := gjson.GetBytes(body, "model")
	if model.Type != gjson.String || model.Str == "" {
		return apiError(c, fiber.StatusBadRequest, "missing_model", "model is required")
	}

	scenario := c.Get(ScenarioHeader)
	if scenario == ScenarioServerError {
		return apiError(c, fiber.StatusInternalServerError, "server_error", "mock failure")
	}

	r := newReply(
		model.Str,
		gjson.GetBytes(body, "previous_response_id").String(),
		inputText(gjson.GetBytes(body, "input")),
		scenario,
	)
	streaming := gjson.GetBytes(body, "stream").Bool()

	s.logger.Debug("mock response",
		"response_id", r.responseID,
		"model", r.model,
		"stream", streaming,
		"scenario", scenario,
	)

	if !streaming || scenario == ScenarioWrongContentType {
		doc, err := r.resource("completed")
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	}

	events := s.Fixture()
	if events == nil {
		var err error
		if events, err = r.events(); err != nil {
			return err
		}
	}

	s.headers.setStreamHeaders(c)

	// io.Pipe with an unknown body size makes fasthttp write chunked frames
	// as they are produced.
	pr, pw := io.Pipe()
	go s.writeFrames(pw, events)
	c.Context().Response.SetBodyStream(pr, -1)
	return nil
}

// writeFrames writes events frame by frame, pausing FrameDelay between
// frames.
func (s *Server) writeFrames(pw *io.PipeWriter, events []byte) {
	if s.config.FrameDelay <= 0 {
		_, err := pw.Write(events)
		pw.CloseWithError(err)
		return
	}

	for frame := range strings.SplitAfterSeq(string(events), "\n\n") {
		if _, err := io.WriteString(pw, frame); err != nil {
			pw.CloseWithError(err)
			return
		}
		time.Sleep(s.config.FrameDelay)
	}
	pw.Close()
}

// inputText returns the text the reply echoes: a string input as is, or the
// text of the last user message of an item list.
func inputText(input gjson.Result) string {
	if input.Type == gjson.String {
		return input.Str
	}

	var text string
	input.ForEach(func(_, item gjson.Result) bool {
		if item.Get("role").String() != "user" {
			return true
		}
		content := item.Get("content")
		if content.Type == gjson.String {
			text = content.Str
			return true
		}
		var parts []string
		content.ForEach(func(_, part gjson.Result) bool {
			if t := part.Get("text"); t.Exists() {
				parts = append(parts, t.String())
			}
			return true
		})
		text = strings.Join(parts, "")
		return true
	})
	return text
}

func apiError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"type":    "invalid_request_error",
			"code":    code,
			"message": message,
			"param":   nil,
		},
	})
}
