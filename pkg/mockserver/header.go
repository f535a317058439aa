package mockserver

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ScenarioHeader selects a failure mode for a single request. See the
// Scenario constants.
const ScenarioHeader = "X-Mock-Scenario"

// echoRequest is the set of request headers copied back onto the response so
// that clients can correlate requests the way they would against the real
// service.
var echoRequest = map[string]struct{}{
	"X-Request-Id":        {},
	"Openai-Organization": {},
	"Openai-Project":      {},
}

// streamResponse is set on every event-stream response.
var streamResponse = map[string]string{
	fiber.HeaderContentType:  "text/event-stream; charset=utf-8",
	fiber.HeaderCacheControl: "no-cache",
	"X-Accel-Buffering":      "no",
}

type headerHandler struct{}

// echoRequestHeaders copies correlation headers from the request to the
// response.
func (h *headerHandler) echoRequestHeaders(c *fiber.Ctx) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if _, ok := echoRequest[k]; ok {
			c.Set(k, string(value))
		}
	})
}

func (h *headerHandler) setStreamHeaders(c *fiber.Ctx) {
	for k, v := range streamResponse {
		c.Set(k, v)
	}
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func (h *headerHandler) bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
