package mockserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/papercomputeco/ores/pkg/client"
	"github.com/papercomputeco/ores/pkg/mockserver"
	"github.com/papercomputeco/ores/pkg/responses"
	"github.com/papercomputeco/ores/pkg/stream"
)

func startServer(cfg mockserver.Config) (*mockserver.Server, *httptest.Server) {
	srv, err := mockserver.NewServer(cfg)
	Expect(err).NotTo(HaveOccurred())

	ts := httptest.NewServer(srv.Handler())
	DeferCleanup(func() {
		ts.Close()
		Expect(srv.Shutdown()).To(Succeed())
	})
	return srv, ts
}

func newClient(ts *httptest.Server, opts ...client.Option) *client.Client {
	c, err := client.New("test-key", ts.URL+"/v1", opts...)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func post(ts *httptest.Server, body string, headers map[string]string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/responses", strings.NewReader(body))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(resp.Body.Close)
	return resp
}

func readAll(r io.Reader) string {
	b, err := io.ReadAll(r)
	Expect(err).NotTo(HaveOccurred())
	return string(b)
}

var _ = Describe("Server", func() {
	var ts *httptest.Server

	BeforeEach(func() {
		_, ts = startServer(mockserver.Config{})
	})

	It("answers pings", func() {
		resp, err := http.Get(ts.URL + "/ping")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(readAll(resp.Body)).To(Equal("pong"))
	})

	It("requires a bearer token", func() {
		resp := post(ts, `{"model":"m"}`, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(gjson.Get(readAll(resp.Body), "error.code").String()).To(Equal("invalid_api_key"))
	})

	It("rejects invalid JSON and a missing model", func() {
		auth := map[string]string{"Authorization": "Bearer k"}
		Expect(post(ts, `{`, auth).StatusCode).To(Equal(http.StatusBadRequest))
		Expect(post(ts, `{"input":"hi"}`, auth).StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("echoes correlation headers", func() {
		resp := post(ts, `{"model":"m"}`, map[string]string{
			"Authorization":       "Bearer k",
			"X-Request-Id":        "req-123",
			"OpenAI-Organization": "org-1",
			"X-Other":             "nope",
		})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("X-Request-Id")).To(Equal("req-123"))
		Expect(resp.Header.Get("OpenAI-Organization")).To(Equal("org-1"))
		Expect(resp.Header.Get("X-Other")).To(BeEmpty())
	})

	It("returns a decodable resource for non-streaming requests", func() {
		c := newClient(ts)
		res, err := c.Responses().CreateText("mock-model", "hello there").
			PreviousResponseID("resp_prev").
			Send(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.ID).To(HavePrefix("resp_"))
		Expect(res.Status).To(Equal("completed"))
		Expect(res.Model).To(Equal("mock-model"))
		Expect(res.PreviousResponseID).To(HaveValue(Equal("resp_prev")))
		Expect(res.OutputText()).To(Equal("You said: hello there"))
		Expect(res.Usage).NotTo(BeNil())
		Expect(res.Usage.InputTokens).To(Equal(2))
	})

	It("echoes the last user message of an item list", func() {
		c := newClient(ts)
		res, err := c.Responses().Create("m", responses.ItemsInput{
			responses.MessageItem(responses.RoleUser, "first"),
			responses.MessageItem(responses.RoleAssistant, "reply"),
			responses.MessageItem(responses.RoleUser, "second"),
		}).Send(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputText()).To(Equal("You said: second"))
	})

	It("uses the default reply without input", func() {
		resp := post(ts, `{"model":"m"}`, map[string]string{"Authorization": "Bearer k"})
		Expect(gjson.Get(readAll(resp.Body), "output.0.content.0.text").String()).To(Equal(mockserver.DefaultReply))
	})

	It("streams a complete, decodable event sequence", func() {
		c := newClient(ts)
		s, err := c.Responses().CreateText("m", "stream me please").SendStream(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		var (
			types []string
			text  strings.Builder
			seqs  []int
		)
		for ev, err := range s.All() {
			Expect(err).NotTo(HaveOccurred())
			types = append(types, ev.EventType())
			if d, ok := ev.(*responses.OutputTextDeltaEvent); ok {
				text.WriteString(d.Delta)
				seqs = append(seqs, d.SequenceNumber)
			}
		}

		Expect(types[0]).To(Equal(responses.EventTypeResponseCreated))
		Expect(types[1]).To(Equal(responses.EventTypeResponseInProgress))
		Expect(types[len(types)-1]).To(Equal(responses.EventTypeResponseCompleted))
		Expect(types).To(ContainElement(responses.EventTypeOutputTextDone))
		Expect(text.String()).To(Equal("You said: stream me please"))
		Expect(seqs).To(Equal([]int{4, 5, 6, 7, 8}))
		Expect(s.Done()).To(BeTrue())
	})

	It("sets event-stream headers", func() {
		resp := post(ts, `{"model":"m","stream":true}`, map[string]string{"Authorization": "Bearer k"})
		Expect(resp.Header.Get("Content-Type")).To(HavePrefix("text/event-stream"))
		Expect(resp.Header.Get("Cache-Control")).To(Equal("no-cache"))
		Expect(readAll(resp.Body)).To(HaveSuffix("data: [DONE]\n\n"))
	})
})

var _ = Describe("Scenarios", func() {
	var ts *httptest.Server

	BeforeEach(func() {
		_, ts = startServer(mockserver.Config{})
	})

	scenarioClient := func(scenario string) *client.Client {
		return newClient(ts, client.WithHeader(mockserver.ScenarioHeader, scenario))
	}

	It("streams response.failed", func() {
		s, err := scenarioClient(mockserver.ScenarioFailed).Responses().CreateText("m", "x").SendStream(context.Background())
		Expect(err).NotTo(HaveOccurred())

		var last responses.StreamingEvent
		for ev, err := range s.All() {
			Expect(err).NotTo(HaveOccurred())
			last = ev
		}
		failed, ok := last.(*responses.ResponseFailedEvent)
		Expect(ok).To(BeTrue())
		Expect(failed.Response.Error).NotTo(BeNil())
		Expect(failed.Response.Error.Message).To(Equal("mock failure"))
	})

	It("streams an error event", func() {
		s, err := scenarioClient(mockserver.ScenarioError).Responses().CreateText("m", "x").SendStream(context.Background())
		Expect(err).NotTo(HaveOccurred())

		var got *responses.ErrorEvent
		for ev, err := range s.All() {
			Expect(err).NotTo(HaveOccurred())
			if e, ok := ev.(*responses.ErrorEvent); ok {
				got = e
			}
		}
		Expect(got).NotTo(BeNil())
		Expect(got.Error.Message).To(Equal("mock failure"))
	})

	It("answers with HTTP 500", func() {
		_, err := scenarioClient(mockserver.ScenarioServerError).Responses().CreateText("m", "x").Send(context.Background())
		var statusErr *client.HTTPStatusError
		Expect(errors.As(err, &statusErr)).To(BeTrue())
		Expect(statusErr.StatusCode).To(Equal(http.StatusInternalServerError))
	})

	It("answers a streaming request with JSON", func() {
		_, err := scenarioClient(mockserver.ScenarioWrongContentType).Responses().CreateText("m", "x").SendStream(context.Background())
		var ctErr *stream.UnexpectedContentTypeError
		Expect(errors.As(err, &ctErr)).To(BeTrue())
		Expect(ctErr.Got).To(HavePrefix("application/json"))
	})
})

var _ = Describe("Fixtures", func() {
	const fixture = "event: response.output_text.delta\n" +
		`data: {"type":"response.output_text.delta","sequence_number":0,"item_id":"msg_1","output_index":0,"content_index":0,"delta":"canned","logprobs":[]}` +
		"\n\ndata: [DONE]\n\n"

	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "stream.sse")
		Expect(os.WriteFile(path, []byte(fixture), 0o600)).To(Succeed())
	})

	It("fails for a missing fixture", func() {
		_, err := mockserver.NewServer(mockserver.Config{FixturePath: path + ".missing"})
		Expect(err).To(HaveOccurred())
	})

	It("serves the fixture verbatim to streaming requests", func() {
		srv, ts := startServer(mockserver.Config{FixturePath: path})
		Expect(string(srv.Fixture())).To(Equal(fixture))

		resp := post(ts, `{"model":"m","stream":true}`, map[string]string{"Authorization": "Bearer k"})
		Expect(readAll(resp.Body)).To(Equal(fixture))
	})

	It("still synthesizes non-streaming responses", func() {
		_, ts := startServer(mockserver.Config{FixturePath: path})
		resp := post(ts, `{"model":"m","input":"hi"}`, map[string]string{"Authorization": "Bearer k"})
		Expect(gjson.Get(readAll(resp.Body), "status").String()).To(Equal("completed"))
	})

	It("reloads the fixture when it changes", func() {
		srv, _ := startServer(mockserver.Config{FixturePath: path, Watch: true})

		updated := strings.Replace(fixture, "canned", "fresh", 1)
		Expect(os.WriteFile(path, []byte(updated), 0o600)).To(Succeed())

		Eventually(func() string {
			return string(srv.Fixture())
		}).WithTimeout(5 * time.Second).Should(Equal(updated))
	})

	It("keeps the last fixture when the file disappears", func() {
		srv, _ := startServer(mockserver.Config{FixturePath: path, Watch: true})
		Expect(os.Remove(path)).To(Succeed())

		Consistently(func() string {
			return string(srv.Fixture())
		}).WithTimeout(200 * time.Millisecond).Should(Equal(fixture))
	})
})

var _ = Describe("FrameDelay", func() {
	It("streams frames one at a time", func() {
		_, ts := startServer(mockserver.Config{FrameDelay: time.Millisecond})
		c := newClient(ts)

		s, err := c.Responses().CreateText("m", "a b").SendStream(context.Background())
		Expect(err).NotTo(HaveOccurred())

		n := 0
		for _, err := range s.All() {
			Expect(err).NotTo(HaveOccurred())
			n++
		}
		Expect(n).To(BeNumerically(">", 6))
	})
})
