package mockcmder_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	mockcmder "github.com/papercomputeco/ores/cmd/ores/mock"
	"github.com/papercomputeco/ores/pkg/client"
	"github.com/papercomputeco/ores/pkg/responses"
	testutils "github.com/papercomputeco/ores/pkg/utils/test"
)

var listening = regexp.MustCompile(`listening on (http://\S+/v1/)`)

// startMock runs the mock command until the test ends and returns its base
// url.
func startMock(args ...string) string {
	cmd := mockcmder.NewMockCmd()
	cmd.PersistentFlags().String("config-dir", "", "")
	cmd.PersistentFlags().BoolP("debug", "d", false, "")

	out := gbytes.NewBuffer()
	cmd.SetOut(out)
	cmd.SetErr(GinkgoWriter)
	cmd.SetArgs(append([]string{"--config-dir", GinkgoT().TempDir(), "--listen", "127.0.0.1:0"}, args...))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()
	DeferCleanup(func() {
		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	var baseURL string
	Eventually(func() []string {
		m := listening.FindStringSubmatch(testutils.StripANSI(string(out.Contents())))
		if m != nil {
			baseURL = m[1]
		}
		return m
	}).Should(HaveLen(2))
	return baseURL
}

var _ = Describe("NewMockCmd", func() {
	It("creates a command with the expected flags", func() {
		cmd := mockcmder.NewMockCmd()
		Expect(cmd.Use).To(Equal("mock"))
		for _, name := range []string{"listen", "fixture", "watch", "frame-delay"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
	})

	It("rejects arguments", func() {
		cmd := mockcmder.NewMockCmd()
		Expect(cmd.Args(cmd, []string{"extra"})).NotTo(Succeed())
	})
})

var _ = Describe("Mock command execution", func() {
	It("serves pings until cancelled", func() {
		baseURL := startMock()

		resp, err := http.Get(strings.TrimSuffix(baseURL, "/v1/") + "/ping")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(Equal("pong"))
	})

	It("streams responses to the client", func() {
		baseURL := startMock("--frame-delay", "1ms")

		c, err := client.New("test-key", baseURL)
		Expect(err).NotTo(HaveOccurred())

		s, err := c.Responses().CreateText("mock-model", "ping").SendStream(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		var text string
		for ev, err := range s.All() {
			Expect(err).NotTo(HaveOccurred())
			if delta, ok := ev.(*responses.OutputTextDeltaEvent); ok {
				text += delta.Delta
			}
		}
		Expect(text).To(Equal("You said: ping"))
	})

	It("serves a fixture file", func() {
		fixture := filepath.Join(GinkgoT().TempDir(), "fixture.sse")
		Expect(os.WriteFile(fixture, []byte("event: response.output_text.delta\n"+
			`data: {"type":"response.output_text.delta","sequence_number":0,"item_id":"m","output_index":0,"content_index":0,"delta":"canned","logprobs":[]}`+
			"\n\ndata: [DONE]\n\n"), 0o600)).To(Succeed())

		baseURL := startMock("--fixture", fixture)

		c, err := client.New("test-key", baseURL)
		Expect(err).NotTo(HaveOccurred())

		s, err := c.Responses().CreateText("mock-model", "ignored").SendStream(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		ev, err := s.Recv()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.(*responses.OutputTextDeltaEvent).Delta).To(Equal("canned"))
		_, err = s.Recv()
		Expect(err).To(Equal(io.EOF))
	})

	It("fails on a missing fixture", func() {
		cmd := mockcmder.NewMockCmd()
		res := testutils.ExecuteCmd(cmd, "",
			"--config-dir", GinkgoT().TempDir(),
			"--listen", "127.0.0.1:0",
			"--fixture", filepath.Join(GinkgoT().TempDir(), "missing.sse"),
		)
		Expect(res.Err).To(MatchError(ContainSubstring("creating mock server")))
	})
})
