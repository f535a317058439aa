package orescmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	orescmder "github.com/papercomputeco/ores/cmd/ores"
	"github.com/papercomputeco/ores/pkg/credentials"
	"github.com/papercomputeco/ores/pkg/mockserver"
	testutils "github.com/papercomputeco/ores/pkg/utils/test"
)

var _ = Describe("NewOresCmd", func() {
	It("registers every subcommand", func() {
		cmd := orescmder.NewOresCmd()
		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("stream", "create", "decode", "mock", "auth", "config", "init", "version"))
	})

	It("has the global flags", func() {
		cmd := orescmder.NewOresCmd()
		Expect(cmd.PersistentFlags().Lookup("debug")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().ShorthandLookup("d")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
	})

	It("passes global flags through to subcommands", func() {
		baseURL := testutils.MockAPI(mockserver.Config{})
		testutils.SetEnv(map[string]string{credentials.EnvAPIKey: "test-key"})

		res := testutils.ExecuteCmd(orescmder.NewOresCmd(), "",
			"stream", "--debug", "--config-dir", GinkgoT().TempDir(), "--base-url", baseURL, "hi")
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Stdout).To(Equal("You said: hi\n"))
		Expect(testutils.StripANSI(res.Stderr)).To(ContainSubstring("resolved api key"))
	})
})
