package cmdconfig_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/credentials"
	"github.com/papercomputeco/ores/pkg/logger"
	"github.com/papercomputeco/ores/pkg/responses"
	testutils "github.com/papercomputeco/ores/pkg/utils/test"
)

// newCmd returns a command carrying the client flags and the root's
// persistent flags, with args already parsed.
func newCmd(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config-dir", "", "")
	cmd.Flags().BoolP("debug", "d", false, "")
	cmdconfig.AddFlags(cmd, cmdconfig.ClientFlags...)
	Expect(cmd.ParseFlags(args)).To(Succeed())
	return cmd
}

var _ = Describe("Load", func() {
	var configDir string

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()
		testutils.SetEnv(map[string]string{"ORES_CLIENT_MODEL": ""})
	})

	It("returns the defaults", func() {
		cfg, err := cmdconfig.Load(newCmd("--config-dir", configDir), cmdconfig.ClientFlags...)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Client.Model).To(Equal(config.NewDefaultConfig().Client.Model))
		Expect(cfg.Stream.MaxEventBytes).To(Equal(config.NewDefaultConfig().Stream.MaxEventBytes))
	})

	It("applies config.toml, then the environment, then flags", func() {
		cfger, err := config.NewConfiger(configDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfger.SetConfigValue("client.model", "from-file")).To(Succeed())
		Expect(cfger.SetConfigValue("client.timeout", "30s")).To(Succeed())

		cfg, err := cmdconfig.Load(newCmd("--config-dir", configDir), cmdconfig.ClientFlags...)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Client.Model).To(Equal("from-file"))

		testutils.SetEnv(map[string]string{"ORES_CLIENT_MODEL": "from-env"})
		cfg, err = cmdconfig.Load(newCmd("--config-dir", configDir), cmdconfig.ClientFlags...)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Client.Model).To(Equal("from-env"))

		cfg, err = cmdconfig.Load(newCmd("--config-dir", configDir, "--model", "from-flag"), cmdconfig.ClientFlags...)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Client.Model).To(Equal("from-flag"))
		Expect(cfg.Client.Timeout).To(Equal("30s"))
	})

	It("reads uint flags", func() {
		cfg, err := cmdconfig.Load(newCmd("--config-dir", configDir, "--max-event-bytes", "2048"), cmdconfig.ClientFlags...)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Stream.MaxEventBytes).To(BeEquivalentTo(2048))
	})

	It("fails on a malformed config.toml", func() {
		Expect(os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[client\n"), 0o600)).To(Succeed())

		_, err := cmdconfig.Load(newCmd("--config-dir", configDir), cmdconfig.ClientFlags...)
		Expect(err).To(MatchError(ContainSubstring("loading config")))
	})
})

var _ = Describe("NewClient", func() {
	var (
		configDir string
		cfg       *config.Config
	)

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()
		cfg = config.NewDefaultConfig()
		testutils.SetEnv(map[string]string{credentials.EnvAPIKey: ""})
		testutils.SetEnv(map[string]string{credentials.EnvOpenAIAPIKey: ""})
	})

	It("fails without a key", func() {
		_, err := cmdconfig.NewClient(cfg, configDir, logger.Nop())
		Expect(err).To(MatchError(credentials.ErrNoAPIKey))
	})

	It("uses the configured base url", func() {
		testutils.SetEnv(map[string]string{credentials.EnvAPIKey: "env-key"})
		cfg.Client.BaseURL = "http://localhost:9999/v1"

		c, err := cmdconfig.NewClient(cfg, configDir, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(c.BaseURL()).To(Equal("http://localhost:9999/v1/"))
	})

	It("prefers a profile base url over the default", func() {
		mgr, err := credentials.NewManager(configDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(mgr.Set("local", credentials.ProfileCredential{APIKey: "k", BaseURL: "http://localhost:8787/v1/"})).To(Succeed())
		cfg.Client.Profile = "local"

		c, err := cmdconfig.NewClient(cfg, configDir, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(c.BaseURL()).To(Equal("http://localhost:8787/v1/"))

		cfg.Client.BaseURL = "http://elsewhere.test/v1/"
		c, err = cmdconfig.NewClient(cfg, configDir, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(c.BaseURL()).To(Equal("http://elsewhere.test/v1/"))
	})

	It("rejects an invalid timeout", func() {
		testutils.SetEnv(map[string]string{credentials.EnvAPIKey: "env-key"})
		cfg.Client.Timeout = "later"

		_, err := cmdconfig.NewClient(cfg, configDir, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("invalid client.timeout")))
	})
})

var _ = Describe("HeaderOptions", func() {
	It("parses Key: Value pairs", func() {
		opts, err := cmdconfig.HeaderOptions([]string{"X-Mock-Scenario: failed", "X-Empty:"})
		Expect(err).NotTo(HaveOccurred())
		Expect(opts).To(HaveLen(2))
	})

	It("rejects pairs without a colon or key", func() {
		_, err := cmdconfig.HeaderOptions([]string{"no-colon"})
		Expect(err).To(MatchError(ContainSubstring(`invalid header "no-colon"`)))

		_, err = cmdconfig.HeaderOptions([]string{": value"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ReadPrompt", func() {
	It("joins the arguments", func() {
		prompt, err := cmdconfig.ReadPrompt(&cobra.Command{}, []string{"hello", "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(prompt).To(Equal("hello world"))
	})

	It("reads stdin when there are no arguments", func() {
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader("  piped prompt\n"))

		prompt, err := cmdconfig.ReadPrompt(cmd, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(prompt).To(Equal("piped prompt"))
	})

	It("rejects blank prompts", func() {
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader("\n\n"))
		_, err := cmdconfig.ReadPrompt(cmd, nil)
		Expect(err).To(MatchError(cmdconfig.ErrEmptyPrompt))

		_, err = cmdconfig.ReadPrompt(&cobra.Command{}, []string{" "})
		Expect(err).To(MatchError(cmdconfig.ErrEmptyPrompt))
	})
})

var _ = Describe("response state", func() {
	It("remembers the last stored response", func() {
		configDir := GinkgoT().TempDir()

		_, err := cmdconfig.PreviousResponseID(configDir)
		Expect(err).To(MatchError(cmdconfig.ErrNoPreviousResponse))

		Expect(cmdconfig.RememberResponse(configDir, &responses.ResponseResource{ID: "resp_1", Model: "m"})).To(Succeed())
		id, err := cmdconfig.PreviousResponseID(configDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("resp_1"))
	})

	It("ignores responses without an id", func() {
		configDir := GinkgoT().TempDir()
		Expect(cmdconfig.RememberResponse(configDir, &responses.ResponseResource{})).To(Succeed())

		_, err := cmdconfig.PreviousResponseID(configDir)
		Expect(err).To(MatchError(cmdconfig.ErrNoPreviousResponse))
	})
})
