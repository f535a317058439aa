package initcmder_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/papercomputeco/ores/cmd/ores/init"
	"github.com/papercomputeco/ores/pkg/config"
	testutils "github.com/papercomputeco/ores/pkg/utils/test"
)

var _ = Describe("NewInitCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Use).To(Equal("init"))
	})

	It("rejects any arguments", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Args(cmd, []string{})).To(Succeed())
		Expect(cmd.Args(cmd, []string{"extra"})).NotTo(Succeed())
	})

	It("has a --preset flag", func() {
		cmd := initcmder.NewInitCmd()
		f := cmd.Flags().Lookup("preset")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(""))
	})
})

var _ = Describe("Init command execution", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	Describe("in the working directory", func() {
		BeforeEach(func() {
			origDir, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(tmpDir)).To(Succeed())
			DeferCleanup(os.Chdir, origDir)
		})

		It("creates .ores with a default config.toml", func() {
			res := testutils.ExecuteCmd(initcmder.NewInitCmd(), "")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("Initialized .ores directory"))

			info, err := os.Stat(filepath.Join(tmpDir, ".ores"))
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())

			cfg := loadConfig(filepath.Join(tmpDir, ".ores"))
			Expect(cfg.Version).To(Equal(config.CurrentV))
			Expect(cfg.Client.BaseURL).To(Equal("https://api.openai.com/v1/"))
			Expect(cfg.Sink.Provider).To(Equal(config.SinkNone))
		})

		It("reports an existing directory", func() {
			Expect(os.MkdirAll(filepath.Join(tmpDir, ".ores"), 0o755)).To(Succeed())

			res := testutils.ExecuteCmd(initcmder.NewInitCmd(), "")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("Already initialized"))
		})
	})

	Describe("with --config-dir", func() {
		var configDir string

		run := func(args ...string) testutils.CmdResult {
			return testutils.ExecuteCmd(initcmder.NewInitCmd(), "", append([]string{"--config-dir", configDir}, args...)...)
		}

		BeforeEach(func() {
			configDir = filepath.Join(tmpDir, "custom")
		})

		It("initializes the given directory", func() {
			res := run()
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("Initialized .ores directory: " + configDir))
			Expect(loadConfig(configDir).Client.Model).To(Equal("gpt-5-mini"))
		})

		It("keeps an existing config.toml without --preset", func() {
			Expect(os.MkdirAll(configDir, 0o755)).To(Succeed())
			path := filepath.Join(configDir, "config.toml")
			Expect(os.WriteFile(path, []byte("[client]\nmodel = \"kept\"\n"), 0o600)).To(Succeed())

			res := run()
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).NotTo(ContainSubstring("Wrote"))
			Expect(loadConfig(configDir).Client.Model).To(Equal("kept"))
		})

		It("writes the mock preset", func() {
			res := run("--preset", "mock")
			Expect(res.Err).NotTo(HaveOccurred())

			cfg := loadConfig(configDir)
			Expect(cfg.Client.BaseURL).To(Equal("http://localhost:8787/v1/"))
			Expect(cfg.Client.Model).To(Equal("mock-model"))
		})

		It("overwrites the config when re-run with a preset", func() {
			Expect(run("--preset", "mock").Err).NotTo(HaveOccurred())
			Expect(run("--preset", "openai").Err).NotTo(HaveOccurred())

			Expect(loadConfig(configDir).Client.BaseURL).To(Equal("https://api.openai.com/v1/"))
		})

		It("rejects unknown preset names without creating the directory", func() {
			res := run("--preset", "invalid-provider")
			Expect(res.Err).To(MatchError(ContainSubstring("unknown preset")))

			_, err := os.Stat(configDir)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		Describe("remote presets", func() {
			It("fetches and writes a remote config.toml", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "text/plain")
					fmt.Fprint(w, "version = 0\n\n[client]\nbase_url = \"https://gateway.example/v1/\"\nmodel = \"team-model\"\n\n[sink]\nprovider = \"sqlite\"\n")
				}))
				DeferCleanup(server.Close)

				res := run("--preset", server.URL)
				Expect(res.Err).NotTo(HaveOccurred())

				cfg := loadConfig(configDir)
				Expect(cfg.Client.BaseURL).To(Equal("https://gateway.example/v1/"))
				Expect(cfg.Client.Model).To(Equal("team-model"))
				Expect(cfg.Sink.Provider).To(Equal(config.SinkSQLite))
			})

			It("returns an error for a non-200 response", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				}))
				DeferCleanup(server.Close)

				res := run("--preset", server.URL)
				Expect(res.Err).To(MatchError(ContainSubstring("HTTP 404")))
			})

			It("returns an error for invalid TOML", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					fmt.Fprint(w, "this is not valid toml [[[")
				}))
				DeferCleanup(server.Close)

				res := run("--preset", server.URL)
				Expect(res.Err).To(MatchError(ContainSubstring("parsing")))
			})

			It("returns an error for an unreachable URL", func() {
				res := run("--preset", "http://127.0.0.1:1")
				Expect(res.Err).To(MatchError(ContainSubstring("fetching remote config")))
			})
		})
	})
})

// loadConfig reads and parses config.toml from dir.
func loadConfig(dir string) *config.Config {
	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	cfg := &config.Config{}
	ExpectWithOffset(1, toml.Unmarshal(data, cfg)).To(Succeed())
	return cfg
}
