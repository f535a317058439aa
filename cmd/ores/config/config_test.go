package configcmder_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/ores/cmd/ores/config"
	"github.com/papercomputeco/ores/pkg/config"
	testutils "github.com/papercomputeco/ores/pkg/utils/test"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		subcommands := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})

	It("completes config keys", func() {
		cmd := configcmder.NewConfigCmd()
		get, _, err := cmd.Find([]string{"get"})
		Expect(err).NotTo(HaveOccurred())

		keys, _ := get.ValidArgsFunction(get, nil, "")
		Expect(keys).To(Equal(config.ValidConfigKeys()))
	})
})

var _ = Describe("Config command execution", func() {
	var configDir string

	run := func(args ...string) testutils.CmdResult {
		return testutils.ExecuteCmd(configcmder.NewConfigCmd(), "", append(args, "--config-dir", configDir)...)
	}

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()
	})

	Describe("set subcommand", func() {
		It("writes config.toml", func() {
			res := run("set", "client.model", "gpt-4o-mini")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(testutils.StripANSI(res.Stdout)).To(ContainSubstring("Set client.model = gpt-4o-mini"))

			data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`model = "gpt-4o-mini"`))
		})

		It("rejects unknown keys", func() {
			res := run("set", "invalid_key", "value")
			Expect(res.Err).To(MatchError(ContainSubstring(`unknown config key: "invalid_key"`)))
		})

		It("rejects an invalid timeout", func() {
			res := run("set", "client.timeout", "soon")
			Expect(res.Err).To(MatchError(ContainSubstring("invalid value for client.timeout")))
		})

		It("rejects an unknown sink provider", func() {
			res := run("set", "sink.provider", "carrier-pigeon")
			Expect(res.Err).To(MatchError(ContainSubstring("invalid value for sink.provider")))
		})

		It("rejects a non-numeric size", func() {
			res := run("set", "stream.max_event_bytes", "lots")
			Expect(res.Err).To(MatchError(ContainSubstring("invalid value for stream.max_event_bytes")))
		})

		It("requires exactly two arguments", func() {
			res := run("set", "client.model")
			Expect(res.Err).To(HaveOccurred())
		})
	})

	Describe("get subcommand", func() {
		It("returns the default for an unset key", func() {
			res := run("get", "client.timeout")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(testutils.StripANSI(res.Stdout)).To(ContainSubstring("client.timeout  10m"))
		})

		It("returns a previously set value", func() {
			Expect(run("set", "sink.provider", "sqlite").Err).NotTo(HaveOccurred())

			res := run("get", "sink.provider")
			Expect(res.Err).NotTo(HaveOccurred())
			out := testutils.StripANSI(res.Stdout)
			Expect(out).To(ContainSubstring("Config file: " + filepath.Join(configDir, "config.toml")))
			Expect(out).To(ContainSubstring("sink.provider  sqlite"))
		})

		It("marks keys without a value", func() {
			res := run("get", "sink.postgres_dsn")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(testutils.StripANSI(res.Stdout)).To(ContainSubstring("sink.postgres_dsn  <not set>"))
		})

		It("rejects unknown keys", func() {
			res := run("get", "proxy.provider")
			Expect(res.Err).To(HaveOccurred())
		})
	})

	Describe("list subcommand", func() {
		It("lists every key", func() {
			Expect(run("set", "client.profile", "work").Err).NotTo(HaveOccurred())

			res := run("list")
			Expect(res.Err).NotTo(HaveOccurred())
			for _, key := range config.ValidConfigKeys() {
				Expect(res.Stdout).To(ContainSubstring(key))
			}
			Expect(res.Stdout).To(MatchRegexp(`client\.profile\s+= "work"`))
			Expect(res.Stdout).To(MatchRegexp(`sink\.postgres_dsn\s+= <not set>`))
		})

		It("rejects arguments", func() {
			res := run("list", "extra")
			Expect(res.Err).To(HaveOccurred())
		})
	})
})
