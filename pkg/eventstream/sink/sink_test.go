package sink_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/eventstream/kafka"
	"github.com/papercomputeco/ores/pkg/eventstream/nop"
	"github.com/papercomputeco/ores/pkg/eventstream/sink"
	"github.com/papercomputeco/ores/pkg/eventstream/sqlite"
	"github.com/papercomputeco/ores/pkg/logger"
)

var _ = Describe("Open", func() {
	ctx := context.Background()
	log := logger.Nop()

	It("returns a no-op publisher for none", func() {
		p, err := sink.Open(ctx, config.SinkConfig{Provider: config.SinkNone}, "", log)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&nop.Publisher{}))
	})

	It("opens sqlite at the configured path", func() {
		path := filepath.Join(GinkgoT().TempDir(), "events.db")
		p, err := sink.Open(ctx, config.SinkConfig{Provider: config.SinkSQLite, SQLitePath: path}, "", log)
		Expect(err).NotTo(HaveOccurred())
		defer p.Close()

		Expect(p).To(BeAssignableToTypeOf(&sqlite.Publisher{}))
		Expect(path).To(BeAnExistingFile())
	})

	It("defaults the sqlite path into the config directory", func() {
		dir := filepath.Join(GinkgoT().TempDir(), ".ores")
		p, err := sink.Open(ctx, config.SinkConfig{Provider: config.SinkSQLite}, dir, log)
		Expect(err).NotTo(HaveOccurred())
		defer p.Close()

		Expect(filepath.Join(dir, sink.DefaultSQLiteFile)).To(BeAnExistingFile())
	})

	It("builds a kafka publisher from the broker list", func() {
		p, err := sink.Open(ctx, config.SinkConfig{
			Provider:     config.SinkKafka,
			KafkaBrokers: "localhost:9092, localhost:9093",
			KafkaTopic:   "events",
		}, "", log)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&kafka.Publisher{}))
		Expect(p.Close()).To(Succeed())
	})

	It("reports kafka misconfiguration", func() {
		_, err := sink.Open(ctx, config.SinkConfig{Provider: config.SinkKafka, KafkaTopic: "events"}, "", log)
		Expect(err).To(MatchError(kafka.ErrNoBrokers))
	})

	It("requires a postgres dsn", func() {
		_, err := sink.Open(ctx, config.SinkConfig{Provider: config.SinkPostgres}, "", log)
		Expect(err).To(MatchError(ContainSubstring("postgres_dsn")))
	})

	It("rejects unknown providers", func() {
		_, err := sink.Open(ctx, config.SinkConfig{Provider: "redis"}, "", log)
		Expect(err).To(MatchError(ContainSubstring(`"redis"`)))
	})
})
