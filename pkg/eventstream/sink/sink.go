// Package sink opens the eventstream.Publisher selected by configuration.
package sink

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/dotdir"
	"github.com/papercomputeco/ores/pkg/eventstream"
	"github.com/papercomputeco/ores/pkg/eventstream/kafka"
	"github.com/papercomputeco/ores/pkg/eventstream/nop"
	"github.com/papercomputeco/ores/pkg/eventstream/postgres"
	"github.com/papercomputeco/ores/pkg/eventstream/sqlite"
	"github.com/papercomputeco/ores/pkg/logger"
	"github.com/papercomputeco/ores/pkg/utils"
)

// DefaultSQLiteFile is the database file used inside the .ores directory
// when sink.sqlite_path is empty.
const DefaultSQLiteFile = "events.db"

// Open returns a publisher for cfg.Provider. configDir overrides the .ores
// directory used for the default SQLite path.
func Open(ctx context.Context, cfg config.SinkConfig, configDir string, log *slog.Logger) (eventstream.Publisher, error) {
	if log == nil {
		log = logger.Nop()
	}

	switch cfg.Provider {
	case "", config.SinkNone:
		return nop.NewPublisher(), nil

	case config.SinkKafka:
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers:  cfg.Brokers(),
			Topic:    cfg.KafkaTopic,
			ClientID: utils.UserAgent(),
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		return p, nil

	case config.SinkSQLite:
		path, err := sqlitePath(cfg.SQLitePath, configDir)
		if err != nil {
			return nil, err
		}
		log.Debug("recording events to sqlite", "path", path)
		p, err := sqlite.NewPublisher(ctx, path)
		if err != nil {
			return nil, err
		}
		return p, nil

	case config.SinkPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("sink.postgres_dsn is required for the %s sink", config.SinkPostgres)
		}
		p, err := postgres.NewPublisher(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown sink provider %q", cfg.Provider)
	}
}

func sqlitePath(path, configDir string) (string, error) {
	if path != "" {
		return path, nil
	}

	dir, err := dotdir.NewManager().EnsureTarget(configDir)
	if err != nil {
		return "", fmt.Errorf("resolving sqlite path: %w", err)
	}
	return filepath.Join(dir, DefaultSQLiteFile), nil
}
