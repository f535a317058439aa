// Package sqlrecorder stores stream records in a SQL table. The sqlite and
// postgres packages open the database and hand it to New.
package sqlrecorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/papercomputeco/ores/pkg/eventstream"
)

// Table is the name of the table records are written to.
const Table = "stream_events"

var columns = []string{
	"id", "schema_version", "record_type", "emitted_at", "stream_id",
	"response_id", "sequence", "event_type", "payload",
}

// Publisher implements eventstream.Publisher on top of a *sql.DB.
type Publisher struct {
	db      *sql.DB
	dialect string
}

// New creates the records table if needed and returns a publisher that owns
// db. dialectName is one of the entgo.io/ent/dialect names.
func New(ctx context.Context, db *sql.DB, dialectName string) (*Publisher, error) {
	migrate, err := schema.NewMigrate(entsql.OpenDB(dialectName, db))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare migration: %w", err)
	}
	if err := migrate.Create(ctx, recordsTable()); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", Table, err)
	}

	return &Publisher{db: db, dialect: dialectName}, nil
}

func (p *Publisher) Publish(ctx context.Context, record *eventstream.Record) error {
	if record == nil {
		return eventstream.ErrNilRecord
	}

	query, args := insertQuery(p.dialect, record)
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert record %s: %w", record.ID, err)
	}
	return nil
}

// Records returns the records of one stream ordered by sequence number.
func (p *Publisher) Records(ctx context.Context, streamID string) ([]*eventstream.Record, error) {
	query, args := entsql.Dialect(p.dialect).
		Select(columns...).
		From(entsql.Dialect(p.dialect).Table(Table)).
		Where(entsql.EQ("stream_id", streamID)).
		OrderBy("sequence").
		Query()

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*eventstream.Record
	for rows.Next() {
		var (
			rec       eventstream.Record
			emittedAt string
			payload   string
		)
		if err := rows.Scan(
			&rec.ID, &rec.SchemaVersion, &rec.RecordType, &emittedAt, &rec.StreamID,
			&rec.ResponseID, &rec.Sequence, &rec.EventType, &payload,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec.EmittedAt, err = time.Parse(time.RFC3339Nano, emittedAt)
		if err != nil {
			return nil, fmt.Errorf("record %s has invalid emitted_at %q: %w", rec.ID, emittedAt, err)
		}
		rec.Payload = json.RawMessage(payload)
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (p *Publisher) Close() error {
	return p.db.Close()
}

// recordsTable describes the records table for ent's migration engine.
// Create only adds what is missing, so running it on every open is safe.
func recordsTable() *schema.Table {
	var (
		id            = &schema.Column{Name: "id", Type: field.TypeString}
		schemaVersion = &schema.Column{Name: "schema_version", Type: field.TypeInt}
		recordType    = &schema.Column{Name: "record_type", Type: field.TypeString}
		emittedAt     = &schema.Column{Name: "emitted_at", Type: field.TypeString}
		streamID      = &schema.Column{Name: "stream_id", Type: field.TypeString}
		responseID    = &schema.Column{Name: "response_id", Type: field.TypeString}
		sequence      = &schema.Column{Name: "sequence", Type: field.TypeInt64}
		eventType     = &schema.Column{Name: "event_type", Type: field.TypeString}
		payload       = &schema.Column{Name: "payload", Type: field.TypeString, Size: 2147483647}
	)

	return &schema.Table{
		Name: Table,
		Columns: []*schema.Column{
			id, schemaVersion, recordType, emittedAt, streamID,
			responseID, sequence, eventType, payload,
		},
		PrimaryKey: []*schema.Column{id},
		Indexes: []*schema.Index{
			{Name: Table + "_stream_id_sequence", Columns: []*schema.Column{streamID, sequence}},
		},
	}
}

func insertQuery(dialectName string, rec *eventstream.Record) (string, []any) {
	return entsql.Dialect(dialectName).
		Insert(Table).
		Columns(columns...).
		Values(
			rec.ID,
			rec.SchemaVersion,
			rec.RecordType,
			rec.EmittedAt.UTC().Format(time.RFC3339Nano),
			rec.StreamID,
			rec.ResponseID,
			rec.Sequence,
			rec.EventType,
			string(rec.Payload),
		).
		Query()
}
