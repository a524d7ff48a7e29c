// Package history persists per-run processing results so past batches can
// be inspected and exported.
package history

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/meberl/docsort/constants"
	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/fields"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	source_path    TEXT NOT NULL,
	destination    TEXT NOT NULL DEFAULT '',
	is_invoice     INTEGER NOT NULL DEFAULT 0,
	reference      TEXT NOT NULL DEFAULT '',
	date           TEXT NOT NULL DEFAULT '',
	invoice_number TEXT NOT NULL DEFAULT '',
	supplier       TEXT NOT NULL DEFAULT '',
	recipient      TEXT NOT NULL DEFAULT '',
	error          TEXT NOT NULL DEFAULT '',
	processed_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_run ON documents (run_id);
`

// Document is one processed file within a run.
type Document struct {
	ID          int64
	RunID       uuid.UUID
	SourcePath  string
	Destination string
	Record      fields.Record
	Err         string
	ProcessedAt time.Time
}

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if needed initializes) the history database at path.
// ":memory:" works for tests.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.NewAppError("HISTORY_ERROR", "open history database", err)
	}
	// modernc sqlite serializes writes itself; a single connection avoids
	// SQLITE_BUSY on concurrent inserts.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("HISTORY_ERROR", "initialize history schema", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordDocument appends one processed document to the run log.
func (s *Store) RecordDocument(ctx context.Context, doc Document) (int64, error) {
	processedAt := doc.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents
			(run_id, source_path, destination, is_invoice, reference, date,
			 invoice_number, supplier, recipient, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.RunID.String(), doc.SourcePath, doc.Destination,
		boolToInt(doc.Record.IsInvoice), doc.Record.Reference, doc.Record.Date,
		doc.Record.InvoiceNumber, doc.Record.Supplier, string(doc.Record.Recipient),
		doc.Err, processedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, common.NewAppError("HISTORY_ERROR", "record document", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, common.NewAppError("HISTORY_ERROR", "read inserted id", err)
	}
	return id, nil
}

// ListRun returns every document of a run in processing order.
func (s *Store) ListRun(ctx context.Context, runID uuid.UUID) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, source_path, destination, is_invoice, reference,
		       date, invoice_number, supplier, recipient, error, processed_at
		FROM documents WHERE run_id = ? ORDER BY id`, runID.String())
	if err != nil {
		return nil, common.NewAppError("HISTORY_ERROR", "query run", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc         Document
			runStr      string
			isInvoice   int
			recipient   string
			processedAt string
		)
		if err := rows.Scan(&doc.ID, &runStr, &doc.SourcePath, &doc.Destination,
			&isInvoice, &doc.Record.Reference, &doc.Record.Date,
			&doc.Record.InvoiceNumber, &doc.Record.Supplier, &recipient,
			&doc.Err, &processedAt); err != nil {
			return nil, common.NewAppError("HISTORY_ERROR", "scan row", err)
		}
		doc.RunID, _ = uuid.Parse(runStr)
		doc.Record.IsInvoice = isInvoice != 0
		doc.Record.Recipient = constants.Recipient(recipient)
		if t, err := time.Parse(time.RFC3339, processedAt); err == nil {
			doc.ProcessedAt = t
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
