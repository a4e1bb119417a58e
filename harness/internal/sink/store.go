package sink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/probelab/uiprobe/dbopen"
	"github.com/probelab/uiprobe/report"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS verification_reports (
	report_id  TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	name       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	status     TEXT NOT NULL,
	reason     TEXT,
	elapsed_ms INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS position_results (
	report_id TEXT NOT NULL REFERENCES verification_reports(report_id),
	idx       INTEGER NOT NULL,
	actual    TEXT,
	expected  TEXT,
	matched   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_summaries (
	run_id     TEXT PRIMARY KEY,
	total      INTEGER NOT NULL,
	passed     INTEGER NOT NULL,
	failed     INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_run ON verification_reports(run_id);
`

// Store persists reports to an SQLite database. The caller's binary must
// register the "sqlite" driver (import _ "modernc.org/sqlite").
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore opens (or creates) the report database at path with WAL and a
// busy timeout applied, and ensures the schema exists.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(storeSchema))
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Send(ctx context.Context, rep report.Report) error {
	return dbopen.RunTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO verification_reports (
				report_id, run_id, name, kind, status, reason, elapsed_ms, created_at
			) VALUES (?,?,?,?,?,?,?,?)`,
			rep.ID, rep.RunID, rep.Name, string(rep.Kind), string(rep.Status),
			rep.Reason, rep.Elapsed.Milliseconds(), time.Now().Unix())
		if err != nil {
			return fmt.Errorf("sink: insert report: %w", err)
		}

		for _, p := range rep.Positions {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO position_results (report_id, idx, actual, expected, matched)
				VALUES (?,?,?,?,?)`,
				rep.ID, p.Index, p.Actual, p.Expected, p.Matched)
			if err != nil {
				return fmt.Errorf("sink: insert position: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) SendSummary(ctx context.Context, sum report.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_summaries (run_id, total, passed, failed, skipped, elapsed_ms, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		sum.RunID, sum.Total, sum.Passed, sum.Failed, sum.Skipped,
		sum.Elapsed.Milliseconds(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sink: insert summary: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
