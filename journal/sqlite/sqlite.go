/*
Package sqlite provides a SQLite-backed ticket journal.

PURPOSE:
  Persists issued tickets so simulation runs can be inspected afterwards.
  The journal is strictly append-only: no UPDATE or DELETE statements ever
  touch the tickets table.

WHAT IS (AND ISN'T) STORED:
  Only emitted Ticket records. Account state - balance, pending overflow,
  usage counters - lives in memory for the lifetime of a run and is never
  written here.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block,
  a single writer at a time, better crash recovery.

USAGE:
  j, err := sqlite.New("./tickets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer j.Close()

  j.Append(ctx, *ticket)

SEE ALSO:
  - journal/journal.go: Interface and in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/fare-engine/fare"
	"github.com/warp/fare-engine/journal"
)

// Journal implements journal.Journal on SQLite.
type Journal struct {
	db *sql.DB
}

var _ journal.Journal = (*Journal)(nil)

// New opens (or creates) a journal at the given path. Use ":memory:" for
// an in-memory database.
func New(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	schema := `
	-- Tickets (append-only)
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		card_id INTEGER NOT NULL,
		fare_class TEXT NOT NULL,
		line TEXT NOT NULL,
		charged TEXT NOT NULL,
		remaining_balance TEXT NOT NULL,
		transfer INTEGER NOT NULL,
		issued_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tickets_card
		ON tickets(card_id, issued_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

func (j *Journal) Append(ctx context.Context, t fare.Ticket) error {
	transfer := 0
	if t.Transfer {
		transfer = 1
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO tickets (id, card_id, fare_class, line, charged, remaining_balance, transfer, issued_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CardID, t.FareClass, t.Line,
		t.Charged.Value.String(), t.RemainingBalance.Value.String(),
		transfer, t.IssuedAt.Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append ticket: %w", err)
	}
	return nil
}

func (j *Journal) ListByCard(ctx context.Context, cardID int) ([]fare.Ticket, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, card_id, fare_class, line, charged, remaining_balance, transfer, issued_at
		FROM tickets WHERE card_id = ? ORDER BY issued_at, created_at`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (j *Journal) All(ctx context.Context) ([]fare.Ticket, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, card_id, fare_class, line, charged, remaining_balance, transfer, issued_at
		FROM tickets ORDER BY issued_at, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows *sql.Rows) ([]fare.Ticket, error) {
	var result []fare.Ticket
	for rows.Next() {
		var (
			t                  fare.Ticket
			charged, remaining string
			transfer           int
			issuedAt           string
		)
		if err := rows.Scan(&t.ID, &t.CardID, &t.FareClass, &t.Line,
			&charged, &remaining, &transfer, &issuedAt); err != nil {
			return nil, err
		}
		var err error
		if t.Charged, err = fare.ParseMoney(charged); err != nil {
			return nil, fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		if t.RemainingBalance, err = fare.ParseMoney(remaining); err != nil {
			return nil, fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		t.Transfer = transfer != 0
		at, err := time.Parse(time.RFC3339, issuedAt)
		if err != nil {
			return nil, fmt.Errorf("bad issued_at %q: %w", issuedAt, err)
		}
		t.IssuedAt = at
		result = append(result, t)
	}
	return result, rows.Err()
}
