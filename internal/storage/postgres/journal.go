package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/parksim/internal/journal"
)

// ErrDuplicateEntry is returned when an entry ID has already been stored.
var ErrDuplicateEntry = errors.New("journal entry already stored")

// JournalRepository persists action journal entries.
type JournalRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewJournalRepository creates a JournalRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; timeout > 0 bounds
// each Append made through the journal.Store interface.
func NewJournalRepository(db *pgxpool.Pool, timeout time.Duration) *JournalRepository {
	return &JournalRepository{db: db, timeout: timeout}
}

// Insert stores e.
//
// Postcondition: Returns ErrDuplicateEntry if an entry with the same ID exists.
func (r *JournalRepository) Insert(ctx context.Context, e journal.Entry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO action_journal (id, tick, action_type, player_id, payload, status, cost, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, int64(e.Tick), e.Type, int64(e.Player), e.Payload, e.Status, e.Cost, e.RecordedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting journal entry %s: %w", e.ID, ErrDuplicateEntry)
		}
		return fmt.Errorf("inserting journal entry %s: %w", e.ID, err)
	}
	return nil
}

// Append implements journal.Store with the repository's own timeout.
func (r *JournalRepository) Append(e journal.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.Insert(ctx, e)
}

// ListFrom returns every entry recorded at or after tick, in journal order.
func (r *JournalRepository) ListFrom(ctx context.Context, tick uint32) ([]journal.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tick, action_type, player_id, payload, status, cost, recorded_at
		 FROM action_journal
		 WHERE tick >= $1
		 ORDER BY seq`,
		int64(tick),
	)
	if err != nil {
		return nil, fmt.Errorf("listing journal from tick %d: %w", tick, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (journal.Entry, error) {
		var (
			e            journal.Entry
			tick64, player int64
		)
		if err := row.Scan(&e.ID, &tick64, &e.Type, &player, &e.Payload, &e.Status, &e.Cost, &e.RecordedAt); err != nil {
			return journal.Entry{}, err
		}
		e.Tick = uint32(tick64)
		e.Player = uint32(player)
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning journal entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of journaled entries.
func (r *JournalRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM action_journal`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting journal entries: %w", err)
	}
	return n, nil
}

// isUniqueViolation reports SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
