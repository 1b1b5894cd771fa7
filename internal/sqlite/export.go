// Package sqlite writes catalog snapshots to SQLite files for offline
// inspection with any SQLite client. Snapshots are write-only: the shelf CLI
// never reads them back.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const timeLayout = time.RFC3339Nano

// Export writes snap to a new SQLite database at path, replacing any file
// already there. All rows are inserted in one transaction.
func Export(ctx context.Context, path string, snap types.Snapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := writeSnapshot(ctx, tx, snap); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func writeSnapshot(ctx context.Context, tx *sql.Tx, snap types.Snapshot) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot (taken_at) VALUES (?)`,
		snap.TakenAt.UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, a := range snap.Authors {
		if _, err := tx.ExecContext(ctx, `INSERT INTO authors (name, birth_year) VALUES (?, ?)`,
			a.Name, a.BirthYear); err != nil {
			return fmt.Errorf("insert author %q: %w", a.Name, err)
		}
	}

	for _, b := range snap.Books {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO books (isbn, title, author, year, copies, available_copies, genre) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.ISBN, b.Title, b.Author, b.Year, b.Copies, b.AvailableCopies, b.Genre); err != nil {
			return fmt.Errorf("insert book %q: %w", b.ISBN, err)
		}
	}

	for _, c := range snap.Customers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO customers (customer_id, name, email) VALUES (?, ?, ?)`,
			c.ID, c.Name, c.Email); err != nil {
			return fmt.Errorf("insert customer %d: %w", c.ID, err)
		}
		for _, l := range c.Loans {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO loans (loan_id, customer_id, isbn, borrowed_at) VALUES (?, ?, ?, ?)`,
				l.LoanID, c.ID, l.ISBN, l.BorrowedAt.UTC().Format(timeLayout)); err != nil {
				return fmt.Errorf("insert loan %s: %w", l.LoanID, err)
			}
		}
	}

	for _, isbn := range slices.Sorted(maps.Keys(snap.Waitlist)) {
		for pos, id := range snap.Waitlist[isbn] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO waitlist (isbn, position, customer_id) VALUES (?, ?, ?)`,
				isbn, pos+1, id); err != nil {
				return fmt.Errorf("insert waitlist %q: %w", isbn, err)
			}
		}
	}
	return nil
}
