package pages

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/iodocs/internal/db"
)

// Store persists the page index in SQLite. Row order is kept in the
// position column so the index reads back exactly as it was written.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Replace swaps the stored index for pages in a single transaction.
// progress, if non-nil, is called after each inserted row.
func (s *Store) Replace(ctx context.Context, pages []Page, progress func(done int, p Page)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return fmt.Errorf("clearing pages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (position, section, page_id, name, depth)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pages {
		if _, err := stmt.ExecContext(ctx, i, p.Section, p.ID, p.Name, p.Depth); err != nil {
			return fmt.Errorf("inserting page %s/%s: %w", p.Section, p.ID, err)
		}
		if progress != nil {
			progress(i+1, p)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing pages: %w", err)
	}
	return nil
}

// Index loads the stored pages in their original order.
func (s *Store) Index(ctx context.Context) (*Index, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section, page_id, name, depth FROM pages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var list []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Section, &p.ID, &p.Name, &p.Depth); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoPages
	}
	return NewIndex(list), nil
}

// Count returns the number of stored pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}
