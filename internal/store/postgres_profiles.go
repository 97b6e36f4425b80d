package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `reader_id, enjoyment, writing, themes, characters, worldbuilding,
	criteria_order, created_at, updated_at`

func (s *PostgresStore) GetProfile(ctx context.Context, readerID uuid.UUID) (*ProfileRow, error) {
	row := &ProfileRow{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM weight_profiles WHERE reader_id = $1`, readerID,
	).Scan(
		&row.ReaderID, &row.Enjoyment, &row.Writing, &row.Themes,
		&row.Characters, &row.Worldbuilding,
		&row.CriteriaOrder, &row.CreatedAt, &row.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpsertProfile writes a profile row keyed on reader_id. Concurrent
// first resolutions for the same reader both land here; the conflict
// clause makes the lazy create idempotent — exactly one row survives.
func (s *PostgresStore) UpsertProfile(ctx context.Context, row *ProfileRow) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO weight_profiles (reader_id,
			enjoyment, writing, themes, characters, worldbuilding, criteria_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (reader_id) DO UPDATE SET
			enjoyment = EXCLUDED.enjoyment,
			writing = EXCLUDED.writing,
			themes = EXCLUDED.themes,
			characters = EXCLUDED.characters,
			worldbuilding = EXCLUDED.worldbuilding,
			criteria_order = EXCLUDED.criteria_order,
			updated_at = now()
		RETURNING created_at, updated_at`,
		row.ReaderID,
		row.Enjoyment, row.Writing, row.Themes, row.Characters, row.Worldbuilding,
		row.CriteriaOrder,
	).Scan(&row.CreatedAt, &row.UpdatedAt)
}

// --- Shelves and wishlists ---

func (s *PostgresStore) CreateShelf(ctx context.Context, shelf *Shelf) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO shelves (reader_id, name, kind)
		VALUES ($1, $2, $3)
		RETURNING shelf_id, created_at`,
		shelf.ReaderID, shelf.Name, shelf.Kind,
	).Scan(&shelf.ID, &shelf.CreatedAt)
}

func (s *PostgresStore) ListShelves(ctx context.Context, readerID uuid.UUID) ([]*Shelf, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT shelf_id, reader_id, name, kind, created_at
		FROM shelves WHERE reader_id = $1
		ORDER BY created_at`, readerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelves []*Shelf
	for rows.Next() {
		sh := &Shelf{}
		if err := rows.Scan(&sh.ID, &sh.ReaderID, &sh.Name, &sh.Kind, &sh.CreatedAt); err != nil {
			return nil, err
		}
		shelves = append(shelves, sh)
	}
	return shelves, rows.Err()
}

func (s *PostgresStore) AddShelfItem(ctx context.Context, item *ShelfItem) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO shelf_items (shelf_id, book_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (shelf_id, book_id) DO UPDATE SET position = EXCLUDED.position
		RETURNING added_at`,
		item.ShelfID, item.BookID, item.Position,
	).Scan(&item.AddedAt)
}

func (s *PostgresStore) RemoveShelfItem(ctx context.Context, shelfID, bookID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM shelf_items WHERE shelf_id = $1 AND book_id = $2`, shelfID, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) ListShelfItems(ctx context.Context, shelfID uuid.UUID) ([]*ShelfItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT shelf_id, book_id, position, added_at
		FROM shelf_items WHERE shelf_id = $1
		ORDER BY position`, shelfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ShelfItem
	for rows.Next() {
		it := &ShelfItem{}
		if err := rows.Scan(&it.ShelfID, &it.BookID, &it.Position, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM authors),
			(SELECT COUNT(*) FROM ratings),
			(SELECT COUNT(*) FROM shelves),
			(SELECT COALESCE(AVG(enjoyment), 0) FROM ratings)`,
	).Scan(&stats.TotalBooks, &stats.TotalAuthors, &stats.TotalRatings,
		&stats.TotalShelves, &stats.AvgEnjoyment)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
