package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Books and authors ---

const bookColumns = `book_id, author_id, title, description, cover_url, isbn, published_year,
	created_at, updated_at`

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	var description, coverURL, isbn sql.NullString
	var publishedYear sql.NullInt32
	err := row.Scan(
		&b.ID, &b.AuthorID, &b.Title, &description, &coverURL, &isbn, &publishedYear,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		b.Description = description.String
	}
	if coverURL.Valid {
		b.CoverURL = coverURL.String
	}
	if isbn.Valid {
		b.ISBN = isbn.String
	}
	if publishedYear.Valid {
		year := int(publishedYear.Int32)
		b.PublishedYear = &year
	}
	return b, nil
}

func (s *PostgresStore) CreateBook(ctx context.Context, book *Book) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO books (author_id, title, description, cover_url, isbn, published_year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING book_id, created_at, updated_at`,
		book.AuthorID, book.Title, book.Description, book.CoverURL, book.ISBN, book.PublishedYear,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (s *PostgresStore) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	b, err := scanBook(s.pool.QueryRow(ctx, `
		SELECT `+bookColumns+` FROM books WHERE book_id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PostgresStore) ListBooks(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	args := []interface{}{}
	n := 0

	if authorID != nil {
		n++
		query += fmt.Sprintf(" AND author_id = $%d", n)
		args = append(args, *authorID)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, limit)
	}
	if offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *PostgresStore) GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error) {
	a := &Author{}
	var bio sql.NullString
	err := s.pool.QueryRow(ctx, `
		SELECT author_id, name, bio, reader_id, created_at
		FROM authors WHERE author_id = $1`, id,
	).Scan(&a.ID, &a.Name, &bio, &a.ReaderID, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if bio.Valid {
		a.Bio = bio.String
	}
	return a, nil
}

func (s *PostgresStore) CreateAuthor(ctx context.Context, author *Author) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO authors (name, bio, reader_id)
		VALUES ($1, $2, $3)
		RETURNING author_id, created_at`,
		author.Name, author.Bio, author.ReaderID,
	).Scan(&author.ID, &author.CreatedAt)
}

// --- Ratings ---

const ratingColumns = `rating_id, reader_id, book_id,
	enjoyment, writing, themes, characters, worldbuilding,
	review, created_at, updated_at`

func scanRating(row pgx.Row) (*Rating, error) {
	r := &Rating{}
	var review sql.NullString
	err := row.Scan(
		&r.ID, &r.ReaderID, &r.BookID,
		&r.Enjoyment, &r.Writing, &r.Themes, &r.Characters, &r.Worldbuilding,
		&review, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if review.Valid {
		r.Review = review.String
	}
	return r, nil
}

// UpsertRating inserts a rating or, when the reader already rated the
// book, overwrites the existing row. The unique key on (reader_id,
// book_id) guarantees at most one rating per pair.
func (s *PostgresStore) UpsertRating(ctx context.Context, rating *Rating) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO ratings (reader_id, book_id,
			enjoyment, writing, themes, characters, worldbuilding, review)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (reader_id, book_id) DO UPDATE SET
			enjoyment = EXCLUDED.enjoyment,
			writing = EXCLUDED.writing,
			themes = EXCLUDED.themes,
			characters = EXCLUDED.characters,
			worldbuilding = EXCLUDED.worldbuilding,
			review = EXCLUDED.review,
			updated_at = now()
		RETURNING rating_id, created_at, updated_at`,
		rating.ReaderID, rating.BookID,
		rating.Enjoyment, rating.Writing, rating.Themes, rating.Characters, rating.Worldbuilding,
		rating.Review,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
}

func (s *PostgresStore) GetRating(ctx context.Context, readerID, bookID uuid.UUID) (*Rating, error) {
	r, err := scanRating(s.pool.QueryRow(ctx, `
		SELECT `+ratingColumns+` FROM ratings
		WHERE reader_id = $1 AND book_id = $2`, readerID, bookID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ListRatings(ctx context.Context, filter RatingFilter) ([]*Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.BookID != nil {
		n++
		query += fmt.Sprintf(" AND book_id = $%d", n)
		args = append(args, *filter.BookID)
	}
	if filter.ReaderID != nil {
		n++
		query += fmt.Sprintf(" AND reader_id = $%d", n)
		args = append(args, *filter.ReaderID)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*Rating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// ListRatingsForAuthor returns every rating on every book by the author.
func (s *PostgresStore) ListRatingsForAuthor(ctx context.Context, authorID uuid.UUID) ([]*Rating, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.rating_id, r.reader_id, r.book_id,
			r.enjoyment, r.writing, r.themes, r.characters, r.worldbuilding,
			r.review, r.created_at, r.updated_at
		FROM ratings r
		JOIN books b ON b.book_id = r.book_id
		WHERE b.author_id = $1`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*Rating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func (s *PostgresStore) CountRatingsForAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM ratings r
		JOIN books b ON b.book_id = r.book_id
		WHERE b.author_id = $1`, authorID,
	).Scan(&count)
	return count, err
}

func (s *PostgresStore) DeleteRating(ctx context.Context, readerID, bookID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM ratings WHERE reader_id = $1 AND book_id = $2`, readerID, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
