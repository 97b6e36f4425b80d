package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ShelfKind string

const (
	ShelfKindShelf    ShelfKind = "shelf"
	ShelfKindWishlist ShelfKind = "wishlist"
)

type Book struct {
	ID            uuid.UUID `json:"book_id"`
	AuthorID      uuid.UUID `json:"author_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	CoverURL      string    `json:"cover_url,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Author struct {
	ID        uuid.UUID  `json:"author_id"`
	Name      string     `json:"name"`
	Bio       string     `json:"bio,omitempty"`
	ReaderID  *uuid.UUID `json:"reader_id,omitempty"` // set when the author is also a platform reader
	CreatedAt time.Time  `json:"created_at"`
}

// Rating is one reader's evaluation of one book: a value per criterion
// on the configured scale, plus optional review text. At most one
// rating exists per (reader, book) pair; resubmission updates it.
type Rating struct {
	ID       uuid.UUID `json:"rating_id"`
	ReaderID uuid.UUID `json:"reader_id"`
	BookID   uuid.UUID `json:"book_id"`

	Enjoyment     float64 `json:"enjoyment"`
	Writing       float64 `json:"writing"`
	Themes        float64 `json:"themes"`
	Characters    float64 `json:"characters"`
	Worldbuilding float64 `json:"worldbuilding"`

	Review string `json:"review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RatingFilter struct {
	BookID   *uuid.UUID
	ReaderID *uuid.UUID
	Limit    int
	Offset   int
}

// ProfileRow is a reader's stored weight configuration. Weight columns
// are text: the row is written by a loosely typed settings surface, so
// values may be numeric strings, empty, or junk — resolution coerces and
// falls back per criterion. A non-empty CriteriaOrder switches the row
// to positional mode and the weight columns are ignored.
type ProfileRow struct {
	ReaderID      uuid.UUID `json:"reader_id"`
	Enjoyment     string    `json:"enjoyment"`
	Writing       string    `json:"writing"`
	Themes        string    `json:"themes"`
	Characters    string    `json:"characters"`
	Worldbuilding string    `json:"worldbuilding"`
	CriteriaOrder []string  `json:"criteria_order,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Shelf struct {
	ID        uuid.UUID `json:"shelf_id"`
	ReaderID  uuid.UUID `json:"reader_id"`
	Name      string    `json:"name"`
	Kind      ShelfKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type ShelfItem struct {
	ShelfID  uuid.UUID `json:"shelf_id"`
	BookID   uuid.UUID `json:"book_id"`
	Position int       `json:"position"`
	AddedAt  time.Time `json:"added_at"`
}

type PlatformStats struct {
	TotalBooks   int     `json:"total_books"`
	TotalAuthors int     `json:"total_authors"`
	TotalRatings int     `json:"total_ratings"`
	TotalShelves int     `json:"total_shelves"`
	AvgEnjoyment float64 `json:"avg_enjoyment"`
}

type Store interface {
	// Books and authors
	CreateBook(ctx context.Context, book *Book) error
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*Book, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error)
	CreateAuthor(ctx context.Context, author *Author) error

	// Ratings — UpsertRating enforces one rating per (reader, book)
	UpsertRating(ctx context.Context, rating *Rating) error
	GetRating(ctx context.Context, readerID, bookID uuid.UUID) (*Rating, error)
	ListRatings(ctx context.Context, filter RatingFilter) ([]*Rating, error)
	ListRatingsForAuthor(ctx context.Context, authorID uuid.UUID) ([]*Rating, error)
	CountRatingsForAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	DeleteRating(ctx context.Context, readerID, bookID uuid.UUID) error

	// Weight profiles — UpsertProfile is idempotent on reader_id so
	// concurrent first resolutions cannot create duplicate rows
	GetProfile(ctx context.Context, readerID uuid.UUID) (*ProfileRow, error)
	UpsertProfile(ctx context.Context, row *ProfileRow) error

	// Shelves and wishlists
	CreateShelf(ctx context.Context, shelf *Shelf) error
	ListShelves(ctx context.Context, readerID uuid.UUID) ([]*Shelf, error)
	AddShelfItem(ctx context.Context, item *ShelfItem) error
	RemoveShelfItem(ctx context.Context, shelfID, bookID uuid.UUID) error
	ListShelfItems(ctx context.Context, shelfID uuid.UUID) ([]*ShelfItem, error)

	GetStats(ctx context.Context) (*PlatformStats, error)
	Close() error
}
