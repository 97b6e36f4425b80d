package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/covers"
	"github.com/foliolabs/folio/internal/scoring"
	"github.com/foliolabs/folio/internal/store"
)

type BooksHandler struct {
	store    store.Store
	covers   covers.Client
	resolver *scoring.Resolver
	logger   *slog.Logger
}

func NewBooksHandler(s store.Store, cv covers.Client, resolver *scoring.Resolver, logger *slog.Logger) *BooksHandler {
	return &BooksHandler{store: s, covers: cv, resolver: resolver, logger: logger}
}

type CreateBookRequest struct {
	AuthorID      string `json:"author_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	PublishedYear *int   `json:"published_year,omitempty"`
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" || req.AuthorID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and author_id required"})
		return
	}
	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid author_id"})
		return
	}

	book := &store.Book{
		AuthorID:      authorID,
		Title:         req.Title,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
	}
	if err := h.store.CreateBook(r.Context(), book); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Variant generation happens on the image service; a failure there
	// leaves the original cover usable.
	if h.covers != nil && book.CoverURL != "" {
		if err := h.covers.RequestVariants(r.Context(), book.ID.String(), book.CoverURL); err != nil {
			h.logger.Warn("cover variant request failed", "book_id", book.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, book)
}

func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	var authorID *uuid.UUID
	if s := r.URL.Query().Get("author_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid author_id"})
			return
		}
		authorID = &id
	}

	books, err := h.store.ListBooks(r.Context(), authorID, 50, 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if books == nil {
		books = []*store.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}

	book, err := h.store.GetBook(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "book not found"})
		return
	}

	// Cover variants come from the image service; a failure there just
	// means the detail view falls back to the original cover.
	var variants []covers.Variant
	if h.covers != nil && book.CoverURL != "" {
		variants, err = h.covers.GetVariants(r.Context(), book.ID.String())
		if err != nil {
			h.logger.Warn("cover variant lookup failed", "book_id", book.ID, "error", err)
			variants = nil
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"book":           book,
		"cover_variants": variants,
	})
}

// Aggregate returns the book's per-criterion means with a weighted
// overall. By default the overall uses the calling reader's resolved
// profile; ?view=objective uses the straight average instead.
// GET /books/{id}/aggregate
func (h *BooksHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}

	ratings, err := h.store.ListRatings(r.Context(), store.RatingFilter{BookID: &bookID})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var agg scoring.AggregateRating
	if r.URL.Query().Get("view") == "objective" {
		agg = scoring.AggregateStraight(ratings)
	} else {
		profile := scoring.DefaultProfile()
		if readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID")); err == nil {
			profile = h.resolver.ProfileForReader(r.Context(), readerID)
		}
		agg = scoring.Aggregate(ratings, profile)
	}

	writeJSON(w, http.StatusOK, agg)
}
