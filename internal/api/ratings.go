package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/events"
	"github.com/foliolabs/folio/internal/gamify"
	"github.com/foliolabs/folio/internal/scoring"
	"github.com/foliolabs/folio/internal/store"
)

type RatingsHandler struct {
	store  store.Store
	events events.Client
	gamify gamify.Client
	scale  scoring.Scale
	logger *slog.Logger
}

func NewRatingsHandler(s store.Store, ev events.Client, g gamify.Client, scale scoring.Scale, logger *slog.Logger) *RatingsHandler {
	return &RatingsHandler{store: s, events: ev, gamify: g, scale: scale, logger: logger}
}

type SubmitRatingRequest struct {
	Enjoyment     float64 `json:"enjoyment"`
	Writing       float64 `json:"writing"`
	Themes        float64 `json:"themes"`
	Characters    float64 `json:"characters"`
	Worldbuilding float64 `json:"worldbuilding"`
	Review        string  `json:"review,omitempty"`
}

func (req *SubmitRatingRequest) validate(scale scoring.Scale) string {
	values := map[string]float64{
		"enjoyment":     req.Enjoyment,
		"writing":       req.Writing,
		"themes":        req.Themes,
		"characters":    req.Characters,
		"worldbuilding": req.Worldbuilding,
	}
	for name, v := range values {
		if v < scale.Min || v > scale.Max {
			return name + " out of range"
		}
	}
	return ""
}

// Submit creates the reader's rating for a book, or updates it if one
// already exists. PUT /books/{id}/rating
func (h *RatingsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(h.scale); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	book, err := h.store.GetBook(r.Context(), bookID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "book not found"})
		return
	}

	existing, err := h.store.GetRating(r.Context(), readerID, bookID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rating := &store.Rating{
		ReaderID:      readerID,
		BookID:        bookID,
		Enjoyment:     req.Enjoyment,
		Writing:       req.Writing,
		Themes:        req.Themes,
		Characters:    req.Characters,
		Worldbuilding: req.Worldbuilding,
		Review:        req.Review,
	}
	if err := h.store.UpsertRating(r.Context(), rating); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	ratingsSubmittedTotal.Inc()

	if h.events != nil {
		subject := events.SubjectRatingCreated(bookID.String())
		if existing != nil {
			subject = events.SubjectRatingUpdated(bookID.String())
		}
		if err := h.events.Publish(r.Context(), subject, rating); err != nil {
			h.logger.Warn("rating event publish failed", "book_id", bookID, "error", err)
		}
	}

	// Gamification is fire-and-forget: a missing XP award is never
	// worth failing the submission over.
	if h.gamify != nil && existing == nil {
		if err := h.gamify.AwardReviewXP(r.Context(), readerID.String(), bookID.String()); err != nil {
			h.logger.Warn("review XP award failed", "reader_id", readerID, "error", err)
		}
	}

	status := http.StatusCreated
	if existing != nil {
		status = http.StatusOK
	}
	writeJSON(w, status, rating)
}

// GetOwn returns the reader's own rating for a book.
// GET /books/{id}/rating
func (h *RatingsHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	rating, err := h.store.GetRating(r.Context(), readerID, bookID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rating == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "rating not found"})
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

// List returns ratings for a book. GET /books/{id}/ratings
func (h *RatingsHandler) List(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}

	filter := store.RatingFilter{BookID: &bookID}
	ratings, err := h.store.ListRatings(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if ratings == nil {
		ratings = []*store.Rating{}
	}
	writeJSON(w, http.StatusOK, ratings)
}

// Delete removes the reader's own rating. Deletion is always an
// explicit action, never implied. DELETE /books/{id}/rating
func (h *RatingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	if err := h.store.DeleteRating(r.Context(), readerID, bookID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "rating not found"})
		return
	}

	if h.events != nil {
		if err := h.events.Publish(r.Context(), events.SubjectRatingDeleted(bookID.String()), map[string]string{
			"reader_id": readerID.String(),
			"book_id":   bookID.String(),
		}); err != nil {
			h.logger.Warn("rating event publish failed", "book_id", bookID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
