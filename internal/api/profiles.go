package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/events"
	"github.com/foliolabs/folio/internal/gamify"
	"github.com/foliolabs/folio/internal/scoring"
	"github.com/foliolabs/folio/internal/store"
)

type ProfilesHandler struct {
	store  store.Store
	events events.Client
	gamify gamify.Client
	logger *slog.Logger
}

func NewProfilesHandler(s store.Store, ev events.Client, g gamify.Client, logger *slog.Logger) *ProfilesHandler {
	return &ProfilesHandler{store: s, events: ev, gamify: g, logger: logger}
}

// Get returns the reader's effective weight profile alongside the raw
// stored row. A reader with no row gets the default profile and a nil
// row; the lazy persist belongs to the resolver, not this read.
// GET /profile
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	row, err := h.store.GetProfile(r.Context(), readerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	effective := scoring.DefaultProfile()
	if row != nil {
		effective = scoring.ResolveRow(row)
	}

	// Reader level lives on the gamification service; the profile is
	// still useful without it.
	var level *gamify.ReaderLevel
	if h.gamify != nil {
		level, err = h.gamify.GetReaderLevel(r.Context(), readerID.String())
		if err != nil {
			h.logger.Warn("reader level lookup failed", "reader_id", readerID, "error", err)
			level = nil
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"effective": effective,
		"stored":    row,
		"level":     level,
	})
}

// PutWeights stores explicit per-criterion weights. Values may be
// numbers or numeric strings; anything that does not coerce falls back
// to that criterion's default rather than failing the request.
// PUT /profile
func (h *ProfilesHandler) PutWeights(w http.ResponseWriter, r *http.Request) {
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	explicit := make(map[scoring.Criterion]any, len(raw))
	for name, v := range raw {
		c, ok := scoring.ParseCriterion(name)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown criterion: " + name})
			return
		}
		explicit[c] = v
	}

	effective := scoring.ResolveExplicit(explicit)
	if err := effective.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	row := scoring.ProfileRowFromWeights(readerID, effective)
	if err := h.store.UpsertProfile(r.Context(), row); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publishUpdated(r.Context(), readerID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"effective": effective, "stored": row})
}

type PutOrderRequest struct {
	Order []string `json:"order"`
}

// PutOrder stores a positional profile: an importance order of criteria,
// most important first. The order may name fewer than five criteria.
// PUT /profile/order
func (h *ProfilesHandler) PutOrder(w http.ResponseWriter, r *http.Request) {
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	var req PutOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Order) == 0 || len(req.Order) > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order must name 1 to 5 criteria"})
		return
	}

	seen := make(map[string]bool, len(req.Order))
	for _, name := range req.Order {
		if _, ok := scoring.ParseCriterion(name); !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown criterion: " + name})
			return
		}
		if seen[name] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duplicate criterion: " + name})
			return
		}
		seen[name] = true
	}

	row := &store.ProfileRow{
		ReaderID:      readerID,
		CriteriaOrder: req.Order,
	}
	if err := h.store.UpsertProfile(r.Context(), row); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publishUpdated(r.Context(), readerID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"effective": scoring.ResolveRow(row),
		"stored":    row,
	})
}

func (h *ProfilesHandler) publishUpdated(ctx context.Context, readerID uuid.UUID) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(ctx, events.SubjectProfileUpdated(readerID.String()), map[string]string{
		"reader_id": readerID.String(),
	}); err != nil {
		h.logger.Warn("profile event publish failed", "reader_id", readerID, "error", err)
	}
}
