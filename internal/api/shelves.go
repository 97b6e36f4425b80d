package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/events"
	"github.com/foliolabs/folio/internal/store"
)

type ShelvesHandler struct {
	store  store.Store
	events events.Client
	logger *slog.Logger
}

func NewShelvesHandler(s store.Store, ev events.Client, logger *slog.Logger) *ShelvesHandler {
	return &ShelvesHandler{store: s, events: ev, logger: logger}
}

type CreateShelfRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

func (h *ShelvesHandler) Create(w http.ResponseWriter, r *http.Request) {
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	var req CreateShelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	kind := store.ShelfKind(req.Kind)
	switch kind {
	case "":
		kind = store.ShelfKindShelf
	case store.ShelfKindShelf, store.ShelfKindWishlist:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shelf kind"})
		return
	}

	shelf := &store.Shelf{ReaderID: readerID, Name: req.Name, Kind: kind}
	if err := h.store.CreateShelf(r.Context(), shelf); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, shelf)
}

func (h *ShelvesHandler) List(w http.ResponseWriter, r *http.Request) {
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return
	}

	shelves, err := h.store.ListShelves(r.Context(), readerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if shelves == nil {
		shelves = []*store.Shelf{}
	}
	writeJSON(w, http.StatusOK, shelves)
}

func (h *ShelvesHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	shelfID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shelf id"})
		return
	}

	items, err := h.store.ListShelfItems(r.Context(), shelfID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if items == nil {
		items = []*store.ShelfItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type AddShelfItemRequest struct {
	BookID   string `json:"book_id"`
	Position int    `json:"position,omitempty"`
}

func (h *ShelvesHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	shelfID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shelf id"})
		return
	}

	var req AddShelfItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book_id"})
		return
	}

	item := &store.ShelfItem{ShelfID: shelfID, BookID: bookID, Position: req.Position}
	if err := h.store.AddShelfItem(r.Context(), item); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		if err := h.events.Publish(r.Context(), events.SubjectShelfItemAdded(shelfID.String()), item); err != nil {
			h.logger.Warn("shelf event publish failed", "shelf_id", shelfID, "error", err)
		}
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ShelvesHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	shelfID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shelf id"})
		return
	}
	bookID, err := uuid.Parse(chi.URLParam(r, "book_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid book id"})
		return
	}

	if err := h.store.RemoveShelfItem(r.Context(), shelfID, bookID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	if h.events != nil {
		if err := h.events.Publish(r.Context(), events.SubjectShelfItemRemoved(shelfID.String()), map[string]string{
			"shelf_id": shelfID.String(),
			"book_id":  bookID.String(),
		}); err != nil {
			h.logger.Warn("shelf event publish failed", "shelf_id", shelfID, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
