package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/config"
	"github.com/kidandcat/lifeboard/internal/db"
	"github.com/kidandcat/lifeboard/internal/export"
)

// Store is what the API needs beyond the canvas core's own Store.
type Store interface {
	canvas.Store
	GetItem(ctx context.Context, id string) (canvas.Item, error)
	ListItemsByBoard(ctx context.Context, boardID string) ([]canvas.Item, error)
}

type server struct {
	cfg      config.Config
	store    Store
	registry *canvas.Registry
}

func RegisterRoutes(mux *http.ServeMux, cfg config.Config, store Store) {
	s := &server{cfg: cfg, store: store, registry: canvas.NewRegistry(store)}

	// Boards
	mux.HandleFunc("GET /api/boards", s.handleGetBoards)
	mux.HandleFunc("POST /api/boards", s.handleCreateBoard)
	mux.HandleFunc("DELETE /api/boards/{id}", s.handleDeleteBoard)
	mux.HandleFunc("POST /api/boards/{id}/images", s.handleUploadImage)
	mux.HandleFunc("GET /api/boards/{id}/export.png", s.handleExportBoard)

	// Items
	mux.HandleFunc("GET /api/items", s.handleGetItems)
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Boards

func (s *server) handleGetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.registry.ListBoards(r.Context())
	if err != nil {
		log.Printf("error getting boards: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (s *server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	b, ok, err := s.registry.CreateBoard(r.Context(), req.Name)
	if err != nil {
		log.Printf("error creating board: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if _, err := s.registry.DeleteBoard(r.Context(), r.PathValue("id")); err != nil {
		log.Printf("error deleting board: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())

	file, _, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	c := canvas.NewComposer(nil)
	c.SetType(canvas.ItemImage)
	c.SetFile(canvas.BytesSource(data))
	it, ok, err := c.Submit(r.Context(), boardID, storeAdder{s.store})
	if errors.Is(err, canvas.ErrNotImage) {
		writeError(w, http.StatusBadRequest, "not an image")
		return
	}
	if err != nil {
		log.Printf("error adding image: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *server) handleExportBoard(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItemsByBoard(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Printf("error getting items: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var buf bytes.Buffer
	err = export.PNG(&buf, items)
	switch {
	case errors.Is(err, export.ErrEmpty):
		writeError(w, http.StatusNotFound, "board is empty")
		return
	case errors.Is(err, export.ErrTooLarge):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		log.Printf("error exporting board: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// Items

func (s *server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	var (
		items []canvas.Item
		err   error
	)
	if boardID := r.URL.Query().Get("board_id"); boardID != "" {
		items, err = s.store.ListItemsByBoard(r.Context(), boardID)
	} else {
		items, err = s.store.ListItems(r.Context())
	}
	if err != nil {
		log.Printf("error getting items: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req canvas.Item
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.ID = ""
	if req.Width == 0 {
		req.Width = canvas.DefaultWidth
	}
	if req.Type == canvas.ItemNote && req.Color == "" {
		req.Color = canvas.DefaultNoteColor
	}

	it, err := storeAdder{s.store}.Add(r.Context(), req)
	if errors.Is(err, canvas.ErrInvalidItem) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("error creating item: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	existing, err := s.store.GetItem(r.Context(), r.PathValue("id"))
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		log.Printf("error getting item: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req struct {
		Content *string  `json:"content"`
		X       *float64 `json:"x"`
		Y       *float64 `json:"y"`
		Width   *float64 `json:"width"`
		Color   *string  `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	it := existing
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content required")
			return
		}
		it.Content = *req.Content
	}
	if req.X != nil {
		it.X = *req.X
	}
	if req.Y != nil {
		it.Y = *req.Y
	}
	if req.Width != nil {
		it.Width = canvas.ClampWidth(*req.Width)
	}
	if req.Color != nil {
		it.Color = *req.Color
	}

	if err := s.store.CommitItem(r.Context(), it); err != nil {
		log.Printf("error updating item: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		log.Printf("error deleting item: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// storeAdder validates before inserting, since the store itself does not.
type storeAdder struct {
	store canvas.Store
}

func (a storeAdder) Add(ctx context.Context, it canvas.Item) (canvas.Item, error) {
	if err := it.Validate(); err != nil {
		return canvas.Item{}, err
	}
	return a.store.AddItem(ctx, it)
}
