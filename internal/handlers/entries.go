package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybook-app/daybook-backend/internal/middleware"
	"github.com/daybook-app/daybook-backend/internal/repository"
)

const storageTimeout = 5 * time.Second

// EntryHandler serves the journal entry endpoints. The repository is injected
// once at startup; handlers themselves hold no per-request state.
type EntryHandler struct {
	repo repository.Entries
}

func NewEntryHandler(repo repository.Entries) *EntryHandler {
	return &EntryHandler{repo: repo}
}

type entryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type entryResponse struct {
	Message string      `json:"message"`
	Entry   interface{} `json:"entry"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// decodeBody decodes the request body into dst, reporting a missing body and
// malformed JSON as distinct 400 messages.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Request body is missing."})
	} else {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON format in request body."})
	}
	return false
}

// CreateEntry handles POST /entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.Identity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "User is not authenticated."})
		return
	}

	var req entryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing title or content."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	entry, err := h.repo.Insert(ctx, owner, req.Title, req.Content)
	if err != nil {
		log.Printf("create entry: %v", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error creating entry", Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, entryResponse{
		Message: "Entry created successfully",
		Entry: map[string]interface{}{
			"entryId":   entry.EntryID,
			"title":     entry.Title,
			"content":   entry.Content,
			"createdAt": entry.CreatedAt,
		},
	})
}

// GetEntriesByDate handles GET /entries?date=YYYY-MM-DD.
func (h *EntryHandler) GetEntriesByDate(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.Identity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "User is not authenticated."})
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Date parameter is missing."})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", dateParam, time.UTC)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid date format. Expected YYYY-MM-DD."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	entries, err := h.repo.QueryByDay(ctx, owner, day)
	if err != nil {
		log.Printf("fetch entries: %v", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error fetching entries", Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// UpdateEntry handles PUT /entries/{entryId}.
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.Identity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "User is not authenticated."})
		return
	}

	// The route only matches with a non-empty {entryId}.
	entryID := chi.URLParam(r, "entryId")

	var req entryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Partial patch: either field alone is fine, both absent is not.
	// An empty string counts as absent.
	if req.Title == "" && req.Content == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Nothing to update (title/content missing)."})
		return
	}

	var patch repository.Patch
	if req.Title != "" {
		patch.Title = &req.Title
	}
	if req.Content != "" {
		patch.Content = &req.Content
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	entry, err := h.repo.Update(ctx, owner, entryID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse{Message: "Entry not found."})
			return
		}
		log.Printf("update entry: %v", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error updating entry", Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, entryResponse{
		Message: "Entry updated successfully",
		Entry:   entry,
	})
}

// DeleteEntry handles DELETE /entries/{entryId}.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.Identity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "User is not authenticated."})
		return
	}

	entryID := chi.URLParam(r, "entryId")

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := h.repo.Remove(ctx, owner, entryID); err != nil {
		log.Printf("delete entry: %v", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error deleting entry", Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Entry deleted successfully"})
}
