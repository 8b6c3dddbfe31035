// Package http provides the HTTP handlers and routing for the journal API.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akulikov/winslog/internal/models"
)

// Journal defines the engine operations the entries handler needs.
type Journal interface {
	// AddEntry appends the entry to the active profile's collection.
	AddEntry(ctx context.Context, e models.JournalEntry)
	// DeleteEntry removes the entry with the given id; unknown ids are
	// a no-op.
	DeleteEntry(ctx context.Context, id string)
	// Entries returns the full collection in insertion order.
	Entries() []models.JournalEntry
	// EntriesForType returns entries of the given type.
	EntriesForType(t models.EntryType) []models.JournalEntry
	// EntriesForDay returns entries on the same local calendar day.
	EntriesForDay(day time.Time) []models.JournalEntry
	// EntriesThisWeek returns entries from the current calendar week.
	EntriesThisWeek() []models.JournalEntry
}

// EntriesHandler handles HTTP requests for journal entries.
type EntriesHandler struct {
	Journal Journal
}

// List handles GET /api/entries. It accepts optional, mutually exclusive
// "type" and "day" (YYYY-MM-DD, local time) query filters.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var entries []models.JournalEntry
	switch {
	case q.Get("type") != "":
		t, err := models.ParseEntryType(q.Get("type"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		entries = h.Journal.EntriesForType(t)
	case q.Get("day") != "":
		day, err := time.ParseInLocation("2006-01-02", q.Get("day"), time.Local)
		if err != nil {
			http.Error(w, "day must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		entries = h.Journal.EntriesForDay(day)
	default:
		entries = h.Journal.Entries()
	}

	writeJSON(w, http.StatusOK, entries)
}

// Week handles GET /api/entries/week.
func (h *EntriesHandler) Week(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Journal.EntriesThisWeek())
}

// Create handles POST /api/entries. It expects a JSON body with "type"
// and a non-empty "content"; "date" is optional and defaults to now.
func (h *EntriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string    `json:"type"`
		Content string    `json:"content"`
		Date    time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	t, err := models.ParseEntryType(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	e := models.JournalEntry{
		ID:      uuid.NewString(),
		Type:    t,
		Content: req.Content,
		Date:    req.Date,
	}
	h.Journal.AddEntry(r.Context(), e)

	writeJSON(w, http.StatusCreated, e)
}

// Delete handles DELETE /api/entries/{id}. Unknown ids still answer 204,
// matching the engine's silent no-op semantics.
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Journal.DeleteEntry(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
