package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/akulikov/winslog/internal/models"
	"github.com/akulikov/winslog/internal/service"
)

// Profiles defines the profile-store operations the handler needs.
type Profiles interface {
	// List returns the profiles in creation order.
	List() []models.Profile
	// Create adds a profile; pin may be empty.
	Create(ctx context.Context, name, emoji, pin string) (models.Profile, error)
	// Delete removes a profile and its entry bucket.
	Delete(ctx context.Context, id string) error
	// Activate makes a profile active after checking its PIN.
	Activate(ctx context.Context, id, pin string) error
	// Deactivate clears the active profile.
	Deactivate(ctx context.Context)
	// ActiveID returns the active profile id, or "".
	ActiveID() string
}

// EngineSwitcher lets the profiles handler swap the engine's entry
// collection whenever the active profile changes.
type EngineSwitcher interface {
	SetActiveProfile(ctx context.Context, profileID string)
}

// ProfilesHandler handles HTTP requests for profile management and the
// PIN-gated profile switch.
type ProfilesHandler struct {
	Profiles Profiles
	Journal  EngineSwitcher
}

// profileView is the outward shape of a profile. The PIN itself never
// leaves the process, only whether one is set.
type profileView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	HasPIN bool   `json:"has_pin"`
	Active bool   `json:"active"`
}

func (h *ProfilesHandler) view(p models.Profile) profileView {
	return profileView{
		ID:     p.ID,
		Name:   p.Name,
		Emoji:  p.Emoji,
		HasPIN: p.PIN != "",
		Active: p.ID == h.Profiles.ActiveID(),
	}
}

// List handles GET /api/profiles.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := h.Profiles.List()
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, h.view(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// Create handles POST /api/profiles. It expects a JSON body with a
// non-empty "name"; "emoji" and "pin" are optional.
func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Emoji string `json:"emoji"`
		PIN   string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	p, err := h.Profiles.Create(r.Context(), req.Name, req.Emoji, req.PIN)
	if err != nil {
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, h.view(p))
}

// Delete handles DELETE /api/profiles/{id}. It re-syncs the engine in
// case the deleted profile was the active one.
func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Profiles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "failed to delete profile", http.StatusInternalServerError)
		return
	}
	h.Journal.SetActiveProfile(r.Context(), h.Profiles.ActiveID())
	w.WriteHeader(http.StatusNoContent)
}

// Activate handles POST /api/profiles/{id}/activate. The JSON body
// carries the "pin", required only for profiles that set one. On success
// the engine is switched to the profile's bucket.
func (h *ProfilesHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		PIN string `json:"pin"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
	}

	switch err := h.Profiles.Activate(r.Context(), id, req.PIN); {
	case errors.Is(err, service.ErrProfileNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrWrongPIN):
		http.Error(w, "wrong pin", http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Journal.SetActiveProfile(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]string{"active": id})
}

// Deactivate handles POST /api/profiles/deactivate, leaving the engine
// with an empty, non-persisting collection.
func (h *ProfilesHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.Profiles.Deactivate(r.Context())
	h.Journal.SetActiveProfile(r.Context(), "")
	w.WriteHeader(http.StatusNoContent)
}
