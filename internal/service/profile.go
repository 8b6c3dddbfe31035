package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akulikov/winslog/internal/models"
	"github.com/akulikov/winslog/internal/repository"
)

var (
	// ErrProfileNotFound is returned when no profile has the requested id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrWrongPIN is returned when a profile's PIN does not match.
	ErrWrongPIN = errors.New("wrong pin")
)

// profileBucket is the persisted shape of the profile list.
type profileBucket struct {
	Version  int              `json:"version"`
	Profiles []models.Profile `json:"profiles"`
}

// ProfileService manages the local profile list and the active profile
// id. The PIN gate is a convenience lock, compared as plaintext; it is
// not a security boundary.
type ProfileService struct {
	mu       sync.Mutex
	store    repository.KV
	log      *zap.Logger
	profiles []models.Profile
	activeID string
}

// NewProfileService constructs a ProfileService persisting through store.
// Call Load to read the persisted state.
func NewProfileService(store repository.KV, log *zap.Logger) *ProfileService {
	return &ProfileService{store: store, log: log}
}

// Load reads the persisted profile list and active profile id. An
// unreadable profile blob resets to an empty list, the same recovery
// policy as entry buckets. An active id pointing at a missing profile
// is dropped.
func (s *ProfileService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = nil
	s.activeID = ""

	blob, err := s.store.Get(ctx, repository.ProfilesKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("load profiles", zap.Error(err))
		}
		return
	}

	var bucket profileBucket
	if err := json.Unmarshal(blob, &bucket); err != nil || bucket.Version != bucketVersion {
		s.log.Warn("discarding unreadable profile bucket", zap.Error(err))
		return
	}
	s.profiles = bucket.Profiles

	active, err := s.store.Get(ctx, repository.ActiveProfileKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("load active profile", zap.Error(err))
		}
		return
	}
	id := string(active)
	if s.findLocked(id) != nil {
		s.activeID = id
	}
}

// List returns the profiles in creation order.
func (s *ProfileService) List() []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Profile(nil), s.profiles...)
}

// Create adds a profile with a fresh id and persists the list. An empty
// pin means the profile activates without one.
func (s *ProfileService) Create(ctx context.Context, name, emoji, pin string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Profile{
		ID:    uuid.NewString(),
		Name:  name,
		Emoji: emoji,
		PIN:   pin,
	}
	s.profiles = append(s.profiles, p)
	if err := s.persistLocked(ctx); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Delete removes the profile and its entry bucket from the store. A
// missing id is a silent no-op. Deleting the active profile clears the
// active id.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.profiles {
		if p.ID != id {
			continue
		}
		s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
		if s.activeID == id {
			s.activeID = ""
			if err := s.store.Delete(ctx, repository.ActiveProfileKey); err != nil {
				s.log.Warn("clear active profile", zap.Error(err))
			}
		}
		if err := s.store.Delete(ctx, repository.EntriesKey(id)); err != nil {
			s.log.Warn("delete entry bucket", zap.String("profile", id), zap.Error(err))
		}
		return s.persistLocked(ctx)
	}
	return nil
}

// Activate makes the profile with the given id active after checking its
// PIN. Profiles without a PIN activate regardless of the pin argument.
// Returns ErrProfileNotFound or ErrWrongPIN on failure. The active id is
// persisted best-effort so it survives a restart.
func (s *ProfileService) Activate(ctx context.Context, id, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(id)
	if p == nil {
		return ErrProfileNotFound
	}
	if p.PIN != "" && p.PIN != pin {
		return ErrWrongPIN
	}

	s.activeID = id
	if err := s.store.Set(ctx, repository.ActiveProfileKey, []byte(id)); err != nil {
		s.log.Warn("persist active profile", zap.Error(err))
	}
	return nil
}

// Deactivate clears the active profile.
func (s *ProfileService) Deactivate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = ""
	if err := s.store.Delete(ctx, repository.ActiveProfileKey); err != nil {
		s.log.Warn("clear active profile", zap.Error(err))
	}
}

// ActiveID returns the id of the active profile, or "" when none is.
func (s *ProfileService) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// findLocked returns the profile with the given id. Callers hold s.mu.
func (s *ProfileService) findLocked(id string) *models.Profile {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return &s.profiles[i]
		}
	}
	return nil
}

// persistLocked writes the full profile list. Callers hold s.mu.
func (s *ProfileService) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(profileBucket{Version: bucketVersion, Profiles: s.profiles})
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := s.store.Set(ctx, repository.ProfilesKey, blob); err != nil {
		return fmt.Errorf("persist profiles: %w", err)
	}
	return nil
}
