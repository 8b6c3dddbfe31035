// Package service provides the business logic of the journal: the
// analytics engine owning one profile's entry collection, and the
// profile store managing local identities. Persistence is delegated to
// a key-value repository.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/akulikov/winslog/internal/models"
	"github.com/akulikov/winslog/internal/repository"
)

// bucketVersion is the schema version written into persisted blobs.
// Blobs carrying any other version are treated as foreign and discarded.
const bucketVersion = 1

// entryBucket is the persisted shape of one profile's entry collection.
type entryBucket struct {
	Version int                   `json:"version"`
	Entries []models.JournalEntry `json:"entries"`
}

// JournalService owns the in-memory entry collection of the currently
// active profile and answers the time-windowed queries behind the list
// and stats screens. Entries of inactive profiles live only in the store.
type JournalService struct {
	mu        sync.Mutex
	store     repository.KV
	log       *zap.Logger
	profileID string
	entries   []models.JournalEntry
	now       func() time.Time
}

// NewJournalService constructs a JournalService persisting through store.
// No profile is active until SetActiveProfile is called.
func NewJournalService(store repository.KV, log *zap.Logger) *JournalService {
	return &JournalService{store: store, log: log, now: time.Now}
}

// SetActiveProfile swaps the in-memory collection to the given profile's
// persisted bucket. An empty profileID leaves the service with an empty,
// non-persisting collection: entries added without an active profile are
// lost on the next switch. An unreadable bucket loads as empty rather
// than failing.
func (s *JournalService) SetActiveProfile(ctx context.Context, profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profileID = profileID
	s.entries = nil
	if profileID == "" {
		return
	}

	blob, err := s.store.Get(ctx, repository.EntriesKey(profileID))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("load entries", zap.String("profile", profileID), zap.Error(err))
		}
		return
	}

	var bucket entryBucket
	if err := json.Unmarshal(blob, &bucket); err != nil || bucket.Version != bucketVersion {
		s.log.Warn("discarding unreadable entry bucket",
			zap.String("profile", profileID), zap.Error(err))
		return
	}
	s.entries = bucket.Entries
}

// AddEntry appends the entry and persists the full bucket. A zero Date
// is filled with the current time. Persistence failures are logged, not
// returned: the in-memory collection stays ahead of the store so the
// presentation layer keeps showing what the user just wrote.
func (s *JournalService) AddEntry(ctx context.Context, e models.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Date.IsZero() {
		e.Date = s.now()
	}
	s.entries = append(s.entries, e)
	s.persist(ctx)
}

// DeleteEntry removes the entry with the given id and re-persists the
// bucket. Unknown ids are a silent no-op.
func (s *JournalService) DeleteEntry(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// persist writes the active profile's full bucket. Callers hold s.mu.
// Without an active profile there is nothing to write.
func (s *JournalService) persist(ctx context.Context) {
	if s.profileID == "" {
		return
	}

	blob, err := json.Marshal(entryBucket{Version: bucketVersion, Entries: s.entries})
	if err != nil {
		s.log.Error("marshal entries", zap.String("profile", s.profileID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, repository.EntriesKey(s.profileID), blob); err != nil {
		s.log.Error("persist entries", zap.String("profile", s.profileID), zap.Error(err))
	}
}

// Entries returns the full collection in insertion order.
func (s *JournalService) Entries() []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.JournalEntry(nil), s.entries...)
}

// EntriesForType returns entries of the given type in insertion order.
func (s *JournalService) EntriesForType(t models.EntryType) []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.JournalEntry
	for _, e := range s.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// EntriesForDay returns entries whose date falls on the same local
// calendar day as day, regardless of time of day.
func (s *JournalService) EntriesForDay(day time.Time) []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := startOfDay(day)
	var out []models.JournalEntry
	for _, e := range s.entries {
		if startOfDay(e.Date).Equal(target) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesThisWeek returns entries from the current Monday-anchored
// calendar week, [monday 00:00, next monday 00:00) local time. The same
// window drives WeeklyActivity, so the weekly list always matches the
// sum of the per-day buckets.
func (s *JournalService) EntriesThisWeek() []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := mondayOf(s.now())
	end := start.AddDate(0, 0, 7)
	var out []models.JournalEntry
	for _, e := range s.entries {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

// CurrentStreak counts consecutive local calendar days, walking backward
// from today, that have at least one entry. A day without entries ends
// the walk, so a quiet today means a streak of zero.
func (s *JournalService) CurrentStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := make(map[time.Time]struct{}, len(s.entries))
	for _, e := range s.entries {
		days[startOfDay(e.Date)] = struct{}{}
	}

	streak := 0
	for day := startOfDay(s.now()); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// EntryBreakdown returns the count and share of the total for every
// entry type. Shares are zero when the collection is empty.
func (s *JournalService) EntryBreakdown() map[models.EntryType]models.TypeBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[models.EntryType]int, len(models.EntryTypes))
	for _, e := range s.entries {
		counts[e.Type]++
	}

	total := len(s.entries)
	out := make(map[models.EntryType]models.TypeBreakdown, len(models.EntryTypes))
	for _, t := range models.EntryTypes {
		b := models.TypeBreakdown{Count: counts[t]}
		if total > 0 {
			b.Share = float64(counts[t]) / float64(total)
		}
		out[t] = b
	}
	return out
}

// BestWeekday returns the name of the weekday with the most entries, or
// "N/A" when there are none. Ties resolve to the earliest weekday in
// ascending index order, Sunday first.
func (s *JournalService) BestWeekday() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts [7]int
	for _, e := range s.entries {
		counts[e.Date.In(time.Local).Weekday()]++
	}

	best, bestCount := time.Sunday, 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] > bestCount {
			best, bestCount = wd, counts[wd]
		}
	}
	if bestCount == 0 {
		return "N/A"
	}
	return best.String()
}

// WeeklyActivity returns the entry count for each day of the current
// Monday-anchored calendar week, Monday through Sunday.
func (s *JournalService) WeeklyActivity() []models.DayActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := mondayOf(s.now())
	out := make([]models.DayActivity, 7)
	for i := range out {
		out[i].Day = start.AddDate(0, 0, i)
	}
	for _, e := range s.entries {
		d := startOfDay(e.Date)
		for i := range out {
			if out[i].Day.Equal(d) {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// startOfDay returns 00:00 local time on t's calendar day.
func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// mondayOf returns 00:00 local time on the Monday of t's calendar week.
func mondayOf(t time.Time) time.Time {
	day := startOfDay(t)
	// Go weekdays run Sunday=0..Saturday=6; shift so Monday maps to 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
