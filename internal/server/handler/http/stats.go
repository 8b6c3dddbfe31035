package http

import (
	"net/http"

	"github.com/akulikov/winslog/internal/models"
)

// Stats defines the analytics queries behind the stats screen.
type Stats interface {
	// CurrentStreak counts consecutive days with entries up to today.
	CurrentStreak() int
	// EntryBreakdown returns per-type counts and shares.
	EntryBreakdown() map[models.EntryType]models.TypeBreakdown
	// BestWeekday names the weekday with the most entries, or "N/A".
	BestWeekday() string
	// WeeklyActivity returns per-day counts for the current week.
	WeeklyActivity() []models.DayActivity
}

// StatsHandler handles HTTP requests for the analytics dashboard.
type StatsHandler struct {
	Stats Stats
}

// Get handles GET /api/stats, returning every figure the dashboard
// renders in one payload.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Streak      int                                        `json:"streak"`
		Breakdown   map[models.EntryType]models.TypeBreakdown `json:"breakdown"`
		BestWeekday string                                     `json:"best_weekday"`
		Week        []models.DayActivity                       `json:"week"`
	}{
		Streak:      h.Stats.CurrentStreak(),
		Breakdown:   h.Stats.EntryBreakdown(),
		BestWeekday: h.Stats.BestWeekday(),
		Week:        h.Stats.WeeklyActivity(),
	}

	writeJSON(w, http.StatusOK, resp)
}
