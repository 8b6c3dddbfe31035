package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akulikov/winslog/internal/models"
)

type mockStats struct {
	CurrentStreakFunc  func() int
	EntryBreakdownFunc func() map[models.EntryType]models.TypeBreakdown
	BestWeekdayFunc    func() string
	WeeklyActivityFunc func() []models.DayActivity
}

func (m *mockStats) CurrentStreak() int {
	if m.CurrentStreakFunc == nil {
		return 0
	}
	return m.CurrentStreakFunc()
}
func (m *mockStats) EntryBreakdown() map[models.EntryType]models.TypeBreakdown {
	if m.EntryBreakdownFunc == nil {
		return nil
	}
	return m.EntryBreakdownFunc()
}
func (m *mockStats) BestWeekday() string {
	if m.BestWeekdayFunc == nil {
		return "N/A"
	}
	return m.BestWeekdayFunc()
}
func (m *mockStats) WeeklyActivity() []models.DayActivity {
	if m.WeeklyActivityFunc == nil {
		return nil
	}
	return m.WeeklyActivityFunc()
}

func TestGetStats(t *testing.T) {
	monday := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.Local)
	stats := &mockStats{
		CurrentStreakFunc: func() int { return 4 },
		EntryBreakdownFunc: func() map[models.EntryType]models.TypeBreakdown {
			return map[models.EntryType]models.TypeBreakdown{
				models.Win:  {Count: 3, Share: 0.75},
				models.Loss: {Count: 1, Share: 0.25},
				models.Ofg:  {Count: 0, Share: 0},
			}
		},
		BestWeekdayFunc: func() string { return "Friday" },
		WeeklyActivityFunc: func() []models.DayActivity {
			return []models.DayActivity{{Day: monday, Count: 2}}
		},
	}

	entries := &EntriesHandler{Journal: &mockJournal{}}
	profiles := &ProfilesHandler{Profiles: &mockProfiles{}, Journal: &mockSwitcher{}}
	srv := httptest.NewServer(NewRouter(entries, profiles, &StatsHandler{Stats: stats}, zap.NewNop()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got struct {
		Streak      int                                        `json:"streak"`
		Breakdown   map[models.EntryType]models.TypeBreakdown `json:"breakdown"`
		BestWeekday string                                     `json:"best_weekday"`
		Week        []models.DayActivity                       `json:"week"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 4, got.Streak)
	assert.Equal(t, 3, got.Breakdown[models.Win].Count)
	assert.InDelta(t, 0.75, got.Breakdown[models.Win].Share, 1e-9)
	assert.Equal(t, "Friday", got.BestWeekday)
	require.Len(t, got.Week, 1)
	assert.Equal(t, 2, got.Week[0].Count)
}
