package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesboard/internal/models"
)

func deal(owner, stage, closeDate, amount string) models.Deal {
	return models.Deal{
		Properties: models.DealProperties{
			Amount:         amount,
			CloseDate:      closeDate,
			DealStage:      stage,
			HubspotOwnerID: owner,
		},
	}
}

func TestTimeframeStart(t *testing.T) {
	// пятница
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	t.Run("day", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeDay, now))
	})
	t.Run("week starts on most recent Sunday", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeWeek, now))
	})
	t.Run("week on a Sunday is the same day", func(t *testing.T) {
		sunday := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeWeek, sunday))
	})
	t.Run("month", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeMonth, now))
	})
	t.Run("quarter", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeQuarter, now))
		may := time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeQuarter, may))
	})
	t.Run("year", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeframeStart(models.TimeframeYear, now))
	})
	t.Run("unknown timeframe stays at now", func(t *testing.T) {
		// сохранённый фолбэк: окно нулевой ширины
		assert.Equal(t, now, TimeframeStart("fortnight", now))
	})
}

func TestBuildLeaderboard_DayWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	owners := []models.Owner{{ID: "1", FirstName: "Alice", LastName: "Reed", Email: "alice@acme.test"}}
	deals := []models.Deal{
		deal("1", "closedwon", "2024-03-15T10:00:00Z", "500"), // внутри окна
		deal("1", "closedwon", "2024-03-14T23:00:00Z", "900"), // вчера — мимо
	}

	entries := BuildLeaderboard(owners, deals, models.TimeframeDay, now)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Deals)
	assert.Equal(t, 500.0, entries[0].Amount)
	assert.Equal(t, 100+500*0.01, entries[0].Points)
	assert.Equal(t, "Alice Reed", entries[0].Name)
}

func TestBuildLeaderboard_FiltersAndScores(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	owners := []models.Owner{
		{ID: "1", FirstName: "Alice"},
		{ID: "2", FirstName: "Bob"},
		{ID: "3", FirstName: "Carol"},
	}
	deals := []models.Deal{
		deal("1", "closedwon", "2024-03-14T10:00:00Z", "1000"),
		deal("1", "closedwon", "2024-03-13T10:00:00Z", "not-a-number"), // сумма = 0
		deal("2", "closedwon", "2024-03-12T10:00:00Z", "250000"),
		deal("2", "qualifiedtobuy", "2024-03-12T10:00:00Z", "99999"), // не closed-won
		deal("3", "closedwon", "garbage-date", "100"),                // нечитаемая дата — мимо
	}

	entries := BuildLeaderboard(owners, deals, models.TimeframeWeek, now)
	require.Len(t, entries, 3)

	// Bob: 1 сделка, 250000 -> 100 + 2500 очков; Alice: 2 сделки -> 200 + 10
	assert.Equal(t, "2", entries[0].OwnerID)
	assert.Equal(t, 2600.0, entries[0].Points)
	assert.Equal(t, "1", entries[1].OwnerID)
	assert.Equal(t, 2, entries[1].Deals)
	assert.Equal(t, 1000.0, entries[1].Amount)
	assert.Equal(t, 210.0, entries[1].Points)

	// владелец без сделок остаётся в выдаче с нулём
	assert.Equal(t, "3", entries[2].OwnerID)
	assert.Zero(t, entries[2].Deals)
	assert.Zero(t, entries[2].Points)
}

func TestBuildLeaderboard_StableOrderAndIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	owners := []models.Owner{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	deals := []models.Deal{
		deal("a", "closedwon", "2024-03-14T10:00:00Z", "100"),
		deal("b", "closedwon", "2024-03-14T11:00:00Z", "100"),
	}

	first := BuildLeaderboard(owners, deals, models.TimeframeWeek, now)
	require.Len(t, first, 3)
	// равные очки: порядок владельцев на входе сохраняется
	assert.Equal(t, "a", first[0].OwnerID)
	assert.Equal(t, "b", first[1].OwnerID)
	assert.Equal(t, "c", first[2].OwnerID)

	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Points, first[i].Points)
	}

	second := BuildLeaderboard(owners, deals, models.TimeframeWeek, now)
	assert.Equal(t, first, second)
}

func TestBuildLeaderboard_NoOwners(t *testing.T) {
	entries := BuildLeaderboard(nil, nil, models.TimeframeWeek, time.Now())
	assert.Empty(t, entries)
}
