package models

// Таймфреймы лидерборда.
const (
	TimeframeDay     = "day"
	TimeframeWeek    = "week"
	TimeframeMonth   = "month"
	TimeframeQuarter = "quarter"
	TimeframeYear    = "year"
)

// LeaderboardEntry — строка лидерборда, пересчитывается на каждый запрос.
type LeaderboardEntry struct {
	OwnerID string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Deals   int     `json:"deals"`
	Amount  float64 `json:"amount"`
	Points  float64 `json:"points"`
}
