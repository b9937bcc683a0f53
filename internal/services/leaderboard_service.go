package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"salesboard/internal/models"
)

// Стадия сделки, которая засчитывается в лидерборд.
const closedWonStage = "closedwon"

// TimeframeStart — начало окна для таймфрейма относительно now.
// Неизвестное значение оставляет начало в now (ничего не попадает в окно) —
// поведение сохранено специально, см. DESIGN.md.
func TimeframeStart(timeframe string, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch timeframe {
	case models.TimeframeDay:
		return midnight
	case models.TimeframeWeek:
		// ближайшее прошедшее воскресенье
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	case models.TimeframeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case models.TimeframeQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	case models.TimeframeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return now
}

// BuildLeaderboard — детерминированная агрегация: считаются только closed-won
// сделки, закрытые не раньше начала окна. Каждый владелец попадает в выдачу
// ровно один раз, в том числе с нулём сделок. Сортировка по очкам убывает и
// стабильна: при равенстве сохраняется порядок владельцев на входе.
func BuildLeaderboard(owners []models.Owner, deals []models.Deal, timeframe string, now time.Time) []models.LeaderboardEntry {
	start := TimeframeStart(timeframe, now)

	dealsByOwner := make(map[string][]models.Deal)
	for _, deal := range deals {
		if deal.Properties.DealStage != closedWonStage {
			continue
		}
		closeDate, err := time.Parse(time.RFC3339, deal.Properties.CloseDate)
		if err != nil {
			continue
		}
		if closeDate.Before(start) {
			continue
		}
		ownerID := deal.Properties.HubspotOwnerID
		dealsByOwner[ownerID] = append(dealsByOwner[ownerID], deal)
	}

	entries := make([]models.LeaderboardEntry, 0, len(owners))
	for _, owner := range owners {
		ownerDeals := dealsByOwner[owner.ID]
		var total float64
		for _, deal := range ownerDeals {
			// нечисловая сумма даёт 0, а не ошибку
			amount, err := strconv.ParseFloat(deal.Properties.Amount, 64)
			if err == nil {
				total += amount
			}
		}
		entries = append(entries, models.LeaderboardEntry{
			OwnerID: owner.ID,
			Name:    strings.TrimSpace(owner.FirstName + " " + owner.LastName),
			Email:   owner.Email,
			Deals:   len(ownerDeals),
			Amount:  total,
			Points:  float64(len(ownerDeals))*100 + total*0.01,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}
