package services

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/middleware"
)

// HistoryService serves the archived session log and the revenue views
// derived from it.
type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// GetHistory returns archived sessions newest first.
func (s *HistoryService) GetHistory(c *fiber.Ctx) error {
	sessions, err := LoadHistory(s.DB, middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load history"})
	}
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

// GetDailyStats aggregates today's archived sessions: revenue and the set
// of distinct paying players. The guest entry counts by its head count.
func (s *HistoryService) GetDailyStats(c *fiber.Ctx) error {
	sessions, err := LoadHistory(s.DB, middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load history"})
	}

	today := time.Now().Format("2006-01-02")
	var revenue int64
	var sessionCount int
	seen := map[string]bool{}
	playerCount := 0
	for _, session := range sessions {
		if session.Date.Format("2006-01-02") != today {
			continue
		}
		sessionCount++
		revenue += session.Summary.GrandTotal
		for _, p := range session.Players {
			if p.IsGuest {
				playerCount += p.Quantity
				continue
			}
			if !seen[p.ID] {
				seen[p.ID] = true
				playerCount++
			}
		}
	}

	return c.JSON(fiber.Map{
		"date":     today,
		"revenue":  revenue,
		"sessions": sessionCount,
		"players":  playerCount,
	})
}

type dayRevenue struct {
	Date     string `json:"date"`
	Revenue  int64  `json:"revenue"`
	Sessions int    `json:"sessions"`
}

// GetPastRevenue groups all archived sessions by calendar day, newest day
// first.
func (s *HistoryService) GetPastRevenue(c *fiber.Ctx) error {
	sessions, err := LoadHistory(s.DB, middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load history"})
	}

	byDay := map[string]*dayRevenue{}
	for _, session := range sessions {
		day := session.Date.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &dayRevenue{Date: day}
			byDay[day] = entry
		}
		entry.Revenue += session.Summary.GrandTotal
		entry.Sessions++
	}

	days := make([]dayRevenue, 0, len(byDay))
	for _, entry := range byDay {
		days = append(days, *entry)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	return c.JSON(fiber.Map{"days": days})
}
