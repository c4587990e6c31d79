package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/services"
)

func SetupHistoryRoutes(app *fiber.App, historyService *services.HistoryService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/history", historyService.GetHistory)
	secured.Get("/history/daily-stats", historyService.GetDailyStats)
	secured.Get("/history/past-revenue", historyService.GetPastRevenue)
}
