package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/services"
)

func SetupSessionRoutes(app *fiber.App, sessionService *services.SessionService) {
	// 🔐 Every route needs a resolved user context
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Live session view
	secured.Get("/session", sessionService.GetSession)
	secured.Post("/session/save", sessionService.SaveSession)

	// Roster
	secured.Post("/players", sessionService.AddPlayer)
	secured.Delete("/players/:id", sessionService.RemovePlayer)
	secured.Put("/players/:id", sessionService.UpdatePlayerInfo)
	secured.Post("/players/import", sessionService.ImportPlayers)
	secured.Get("/players/export", sessionService.ExportPlayersCSV)

	// Per-player session state
	secured.Patch("/players/:id/quantity", sessionService.UpdateQuantity)
	secured.Patch("/players/:id/consumption/:kind", sessionService.UpdateConsumption)
	secured.Put("/players/:id/adjustment", sessionService.SetAdjustment)
	secured.Patch("/players/:id/paid", sessionService.TogglePaid)
	secured.Post("/players/paid-all", sessionService.MarkAllPaid)

	// Court assignment
	secured.Post("/courts/assign", sessionService.AssignPlayer)
	secured.Post("/courts/assign-if-empty", sessionService.AssignPlayerIfEmpty)
	secured.Post("/courts/unassign", sessionService.UnassignSlot)
	secured.Post("/courts/auto-assign", sessionService.AutoAssign)
	secured.Patch("/courts/:index/game-type", sessionService.SetCourtGameType)
	secured.Patch("/courts/:index/color", sessionService.SetCourtColor)

	// Match lifecycle
	secured.Post("/courts/:index/end-match", sessionService.EndMatch)
	secured.Post("/courts/:index/confirm-result", sessionService.ConfirmResult)
	secured.Post("/courts/:index/cancel-result", sessionService.CancelResult)
}
