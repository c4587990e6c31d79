package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/services"
)

func SetupBackupRoutes(app *fiber.App, backupService *services.BackupService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/backup", backupService.GetBackup)
	secured.Post("/backup/restore", backupService.Restore)
	secured.Post("/backup/restore-auto", backupService.RestoreAuto)
}
