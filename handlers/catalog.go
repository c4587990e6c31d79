package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/services"
)

func SetupCatalogRoutes(app *fiber.App, catalogService *services.CatalogService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/catalogs", catalogService.GetCatalogs)
	secured.Put("/catalogs/:kind", catalogService.ReplaceCatalog)
}
