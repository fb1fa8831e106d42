// path: routes/routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lgnappsweb/qruuei-sub000/controllers"
)

// Register attaches all API endpoints to the app.
func Register(app *fiber.App, a *controllers.API) {
	api := app.Group("/api")

	api.Get("/forms", a.HandleListForms)
	api.Get("/forms/:path", a.HandleGetForm)

	api.Post("/sessions", a.HandleOpenSession)
	api.Get("/sessions/:id", a.HandleGetSession)
	api.Post("/sessions/:id/preview", a.HandleSubmitPreview)
	api.Post("/sessions/:id/edit", a.HandleBackToEdit)
	api.Post("/sessions/:id/share", a.HandleShare)
	api.Post("/sessions/:id/confirm", a.HandleConfirm)

	api.Get("/reports", a.HandleListReports)
	api.Get("/reports/export", a.HandleExportReports)
	api.Get("/reports/:id", a.HandleGetReport)
	api.Post("/reports/:id/reabrir", a.HandleReopenReport)

	api.Get("/datasets", a.HandleListDatasets)
	api.Get("/datasets/:name", a.HandleGetDataset)
}
