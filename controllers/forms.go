// path: controllers/forms.go
package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/lgnappsweb/qruuei-sub000/forms"
	"github.com/lgnappsweb/qruuei-sub000/models"
)

// HandleListForms returns the form catalog, in menu order.
func (a *API) HandleListForms(c *fiber.Ctx) error {
	items := make([]models.FormSummary, 0, len(forms.Catalog()))
	for _, s := range forms.Catalog() {
		items = append(items, models.FormSummary{
			Path:          s.Path,
			Title:         s.Title,
			CodOcorrencia: s.CodOcorrencia,
		})
	}
	return c.JSON(fiber.Map{"ok": true, "items": items})
}

// HandleGetForm returns the full declarative schema of one form.
func (a *API) HandleGetForm(c *fiber.Ctx) error {
	schema, ok := forms.ByPath(c.Params("path"))
	if !ok {
		return notFound(c, "unknown form: "+c.Params("path"))
	}
	return c.JSON(fiber.Map{"ok": true, "form": schema})
}

// HandleListDatasets returns the names of the static reference datasets.
func (a *API) HandleListDatasets(c *fiber.Ctx) error {
	names := make([]string, 0)
	for name := range forms.Datasets() {
		names = append(names, name)
	}
	sort.Strings(names)
	return c.JSON(fiber.Map{"ok": true, "items": names})
}

// HandleGetDataset scans one dataset, filtered by the q query param.
func (a *API) HandleGetDataset(c *fiber.Ctx) error {
	entries, ok := forms.Search(c.Params("name"), c.Query("q"))
	if !ok {
		return notFound(c, "unknown dataset: "+c.Params("name"))
	}
	return c.JSON(fiber.Map{"ok": true, "items": entries})
}
