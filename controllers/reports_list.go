// path: controllers/reports_list.go
package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/lgnappsweb/qruuei-sub000/models"
	"github.com/lgnappsweb/qruuei-sub000/storage"
)

type ReportListResp struct {
	OK         bool                  `json:"ok"`
	Items      []models.StoredReport `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// HandleListReports lists stored reports, newest first, with optional
// filters and cursor pagination.
func (a *API) HandleListReports(c *fiber.Ctx) error {
	f, err := parseListFilter(c)
	if err != nil {
		return badReq(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	items, next, lerr := a.Backend.List(ctx, f)
	if lerr != nil {
		return storageErr(c, lerr)
	}
	if items == nil {
		items = []models.StoredReport{}
	}
	return c.JSON(ReportListResp{OK: true, Items: items, NextCursor: next})
}

// HandleGetReport returns a single stored report.
func (a *API) HandleGetReport(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	rep, err := a.Backend.Get(ctx, c.Params("id"))
	if err != nil {
		return storageErr(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "report": rep})
}

// HandleReopenReport writes the single-use edit marker so the report's
// originating form picks it up on its next mount.
func (a *API) HandleReopenReport(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	rep, err := a.Backend.Get(ctx, c.Params("id"))
	if err != nil {
		return storageErr(c, err)
	}
	if err := a.Manager.WriteMarker(rep); err != nil {
		return serverErr(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "formPath": rep.FormPath})
}

// HandleExportReports streams the filtered report list as a spreadsheet.
func (a *API) HandleExportReports(c *fiber.Ctx) error {
	f, err := parseListFilter(c)
	if err != nil {
		return badReq(c, err.Error())
	}
	f.Limit = 1000

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	items, _, lerr := a.Backend.List(ctx, f)
	if lerr != nil {
		return storageErr(c, lerr)
	}

	x := excelize.NewFile()
	defer x.Close()
	sheet := x.GetSheetName(0)

	header := []any{"Código", "Tipo", "Rodovia", "KM", "Data", "Status", "Nº da Ocorrência"}
	if err := x.SetSheetRow(sheet, "A1", &header); err != nil {
		return serverErr(c, err)
	}
	for i, rep := range items {
		row := []any{
			rep.CodOcorrencia,
			rep.Type,
			rep.Rodovia,
			rep.KM,
			rep.Timestamp.UTC().Format(time.RFC3339),
			rep.Status,
			rep.NumeroOcorrencia,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return serverErr(c, err)
		}
		if err := x.SetSheetRow(sheet, cell, &row); err != nil {
			return serverErr(c, err)
		}
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return serverErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ocorrencias.xlsx"`)
	return c.Send(buf.Bytes())
}

func parseListFilter(c *fiber.Ctx) (storage.ListFilter, error) {
	f := storage.ListFilter{
		CodOcorrencia: c.Query("cod"),
		Rodovia:       c.Query("rodovia"),
		Cursor:        c.Query("cursor"),
		Limit:         20,
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < 1 {
				n = 1
			}
			if n > 100 {
				n = 100
			}
			f.Limit = n
		}
	}
	if sd := c.Query("start_date"); sd != "" {
		t, err := time.Parse(time.RFC3339, sd)
		if err != nil {
			return f, errInvalidDate("start_date")
		}
		f.From = t
	}
	if ed := c.Query("end_date"); ed != "" {
		t, err := time.Parse(time.RFC3339, ed)
		if err != nil {
			return f, errInvalidDate("end_date")
		}
		f.To = t
	}
	return f, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string { return "invalid " + string(e) + " (RFC3339)" }
