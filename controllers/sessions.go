// path: controllers/sessions.go
package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lgnappsweb/qruuei-sub000/forms"
	"github.com/lgnappsweb/qruuei-sub000/models"
	"github.com/lgnappsweb/qruuei-sub000/report"
	"github.com/lgnappsweb/qruuei-sub000/session"
)

type sessionResp struct {
	OK      bool                    `json:"ok"`
	Session *session.Session        `json:"session"`
	Preview []report.PreviewSection `json:"preview,omitempty"`
	// Missing carries the required fields a rejected draft left blank.
	Missing []string `json:"missingFields,omitempty"`
}

// HandleOpenSession starts a form session; the edit-resume loader runs here,
// before any interaction, and may seed the draft from a stored report.
func (a *API) HandleOpenSession(c *fiber.Ctx) error {
	var p models.OpenSessionPayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}
	schema, ok := forms.ByPath(p.FormPath)
	if !ok {
		return notFound(c, "unknown form: "+p.FormPath)
	}
	s := a.Manager.Open(schema)
	return c.JSON(sessionResp{OK: true, Session: s})
}

// HandleGetSession returns a session snapshot, with the rendered preview
// while the session is previewing.
func (a *API) HandleGetSession(c *fiber.Ctx) error {
	s, err := a.Manager.Get(c.Params("id"))
	if err != nil {
		return notFound(c, "unknown session")
	}
	resp := sessionResp{OK: true, Session: s}
	if s.State == session.StatePreviewing {
		resp.Preview = report.FormatPreview(s.Preview, s.Schema())
	}
	return c.JSON(resp)
}

// HandleSubmitPreview validates and normalizes the draft. A validation
// failure answers 422 with the offending fields and leaves the session in
// editing.
func (a *API) HandleSubmitPreview(c *fiber.Ctx) error {
	var p models.PreviewPayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}
	s, missing, err := a.Manager.SubmitPreview(c.Params("id"), p.Draft)
	if errors.Is(err, session.ErrNotFound) {
		return notFound(c, "unknown session")
	}
	if err != nil {
		return conflict(c, err)
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(sessionResp{OK: false, Session: s, Missing: missing})
	}
	return c.JSON(sessionResp{
		OK:      true,
		Session: s,
		Preview: report.FormatPreview(s.Preview, s.Schema()),
	})
}

// HandleBackToEdit discards the preview and returns to editing; the typed
// draft survives untouched.
func (a *API) HandleBackToEdit(c *fiber.Ctx) error {
	s, err := a.Manager.BackToEdit(c.Params("id"))
	if errors.Is(err, session.ErrNotFound) {
		return notFound(c, "unknown session")
	}
	if err != nil {
		return conflict(c, err)
	}
	return c.JSON(sessionResp{OK: true, Session: s})
}

// HandleShare renders the share text and messaging-app link for the current
// preview. Sharing always needs a tracking number.
func (a *API) HandleShare(c *fiber.Ctx) error {
	var p models.ConfirmPayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}
	text, link, err := a.Manager.Share(c.Params("id"), p.NumeroOcorrencia)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return notFound(c, "unknown session")
	case errors.Is(err, session.ErrTrackingRequired):
		return badReq(c, "numeroOcorrencia is required to share")
	case err != nil:
		return conflict(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "text": text, "url": link})
}

// HandleConfirm persists the previewed report. A second confirm while the
// save is outstanding answers 409 instead of double-submitting; a backend
// failure leaves the session previewing so the operator can retry.
func (a *API) HandleConfirm(c *fiber.Ctx) error {
	var p models.ConfirmPayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	id, err := a.Manager.Confirm(ctx, c.Params("id"), p.NumeroOcorrencia, currentUserID(c))
	switch {
	case errors.Is(err, session.ErrNotFound):
		return notFound(c, "unknown session")
	case errors.Is(err, session.ErrTrackingRequired):
		return badReq(c, "numeroOcorrencia is required for this form")
	case errors.Is(err, session.ErrSaveInFlight), errors.Is(err, session.ErrBadState):
		return conflict(c, err)
	case err != nil:
		return storageErr(c, err)
	}
	return c.JSON(models.SaveReportResp{OK: true, ID: id})
}

func conflict(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResp{OK: false, Error: err.Error()})
}
