// path: controllers/helpers.go
package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/session"
	"github.com/lgnappsweb/qruuei-sub000/storage"
)

// API bundles the handlers' collaborators so routes can be registered
// against any backend/manager pair (a real one in main, fakes in tests).
type API struct {
	Manager *session.Manager
	Backend storage.Backend
	Log     *zap.Logger
}

type ErrorResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func badReq(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResp{OK: false, Error: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResp{OK: false, Error: msg})
}

func serverErr(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResp{OK: false, Error: err.Error()})
}

// storageErr maps the persistence failure taxonomy onto response codes.
// Everything here is retryable from the client's point of view.
func storageErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return notFound(c, "report not found")
	case errors.Is(err, storage.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResp{OK: false, Error: "user not authenticated"})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResp{OK: false, Error: err.Error()})
	}
}

// currentUserID reads the opaque user id the auth collaborator injects.
func currentUserID(c *fiber.Ctx) string {
	return c.Get("X-User-Id")
}
