// path: storage/backend.go
package storage

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/models"
)

// Failure taxonomy. Every persistence failure is retryable; none is fatal
// to the process.
var (
	ErrUnavailable     = errors.New("storage: backend unavailable")
	ErrUnauthenticated = errors.New("storage: user not authenticated")
	ErrNotFound        = errors.New("storage: report not found")
)

// ListFilter narrows a report listing. Zero values mean "no constraint".
type ListFilter struct {
	CodOcorrencia string
	Rodovia       string
	From          time.Time
	To            time.Time
	Cursor        string
	Limit         int
}

// Backend is the minimal surface the pipeline needs from a report store, so
// the backend choice is swappable per form without touching the
// preview/confirm logic.
type Backend interface {
	Create(ctx context.Context, rep models.StoredReport) (string, error)
	Update(ctx context.Context, id string, rep models.StoredReport) error
	Get(ctx context.Context, id string) (models.StoredReport, error)
	// List returns newest-first items plus an opaque next-page cursor
	// ("" when exhausted).
	List(ctx context.Context, f ListFilter) ([]models.StoredReport, string, error)
}

// Adapter maps a confirmed report onto the backend: an update when the
// session carries an editing id, a create otherwise. An update never
// touches the record's identifier or original creation timestamp.
type Adapter struct {
	backend Backend
	log     *zap.Logger
}

func NewAdapter(backend Backend, log *zap.Logger) *Adapter {
	return &Adapter{backend: backend, log: log}
}

// Save persists a confirmed report and returns its identifier.
func (a *Adapter) Save(ctx context.Context, rep models.StoredReport, editingID string) (string, error) {
	if editingID != "" {
		if err := a.backend.Update(ctx, editingID, rep); err != nil {
			a.log.Warn("report update failed", zap.String("id", editingID), zap.Error(err))
			return "", err
		}
		a.log.Info("report updated", zap.String("id", editingID), zap.String("cod", rep.CodOcorrencia))
		return editingID, nil
	}
	id, err := a.backend.Create(ctx, rep)
	if err != nil {
		a.log.Warn("report create failed", zap.String("cod", rep.CodOcorrencia), zap.Error(err))
		return "", err
	}
	a.log.Info("report created", zap.String("id", id), zap.String("cod", rep.CodOcorrencia))
	return id, nil
}
