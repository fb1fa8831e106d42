// path: storage/local.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lgnappsweb/qruuei-sub000/models"
)

// reportsKey is the single KV key the whole local report list lives under.
const reportsKey = "relatorios"

// LocalBackend keeps every report as one JSON array under a single KV key,
// read-modify-write on each call. Identifiers are client-generated UUIDs.
// It mirrors the browser-local store the app originally persisted to.
type LocalBackend struct {
	kv KV
}

func NewLocalBackend(kv KV) *LocalBackend {
	return &LocalBackend{kv: kv}
}

func (b *LocalBackend) Create(_ context.Context, rep models.StoredReport) (string, error) {
	list, err := b.load()
	if err != nil {
		return "", err
	}
	rep.ID = uuid.NewString()
	rep.Timestamp = time.Now().UTC()
	// newest first, matching list order
	list = append([]models.StoredReport{rep}, list...)
	if err := b.store(list); err != nil {
		return "", err
	}
	return rep.ID, nil
}

func (b *LocalBackend) Update(_ context.Context, id string, rep models.StoredReport) error {
	list, err := b.load()
	if err != nil {
		return err
	}
	for i, cur := range list {
		if cur.ID != id {
			continue
		}
		rep.ID = cur.ID
		rep.Timestamp = cur.Timestamp
		list[i] = rep
		return b.store(list)
	}
	return ErrNotFound
}

func (b *LocalBackend) Get(_ context.Context, id string) (models.StoredReport, error) {
	list, err := b.load()
	if err != nil {
		return models.StoredReport{}, err
	}
	for _, rep := range list {
		if rep.ID == id {
			return rep, nil
		}
	}
	return models.StoredReport{}, ErrNotFound
}

func (b *LocalBackend) List(_ context.Context, f ListFilter) ([]models.StoredReport, string, error) {
	list, err := b.load()
	if err != nil {
		return nil, "", err
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	// the stored array is already newest-first; the cursor is the id of the
	// last item of the previous page
	start := 0
	if f.Cursor != "" {
		for i, rep := range list {
			if rep.ID == f.Cursor {
				start = i + 1
				break
			}
		}
	}
	items := make([]models.StoredReport, 0, limit)
	next := ""
	for _, rep := range list[start:] {
		if !matches(rep, f) {
			continue
		}
		if len(items) == limit {
			next = items[limit-1].ID
			break
		}
		items = append(items, rep)
	}
	return items, next, nil
}

func matches(rep models.StoredReport, f ListFilter) bool {
	if f.CodOcorrencia != "" && rep.CodOcorrencia != f.CodOcorrencia {
		return false
	}
	if f.Rodovia != "" && !strings.EqualFold(rep.Rodovia, f.Rodovia) {
		return false
	}
	if !f.From.IsZero() && rep.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && rep.Timestamp.After(f.To) {
		return false
	}
	return true
}

func (b *LocalBackend) load() ([]models.StoredReport, error) {
	raw, ok, err := b.kv.Get(reportsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return nil, nil
	}
	var list []models.StoredReport
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode report list: %w", err)
	}
	return list, nil
}

func (b *LocalBackend) store(list []models.StoredReport) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode report list: %w", err)
	}
	if err := b.kv.Set(reportsKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
