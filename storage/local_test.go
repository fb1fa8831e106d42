// path: storage/local_test.go
package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgnappsweb/qruuei-sub000/models"
)

func newReport(cod, rodovia string) models.StoredReport {
	return models.StoredReport{
		CodOcorrencia: cod,
		Type:          "teste",
		Rodovia:       rodovia,
		KM:            "KM 10",
		Status:        models.StatusFinalized,
		FullReport:    map[string]any{"rodovia": rodovia},
	}
}

func TestLocalCreateAssignsIDAndTimestamp(t *testing.T) {
	b := NewLocalBackend(NewMemoryKV())
	ctx := context.Background()

	id, err := b.Create(ctx, newReport("TO01", "MS-112"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rep, err := b.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rep.ID)
	assert.False(t, rep.Timestamp.IsZero())
}

func TestLocalListNewestFirst(t *testing.T) {
	b := NewLocalBackend(NewMemoryKV())
	ctx := context.Background()

	first, err := b.Create(ctx, newReport("TO01", "MS-112"))
	require.NoError(t, err)
	second, err := b.Create(ctx, newReport("TO02", "MS-040"))
	require.NoError(t, err)

	items, next, err := b.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0].ID)
	assert.Equal(t, first, items[1].ID)
	assert.Empty(t, next)
}

func TestLocalListFilters(t *testing.T) {
	b := NewLocalBackend(NewMemoryKV())
	ctx := context.Background()

	_, err := b.Create(ctx, newReport("TO01", "MS-112"))
	require.NoError(t, err)
	_, err = b.Create(ctx, newReport("TO02", "MS-040"))
	require.NoError(t, err)

	items, _, err := b.List(ctx, ListFilter{CodOcorrencia: "TO01"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TO01", items[0].CodOcorrencia)

	items, _, err = b.List(ctx, ListFilter{Rodovia: "ms-040"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "MS-040", items[0].Rodovia)

	items, _, err = b.List(ctx, ListFilter{To: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLocalUpdatePreservesIDAndTimestamp(t *testing.T) {
	b := NewLocalBackend(NewMemoryKV())
	ctx := context.Background()

	id, err := b.Create(ctx, newReport("TO01", "MS-112"))
	require.NoError(t, err)
	created, err := b.Get(ctx, id)
	require.NoError(t, err)

	changed := newReport("TO01", "MS-156")
	changed.NumeroOcorrencia = "2026-00099"
	require.NoError(t, b.Update(ctx, id, changed))

	rep, err := b.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rep.ID)
	assert.Equal(t, created.Timestamp, rep.Timestamp)
	assert.Equal(t, "MS-156", rep.Rodovia)
	assert.Equal(t, "2026-00099", rep.NumeroOcorrencia)
}

func TestLocalUpdateUnknownIDFails(t *testing.T) {
	b := NewLocalBackend(NewMemoryKV())
	err := b.Update(context.Background(), "nao-existe", newReport("TO01", "MS-112"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreIsOneKeyHoldingTheWholeList(t *testing.T) {
	kv := NewMemoryKV()
	b := NewLocalBackend(kv)
	ctx := context.Background()

	_, err := b.Create(ctx, newReport("TO01", "MS-112"))
	require.NoError(t, err)
	_, err = b.Create(ctx, newReport("TO02", "MS-040"))
	require.NoError(t, err)

	raw, ok, err := kv.Get(reportsKey)
	require.NoError(t, err)
	require.True(t, ok)

	var list []models.StoredReport
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 2)
}

func TestLocalListPagination(t *testing.T) {
	b := NewLocalBackend(NewMemoryKV())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := b.Create(ctx, newReport("TO01", "MS-112"))
		require.NoError(t, err)
	}

	page1, next, err := b.List(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotEmpty(t, next)

	page2, _, err := b.List(ctx, ListFilter{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.NotEqual(t, page1[1].ID, page2[0].ID)
}
