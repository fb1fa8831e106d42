// path: storage/adapter_test.go
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/models"
)

type countingBackend struct {
	creates  int
	updates  int
	failWith error
}

func (b *countingBackend) Create(context.Context, models.StoredReport) (string, error) {
	b.creates++
	if b.failWith != nil {
		return "", b.failWith
	}
	return "novo-id", nil
}

func (b *countingBackend) Update(context.Context, string, models.StoredReport) error {
	b.updates++
	return b.failWith
}

func (b *countingBackend) Get(context.Context, string) (models.StoredReport, error) {
	return models.StoredReport{}, ErrNotFound
}

func (b *countingBackend) List(context.Context, ListFilter) ([]models.StoredReport, string, error) {
	return nil, "", nil
}

func TestSaveWithoutEditingIDCreates(t *testing.T) {
	b := &countingBackend{}
	a := NewAdapter(b, zap.NewNop())

	id, err := a.Save(context.Background(), models.StoredReport{CodOcorrencia: "TO01"}, "")
	require.NoError(t, err)
	assert.Equal(t, "novo-id", id)
	assert.Equal(t, 1, b.creates)
	assert.Equal(t, 0, b.updates)
}

func TestSaveWithEditingIDUpdates(t *testing.T) {
	b := &countingBackend{}
	a := NewAdapter(b, zap.NewNop())

	id, err := a.Save(context.Background(), models.StoredReport{CodOcorrencia: "TO01"}, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, 0, b.creates)
	assert.Equal(t, 1, b.updates)
}

func TestSavePropagatesBackendFailure(t *testing.T) {
	b := &countingBackend{failWith: ErrUnavailable}
	a := NewAdapter(b, zap.NewNop())

	_, err := a.Save(context.Background(), models.StoredReport{}, "")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
