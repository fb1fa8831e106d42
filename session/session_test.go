// path: session/session_test.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/models"
	"github.com/lgnappsweb/qruuei-sub000/report"
	"github.com/lgnappsweb/qruuei-sub000/storage"
)

func testSchema() *models.FormSchema {
	return &models.FormSchema{
		Path:          "veiculo-abandonado",
		Title:         "VEÍCULO ABANDONADO (TO01)",
		CodOcorrencia: "TO01",
		Fields: []models.Field{
			{Key: "rodovia", Kind: models.KindText, Required: true},
			{Key: "qth", Kind: models.KindText, Label: "QTH"},
			{Key: "vtrApoio", Kind: models.KindBoolean},
			{Key: "providencias", Kind: models.KindMultiSelect},
			{Key: "veiculos", Kind: models.KindGroup, Label: "Veículo", Item: []models.Field{
				{Key: "placa", Kind: models.KindText},
			}},
		},
		Sections: []models.Section{
			{Title: "Dados Gerais", Fields: []string{"rodovia", "qth"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
		},
	}
}

// fakeBackend lets tests fail or stall the persistence call at will.
type fakeBackend struct {
	mu      sync.Mutex
	creates int
	updates int
	fail    error
	block   chan struct{}
}

func (b *fakeBackend) Create(context.Context, models.StoredReport) (string, error) {
	if b.block != nil {
		<-b.block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.creates++
	if b.fail != nil {
		return "", b.fail
	}
	return "id-1", nil
}

func (b *fakeBackend) Update(context.Context, string, models.StoredReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates++
	return b.fail
}

func (b *fakeBackend) Get(context.Context, string) (models.StoredReport, error) {
	return models.StoredReport{}, storage.ErrNotFound
}

func (b *fakeBackend) List(context.Context, storage.ListFilter) ([]models.StoredReport, string, error) {
	return nil, "", nil
}

func newTestManager(b storage.Backend) *Manager {
	log := zap.NewNop()
	return NewManager(storage.NewMemoryKV(), storage.NewAdapter(b, log), log)
}

func TestOpenStartsEditingWithEmptyDraft(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	assert.Equal(t, StateEditing, s.State)
	assert.Empty(t, s.EditingID)
	assert.Equal(t, "", s.Draft["rodovia"])
	assert.Equal(t, false, s.Draft["vtrApoio"])
	assert.Equal(t, []any{}, s.Draft["veiculos"])
}

func TestSubmitPreviewRejectsMissingRequiredFields(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	s, missing, err := m.SubmitPreview(s.ID, map[string]any{"qth": "KM 2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rodovia"}, missing)
	assert.Equal(t, StateEditing, s.State)
	assert.Nil(t, s.Preview)
}

func TestSubmitPreviewNormalizesDraft(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	s, missing, err := m.SubmitPreview(s.ID, map[string]any{
		"rodovia":  "MS-112",
		"qth":      "",
		"veiculos": []any{},
	})
	require.NoError(t, err)
	require.Empty(t, missing)
	assert.Equal(t, StatePreviewing, s.State)
	assert.Equal(t, "MS-112", s.Preview["rodovia"])
	assert.Equal(t, report.Sentinel, s.Preview["qth"])
	assert.Equal(t, report.Sentinel, s.Preview["veiculos"])
}

func TestBackToEditKeepsDraft(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	draft := map[string]any{"rodovia": "MS-112", "qth": "KM 5"}
	_, _, err := m.SubmitPreview(s.ID, draft)
	require.NoError(t, err)

	s, err = m.BackToEdit(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, s.State)
	assert.Nil(t, s.Preview)
	assert.Equal(t, "MS-112", s.Draft["rodovia"])
}

func TestConfirmCreatesAndClosesSession(t *testing.T) {
	b := &fakeBackend{}
	m := newTestManager(b)
	s := m.Open(testSchema())

	_, _, err := m.SubmitPreview(s.ID, map[string]any{"rodovia": "MS-112", "qth": "KM 15+200"})
	require.NoError(t, err)

	id, err := m.Confirm(context.Background(), s.ID, "2024-00042", "")
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, 1, b.creates)
	assert.Equal(t, 0, b.updates)

	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmWithoutTrackingNumberStoresSentinel(t *testing.T) {
	var saved models.StoredReport
	b := &recordingBackend{}
	m := newTestManager(b)
	s := m.Open(testSchema())

	_, _, err := m.SubmitPreview(s.ID, map[string]any{"rodovia": "MS-112"})
	require.NoError(t, err)
	_, err = m.Confirm(context.Background(), s.ID, "", "")
	require.NoError(t, err)

	saved = b.last
	assert.Equal(t, report.Sentinel, saved.NumeroOcorrencia)
	assert.Equal(t, "MS-112", saved.Rodovia)
	assert.Equal(t, report.Sentinel, saved.KM)
	assert.Equal(t, models.StatusFinalized, saved.Status)
	assert.Equal(t, "veiculo-abandonado", saved.FormPath)
}

func TestConfirmRequiresTrackingNumberWhenFlagged(t *testing.T) {
	schema := testSchema()
	schema.RequireTrackingNumber = true
	m := newTestManager(&fakeBackend{})
	s := m.Open(schema)

	_, _, err := m.SubmitPreview(s.ID, map[string]any{"rodovia": "MS-112"})
	require.NoError(t, err)
	_, err = m.Confirm(context.Background(), s.ID, "", "")
	assert.ErrorIs(t, err, ErrTrackingRequired)
}

func TestConfirmFailureReturnsToPreviewingAndRetries(t *testing.T) {
	b := &fakeBackend{fail: storage.ErrUnavailable}
	m := newTestManager(b)
	s := m.Open(testSchema())

	_, _, err := m.SubmitPreview(s.ID, map[string]any{"rodovia": "MS-112"})
	require.NoError(t, err)

	_, err = m.Confirm(context.Background(), s.ID, "2024-00042", "")
	require.ErrorIs(t, err, storage.ErrUnavailable)

	s, err = m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePreviewing, s.State)

	b.mu.Lock()
	b.fail = nil
	b.mu.Unlock()
	_, err = m.Confirm(context.Background(), s.ID, "2024-00042", "")
	assert.NoError(t, err)
}

func TestDuplicateConfirmWhileSavingIsRejected(t *testing.T) {
	b := &fakeBackend{block: make(chan struct{})}
	m := newTestManager(b)
	s := m.Open(testSchema())

	_, _, err := m.SubmitPreview(s.ID, map[string]any{"rodovia": "MS-112"})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := m.Confirm(context.Background(), s.ID, "2024-00042", "")
		done <- err
	}()

	require.Eventually(t, func() bool {
		cur, err := m.Get(s.ID)
		return err == nil && cur.State == StateSaving
	}, time.Second, 5*time.Millisecond)

	_, err = m.Confirm(context.Background(), s.ID, "2024-00042", "")
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(b.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, b.creates)
}

func TestGetReturnsCopyIsolatedFromMutation(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	draft := map[string]any{"rodovia": "MS-112", "qth": "KM 5"}
	_, _, err := m.SubmitPreview(s.ID, draft)
	require.NoError(t, err)

	snap, err := m.Get(s.ID)
	require.NoError(t, err)
	require.Equal(t, StatePreviewing, snap.State)

	_, err = m.BackToEdit(s.ID)
	require.NoError(t, err)

	// The earlier snapshot must not observe the later transition.
	assert.Equal(t, StatePreviewing, snap.State)
	assert.Equal(t, "MS-112", snap.Preview["rodovia"])
}

// Marshals snapshots while another goroutine flips the session between
// editing and previewing; run under the race detector this fails if Get
// ever hands out the live struct.
func TestConcurrentGetAndMutate(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())
	draft := map[string]any{"rodovia": "MS-112", "qth": "KM 5"}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			_, _, err := m.SubmitPreview(s.ID, draft)
			assert.NoError(t, err)
			_, err = m.BackToEdit(s.ID)
			assert.NoError(t, err)
		}
	}()

	for i := 0; i < 200; i++ {
		cur, err := m.Get(s.ID)
		require.NoError(t, err)
		_, err = json.Marshal(cur)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
}

func TestShareNeedsTrackingNumber(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	_, _, err := m.SubmitPreview(s.ID, map[string]any{"rodovia": "MS-112", "qth": "KM 15+200"})
	require.NoError(t, err)

	_, _, err = m.Share(s.ID, "")
	assert.ErrorIs(t, err, ErrTrackingRequired)

	text, link, err := m.Share(s.ID, "2024-00042")
	require.NoError(t, err)
	assert.Contains(t, text, "*RODOVIA:* MS-112")
	assert.Contains(t, link, "https://api.whatsapp.com/send?text=")
}

func TestConfirmInEditingIsRejected(t *testing.T) {
	m := newTestManager(&fakeBackend{})
	s := m.Open(testSchema())

	_, err := m.Confirm(context.Background(), s.ID, "", "")
	assert.True(t, errors.Is(err, ErrBadState))
}

// recordingBackend captures the last report handed to it.
type recordingBackend struct {
	mu   sync.Mutex
	last models.StoredReport
}

func (b *recordingBackend) Create(_ context.Context, rep models.StoredReport) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = rep
	return "id-1", nil
}

func (b *recordingBackend) Update(_ context.Context, _ string, rep models.StoredReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = rep
	return nil
}

func (b *recordingBackend) Get(context.Context, string) (models.StoredReport, error) {
	return models.StoredReport{}, storage.ErrNotFound
}

func (b *recordingBackend) List(context.Context, storage.ListFilter) ([]models.StoredReport, string, error) {
	return nil, "", nil
}
