// path: session/resume_test.go
package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/models"
	"github.com/lgnappsweb/qruuei-sub000/report"
	"github.com/lgnappsweb/qruuei-sub000/storage"
)

func newResumeManager() (*Manager, storage.KV) {
	kv := storage.NewMemoryKV()
	log := zap.NewNop()
	m := NewManager(kv, storage.NewAdapter(&fakeBackend{}, log), log)
	return m, kv
}

func writeMarker(t *testing.T, kv storage.KV, marker models.EditSessionMarker) {
	t.Helper()
	raw, err := json.Marshal(marker)
	require.NoError(t, err)
	require.NoError(t, kv.Set("editSession", raw))
}

func markerGone(t *testing.T, kv storage.KV) bool {
	t.Helper()
	_, ok, err := kv.Get("editSession")
	require.NoError(t, err)
	return !ok
}

func TestResumeSeedsDraftAndEditingID(t *testing.T) {
	m, kv := newResumeManager()
	writeMarker(t, kv, models.EditSessionMarker{
		ID:       "rep-7",
		FormPath: "veiculo-abandonado",
		FullReport: map[string]any{
			"rodovia":      "MS-112",
			"qth":          report.Sentinel,
			"vtrApoio":     report.Sentinel,
			"providencias": report.Sentinel,
			"veiculos": []any{
				map[string]any{"placa": "ABC1D23"},
			},
		},
	})

	s := m.Open(testSchema())

	assert.Equal(t, "rep-7", s.EditingID)
	assert.Equal(t, StateEditing, s.State)
	assert.Equal(t, "MS-112", s.Draft["rodovia"])
	// sentinels reverse to the kind-appropriate empty value
	assert.Equal(t, "", s.Draft["qth"])
	assert.Equal(t, false, s.Draft["vtrApoio"])
	assert.Equal(t, []any{}, s.Draft["providencias"])

	veiculos, ok := s.Draft["veiculos"].([]any)
	require.True(t, ok)
	require.Len(t, veiculos, 1)
	assert.Equal(t, map[string]any{"placa": "ABC1D23"}, veiculos[0])

	assert.True(t, markerGone(t, kv), "marker must be single-use")
}

func TestResumeIgnoresMarkerForAnotherForm(t *testing.T) {
	m, kv := newResumeManager()
	writeMarker(t, kv, models.EditSessionMarker{
		ID:         "rep-7",
		FormPath:   "animal-na-pista",
		FullReport: map[string]any{"rodovia": "MS-112"},
	})

	s := m.Open(testSchema())

	assert.Empty(t, s.EditingID)
	assert.Equal(t, "", s.Draft["rodovia"])
	assert.True(t, markerGone(t, kv), "mismatched marker must still be consumed")
}

func TestResumeSurvivesMalformedMarker(t *testing.T) {
	m, kv := newResumeManager()
	require.NoError(t, kv.Set("editSession", []byte("{nao é json")))

	s := m.Open(testSchema())

	assert.Empty(t, s.EditingID)
	assert.Equal(t, "", s.Draft["rodovia"])
	assert.True(t, markerGone(t, kv), "malformed marker must be discarded")
}

func TestResumeConsumedOnlyOnce(t *testing.T) {
	m, kv := newResumeManager()
	writeMarker(t, kv, models.EditSessionMarker{
		ID:         "rep-7",
		FormPath:   "veiculo-abandonado",
		FullReport: map[string]any{"rodovia": "MS-112"},
	})

	first := m.Open(testSchema())
	second := m.Open(testSchema())

	assert.Equal(t, "rep-7", first.EditingID)
	assert.Empty(t, second.EditingID)
	assert.Equal(t, "", second.Draft["rodovia"])
}

func TestWriteMarkerRoundTrip(t *testing.T) {
	m, _ := newResumeManager()
	rep := models.StoredReport{
		ID:         "rep-9",
		FormPath:   "veiculo-abandonado",
		FullReport: map[string]any{"rodovia": "MS-040", "qth": report.Sentinel},
	}
	require.NoError(t, m.WriteMarker(rep))

	s := m.Open(testSchema())
	assert.Equal(t, "rep-9", s.EditingID)
	assert.Equal(t, "MS-040", s.Draft["rodovia"])
	assert.Equal(t, "", s.Draft["qth"])
}
