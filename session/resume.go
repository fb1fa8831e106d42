// path: session/resume.go
package session

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/models"
	"github.com/lgnappsweb/qruuei-sub000/report"
)

// markerKey is the KV key a list view writes the edit handoff under.
const markerKey = "editSession"

// resume consumes the edit-session marker, if any. The marker is single-use:
// it is deleted whether it matched this form, belonged to another form, or
// failed to parse. A matching marker yields the reversed draft (sentinels
// back to kind-appropriate empty values) and the id to update on save.
func (m *Manager) resume(schema *models.FormSchema) (map[string]any, string) {
	raw, ok, err := m.kv.Get(markerKey)
	if err != nil {
		m.log.Warn("edit marker read failed", zap.Error(err))
		return nil, ""
	}
	if !ok {
		return nil, ""
	}
	if err := m.kv.Remove(markerKey); err != nil {
		m.log.Warn("edit marker delete failed", zap.Error(err))
	}

	var marker models.EditSessionMarker
	if err := json.Unmarshal(raw, &marker); err != nil {
		m.log.Warn("edit marker malformed, discarding", zap.Error(err))
		return nil, ""
	}
	if marker.FormPath != schema.Path {
		return nil, ""
	}
	m.log.Info("resuming report for editing",
		zap.String("id", marker.ID), zap.String("form", schema.Path))
	return report.Reverse(marker.FullReport, schema.Fields), marker.ID
}

// WriteMarker stores the edit handoff a list or detail view produces when
// the operator asks to reopen a saved report in its originating form.
func (m *Manager) WriteMarker(rep models.StoredReport) error {
	marker := models.EditSessionMarker{
		ID:         rep.ID,
		FormPath:   rep.FormPath,
		FullReport: rep.FullReport,
	}
	raw, err := json.Marshal(marker)
	if err != nil {
		return err
	}
	return m.kv.Set(markerKey, raw)
}
