// path: session/session.go

// Package session coordinates one form-filling session: the editing →
// previewing → confirmed state machine, and the edit-resume load that can
// seed the initial draft from a stored report.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/models"
	"github.com/lgnappsweb/qruuei-sub000/report"
	"github.com/lgnappsweb/qruuei-sub000/storage"
)

// State of a form session.
type State string

const (
	StateEditing    State = "editing"
	StatePreviewing State = "previewing"
	// StateSaving is entered while the persistence call is outstanding; a
	// second confirm during it is rejected rather than double-submitted.
	StateSaving    State = "saving"
	StateConfirmed State = "confirmed"
)

var (
	ErrNotFound         = errors.New("session: not found")
	ErrBadState         = errors.New("session: action not allowed in current state")
	ErrSaveInFlight     = errors.New("session: a save is already in progress")
	ErrTrackingRequired = errors.New("session: tracking number is required")
)

// Session is one operator's in-progress form. It is owned by a single
// manager and mutated only under the manager's lock.
type Session struct {
	ID        string         `json:"id"`
	FormPath  string         `json:"formPath"`
	State     State          `json:"state"`
	Draft     map[string]any `json:"draft"`
	Preview   map[string]any `json:"preview,omitempty"`
	EditingID string         `json:"editingId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	schema    *models.FormSchema
}

// Manager owns every live session. Sessions are in-process only: each
// operator tab owns exactly one draft, so there is no cross-instance state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	kv       storage.KV
	adapter  *storage.Adapter
	log      *zap.Logger
}

func NewManager(kv storage.KV, adapter *storage.Adapter, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		kv:       kv,
		adapter:  adapter,
		log:      log,
	}
}

// Open starts a session for a form. The edit-resume loader runs here, once,
// before any interaction: a matching marker seeds the draft and editing id,
// any marker is consumed either way.
func (m *Manager) Open(schema *models.FormSchema) *Session {
	draft, editingID := m.resume(schema)
	if draft == nil {
		draft = schema.EmptyDraft()
	}
	s := &Session{
		ID:        uuid.NewString(),
		FormPath:  schema.Path,
		State:     StateEditing,
		Draft:     draft,
		EditingID: editingID,
		CreatedAt: time.Now().UTC(),
		schema:    schema,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	cp := s.snapshot()
	m.mu.Unlock()
	return cp
}

// Schema returns the form schema the session was opened with.
func (s *Session) Schema() *models.FormSchema { return s.schema }

// snapshot copies the session for use outside the manager's lock. Draft and
// Preview are replaced wholesale by the mutating methods and their interior
// values are never written afterwards, so copying the two top-level maps is
// enough. Must be called with the lock held.
func (s *Session) snapshot() *Session {
	cp := *s
	cp.Draft = copyRecord(s.Draft)
	cp.Preview = copyRecord(s.Preview)
	return &cp
}

func copyRecord(rec map[string]any) map[string]any {
	if rec == nil {
		return nil
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// Get returns a point-in-time copy of a session. Handlers marshal it after
// the lock is released, so the live struct must never escape here.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.snapshot(), nil
}

// SubmitPreview validates the raw draft and, if it passes, normalizes it
// into the preview record and moves the session to previewing. On a
// validation failure the offending field keys are returned and the session
// stays in editing; the draft is kept either way.
func (m *Manager) SubmitPreview(id string, draft map[string]any) (*Session, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if s.State != StateEditing && s.State != StatePreviewing {
		return nil, nil, ErrBadState
	}
	if draft != nil {
		s.Draft = draft
	}
	if missing := s.schema.Validate(s.Draft); len(missing) > 0 {
		s.State = StateEditing
		s.Preview = nil
		return s.snapshot(), missing, nil
	}
	s.Preview = report.NormalizeRecord(s.Draft)
	s.State = StatePreviewing
	return s.snapshot(), nil, nil
}

// BackToEdit discards the preview record and returns to editing. The raw
// draft is untouched, so the operator's typed values remain.
func (m *Manager) BackToEdit(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.State != StatePreviewing {
		return nil, ErrBadState
	}
	s.Preview = nil
	s.State = StateEditing
	return s.snapshot(), nil
}

// Share renders the share text and deep link for the current preview.
// Sharing needs a non-empty tracking number even where confirm does not.
func (m *Manager) Share(id, trackingNumber string) (text, link string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return "", "", ErrNotFound
	}
	if s.State != StatePreviewing {
		return "", "", ErrBadState
	}
	if trackingNumber == "" {
		return "", "", ErrTrackingRequired
	}
	text = report.FormatShare(s.Preview, s.schema, s.schema.Title, trackingNumber)
	return text, report.ShareURL(text), nil
}

// Confirm persists the previewed report and closes the session. While the
// backend call is outstanding the session is saving and further confirms
// fail with ErrSaveInFlight. On a backend failure the session drops back to
// previewing so the operator can retry without re-entering data.
func (m *Manager) Confirm(ctx context.Context, id, trackingNumber, userID string) (string, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return "", ErrNotFound
	}
	switch s.State {
	case StateSaving:
		m.mu.Unlock()
		return "", ErrSaveInFlight
	case StatePreviewing:
	default:
		m.mu.Unlock()
		return "", ErrBadState
	}
	if trackingNumber == "" {
		if s.schema.RequireTrackingNumber {
			m.mu.Unlock()
			return "", ErrTrackingRequired
		}
		trackingNumber = report.Sentinel
	}
	s.State = StateSaving
	rep := buildStoredReport(s, trackingNumber, userID)
	editingID := s.EditingID
	m.mu.Unlock()

	savedID, err := m.adapter.Save(ctx, rep, editingID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		s.State = StatePreviewing
		return "", err
	}
	s.State = StateConfirmed
	delete(m.sessions, s.ID)
	return savedID, nil
}

func buildStoredReport(s *Session, trackingNumber, userID string) models.StoredReport {
	return models.StoredReport{
		CodOcorrencia:    s.schema.CodOcorrencia,
		Type:             s.schema.Title,
		Rodovia:          stringField(s.Preview, "rodovia"),
		KM:               stringField(s.Preview, "qth"),
		Status:           models.StatusFinalized,
		FullReport:       s.Preview,
		NumeroOcorrencia: trackingNumber,
		FormPath:         s.FormPath,
		UserID:           userID,
	}
}

// stringField pulls an indexing field out of the normalized record; absent
// fields read as the sentinel, same as everywhere else downstream.
func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok && v != "" {
		return v
	}
	return report.Sentinel
}
