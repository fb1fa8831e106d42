// path: models/responses.go
package models

// FormSummary is one entry of the form catalog listing.
type FormSummary struct {
	Path          string `json:"path"`
	Title         string `json:"title"`
	CodOcorrencia string `json:"codOcorrencia"`
}

// OpenSessionPayload is the JSON body for POST /api/sessions.
type OpenSessionPayload struct {
	FormPath string `json:"formPath"`
}

// PreviewPayload is the JSON body for POST /api/sessions/:id/preview.
type PreviewPayload struct {
	Draft map[string]any `json:"draft"`
}

// ConfirmPayload is the JSON body for POST /api/sessions/:id/confirm and
// /api/sessions/:id/share.
type ConfirmPayload struct {
	NumeroOcorrencia string `json:"numeroOcorrencia"`
}

// SaveReportResp acknowledges a confirmed save.
type SaveReportResp struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}
