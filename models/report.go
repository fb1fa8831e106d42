// path: models/report.go
package models

import "time"

// StatusFinalized is the only status this service writes today.
const StatusFinalized = "Finalizada"

// StoredReport is a normalized report plus its persistence envelope. The same
// shape is written to both backends; UserID is set only on the cloud store.
type StoredReport struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	CodOcorrencia string    `bson:"codOcorrencia" json:"codOcorrencia"`
	Type          string    `bson:"type" json:"type"`
	Rodovia       string    `bson:"rodovia" json:"rodovia"`
	KM            string    `bson:"km" json:"km"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
	Status        string    `bson:"status" json:"status"`
	// FullReport is the sentinel-normalized record; it never contains "",
	// null or empty arrays.
	FullReport       map[string]any `bson:"fullReport" json:"fullReport"`
	NumeroOcorrencia string         `bson:"numeroOcorrencia" json:"numeroOcorrencia"`
	FormPath         string         `bson:"formPath" json:"formPath"`
	UserID           string         `bson:"userId,omitempty" json:"userId,omitempty"`
}

// EditSessionMarker is the single-use handoff a list view writes so the
// originating form can reopen a saved report for editing. It is read exactly
// once at form mount and deleted whether or not it matched.
type EditSessionMarker struct {
	ID         string         `json:"id"`
	FormPath   string         `json:"formPath"`
	FullReport map[string]any `json:"fullReport"`
}
