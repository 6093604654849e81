package models

import "time"

// RunRecord archives one broker run for inspection and replay. Compiled
// payloads and handshakes are stored as serialized JSON documents so the
// archive format matches the on-disk artifacts byte for byte.
type RunRecord struct {
	RunID          string    `badgerhold:"key" json:"run_id"`
	LessonID       string    `json:"lesson_id"`
	CreatedAt      time.Time `json:"created_at"`
	Endpoint       string    `json:"endpoint"`
	DryRun         bool      `json:"dry_run"`
	PageEstimate   int       `json:"page_estimate,omitempty"`
	CompiledJSON   []byte    `json:"compiled_json"`
	HandshakesJSON []byte    `json:"handshakes_json"`
	SuccessCount   int       `json:"success_count"`
	TotalCount     int       `json:"total_count"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
}
