package models

// HandshakeResult records the outcome of delivering one compiled
// visualization to the rendering endpoint. Exactly one of Response or Error
// is meaningful, selected by OK. Immutable after creation.
type HandshakeResult struct {
	VisualizationID string         `json:"visualizationId"`
	OK              bool           `json:"ok"`
	Response        map[string]any `json:"response,omitempty"`
	Error           string         `json:"error,omitempty"`
	Attempts        int            `json:"attempts,omitempty"`
}
