package common

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRunID generates a unique run ID with the "run_" prefix.
// Run IDs correlate archived artifacts and logs; they are not part of the
// compiled payload, which must stay byte-stable across runs.
func NewRunID() string {
	return "run_" + uuid.New().String()
}

// VisualizationID derives the deterministic ID for a compiled visualization
// from the lesson identifier and its 1-based ordinal position in the manifest.
// Format: <lessonID>-viz-<ordinal>
func VisualizationID(lessonID string, ordinal int) string {
	return fmt.Sprintf("%s-viz-%d", lessonID, ordinal)
}
