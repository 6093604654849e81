package interfaces

import "github.com/ternarybob/scribeflow/internal/models"

// ReviewService builds the side-by-side HTML review artifact pairing source
// paragraphs with their delivered (or placeholder) visuals.
type ReviewService interface {
	// Render returns the review document as an HTML string.
	Render(markdown string, compiled []models.CompiledVisualization, handshakes []models.HandshakeResult) (string, error)

	// WriteReview renders and writes the document to path, creating parent
	// directories as needed.
	WriteReview(path string, markdown string, compiled []models.CompiledVisualization, handshakes []models.HandshakeResult) error
}
