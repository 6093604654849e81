package interfaces

import (
	"context"

	"github.com/ternarybob/scribeflow/internal/models"
)

// DeliveryService sends compiled visualizations to the rendering endpoint,
// strictly sequentially, with bounded per-item retry. N payloads always yield
// N results in input order; one item's failure never aborts the sequence.
type DeliveryService interface {
	// Deliver posts each payload to endpoint and returns one result per
	// payload in input order.
	Deliver(ctx context.Context, payloads []models.CompiledVisualization, endpoint string) []models.HandshakeResult

	// DryRun synthesizes all-ok results without any network access.
	DryRun(payloads []models.CompiledVisualization) []models.HandshakeResult
}
