package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/httpclient"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/models"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 300 * time.Millisecond
)

// Service delivers compiled visualizations to the rendering endpoint.
// Items are sent strictly sequentially: the endpoint sees at most one
// in-flight request per run, trading throughput for predictable load.
type Service struct {
	client      *http.Client
	logger      arbor.ILogger
	maxAttempts int
	backoffBase time.Duration
	limiter     *rate.Limiter
}

// Compile-time assertion
var _ interfaces.DeliveryService = (*Service)(nil)

// NewService creates a new delivery service from configuration.
func NewService(config *common.DeliveryConfig, logger arbor.ILogger) *Service {
	timeout := defaultTimeout
	if config.Timeout != "" {
		if parsed, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = parsed
		} else {
			logger.Warn().Err(err).Str("timeout", config.Timeout).Msg("Invalid delivery timeout, using default")
		}
	}

	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	backoffBase := defaultBackoffBase
	if config.BackoffBase != "" {
		if parsed, err := time.ParseDuration(config.BackoffBase); err == nil {
			backoffBase = parsed
		}
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &Service{
		client:      httpclient.NewDefaultHTTPClient(timeout),
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		limiter:     limiter,
	}
}

// Deliver posts each payload to endpoint and returns one handshake result per
// payload, in input order. Per item: up to maxAttempts tries with a linearly
// increasing backoff between tries; exhaustion records a failed handshake for
// that item only and the loop moves on. N payloads always yield N results.
func (s *Service) Deliver(ctx context.Context, payloads []models.CompiledVisualization, endpoint string) []models.HandshakeResult {
	results := make([]models.HandshakeResult, 0, len(payloads))

	for _, payload := range payloads {
		results = append(results, s.deliverOne(ctx, payload, endpoint))
	}

	return results
}

// deliverOne runs the bounded retry state machine for a single payload:
// pending -> (success | retrying -> pending) | failed.
func (s *Service) deliverOne(ctx context.Context, payload models.CompiledVisualization, endpoint string) models.HandshakeResult {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				lastErr = err
				break
			}
		}

		response, err := s.post(ctx, payload, endpoint)
		if err == nil {
			s.logger.Debug().
				Str("visualization_id", payload.VisualizationID).
				Int("attempt", attempt).
				Msg("Visualization delivered")
			return models.HandshakeResult{
				VisualizationID: payload.VisualizationID,
				OK:              true,
				Response:        response,
				Attempts:        attempt,
			}
		}

		lastErr = err
		s.logger.Warn().
			Err(err).
			Str("visualization_id", payload.VisualizationID).
			Int("attempt", attempt).
			Int("max_attempts", s.maxAttempts).
			Msg("Delivery attempt failed")

		if attempt < s.maxAttempts {
			if !s.sleep(ctx, s.backoffBase*time.Duration(attempt)) {
				break
			}
		}
	}

	return models.HandshakeResult{
		VisualizationID: payload.VisualizationID,
		OK:              false,
		Error:           lastErr.Error(),
		Attempts:        s.maxAttempts,
	}
}

// post sends one payload and parses the response body. Any non-2xx status is
// an error; an empty 2xx body yields an empty map.
func (s *Service) post(ctx context.Context, payload models.CompiledVisualization, endpoint string) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return map[string]any{}, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		// 2xx with a non-JSON body still counts as delivered.
		s.logger.Debug().
			Str("visualization_id", payload.VisualizationID).
			Msg("Response body is not JSON, recording empty response")
		return map[string]any{}, nil
	}

	return parsed, nil
}

// DryRun synthesizes an all-ok handshake per payload without any network
// access, for local testing of the rest of the pipeline.
func (s *Service) DryRun(payloads []models.CompiledVisualization) []models.HandshakeResult {
	results := make([]models.HandshakeResult, 0, len(payloads))
	for _, payload := range payloads {
		results = append(results, models.HandshakeResult{
			VisualizationID: payload.VisualizationID,
			OK:              true,
			Response:        map[string]any{},
		})
	}
	return results
}

// sleep waits for d or until the context is cancelled. Returns false on
// cancellation.
func (s *Service) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
