package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/config"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// Sender delivers a finalized session payload externally. Implementations
// must be time-bounded and must report failures in the result rather than
// returning an error: finalize stays retryable by the caller.
type Sender interface {
	Deliver(ctx context.Context, payload models.FinalPayload) models.DeliveryResult
}

// HTTPSender posts the payload to the evaluation endpoint.
type HTTPSender struct {
	endpoint string
	client   *http.Client
	logger   *logger.Logger
}

// NewHTTPSender creates a sender for the configured evaluation endpoint.
func NewHTTPSender(cfg config.CallbackConfig, log *logger.Logger) *HTTPSender {
	return &HTTPSender{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   log.WithComponent("callback"),
	}
}

// Deliver posts the payload once. No retries: a failed delivery is reported
// back so the caller can re-run finalize.
func (s *HTTPSender) Deliver(ctx context.Context, payload models.FinalPayload) models.DeliveryResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.DeliveryResult{Status: "failed", Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.DeliveryResult{Status: "failed", Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", payload.SessionID).Msg("callback delivery failed")
		return models.DeliveryResult{Status: "failed", Error: err.Error()}
	}
	defer resp.Body.Close()

	s.logger.Info().
		Str("session_id", payload.SessionID).
		Int("status_code", resp.StatusCode).
		Msg("callback delivered")

	return models.DeliveryResult{Status: "sent", Code: resp.StatusCode}
}
