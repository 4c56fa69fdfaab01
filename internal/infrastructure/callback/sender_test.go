package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/config"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

func testPayload() models.FinalPayload {
	return models.FinalPayload{
		SessionID:    "s1",
		ScamDetected: true,
		ExtractedIntelligence: models.AggregatedIntelligence{
			PhoneNumbers:   []string{"9876543210"},
			PaymentHandles: []string{"fraud@ybl"},
			URLs:           []string{},
		},
		ConversationHistory: []models.Message{
			{Sender: "scammer", Text: "account blocked"},
			{Sender: "honeypot", Text: "oh no, what happened?"},
		},
	}
}

func TestHTTPSenderDeliverSuccess(t *testing.T) {
	var received models.FinalPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPSender(config.CallbackConfig{Endpoint: srv.URL, Timeout: 5 * time.Second}, logger.NewDefault())
	result := s.Deliver(context.Background(), testPayload())

	assert.Equal(t, "sent", result.Status)
	assert.Equal(t, http.StatusOK, result.Code)
	assert.Equal(t, "s1", received.SessionID)
	assert.True(t, received.ScamDetected)
}

func TestHTTPSenderReportsUpstreamStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewHTTPSender(config.CallbackConfig{Endpoint: srv.URL, Timeout: 5 * time.Second}, logger.NewDefault())
	result := s.Deliver(context.Background(), testPayload())

	// A reachable endpoint counts as sent even on a non-2xx status; the
	// code is passed through for the caller to judge.
	assert.Equal(t, "sent", result.Status)
	assert.Equal(t, http.StatusBadGateway, result.Code)
}

func TestHTTPSenderDeliverConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	s := NewHTTPSender(config.CallbackConfig{Endpoint: srv.URL, Timeout: time.Second}, logger.NewDefault())
	result := s.Deliver(context.Background(), testPayload())

	assert.Equal(t, "failed", result.Status)
	assert.NotEmpty(t, result.Error)
	assert.Zero(t, result.Code)
}

func TestHTTPSenderTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	s := NewHTTPSender(config.CallbackConfig{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, logger.NewDefault())
	result := s.Deliver(context.Background(), testPayload())

	assert.Equal(t, "failed", result.Status)
	assert.NotEmpty(t, result.Error)
}
