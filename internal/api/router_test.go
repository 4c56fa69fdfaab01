package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/api/handlers"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/config"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/store"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

const testAPIKey = "test-secret"

type stubScorer struct {
	score float64
}

func (s stubScorer) Score(string) float64 { return s.score }

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, string) string {
	return "oh? which account is that?"
}

type stubSender struct {
	result models.DeliveryResult
}

func (s *stubSender) Deliver(context.Context, models.FinalPayload) models.DeliveryResult {
	return s.result
}

func newTestServer(t *testing.T, score float64, sender *stubSender) *httptest.Server {
	t.Helper()
	log := logger.NewDefault()

	cfg := config.Config{}
	cfg.Auth.APIKey = testAPIKey
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.CORS.AllowedMethods = []string{"GET", "POST"}
	cfg.CORS.AllowedHeaders = []string{"*"}

	svc := services.NewHoneypotService(
		services.NewDetector(stubScorer{score: score}, log),
		store.NewMemoryStore(),
		stubGenerator{},
		sender,
		log,
	)

	h := handlers.NewHandlers(handlers.Dependencies{
		Service: svc,
		Store:   store.NewMemoryStore(),
		Logger:  log,
	})

	srv := httptest.NewServer(NewRouter(cfg, h, nil, log).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, apiKey string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func submitBody(sessionID, text string) map[string]any {
	return map[string]any{
		"sessionId": sessionID,
		"message":   map[string]string{"sender": "scammer", "text": text},
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{})
	resp, body := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestHoneypotRequiresAPIKey(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{})

	t.Run("missing key", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/honeypot", "", submitBody("s1", "account blocked"))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong key", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/honeypot", "wrong", submitBody("s1", "account blocked"))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejected request does not create session state", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet, "/session/s1", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "not_found", body["status"])
	})
}

func TestSessionEndpointsArePublic(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{result: models.DeliveryResult{Status: "sent", Code: 200}})

	_, _ = doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "account blocked, call 9876543210"))

	// Only the submission endpoint carries the shared secret; summary and
	// finalize answer without it.
	t.Run("summary without key", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet, "/session/s1", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "success", body["status"])
	})

	t.Run("summary of unknown session without key", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet, "/session/ghost", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "not_found", body["status"])
	})

	t.Run("finalize without key", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodPost, "/finalize/s1", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "success", body["status"])
	})
}

func TestHoneypotSubmitScam(t *testing.T) {
	srv := newTestServer(t, 0.87654, &stubSender{})

	resp, body := doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "urgent: account blocked, call 9876543210"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, true, body["scamDetected"])
	assert.Equal(t, 0.877, body["mlScore"])
	assert.Equal(t, "oh? which account is that?", body["reply"])

	extracted, ok := body["extractedIntelligence"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"9876543210"}, extracted["phoneNumbers"])
}

func TestHoneypotSubmitBenign(t *testing.T) {
	srv := newTestServer(t, 0.02, &stubSender{})

	resp, body := doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "hello, how are you?"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["scamDetected"])
	assert.Equal(t, "Okay, thanks.", body["reply"])
	assert.Equal(t, map[string]any{}, body["extractedIntelligence"])
}

func TestHoneypotSubmitValidation(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{})

	t.Run("missing sessionId", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey, map[string]any{
			"message": map[string]string{"sender": "scammer", "text": "hi"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing message text", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey, submitBody("s1", "  "))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSessionSummaryFlow(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{})

	_, _ = doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "account blocked, pay fraud@ybl"))
	_, _ = doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "also call 9876543210 immediately"))

	resp, body := doJSON(t, srv, http.MethodGet, "/session/s1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "s1", body["sessionId"])
	assert.Equal(t, float64(2), body["totalMessages"])

	agg, ok := body["aggregatedIntelligence"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"fraud@ybl"}, agg["paymentHandles"])
	assert.Equal(t, []any{"9876543210"}, agg["phoneNumbers"])
}

func TestSessionSummaryNotFound(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{})
	resp, body := doJSON(t, srv, http.MethodGet, "/session/ghost", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "not_found", body["status"])
}

func TestFinalizeFlow(t *testing.T) {
	sender := &stubSender{result: models.DeliveryResult{Status: "sent", Code: 200}}
	srv := newTestServer(t, 0.9, sender)

	_, _ = doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "account blocked, call 9876543210"))

	resp, body := doJSON(t, srv, http.MethodPost, "/finalize/s1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	payload, ok := body["submittedPayload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["scamDetected"])

	result, ok := body["callbackResult"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sent", result["status"])
}

func TestFinalizeDeliveryFailureStillReportsPayload(t *testing.T) {
	sender := &stubSender{result: models.DeliveryResult{Status: "failed", Error: "connection refused"}}
	srv := newTestServer(t, 0.9, sender)

	_, _ = doJSON(t, srv, http.MethodPost, "/honeypot", testAPIKey,
		submitBody("s1", "kyc suspended, verify immediately"))

	resp, body := doJSON(t, srv, http.MethodPost, "/finalize/s1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	payload := body["submittedPayload"].(map[string]any)
	assert.Equal(t, true, payload["scamDetected"])

	result := body["callbackResult"].(map[string]any)
	assert.Equal(t, "failed", result["status"])
	assert.Equal(t, "connection refused", result["error"])
}

func TestFinalizeNotFound(t *testing.T) {
	srv := newTestServer(t, 0.9, &stubSender{})
	resp, body := doJSON(t, srv, http.MethodPost, "/finalize/ghost", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "not_found", body["status"])
}
