package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/callback"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/store"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// NonScamReply is the canned acknowledgement for messages that do not trip
// detection. No LLM call is made for these.
const NonScamReply = "Okay, thanks."

// ReplyGenerator produces an in-character reply for a detected scam message.
type ReplyGenerator interface {
	Generate(ctx context.Context, message string) string
}

// HoneypotService orchestrates one engagement turn: score the message,
// reply in character, record the exchange, and bank any extracted
// identifiers.
type HoneypotService struct {
	detector *Detector
	store    store.SessionStore
	replies  ReplyGenerator
	sender   callback.Sender
	logger   *logger.Logger
}

// NewHoneypotService wires the engagement pipeline.
func NewHoneypotService(
	detector *Detector,
	sessions store.SessionStore,
	replies ReplyGenerator,
	sender callback.Sender,
	log *logger.Logger,
) *HoneypotService {
	return &HoneypotService{
		detector: detector,
		store:    sessions,
		replies:  replies,
		sender:   sender,
		logger:   log.WithComponent("honeypot"),
	}
}

// Engage processes one incoming message. The scammer's message and the
// generated reply are always appended to the conversation as a pair;
// intelligence is extracted and recorded only when the message is flagged.
func (s *HoneypotService) Engage(ctx context.Context, req models.HoneypotRequest) (models.HoneypotResponse, error) {
	log := s.logger.WithSessionID(req.SessionID)
	det := s.detector.Evaluate(req.Message.Text)

	var reply string
	if det.ScamDetected {
		reply = s.replies.Generate(ctx, req.Message.Text)
	} else {
		reply = NonScamReply
	}

	incoming := models.Message{Sender: req.Message.Sender, Text: req.Message.Text}
	outgoing := models.Message{Sender: "honeypot", Text: reply}
	if err := s.store.AppendConversation(ctx, req.SessionID, incoming, outgoing); err != nil {
		return models.HoneypotResponse{}, fmt.Errorf("recording conversation: %w", err)
	}

	// Non-scam turns render extractedIntelligence as the empty object, not
	// empty sets.
	var rendered any = struct{}{}
	if det.ScamDetected {
		extracted := ExtractIntelligence(req.Message.Text)
		entry := models.IntelligenceEntry{
			ID:         uuid.New(),
			SourceText: req.Message.Text,
			Extracted:  extracted,
			ObservedAt: time.Now().UTC(),
		}
		if err := s.store.AppendIntelligence(ctx, req.SessionID, entry); err != nil {
			return models.HoneypotResponse{}, fmt.Errorf("recording intelligence: %w", err)
		}
		rendered = extracted

		log.Info().
			Float64("ml_score", det.MLScore).
			Int("keyword_hits", det.KeywordHits).
			Int("phone_numbers", len(extracted.PhoneNumbers)).
			Int("payment_handles", len(extracted.PaymentHandles)).
			Int("urls", len(extracted.URLs)).
			Msg("scam engaged")
	}

	return models.HoneypotResponse{
		Status:                "success",
		ScamDetected:          det.ScamDetected,
		MLScore:               round3(det.MLScore),
		BankingKeywordHits:    det.KeywordHits,
		Reply:                 reply,
		ExtractedIntelligence: rendered,
	}, nil
}

// Summary returns the session's conversation, per-message intelligence log
// and the aggregated union. A session with no recorded intelligence reports
// store.ErrSessionNotFound even if conversation turns exist.
func (s *HoneypotService) Summary(ctx context.Context, sessionID string) (*models.SessionSummary, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &models.SessionSummary{
		Status:                 "success",
		SessionID:              sessionID,
		TotalMessages:          len(sess.IntelligenceLog),
		ConversationHistory:    sess.Conversation,
		AggregatedIntelligence: Aggregate(sess.IntelligenceLog),
		MessageLog:             sess.IntelligenceLog,
	}, nil
}

// Finalize submits the session's aggregated intelligence to the external
// evaluation endpoint. Sessions reaching finalize always report
// scamDetected true. Delivery failures surface in the callback result, not
// as errors, so finalize can be re-run.
func (s *HoneypotService) Finalize(ctx context.Context, sessionID string) (*models.FinalizeResponse, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	payload := models.FinalPayload{
		SessionID:             sessionID,
		ScamDetected:          true,
		ExtractedIntelligence: Aggregate(sess.IntelligenceLog),
		ConversationHistory:   sess.Conversation,
	}

	result := s.sender.Deliver(ctx, payload)

	return &models.FinalizeResponse{
		Status:           "success",
		SubmittedPayload: payload,
		CallbackResult:   result,
	}, nil
}

func (s *HoneypotService) session(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	if len(sess.IntelligenceLog) == 0 {
		return nil, store.ErrSessionNotFound
	}
	return sess, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
