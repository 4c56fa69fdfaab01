package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Message is one conversational turn. Immutable once recorded.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ExtractedIntelligence holds the identifier sets pulled out of a single
// message. Each slice is deduplicated and sorted so rendering is stable.
type ExtractedIntelligence struct {
	PhoneNumbers   []string `json:"phoneNumbers"`
	PaymentHandles []string `json:"paymentHandles"`
	URLs           []string `json:"urls"`
}

// IsEmpty reports whether no identifiers were extracted.
func (e ExtractedIntelligence) IsEmpty() bool {
	return len(e.PhoneNumbers) == 0 && len(e.PaymentHandles) == 0 && len(e.URLs) == 0
}

// IntelligenceEntry records one detected-scam turn and its extracted
// identifiers. Entries are append-only; they are never mutated or removed.
type IntelligenceEntry struct {
	ID         uuid.UUID             `json:"id"`
	SourceText string                `json:"message"`
	Extracted  ExtractedIntelligence `json:"extracted"`
	ObservedAt time.Time             `json:"observedAt"`
}

// Session is a caller-identified conversation with accumulated intelligence.
// The sessionId is supplied by the caller, never generated here.
type Session struct {
	ID              string              `json:"sessionId"`
	Conversation    []Message           `json:"conversationHistory"`
	IntelligenceLog []IntelligenceEntry `json:"messageLog"`
}

// AggregatedIntelligence is the deduplicated union of identifiers across all
// intelligence entries in a session. Derived on demand, never stored.
type AggregatedIntelligence struct {
	PhoneNumbers   []string `json:"phoneNumbers"`
	PaymentHandles []string `json:"paymentHandles"`
	URLs           []string `json:"urls"`
}

// DedupSorted returns the distinct values of in, sorted ascending.
// The empty input yields an empty (non-nil) slice so JSON renders [].
func DedupSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// HoneypotRequest is the body of the scam-submission endpoint.
// ConversationHistory is accepted for caller convenience but the decision
// logic only looks at the current message.
type HoneypotRequest struct {
	SessionID           string    `json:"sessionId"`
	Message             Message   `json:"message"`
	ConversationHistory []Message `json:"conversationHistory,omitempty"`
}

// HoneypotResponse is the submission endpoint response.
// ExtractedIntelligence is the empty JSON object when no scam was detected.
type HoneypotResponse struct {
	Status                string  `json:"status"`
	ScamDetected          bool    `json:"scamDetected"`
	MLScore               float64 `json:"mlScore"`
	BankingKeywordHits    int     `json:"bankingKeywordHits"`
	Reply                 string  `json:"reply"`
	ExtractedIntelligence any     `json:"extractedIntelligence"`
}

// SessionSummary is the summary query response for a session with recorded
// intelligence.
type SessionSummary struct {
	Status                 string                 `json:"status"`
	SessionID              string                 `json:"sessionId"`
	TotalMessages          int                    `json:"totalMessages"`
	ConversationHistory    []Message              `json:"conversationHistory"`
	AggregatedIntelligence AggregatedIntelligence `json:"aggregatedIntelligence"`
	MessageLog             []IntelligenceEntry    `json:"messageLog"`
}

// FinalPayload is what finalize submits to the external evaluation endpoint.
// ScamDetected is always true: finalize is only meaningful for sessions that
// recorded intelligence.
type FinalPayload struct {
	SessionID             string                 `json:"sessionId"`
	ScamDetected          bool                   `json:"scamDetected"`
	ExtractedIntelligence AggregatedIntelligence `json:"extractedIntelligence"`
	ConversationHistory   []Message              `json:"conversationHistory"`
}

// DeliveryResult reports the outcome of one callback delivery attempt.
// Failures are reported here, never raised; the caller may retry finalize.
type DeliveryResult struct {
	Status string `json:"status"` // "sent" or "failed"
	Code   int    `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// FinalizeResponse is the finalize endpoint response.
type FinalizeResponse struct {
	Status           string         `json:"status"`
	SubmittedPayload FinalPayload   `json:"submittedPayload"`
	CallbackResult   DeliveryResult `json:"callbackResult"`
}

// NotFoundResponse is returned for summary/finalize on unknown sessions.
type NotFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
