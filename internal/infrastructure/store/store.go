package store

import (
	"context"
	"errors"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
)

// ErrSessionNotFound is returned by Get for an unseen sessionId.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is keyed per-session state: the ordered conversation log and
// the append-only intelligence log. Sessions are created implicitly on first
// append and never destroyed within the process lifetime; Get never creates.
//
// Both append operations must be serialized per sessionId so concurrent
// requests against the same session cannot lose writes or interleave a
// conversation pair.
type SessionStore interface {
	// AppendConversation appends msgs to the session's transcript as one
	// atomic unit, creating the session if absent. The honeypot flow always
	// passes the inbound message and the reply together so the transcript
	// grows in consistent pairs.
	AppendConversation(ctx context.Context, sessionID string, msgs ...models.Message) error

	// AppendIntelligence appends one detected-scam entry to the session's
	// intelligence log, creating the session if absent.
	AppendIntelligence(ctx context.Context, sessionID string, entry models.IntelligenceEntry) error

	// Get returns a snapshot of the session, or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*models.Session, error)
}
