package ai

import (
	"context"
	"strings"
	"time"

	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// SafeFallbackReply is returned when every configured provider fails.
// It keeps the conversation alive without tipping off the sender.
const SafeFallbackReply = "I received this message suddenly. Can you explain more?"

// Provider generates a single in-character reply to an incoming message.
type Provider interface {
	Name() string
	Generate(ctx context.Context, persona, message string) (string, error)
}

// Chain tries providers in priority order and falls back to a canned reply
// when all of them fail. Generate never returns an error: reply generation
// must not break a live engagement.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	logger    *logger.Logger
}

// NewChain builds a fallback chain. Providers are tried in the order given,
// each call bounded by the per-provider timeout.
func NewChain(timeout time.Duration, log *logger.Logger, providers ...Provider) *Chain {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Chain{
		providers: providers,
		timeout:   timeout,
		logger:    log.WithComponent("ai"),
	}
}

// Generate returns the first successful provider reply, trimmed of
// surrounding whitespace, or SafeFallbackReply when none succeed.
func (c *Chain) Generate(ctx context.Context, message string) string {
	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		reply, err := p.Generate(callCtx, Persona, message)
		cancel()
		if err != nil {
			c.logger.Warn().Err(err).Str("provider", p.Name()).Msg("reply generation failed")
			continue
		}
		reply = strings.TrimSpace(reply)
		if reply == "" {
			c.logger.Warn().Str("provider", p.Name()).Msg("provider returned empty reply")
			continue
		}
		return reply
	}
	return SafeFallbackReply
}
