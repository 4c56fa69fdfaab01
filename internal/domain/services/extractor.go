package services

import (
	"regexp"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
)

// Extraction patterns. The payment-handle pattern is intentionally permissive
// and also matches generic email addresses; that is accepted behavior, kept
// for parity with observed scam traffic, not a bug to tighten.
var (
	// Indian mobile numbers: 10 digits starting 6-9, optional +91 prefix,
	// bounded by non-digit context.
	phonePattern = regexp.MustCompile(`\b(?:\+91)?[6-9][0-9]{9}\b`)

	// UPI-style payment handles: local-part@bank-label.
	paymentHandlePattern = regexp.MustCompile(`[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}`)

	urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// ExtractIntelligence pulls phone numbers, payment handles and URLs out of
// free text. Pure and deterministic: the same text always yields the same
// sets, deduplicated and sorted.
func ExtractIntelligence(text string) models.ExtractedIntelligence {
	return models.ExtractedIntelligence{
		PhoneNumbers:   models.DedupSorted(phonePattern.FindAllString(text, -1)),
		PaymentHandles: models.DedupSorted(paymentHandlePattern.FindAllString(text, -1)),
		URLs:           models.DedupSorted(urlPattern.FindAllString(text, -1)),
	}
}
