package services

import (
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
)

// Aggregate reduces a session's intelligence log into the deduplicated union
// of each entry's identifier sets. The result does not depend on entry order
// and is recomputed fresh on every summary/finalize call, since the log may
// have grown in between.
func Aggregate(log []models.IntelligenceEntry) models.AggregatedIntelligence {
	var phones, handles, urls []string
	for _, entry := range log {
		phones = append(phones, entry.Extracted.PhoneNumbers...)
		handles = append(handles, entry.Extracted.PaymentHandles...)
		urls = append(urls, entry.Extracted.URLs...)
	}

	return models.AggregatedIntelligence{
		PhoneNumbers:   models.DedupSorted(phones),
		PaymentHandles: models.DedupSorted(handles),
		URLs:           models.DedupSorted(urls),
	}
}
