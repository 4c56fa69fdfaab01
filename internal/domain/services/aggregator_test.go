package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
)

func TestAggregate(t *testing.T) {
	entries := []models.IntelligenceEntry{
		{
			Extracted: models.ExtractedIntelligence{
				PhoneNumbers:   []string{"9876543210"},
				PaymentHandles: []string{"fraud@ybl"},
				URLs:           []string{"www.phish.site"},
			},
		},
		{
			Extracted: models.ExtractedIntelligence{
				PhoneNumbers:   []string{"9876543210", "8123456789"},
				PaymentHandles: []string{"fraud@ybl"},
				URLs:           []string{"https://fake-bank.example"},
			},
		},
	}

	got := Aggregate(entries)

	assert.Equal(t, []string{"8123456789", "9876543210"}, got.PhoneNumbers)
	assert.Equal(t, []string{"fraud@ybl"}, got.PaymentHandles)
	assert.Equal(t, []string{"https://fake-bank.example", "www.phish.site"}, got.URLs)
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := models.IntelligenceEntry{Extracted: models.ExtractedIntelligence{PhoneNumbers: []string{"9000000001"}}}
	b := models.IntelligenceEntry{Extracted: models.ExtractedIntelligence{PhoneNumbers: []string{"8000000001"}}}

	assert.Equal(t,
		Aggregate([]models.IntelligenceEntry{a, b}),
		Aggregate([]models.IntelligenceEntry{b, a}),
	)
}

func TestAggregateEmptyLog(t *testing.T) {
	got := Aggregate(nil)
	assert.Empty(t, got.PhoneNumbers)
	assert.NotNil(t, got.PhoneNumbers)
	assert.NotNil(t, got.PaymentHandles)
	assert.NotNil(t, got.URLs)
}
