package services

import "strings"

// bankingKeywords is the fixed domain-risk vocabulary: banking, urgency and
// verification terminology that rapid copy-paste scam scripts lean on.
var bankingKeywords = []string{
	"bank", "account", "blocked", "block",
	"verify", "verification",
	"upi", "otp", "kyc",
	"suspend", "suspension",
	"urgent", "immediately",
	"alert", "warning",
}

// BankingKeywordHits counts how many distinct vocabulary terms appear as
// substrings of the lowercased text. A term present twice still counts once.
func BankingKeywordHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range bankingKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}
