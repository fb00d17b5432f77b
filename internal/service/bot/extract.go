package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

var (
	// Exactly four digits isolated by non-digit boundaries; a longer run
	// like 12345 never matches.
	cardDigitsPattern = regexp.MustCompile(`\b(\d{4})\b`)

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// First matching form wins; calendar validity is not checked.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`),
	}

	ordinalPattern = regexp.MustCompile(`(?i)transaction\s*(\d+)`)
)

// extractCardDigits pulls the first isolated 4-digit token from the message.
func extractCardDigits(message string) (string, bool) {
	match := cardDigitsPattern.FindStringSubmatch(message)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// extractDate pulls the first date-shaped token, trying MM/DD/YYYY, then
// "Month DD, YYYY", then "Month YYYY". It also returns the message with the
// matched token removed, so the year inside a date cannot be mistaken for
// card digits by a later extractor.
func extractDate(message string) (date, remainder string, ok bool) {
	for _, pattern := range datePatterns {
		if loc := pattern.FindStringIndex(message); loc != nil {
			return message[loc[0]:loc[1]], message[:loc[0]] + message[loc[1]:], true
		}
	}
	return "", message, false
}

// extractEmail pulls the first local@domain token with a dotted domain.
func extractEmail(message string) (string, bool) {
	match := emailPattern.FindString(message)
	if match == "" {
		return "", false
	}
	return match, true
}

// selectTransaction resolves a free-text reference against the candidates,
// in priority order: transaction id substring, customer-name substring, then
// an explicit "transaction N" ordinal (1-based, as listed to the customer).
func selectTransaction(message string, candidates []transaction.Transaction) (transaction.Transaction, bool) {
	lower := strings.ToLower(message)

	for _, tx := range candidates {
		if tx.ID != "" && strings.Contains(lower, strings.ToLower(tx.ID)) {
			return tx, true
		}
	}

	for _, tx := range candidates {
		if tx.CustomerName != "" && strings.Contains(lower, strings.ToLower(tx.CustomerName)) {
			return tx, true
		}
	}

	if match := ordinalPattern.FindStringSubmatch(lower); match != nil {
		n, err := strconv.Atoi(match[1])
		if err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
	}

	return transaction.Transaction{}, false
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
