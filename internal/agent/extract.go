package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// The extraction helpers are deliberately standalone so a stronger parser can
// replace them without touching routing.

var (
	amountPattern    = regexp.MustCompile(`(?:\$|transfer\s|send\s)(\d+)`)
	recipientPattern = regexp.MustCompile(`(?i)acc-\d+`)
)

// ParseAmount pulls the first transfer amount out of a lowercased utterance,
// matching "$200", "transfer 200" or "send 200".
func ParseAmount(text string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseRecipient extracts an account reference like "acc-002", normalized to
// uppercase.
func ParseRecipient(text string) (string, bool) {
	m := recipientPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToUpper(m), true
}
