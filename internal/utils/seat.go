package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SeatLabel builds the per-unit seat identifier submitted with a purchase.
// The contract rejects duplicate seats within an event, so the label mixes
// the event name, tier name, a millisecond timestamp and the unit index to
// stay unique across the units of one batch.
func SeatLabel(eventName, tierName string, index int) string {
	return fmt.Sprintf("%s-%s-%d-%d", slug(eventName), tierName, time.Now().UnixMilli(), index+1)
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	out := b.String()
	if len(out) > 12 {
		out = out[:12]
	}
	if out == "" {
		out = "EVENT"
	}
	return out
}
