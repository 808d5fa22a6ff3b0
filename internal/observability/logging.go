package observability

import (
	"strings"

	"github.com/samaj-network/app-directory/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskContactNumber masks a contact number for logging, keeping only the
// last two digits.
func MaskContactNumber(number string) string {
	digits := 0
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits <= 2 {
		return "********"
	}
	return strings.Repeat("*", digits-2) + number[len(number)-2:]
}

// MaskEditToken masks an edit token for logging. Tokens are capabilities and
// must never reach the logs whole.
func MaskEditToken(token string) string {
	if len(token) <= 6 {
		return "******"
	}
	return token[:6] + strings.Repeat("*", len(token)-6)
}
