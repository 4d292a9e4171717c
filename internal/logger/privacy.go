package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

// InitHashSalt loads the log hash salt from the environment. In
// production, set LOG_HASH_SALT.
func InitHashSalt() {
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

func init() {
	InitHashSalt()
}

// HashPersonName creates a privacy-preserving hash of a debt
// counterparty name. This allows correlating log lines about the same
// person without writing the name itself to logs.
func HashPersonName(name string) string {
	data := fmt.Sprintf("%s:%s", strings.ToLower(strings.TrimSpace(name)), hashSalt)
	hash := sha256.Sum256([]byte(data))
	// First 8 characters are enough for correlation.
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeTitle redacts a free-text title or merchant name but
// preserves length information for debugging.
func SanitizeTitle(title string) string {
	if title == "" {
		return "<empty>"
	}

	words := strings.Fields(title)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(title))
}

// SanitizeText is a general-purpose sanitizer for any user-provided text.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	if len(text) <= 10 {
		return fmt.Sprintf("<%d chars>", len(text))
	}

	return fmt.Sprintf("%s...<%d chars>", text[:3], len(text))
}
