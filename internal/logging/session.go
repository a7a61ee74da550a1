package logging

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// NewSessionID creates a browsing session identifier.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
// Example: 20251217_205106_a7b3
func NewSessionID(now time.Time) string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return now.Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// ShortSessionID returns the random suffix of a session ID.
// Example: "20251217_205106_a7b3" -> "a7b3"
func ShortSessionID(sessionID string) string {
	if i := strings.LastIndexByte(sessionID, '_'); i >= 0 {
		return sessionID[i+1:]
	}
	return sessionID
}

// SessionStartedAt parses the timestamp prefix of a session ID.
func SessionStartedAt(sessionID string) (time.Time, bool) {
	if len(sessionID) < len("20060102_150405") {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("20060102_150405", sessionID[:len("20060102_150405")], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
