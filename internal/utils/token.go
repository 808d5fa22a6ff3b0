package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateEditToken generates a random opaque edit token: 128 bits from
// crypto/rand, hex-rendered. Knowledge of this string is the only thing that
// grants mutation rights to a record.
func GenerateEditToken() string {
	bytes := make([]byte, 16)
	_, err := rand.Read(bytes)
	if err != nil {
		// Fallback to timestamp-based token if crypto/rand fails
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
