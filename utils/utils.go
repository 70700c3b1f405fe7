package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateResetToken returns 32 random bytes hex encoded.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ReceiptID builds a gateway receipt id, at most 40 characters.
func ReceiptID(now time.Time) string {
	receipt := fmt.Sprintf("rcpt_%d", now.UnixMilli())
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}
	return receipt
}
