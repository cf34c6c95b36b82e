package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateOrderID returns a gateway-facing order identifier.
// Format: SUN6BKS-{eventID}-{unixMillis}-{RANDOM6}
func GenerateOrderID(eventID int) (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	random := strings.ToUpper(hex.EncodeToString(b))
	return fmt.Sprintf("SUN6BKS-%d-%d-%s", eventID, time.Now().UnixMilli(), random), nil
}

// GenerateTicketCode returns a unique, URL-safe ticket code for QR display.
// Format: SUN6-XXXX-XXXX-XXXX (crypto-random hex, grouped)
func GenerateTicketCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	hexStr := strings.ToUpper(hex.EncodeToString(b))
	return fmt.Sprintf("SUN6-%s-%s-%s", hexStr[0:4], hexStr[4:8], hexStr[8:12]), nil
}
