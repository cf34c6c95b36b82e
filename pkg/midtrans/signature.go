package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Signature generates the hex digest Midtrans attaches to notifications.
// Formula: SHA512(order_id + status_code + gross_amount + server_key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature validates that a notification genuinely originated from
// Midtrans. The comparison is constant time. A missing server key yields
// false rather than an error so the caller can still archive the payload.
func VerifySignature(orderID, statusCode, grossAmount, signatureKey, serverKey string) bool {
	if serverKey == "" {
		return false
	}
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}
