package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	sum := sha512.Sum512([]byte("ORDER-1" + "200" + "150000.00" + "secret-key"))
	want := hex.EncodeToString(sum[:])

	assert.Equal(t, want, Signature("ORDER-1", "200", "150000.00", "secret-key"))
	assert.Len(t, Signature("ORDER-1", "200", "150000.00", "secret-key"), 128)
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("ORDER-1", "200", "150000.00", "secret-key")

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, VerifySignature("ORDER-1", "200", "150000.00", sig, "secret-key"))
	})

	t.Run("tampered gross amount", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-1", "200", "1.00", sig, "secret-key"))
	})

	t.Run("tampered order id", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-2", "200", "150000.00", sig, "secret-key"))
	})

	t.Run("wrong server key", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-1", "200", "150000.00", sig, "other-key"))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-1", "200", "150000.00", "", "secret-key"))
	})

	t.Run("truncated signature", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-1", "200", "150000.00", sig[:64], "secret-key"))
	})

	t.Run("case mismatch", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-1", "200", "150000.00", strings.ToUpper(sig), "secret-key"))
	})

	t.Run("missing server key rejects everything", func(t *testing.T) {
		assert.False(t, VerifySignature("ORDER-1", "200", "150000.00", sig, ""))
	})
}
