package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapGatewayStatus(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		want              TransactionStatus
	}{
		{"capture accepted", "capture", "accept", StatusPaid},
		{"capture challenged", "capture", "challenge", StatusPending},
		{"capture denied fraud", "capture", "deny", StatusFailed},
		{"capture empty fraud", "capture", "", StatusFailed},
		{"settlement", "settlement", "", StatusPaid},
		{"settlement ignores fraud", "settlement", "challenge", StatusPaid},
		{"pending", "pending", "", StatusPending},
		{"deny", "deny", "", StatusFailed},
		{"cancel", "cancel", "", StatusFailed},
		{"expire", "expire", "", StatusExpired},
		{"refund", "refund", "", StatusRefunded},
		{"partial refund", "partial_refund", "", StatusRefunded},
		{"unknown vocabulary fails safe", "authorize", "", StatusPending},
		{"empty status fails safe", "", "", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGatewayStatus(tt.transactionStatus, tt.fraudStatus))
		})
	}
}

func TestIsKnownGatewayStatus(t *testing.T) {
	for _, s := range []string{"capture", "settlement", "pending", "deny", "cancel", "expire", "refund", "partial_refund"} {
		assert.True(t, IsKnownGatewayStatus(s), s)
	}
	assert.False(t, IsKnownGatewayStatus("authorize"))
	assert.False(t, IsKnownGatewayStatus(""))
}

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name    string
		current TransactionStatus
		next    TransactionStatus
		want    bool
	}{
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending to expired", StatusPending, StatusExpired, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to refunded", StatusPending, StatusRefunded, true},
		{"same state pending", StatusPending, StatusPending, true},
		{"same state paid", StatusPaid, StatusPaid, true},
		{"paid to refunded", StatusPaid, StatusRefunded, true},
		{"paid to pending rejected", StatusPaid, StatusPending, false},
		{"paid to expired rejected", StatusPaid, StatusExpired, false},
		{"paid to failed rejected", StatusPaid, StatusFailed, false},
		{"expired to paid rejected", StatusExpired, StatusPaid, false},
		{"failed to paid rejected", StatusFailed, StatusPaid, false},
		{"refunded to paid rejected", StatusRefunded, StatusPaid, false},
		{"refunded to pending rejected", StatusRefunded, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTransition(tt.current, tt.next))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
}
