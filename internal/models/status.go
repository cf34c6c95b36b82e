package models

// MapGatewayStatus translates a Midtrans transaction_status (plus the
// fraud_status that accompanies card captures) into the internal five-state
// model. Unrecognized statuses map to pending so that a brand-new gateway
// vocabulary can never silently push a transaction into a terminal state;
// callers are expected to log the unknown value for operator alerting.
func MapGatewayStatus(transactionStatus, fraudStatus string) TransactionStatus {
	switch transactionStatus {
	case "capture":
		// Card transactions: the fraud check decides.
		switch fraudStatus {
		case "accept":
			return StatusPaid
		case "challenge":
			return StatusPending
		default:
			return StatusFailed
		}
	case "settlement":
		return StatusPaid
	case "pending":
		return StatusPending
	case "deny", "cancel":
		return StatusFailed
	case "expire":
		return StatusExpired
	case "refund", "partial_refund":
		return StatusRefunded
	default:
		return StatusPending
	}
}

// IsKnownGatewayStatus reports whether the gateway vocabulary is one the
// mapper recognizes. Unknown statuses still reconcile (as pending) but are
// surfaced in logs.
func IsKnownGatewayStatus(transactionStatus string) bool {
	switch transactionStatus {
	case "capture", "settlement", "pending", "deny", "cancel", "expire", "refund", "partial_refund":
		return true
	}
	return false
}

// IsValidTransition encodes the legal state-transition graph.
//
// Same-state moves are always valid and are treated by callers as idempotent
// re-deliveries. From pending any forward move is allowed. Terminal states
// are immutable, with the single exception paid -> refunded.
func IsValidTransition(current, next TransactionStatus) bool {
	if current == next {
		return true
	}

	if current.IsTerminal() {
		return current == StatusPaid && next == StatusRefunded
	}

	if current == StatusPending {
		return true
	}

	return false
}
