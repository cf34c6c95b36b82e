package midtrans

// VANumber is a virtual account number attached to bank-transfer payments.
type VANumber struct {
	Bank     string `json:"bank"`
	VANumber string `json:"va_number"`
}

// Notification is the webhook payload Midtrans pushes on every transaction
// status change. Optional payment-method-specific fields are modeled
// explicitly rather than carried around as an open map.
type Notification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	SettlementTime    string `json:"settlement_time,omitempty"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	Currency          string `json:"currency"`

	// Payment-method-specific extras.
	VANumbers       []VANumber `json:"va_numbers,omitempty"`
	PaymentCode     string     `json:"payment_code,omitempty"`
	Store           string     `json:"store,omitempty"`
	PermataVANumber string     `json:"permata_va_number,omitempty"`
	BillerCode      string     `json:"biller_code,omitempty"`
	BillKey         string     `json:"bill_key,omitempty"`
	MaskedCard      string     `json:"masked_card,omitempty"`
	Bank            string     `json:"bank,omitempty"`
	Issuer          string     `json:"issuer,omitempty"`
	Acquirer        string     `json:"acquirer,omitempty"`
}

// StatusResponse is the Core API answer to a status query. It carries the
// same shape a webhook notification would have delivered.
type StatusResponse struct {
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	SettlementTime    string `json:"settlement_time,omitempty"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	Currency          string `json:"currency"`
}

// SnapItem is one line item of a Snap checkout.
type SnapItem struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// SnapCustomer identifies the payer.
type SnapCustomer struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// SnapRequest creates a hosted checkout session.
type SnapRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	ItemDetails     []SnapItem   `json:"item_details,omitempty"`
	CustomerDetails SnapCustomer `json:"customer_details"`
	Callbacks       struct {
		Finish string `json:"finish,omitempty"`
	} `json:"callbacks,omitempty"`
	Expiry *SnapExpiry `json:"expiry,omitempty"`
}

// SnapExpiry bounds how long the hosted checkout stays payable.
type SnapExpiry struct {
	StartTime string `json:"start_time,omitempty"`
	Unit      string `json:"unit"`
	Duration  int    `json:"duration"`
}

// SnapResponse is the token pair returned for a created checkout session.
type SnapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}
