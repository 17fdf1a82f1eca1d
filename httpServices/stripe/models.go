package stripegw

// IntentRequest describes a payment intent to create. Amount is in minor units.
type IntentRequest struct {
	Amount         int64
	Currency       string
	Description    string
	ReceiptEmail   string
	Metadata       map[string]string
	IdempotencyKey string
}

// Intent is the provider-side payment intent, reduced to what the engine reads.
type Intent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	ClientSecret string            `json:"client_secret,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// RefundRequest refunds a payment intent. A zero Amount refunds the full charge.
type RefundRequest struct {
	PaymentIntentID string
	Amount          int64
	Reason          string
}

type Refund struct {
	ID              string `json:"id"`
	PaymentIntentID string `json:"payment_intent"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
}

const IntentStatusSucceeded = "succeeded"
