package orders

import "time"

const (
	// StatusCreated marks an order accepted by the payment provider.
	StatusCreated = "created"
)

// Order is the durable record of a successfully created purchase.
type Order struct {
	ID            string
	Asset         string
	Network       string
	Address       string
	PaymentMethod string
	FiatAmount    int64
	FiatCurrency  string
	Status        string
	ProviderRef   string
	CreatedAt     time.Time
}
