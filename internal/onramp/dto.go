package onramp

// SubmitRequest is the form payload from the purchase screen.
type SubmitRequest struct {
	Asset         string `json:"asset" validate:"required"`
	Network       string `json:"network" validate:"omitempty"`
	FiatAmount    int64  `json:"fiat_amount" validate:"required,gt=0"`
	FiatCurrency  string `json:"fiat_currency" validate:"required,len=3"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CARD APPLE_PAY COINBASE_WIDGET"`
	Country       string `json:"country" validate:"omitempty,len=2"`
	Subdivision   string `json:"subdivision" validate:"omitempty,max=3"`
}

func (r SubmitRequest) toSubmission() Submission {
	return Submission{
		Asset:         r.Asset,
		Network:       r.Network,
		FiatAmount:    r.FiatAmount,
		FiatCurrency:  r.FiatCurrency,
		PaymentMethod: r.PaymentMethod,
		Country:       r.Country,
		Subdivision:   r.Subdivision,
	}
}

// PendingResponse reports the parked submission, if any, plus the one-shot
// canceled flag.
type PendingResponse struct {
	State    string      `json:"state"`
	Pending  *Submission `json:"pending,omitempty"`
	Canceled bool        `json:"canceled"`
}
