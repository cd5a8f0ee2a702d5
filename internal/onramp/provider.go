package onramp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coinramp/coinramp/internal/chain"
)

// Payment methods understood by the provider.
const (
	MethodCard     = "CARD"
	MethodApplePay = "APPLE_PAY"
	MethodWidget   = "COINBASE_WIDGET"
)

// ErrorCode discriminates order-creation failures. The provider boundary
// produces exactly these values; nothing else crosses into the orchestrator.
type ErrorCode string

const (
	// CodeMissingEmail: account has no linked email; deferrable.
	CodeMissingEmail ErrorCode = "MISSING_EMAIL"
	// CodeMissingPhone: account has no verified phone; deferrable.
	CodeMissingPhone ErrorCode = "MISSING_PHONE"
	// CodePhoneExpired: phone verification lapsed; deferrable after sign-out.
	CodePhoneExpired ErrorCode = "PHONE_EXPIRED"
	// CodeNonUSPhone: linked phone has an unsupported country code; terminal
	// for this attempt.
	CodeNonUSPhone ErrorCode = "NON_US_PHONE"
	// CodeNoAddress: no destination address resolvable; local precondition
	// failure, never sent to the provider.
	CodeNoAddress ErrorCode = "NO_ADDRESS"
	// CodeUnclassified: anything the provider reported that we do not
	// recognize.
	CodeUnclassified ErrorCode = "UNCLASSIFIED"
)

// Deferrable reports whether the failure is recoverable by completing a
// verification sub-flow and resubmitting the same request.
func (c ErrorCode) Deferrable() bool {
	switch c {
	case CodeMissingEmail, CodeMissingPhone, CodePhoneExpired:
		return true
	default:
		return false
	}
}

// OrderError is a structured order-creation failure from the provider.
type OrderError struct {
	Code    ErrorCode
	Message string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order creation failed (%s): %s", e.Code, e.Message)
}

// ClassifyError maps any order-creation error onto an ErrorCode.
func ClassifyError(err error) ErrorCode {
	var oerr *OrderError
	if errors.As(err, &oerr) {
		switch oerr.Code {
		case CodeMissingEmail, CodeMissingPhone, CodePhoneExpired, CodeNonUSPhone:
			return oerr.Code
		}
	}
	return CodeUnclassified
}

// OrderRequest is the canonical request dispatched to the provider, after
// display identifiers have been normalized and the destination resolved.
type OrderRequest struct {
	Asset         string
	Network       string
	Family        chain.Family
	Address       string
	FiatAmount    int64
	FiatCurrency  string
	PaymentMethod string
	Country       string
	Subdivision   string
}

// OrderHandle is the provider's receipt for a created order.
type OrderHandle struct {
	Reference string
	Status    string
	CreatedAt time.Time
}

// Provider represents the external payment collaborator.
type Provider interface {
	// CreateOrder attempts to create a purchase order; failures carry an
	// *OrderError where the provider reported a code.
	CreateOrder(ctx context.Context, req OrderRequest) (OrderHandle, error)
	// CreateWidgetSession opens a hosted non-custodial checkout session and
	// returns its URL. No verification gate applies.
	CreateWidgetSession(ctx context.Context, req OrderRequest) (string, error)
}

// StaticProvider simulates a provider that accepts everything. It backs dev
// runs without a payment backend.
type StaticProvider struct{}

// CreateOrder approves the order with a synthetic reference.
func (StaticProvider) CreateOrder(_ context.Context, _ OrderRequest) (OrderHandle, error) {
	return OrderHandle{Reference: uuid.NewString(), Status: "created", CreatedAt: time.Now().UTC()}, nil
}

// CreateWidgetSession returns a synthetic hosted checkout URL.
func (StaticProvider) CreateWidgetSession(_ context.Context, _ OrderRequest) (string, error) {
	return "https://pay.example.com/buy?session=" + uuid.NewString(), nil
}
