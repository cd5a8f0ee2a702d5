package onramp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coinramp/coinramp/internal/account"
	"github.com/coinramp/coinramp/internal/chain"
	"github.com/coinramp/coinramp/internal/metrics"
	"github.com/coinramp/coinramp/internal/notification"
	"github.com/coinramp/coinramp/internal/orders"
	"github.com/coinramp/coinramp/internal/session"
	"github.com/coinramp/coinramp/internal/verification"
	"github.com/coinramp/coinramp/internal/wallet"
)

// Orchestrator states, observable via State().
const (
	StateIdle           = "idle"
	StateNormalizing    = "normalizing"
	StateResolving      = "resolving"
	StateSubmitting     = "submitting"
	StateComplete       = "complete"
	StateDeferred       = "deferred"
	StateFailed         = "failed"
	StateAwaitingResume = "awaiting_resume"
)

// Outcome statuses.
const (
	OutcomeComplete = "complete"
	OutcomeDeferred = "deferred"
	OutcomeFailed   = "failed"
)

// Next steps a deferred submission asks the client to perform.
const (
	StepLinkEmail     = "link_email"
	StepLinkPhone     = "link_phone"
	StepVerifyPhone   = "verify_phone"
	StepReverifyPhone = "reverify_phone"
)

// ErrSubmissionInFlight rejects a submission while another one is being
// dispatched.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Outcome is the classified result of a submission attempt. Failures always
// arrive here, never as raw provider errors.
type Outcome struct {
	Status    string    `json:"status"`
	OrderID   string    `json:"order_id,omitempty"`
	Reference string    `json:"reference,omitempty"`
	WidgetURL string    `json:"widget_url,omitempty"`
	Code      ErrorCode `json:"code,omitempty"`

	// Deferral guidance.
	NextStep        string `json:"next_step,omitempty"`
	PrefillPhone    string `json:"prefill_phone,omitempty"`
	RequiresSignOut bool   `json:"requires_sign_out,omitempty"`
	Warning         string `json:"warning,omitempty"`

	Message string `json:"message,omitempty"`
}

// Orchestrator drives a submission from form input to a created order,
// deferring through verification sub-flows when the provider demands them.
// It owns the only mutation path into the pending store.
type Orchestrator struct {
	registry *wallet.Registry
	region   *session.Registers
	creds    *verification.Store
	accounts account.Provider
	provider Provider
	pending  *PendingStore
	orders   orders.Repository
	notifier notification.Notifier
	metrics  *metrics.Registry
	logger   *slog.Logger

	settleDelay time.Duration

	mu       sync.Mutex
	inFlight bool
	state    string
}

// Deps collects the orchestrator's collaborators.
type Deps struct {
	Registry    *wallet.Registry
	Region      *session.Registers
	Credentials *verification.Store
	Accounts    account.Provider
	Provider    Provider
	Pending     *PendingStore
	Orders      orders.Repository
	Notifier    notification.Notifier
	Metrics     *metrics.Registry
	Logger      *slog.Logger
	SettleDelay time.Duration
}

// NewOrchestrator wires the submission workflow.
func NewOrchestrator(d Deps) (*Orchestrator, error) {
	if d.Registry == nil || d.Region == nil || d.Credentials == nil {
		return nil, fmt.Errorf("registry, region and credential store are required")
	}
	if d.Accounts == nil || d.Provider == nil {
		return nil, fmt.Errorf("account and payment providers are required")
	}
	if d.Pending == nil {
		d.Pending = NewPendingStore()
	}
	if d.Orders == nil {
		d.Orders = orders.NewMemoryRepository()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.SettleDelay <= 0 {
		d.SettleDelay = 2 * time.Second
	}
	return &Orchestrator{
		registry:    d.Registry,
		region:      d.Region,
		creds:       d.Credentials,
		accounts:    d.Accounts,
		provider:    d.Provider,
		pending:     d.Pending,
		orders:      d.Orders,
		notifier:    d.Notifier,
		metrics:     d.Metrics,
		logger:      d.Logger,
		settleDelay: d.SettleDelay,
		state:       StateIdle,
	}, nil
}

// State reports the current state-machine position.
func (o *Orchestrator) State() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Pending exposes the pending store to the HTTP layer.
func (o *Orchestrator) Pending() *PendingStore {
	return o.pending
}

// Submit runs a fresh submission attempt. At most one attempt may be in
// flight; overlapping calls fail with ErrSubmissionInFlight.
func (o *Orchestrator) Submit(ctx context.Context, form Submission) (Outcome, error) {
	if !o.beginAttempt() {
		return Outcome{}, ErrSubmissionInFlight
	}
	defer o.endAttempt()

	out, err := o.run(ctx, form)
	o.metrics.ObserveSubmission(out.Status)
	return out, err
}

// CheckAndResume re-enters the workflow with the parked submission if its
// gate passes. It is safe to call redundantly: overlapping focus signals and
// absent or gated pending submissions all report resumed=false without side
// effects.
func (o *Orchestrator) CheckAndResume(ctx context.Context) (Outcome, bool, error) {
	if !o.beginAttempt() {
		o.metrics.ObserveResume("in_flight")
		return Outcome{}, false, nil
	}
	defer o.endAttempt()

	form, ok := o.pending.Peek()
	if !ok {
		o.metrics.ObserveResume("no_pending")
		return Outcome{}, false, nil
	}

	allowed, err := o.resumeAllowed(ctx, form)
	if err != nil {
		return Outcome{}, false, err
	}
	if !allowed {
		// Remain awaiting; the screen keeps re-checking on focus.
		o.setState(StateAwaitingResume)
		o.metrics.ObserveResume("gated")
		return Outcome{}, false, nil
	}

	// Consume the parked submission exactly once, at the dispatch point.
	// run re-persists it if the provider defers again.
	if _, ok := o.pending.Take(); !ok {
		o.metrics.ObserveResume("no_pending")
		return Outcome{}, false, nil
	}
	o.metrics.SetPending(false)

	out, err := o.run(ctx, form)
	o.metrics.ObserveResume(out.Status)
	return out, true, err
}

// Cancel backs out of the verification sub-flow: the parked submission is
// dropped and the one-shot canceled flag raised.
func (o *Orchestrator) Cancel() {
	o.pending.Cancel()
	o.metrics.SetPending(false)
	o.mu.Lock()
	o.state = StateIdle
	o.mu.Unlock()
}

// SignOut asks the authentication collaborator to end the session, clears
// session-scoped state, then waits for the collaborator to settle before the
// client navigates. Required before re-verifying an expired phone.
func (o *Orchestrator) SignOut(ctx context.Context) error {
	if err := o.accounts.SignOut(ctx); err != nil {
		return err
	}
	o.registry.Reset()
	if err := o.creds.Clear(ctx); err != nil {
		return err
	}

	t := time.NewTimer(o.settleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	return nil
}

func (o *Orchestrator) beginAttempt() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return false
	}
	o.inFlight = true
	return true
}

func (o *Orchestrator) endAttempt() {
	o.mu.Lock()
	o.inFlight = false
	o.mu.Unlock()
}

func (o *Orchestrator) setState(state string) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

// resumeAllowed applies the resumption gate. The widget method never gates;
// sandbox mode never gates; otherwise the credential must exist, match the
// account's phone-on-file and be fresh.
func (o *Orchestrator) resumeAllowed(ctx context.Context, form Submission) (bool, error) {
	if form.PaymentMethod == MethodWidget {
		return true, nil
	}
	if o.registry.Mode() == wallet.ModeSandbox {
		return true, nil
	}

	snap, err := o.accounts.Current(ctx)
	if err != nil {
		return false, fmt.Errorf("read account: %w", err)
	}
	if _, err := o.creds.SyncWithAccount(ctx, snap.Phone); err != nil {
		return false, err
	}
	if _, held := o.creds.Value(); !held {
		return false, nil
	}
	return o.creds.Fresh(), nil
}

// run executes one pass through the state machine for the given form data.
func (o *Orchestrator) run(ctx context.Context, form Submission) (Outcome, error) {
	o.setState(StateNormalizing)
	req := o.normalize(form)

	o.setState(StateResolving)
	if req.PaymentMethod == MethodWidget {
		return o.runWidget(ctx, req)
	}

	if req.Address == "" {
		// Local precondition: nothing safe to pay out to. Never reaches the
		// provider.
		o.setState(StateFailed)
		return Outcome{
			Status:  OutcomeFailed,
			Code:    CodeNoAddress,
			Message: fmt.Sprintf("no destination address available for network %q", req.Network),
		}, nil
	}

	o.setState(StateSubmitting)
	handle, err := o.provider.CreateOrder(ctx, req)
	if err != nil {
		return o.classifyFailure(ctx, form, req, err)
	}

	order := orders.Order{
		ID:            uuid.NewString(),
		Asset:         req.Asset,
		Network:       req.Network,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		FiatAmount:    req.FiatAmount,
		FiatCurrency:  req.FiatCurrency,
		Status:        orders.StatusCreated,
		ProviderRef:   handle.Reference,
		CreatedAt:     time.Now().UTC(),
	}
	if err := o.orders.Create(ctx, order); err != nil {
		// The provider accepted the order; losing the local record must not
		// fail the purchase.
		o.logger.Warn("record order", "error", err, "reference", handle.Reference)
	}
	o.notify(ctx, notification.KindOrderCreated, req.Address,
		fmt.Sprintf("Order for %s on %s created", req.Asset, req.Network))

	o.setState(StateComplete)
	return Outcome{Status: OutcomeComplete, OrderID: order.ID, Reference: handle.Reference}, nil
}

// runWidget hands off to the hosted checkout. The widget path never gates on
// verification and cannot defer.
func (o *Orchestrator) runWidget(ctx context.Context, req OrderRequest) (Outcome, error) {
	o.setState(StateSubmitting)
	url, err := o.provider.CreateWidgetSession(ctx, req)
	if err != nil {
		o.logger.Error("create widget session", "error", err)
		o.setState(StateFailed)
		return Outcome{
			Status:  OutcomeFailed,
			Code:    CodeUnclassified,
			Message: "unable to open the hosted checkout, try again",
		}, nil
	}
	o.setState(StateComplete)
	return Outcome{Status: OutcomeComplete, WidgetURL: url}, nil
}

// normalize converts display identifiers to canonical ones and resolves the
// destination address against current registry state. Empty network/region
// fields fall back to the active registers.
func (o *Orchestrator) normalize(form Submission) OrderRequest {
	networkDisplay := form.Network
	if networkDisplay == "" {
		networkDisplay = o.region.Network()
	}
	country, subdivision := form.Country, form.Subdivision
	if country == "" {
		country, subdivision = o.region.Region()
	}

	network := chain.CanonicalNetwork(networkDisplay)
	return OrderRequest{
		Asset:         chain.CanonicalAsset(form.Asset),
		Network:       network,
		Family:        chain.Classify(network),
		Address:       o.registry.Resolve(network),
		FiatAmount:    form.FiatAmount,
		FiatCurrency:  form.FiatCurrency,
		PaymentMethod: form.PaymentMethod,
		Country:       country,
		Subdivision:   subdivision,
	}
}

// classifyFailure turns an order-creation error into an Outcome, parking the
// submission for the deferrable codes and clearing it for everything else.
func (o *Orchestrator) classifyFailure(ctx context.Context, form Submission, req OrderRequest, err error) (Outcome, error) {
	code := ClassifyError(err)

	var oerr *OrderError
	message := "unable to create the order, try again"
	if errors.As(err, &oerr) && oerr.Message != "" {
		message = oerr.Message
	}

	if code.Deferrable() {
		form.SavedAt = time.Now().UTC()
		o.pending.Set(form)
		o.metrics.SetPending(true)
		o.metrics.ObserveDeferral(string(code))
		o.setState(StateAwaitingResume)

		out := Outcome{Status: OutcomeDeferred, Code: code, Message: message}
		switch code {
		case CodeMissingEmail:
			out.NextStep = StepLinkEmail
		case CodeMissingPhone:
			out.NextStep = StepLinkPhone
			if snap, aerr := o.accounts.Current(ctx); aerr == nil && snap.Phone != "" {
				if !snap.PhoneVerified {
					out.NextStep = StepVerifyPhone
					out.PrefillPhone = snap.Phone
				}
				if !account.IsUSPhone(snap.Phone) {
					out.Warning = "the linked phone is not a US number; this payment method requires a +1 number"
				}
			}
		case CodePhoneExpired:
			out.NextStep = StepReverifyPhone
			out.RequiresSignOut = true
			if value, held := o.creds.Value(); held {
				out.PrefillPhone = value
			}
		}
		o.notify(ctx, notification.KindVerificationRequired, "", string(code))
		return out, nil
	}

	// Not recoverable via the same sub-flow: never leave a pending
	// submission behind that a resume could not complete.
	o.pending.Clear()
	o.metrics.SetPending(false)
	o.setState(StateFailed)

	if code == CodeNonUSPhone {
		return Outcome{
			Status:  OutcomeFailed,
			Code:    code,
			Message: "this payment method requires a US phone number; switch payment method, use sandbox mode, or link a different number",
		}, nil
	}

	o.logger.Error("create order", "error", err, "network", req.Network, "asset", req.Asset)
	return Outcome{Status: OutcomeFailed, Code: CodeUnclassified, Message: message}, nil
}

func (o *Orchestrator) notify(ctx context.Context, kind, destination, body string) {
	if o.notifier == nil {
		return
	}
	_ = o.notifier.Send(ctx, notification.Message{Kind: kind, Destination: destination, Body: body})
}
