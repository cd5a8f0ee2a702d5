package onramp

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupHandlerApp(t *testing.T) (*fiber.App, *fixture) {
	t.Helper()
	f := newFixture(t, 0)
	h := NewHandler(f.orch)

	app := fiber.New()
	app.Post("/onramp/submit", h.Submit)
	app.Post("/onramp/resume", h.Resume)
	app.Post("/onramp/cancel", h.Cancel)
	app.Get("/onramp/pending", h.Pending)
	return app, f
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, payload
}

func TestSubmitHandlerValidation(t *testing.T) {
	app, _ := setupHandlerApp(t)

	status, _ := postJSON(t, app, "/onramp/submit", `{"asset":"USD Coin"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}

	status, _ = postJSON(t, app, "/onramp/submit", `{
		"asset":"USD Coin","network":"Ethereum","fiat_amount":5000,
		"fiat_currency":"USD","payment_method":"WIRE","country":"US"
	}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("unknown payment method: status = %d, want 400", status)
	}
}

func TestSubmitHandlerComplete(t *testing.T) {
	app, _ := setupHandlerApp(t)

	status, body := postJSON(t, app, "/onramp/submit", `{
		"asset":"USD Coin","network":"Ethereum","fiat_amount":5000,
		"fiat_currency":"USD","payment_method":"CARD","country":"US","subdivision":"CA"
	}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", status, body)
	}

	var out Outcome
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if out.Status != OutcomeComplete || out.OrderID == "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestSubmitHandlerDeferralAndPending(t *testing.T) {
	app, f := setupHandlerApp(t)
	f.provider.orderErrs = []error{&OrderError{Code: CodeMissingEmail, Message: "email required"}}

	status, _ := postJSON(t, app, "/onramp/submit", `{
		"asset":"USD Coin","network":"Ethereum","fiat_amount":5000,
		"fiat_currency":"USD","payment_method":"CARD","country":"US","subdivision":"CA"
	}`)
	if status != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", status)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/onramp/pending", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)

	var pending PendingResponse
	if err := json.Unmarshal(payload, &pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if pending.Pending == nil || pending.Pending.Asset != "USD Coin" {
		t.Fatalf("expected parked submission, got %+v", pending)
	}
	if pending.State != StateAwaitingResume {
		t.Fatalf("state = %s, want awaiting_resume", pending.State)
	}

	status, _ = postJSON(t, app, "/onramp/cancel", `{}`)
	if status != fiber.StatusOK {
		t.Fatalf("cancel status = %d, want 200", status)
	}
}
