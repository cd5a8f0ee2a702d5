package onramp

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the submission workflow over HTTP.
type Handler struct {
	svc      *Orchestrator
	validate *validator.Validate
}

// NewHandler constructs an onramp handler.
func NewHandler(svc *Orchestrator) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// Submit runs a fresh submission attempt.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	out, err := h.svc.Submit(c.UserContext(), req.toSubmission())
	if err != nil {
		if errors.Is(err, ErrSubmissionInFlight) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return err
	}
	return c.Status(statusFor(out)).JSON(out)
}

// Resume is the focus-triggered resumption entry point. Calling it with no
// pending submission, an unmet gate, or a concurrent attempt is a no-op.
func (h *Handler) Resume(c *fiber.Ctx) error {
	out, resumed, err := h.svc.CheckAndResume(c.UserContext())
	if err != nil {
		return err
	}
	if !resumed {
		return c.Status(http.StatusOK).JSON(fiber.Map{"resumed": false, "state": h.svc.State()})
	}
	return c.Status(statusFor(out)).JSON(out)
}

// Cancel backs out of the verification sub-flow.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	h.svc.Cancel()
	return c.Status(http.StatusOK).JSON(fiber.Map{"canceled": true})
}

// Pending reports the parked submission and consumes the canceled flag.
func (h *Handler) Pending(c *fiber.Ctx) error {
	resp := PendingResponse{
		State:    h.svc.State(),
		Canceled: h.svc.Pending().ConsumeCanceled(),
	}
	if sub, ok := h.svc.Pending().Peek(); ok {
		resp.Pending = &sub
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func statusFor(out Outcome) int {
	switch out.Status {
	case OutcomeComplete:
		return http.StatusCreated
	case OutcomeDeferred:
		return http.StatusAccepted
	default:
		return http.StatusUnprocessableEntity
	}
}
