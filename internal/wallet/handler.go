package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the address registry over HTTP. The mobile shell calls
// these endpoints from the authentication callback and the developer menu.
type Handler struct {
	registry *Registry
}

// NewHandler builds a registry HTTP handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

type addressesRequest struct {
	EVMAddress    string `json:"evm_address"`
	SolanaAddress string `json:"solana_address"`
}

type overrideRequest struct {
	Address string `json:"address"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// SetAddresses records the wallet addresses resolved at sign-in.
func (h *Handler) SetAddresses(c *fiber.Ctx) error {
	var req addressesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.registry.SetEVMAddress(req.EVMAddress); err != nil {
		return fiber.NewError(http.StatusBadRequest, "evm_address: "+err.Error())
	}
	if err := h.registry.SetSolanaAddress(req.SolanaAddress); err != nil {
		return fiber.NewError(http.StatusBadRequest, "solana_address: "+err.Error())
	}
	return c.Status(http.StatusOK).JSON(h.registry.Snapshot())
}

// SetOverride records or clears the sandbox override address.
func (h *Handler) SetOverride(c *fiber.Ctx) error {
	var req overrideRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.registry.SetOverrideAddress(req.Address); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(h.registry.Snapshot())
}

// SetMode flips the safety mode.
func (h *Handler) SetMode(c *fiber.Ctx) error {
	var req modeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.registry.SetMode(mode); err != nil {
		if errors.Is(err, ErrInvalidMode) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(h.registry.Snapshot())
}

// Resolve reports which address the given network would pay out to.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	network := c.Query("network")
	if network == "" {
		return fiber.NewError(http.StatusBadRequest, "network query parameter is required")
	}
	address := h.registry.Resolve(network)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"network":  network,
		"address":  address,
		"resolved": address != "",
	})
}
