package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/coinramp/coinramp/internal/wallet"
)

// RegisterWalletRoutes wires the address registry endpoints.
func RegisterWalletRoutes(router fiber.Router, h *wallet.Handler) {
    grp := router.Group("/wallet")
    grp.Post("/addresses", h.SetAddresses)
    grp.Post("/override", h.SetOverride)
    grp.Post("/mode", h.SetMode)
    grp.Get("/resolve", h.Resolve)
}
