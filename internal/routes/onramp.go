package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/coinramp/coinramp/internal/onramp"
)

// RegisterOnrampRoutes wires the submission workflow endpoints. The resume
// endpoint is what the mobile shell hits when a screen regains focus.
func RegisterOnrampRoutes(router fiber.Router, h *onramp.Handler, submitLimiter fiber.Handler) {
    grp := router.Group("/onramp")
    grp.Post("/submit", submitLimiter, h.Submit)
    grp.Post("/resume", h.Resume)
    grp.Post("/cancel", h.Cancel)
    grp.Get("/pending", h.Pending)
}
