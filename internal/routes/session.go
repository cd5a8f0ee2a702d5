package routes

import (
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/coinramp/coinramp/internal/session"
)

type networkRequest struct {
    Network string `json:"network"`
}

type regionRequest struct {
    Country     string `json:"country"`
    Subdivision string `json:"subdivision"`
}

// RegisterSessionRoutes wires the network and region registers backing the
// purchase form controls.
func RegisterSessionRoutes(router fiber.Router, registers *session.Registers) {
    grp := router.Group("/session")

    grp.Post("/network", func(c *fiber.Ctx) error {
        var req networkRequest
        if err := c.BodyParser(&req); err != nil {
            return fiber.NewError(http.StatusBadRequest, err.Error())
        }
        if req.Network == "" {
            return fiber.NewError(http.StatusBadRequest, "network is required")
        }
        registers.SetNetwork(req.Network)
        return c.Status(http.StatusOK).JSON(sessionPayload(registers.Snapshot()))
    })

    grp.Post("/region", func(c *fiber.Ctx) error {
        var req regionRequest
        if err := c.BodyParser(&req); err != nil {
            return fiber.NewError(http.StatusBadRequest, err.Error())
        }
        if req.Country == "" {
            return fiber.NewError(http.StatusBadRequest, "country is required")
        }
        registers.SetRegion(req.Country, req.Subdivision)
        return c.Status(http.StatusOK).JSON(sessionPayload(registers.Snapshot()))
    })

    grp.Get("", func(c *fiber.Ctx) error {
        return c.Status(http.StatusOK).JSON(sessionPayload(registers.Snapshot()))
    })
}

func sessionPayload(snap session.Snapshot) fiber.Map {
    return fiber.Map{
        "network": snap.Network,
        "country": snap.Country,
        "subdivision": snap.Subdivision,
    }
}
