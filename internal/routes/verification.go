package routes

import (
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/coinramp/coinramp/internal/account"
    "github.com/coinramp/coinramp/internal/verification"
)

type completeVerificationRequest struct {
    Phone string `json:"phone"`
}

// RegisterVerificationRoutes wires the phone verification credential
// endpoints. Completing verification records the credential locally and links
// the phone on the account; status reconciles the credential against the
// account before reporting.
func RegisterVerificationRoutes(router fiber.Router, creds *verification.Store, accounts *account.StaticProvider) {
    grp := router.Group("/verification")

    grp.Post("/complete", func(c *fiber.Ctx) error {
        var req completeVerificationRequest
        if err := c.BodyParser(&req); err != nil {
            return fiber.NewError(http.StatusBadRequest, err.Error())
        }
        if req.Phone == "" {
            return fiber.NewError(http.StatusBadRequest, "phone is required")
        }
        if err := creds.Set(c.UserContext(), req.Phone); err != nil {
            return err
        }
        accounts.LinkPhone(req.Phone, true)
        return c.Status(http.StatusCreated).JSON(verificationPayload(creds))
    })

    grp.Post("/unlink", func(c *fiber.Ctx) error {
        if err := creds.Clear(c.UserContext()); err != nil {
            return err
        }
        accounts.LinkPhone("", false)
        return c.Status(http.StatusOK).JSON(verificationPayload(creds))
    })

    grp.Get("/status", func(c *fiber.Ctx) error {
        snap, err := accounts.Current(c.UserContext())
        if err != nil {
            return err
        }
        if _, err := creds.SyncWithAccount(c.UserContext(), snap.Phone); err != nil {
            return err
        }
        return c.Status(http.StatusOK).JSON(verificationPayload(creds))
    })
}

func verificationPayload(creds *verification.Store) fiber.Map {
    phone, held := creds.Value()
    payload := fiber.Map{
        "phone": phone,
        "held": held,
        "fresh": creds.Fresh(),
    }
    if held {
        payload["days_until_expiry"] = creds.DaysUntilExpiry()
    }
    return payload
}
