package routes

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/gofiber/fiber/v2"

    "github.com/coinramp/coinramp/internal/orders"
)

const defaultOrderLimit = 20

// RegisterOrderRoutes wires read access to the purchase history.
func RegisterOrderRoutes(router fiber.Router, repo orders.Repository) {
    grp := router.Group("/orders")

    grp.Get("", func(c *fiber.Ctx) error {
        limit := defaultOrderLimit
        if v := c.Query("limit"); v != "" {
            n, err := strconv.Atoi(v)
            if err != nil || n <= 0 {
                return fiber.NewError(http.StatusBadRequest, "limit must be a positive integer")
            }
            limit = n
        }
        list, err := repo.ListRecent(c.UserContext(), limit)
        if err != nil {
            return err
        }
        payload := make([]fiber.Map, 0, len(list))
        for _, order := range list {
            payload = append(payload, orderPayload(order))
        }
        return c.Status(http.StatusOK).JSON(fiber.Map{"orders": payload})
    })

    grp.Get("/:orderID", func(c *fiber.Ctx) error {
        order, err := repo.Get(c.UserContext(), c.Params("orderID"))
        if err != nil {
            if errors.Is(err, orders.ErrNotFound) {
                return fiber.NewError(http.StatusNotFound, err.Error())
            }
            return err
        }
        return c.Status(http.StatusOK).JSON(orderPayload(order))
    })
}

func orderPayload(order orders.Order) fiber.Map {
    return fiber.Map{
        "order_id": order.ID,
        "asset": order.Asset,
        "network": order.Network,
        "address": order.Address,
        "payment_method": order.PaymentMethod,
        "fiat_amount": order.FiatAmount,
        "fiat_currency": order.FiatCurrency,
        "status": order.Status,
        "provider_ref": order.ProviderRef,
        "created_at": order.CreatedAt,
    }
}
