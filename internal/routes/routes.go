package routes

import (
    "context"
    "fmt"
    "log/slog"
    "net/http"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/coinramp/coinramp/internal/account"
    "github.com/coinramp/coinramp/internal/config"
    "github.com/coinramp/coinramp/internal/metrics"
    "github.com/coinramp/coinramp/internal/middleware"
    "github.com/coinramp/coinramp/internal/notification"
    "github.com/coinramp/coinramp/internal/onramp"
    "github.com/coinramp/coinramp/internal/orders"
    "github.com/coinramp/coinramp/internal/session"
    "github.com/coinramp/coinramp/internal/verification"
    "github.com/coinramp/coinramp/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
    Cfg     config.Config
    DB      *pgxpool.Pool
    Cache   *redis.Client
    Logger  *slog.Logger
    Metrics *metrics.Registry
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
    // Enforce DB/Redis presence outside of dev, even though main also checks.
    if !d.Cfg.IsDev() {
        if d.DB == nil {
            return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
        }
        if d.Cache == nil {
            return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
        }
    }
    // Middlewares
    app.Use(recover.New())
    app.Use(middleware.RequestID())
    app.Use(middleware.Audit(d.Logger))
    if d.Cache != nil {
        app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
    }

    // Health
    RegisterHealthRoutes(app, d)

    // Stores and collaborators
    var credStorage verification.Storage
    if d.Cache != nil {
        credStorage = verification.NewRedisStorage(d.Cache)
    } else {
        credStorage = verification.NewMemoryStorage()
    }
    creds, err := verification.NewStore(context.Background(), credStorage, d.Cfg.VerificationTTL, d.Logger)
    if err != nil {
        return err
    }

    var orderRepo orders.Repository
    if d.DB != nil {
        orderRepo = orders.NewPostgresRepository(d.DB)
    } else {
        orderRepo = orders.NewMemoryRepository()
    }

    registry := wallet.NewRegistry()
    registers := session.NewRegisters()
    accounts := account.NewStaticProvider(account.Snapshot{UserID: "dev-user"})
    notifier := notification.NewLoggerNotifier(d.Logger)

    orch, err := onramp.NewOrchestrator(onramp.Deps{
        Registry:    registry,
        Region:      registers,
        Credentials: creds,
        Accounts:    accounts,
        Provider:    onramp.StaticProvider{},
        Orders:      orderRepo,
        Notifier:    notifier,
        Metrics:     d.Metrics,
        Logger:      d.Logger,
        SettleDelay: d.Cfg.SettleDelay,
    })
    if err != nil {
        return err
    }

    onrampHandler := onramp.NewHandler(orch)
    walletHandler := wallet.NewHandler(registry)

    // API routes
    api := app.Group("/api/v1")
    api.Get("/ping", func(c *fiber.Ctx) error {
        reqID, _ := c.Locals("X-Request-ID").(string)
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "status": "ok",
            "request_id": reqID,
            "timestamp": time.Now().UTC().Format(time.RFC3339Nano),
        })
    })

    // Session tokens are issued by the auth collaborator; in dev the routes
    // stay open so the flows can be exercised without one.
    root := api.Group("")
    if !d.Cfg.IsDev() {
        root = api.Group("", middleware.SessionToken(d.Cfg))
    }

    submitLimiter := middleware.SubmitRateLimit(d.Cache, d.Cfg.SubmitRatePerMin)
    RegisterOnrampRoutes(root, onrampHandler, submitLimiter)
    RegisterWalletRoutes(root, walletHandler)
    RegisterSessionRoutes(root, registers)
    RegisterVerificationRoutes(root, creds, accounts)
    RegisterOrderRoutes(root, orderRepo)
    root.Post("/signout", func(c *fiber.Ctx) error {
        if err := orch.SignOut(c.UserContext()); err != nil {
            return err
        }
        return c.Status(http.StatusOK).JSON(fiber.Map{"signed_out": true})
    })

    return nil
}
