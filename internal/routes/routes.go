package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/maplebank/accounts-service/internal/account"
	"github.com/maplebank/accounts-service/internal/config"
	"github.com/maplebank/accounts-service/internal/ledger"
	"github.com/maplebank/accounts-service/internal/middleware"
	"github.com/maplebank/accounts-service/internal/notification"
	"github.com/maplebank/accounts-service/internal/transaction"
	"github.com/maplebank/accounts-service/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database the ledger runs in memory, seeded with the demo dataset; without
// Redis the idempotency cache is skipped.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var store ledger.Store
	if d.DB != nil {
		store = ledger.NewPostgres(d.DB)
	} else {
		store = ledger.NewMemory(ledger.Bootstrap())
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	accountSvc := account.NewService(store)
	transferSvc := transfer.NewService(store, notifier, d.Logger, transfer.Config{
		QueueDelay:  d.Cfg.TransferQueueDelay,
		SettleDelay: d.Cfg.TransferSettleDelay,
	})

	accountHandler := account.NewHandler(accountSvc)
	transactionHandler := transaction.NewHandler(store)
	transferHandler := transfer.NewHandler(transferSvc)

	// Everything except /health sits behind the API key gate.
	api := app.Group("", middleware.APIKey(d.Cfg.APIKeys))
	if d.Cache != nil {
		api.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterAccountRoutes(api, accountHandler)
	RegisterTransactionRoutes(api, transactionHandler)
	RegisterTransferRoutes(api, transferHandler)

	return nil
}
