package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maplebank/accounts-service/internal/account"
)

// RegisterAccountRoutes wires account read endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Get("/accounts", h.List)
	r.Get("/accounts/:accountId", h.Get)
	r.Get("/accounts/:accountId/balance", h.Balance)
	r.Get("/accounts/:accountId/transactions", h.Transactions)
	r.Get("/accounts/:accountId/statement", h.Statement)
}
