package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maplebank/accounts-service/internal/transaction"
)

// RegisterTransactionRoutes wires transaction lookup endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	r.Get("/transactions/:transactionId", h.Get)
}
