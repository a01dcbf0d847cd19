package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maplebank/accounts-service/internal/transfer"
)

// RegisterTransferRoutes wires transfer endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/transfers", h.Create)
	r.Get("/transfers/:transferId/status", h.Status)
}
