package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maplebank/accounts-service/internal/ledger"
)

// Handler exposes transaction lookup endpoints.
type Handler struct {
	store ledger.Store
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(store ledger.Store) *Handler {
	return &Handler{store: store}
}

// Get returns a single transaction by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("transactionId")
	tx, err := h.store.Transaction(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrTransactionNotFound) {
			return fiber.NewError(http.StatusNotFound, "Transaction with ID "+id+" not found.")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      tx,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
