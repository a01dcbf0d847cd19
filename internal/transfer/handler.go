package transfer

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/maplebank/accounts-service/internal/ledger"
)

// Handler exposes transfer HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	FromAccountID string           `json:"fromAccountId"`
	ToAccountID   string           `json:"toAccountId"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
}

// Create accepts a transfer request, validates it synchronously, and
// returns the queued record. Settlement happens later; callers poll Status.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.FromAccountID == "" || req.ToAccountID == "" || req.Amount == nil || req.Description == "" {
		return fiber.NewError(http.StatusBadRequest, "Missing required fields: fromAccountId, toAccountId, amount, description.")
	}

	transfer, err := h.service.Create(c.UserContext(), CreateInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        *req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSourceAccountNotFound), errors.Is(err, ErrDestinationAccountNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrSameAccount), errors.Is(err, ErrNonPositiveAmount),
			errors.Is(err, ErrAccountNotActive), errors.Is(err, ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"data":      transfer,
		"message":   "Transfer created successfully and queued for processing.",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Status returns the lifecycle projection for a transfer.
func (h *Handler) Status(c *fiber.Ctx) error {
	id := c.Params("transferId")
	view, err := h.service.Status(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrTransferNotFound) {
			return fiber.NewError(http.StatusNotFound, "Transfer with ID "+id+" not found.")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      view,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
