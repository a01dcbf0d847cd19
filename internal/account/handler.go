package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maplebank/accounts-service/internal/ledger"
)

// Handler exposes account read endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns every account.
func (h *Handler) List(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      accounts,
		"count":     len(accounts),
		"timestamp": now(),
	})
}

// Get returns a single account by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("accountId")
	acc, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return mapAccountErr(id, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      acc,
		"timestamp": now(),
	})
}

// Balance returns the balance view for an account.
func (h *Handler) Balance(c *fiber.Ctx) error {
	id := c.Params("accountId")
	view, err := h.service.Balance(c.UserContext(), id)
	if err != nil {
		return mapAccountErr(id, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      view,
		"timestamp": now(),
	})
}

// Transactions returns the filtered transaction history for an account.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	id := c.Params("accountId")

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return err
	}
	typeFilter := c.Query("type")

	txns, err := h.service.Transactions(c.UserContext(), id, HistoryInput{From: from, To: to, Type: typeFilter})
	if err != nil {
		if errors.Is(err, ErrInvalidTransactionType) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return mapAccountErr(id, err)
	}
	if txns == nil {
		txns = []ledger.Transaction{}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    txns,
		"count":   len(txns),
		"filters": fiber.Map{
			"from": orNil(c.Query("from")),
			"to":   orNil(c.Query("to")),
			"type": orNil(typeFilter),
		},
		"timestamp": now(),
	})
}

// Statement returns the aggregated statement for a date window. The csv
// format is rendered inline; pdf rendering is out of scope, so that format
// returns the data payload tagged accordingly.
func (h *Handler) Statement(c *fiber.Ctx) error {
	id := c.Params("accountId")

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return err
	}

	st, err := h.service.Statement(c.UserContext(), id, StatementInput{From: from, To: to, Format: c.Query("format")})
	if err != nil {
		if errors.Is(err, ErrMissingDateRange) || errors.Is(err, ErrInvalidFormat) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return mapAccountErr(id, err)
	}

	if st.Format == FormatCSV {
		body, err := RenderCSV(st)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Status(http.StatusOK).Send(body)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      st,
		"message":   "Statement generated in " + st.Format + " format.",
		"timestamp": now(),
	})
}

func mapAccountErr(id string, err error) error {
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return fiber.NewError(http.StatusNotFound, "Account with ID "+id+" not found.")
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}

// parseTimeQuery accepts RFC 3339 timestamps or bare dates.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fiber.NewError(http.StatusBadRequest, "Invalid "+name+" date. Use RFC 3339 or YYYY-MM-DD.")
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
