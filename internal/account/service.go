package account

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplebank/accounts-service/internal/ledger"
)

var (
	// ErrInvalidTransactionType rejects history queries whose type filter is
	// outside the known set.
	ErrInvalidTransactionType = errors.New("Invalid transaction type. Must be one of: debit, credit, transfer.")
	// ErrMissingDateRange rejects statement requests without both bounds.
	ErrMissingDateRange = errors.New("Both from and to date parameters are required.")
	// ErrInvalidFormat rejects unknown statement output formats.
	ErrInvalidFormat = errors.New("Invalid format. Must be one of: json, pdf, csv.")
)

// Service is the read side of the ledger: balance views, filtered
// transaction history, and statement aggregation. It never mutates.
type Service struct {
	store ledger.Store
}

// NewService builds an account query service.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]ledger.Account, error) {
	return s.store.Accounts(ctx)
}

// Get returns a single account.
func (s *Service) Get(ctx context.Context, id string) (ledger.Account, error) {
	return s.store.Account(ctx, id)
}

// BalanceView projects the spendable position of an account. For credit
// accounts the stored balance is negative (amount owed), so the available
// balance is its absolute value; for all other types the two are equal.
type BalanceView struct {
	AccountID        string               `json:"accountId"`
	AccountNumber    string               `json:"accountNumber"`
	Balance          decimal.Decimal      `json:"balance"`
	Currency         string               `json:"currency"`
	AvailableBalance decimal.Decimal      `json:"availableBalance"`
	Status           ledger.AccountStatus `json:"status"`
	AsOf             time.Time            `json:"asOf"`
}

// Balance returns the balance view for an account.
func (s *Service) Balance(ctx context.Context, id string) (BalanceView, error) {
	acc, err := s.store.Account(ctx, id)
	if err != nil {
		return BalanceView{}, err
	}

	available := acc.Balance
	if acc.AccountType == ledger.AccountTypeCredit {
		available = acc.Balance.Abs()
	}

	return BalanceView{
		AccountID:        acc.ID,
		AccountNumber:    acc.AccountNumber,
		Balance:          acc.Balance,
		Currency:         acc.Currency,
		AvailableBalance: available,
		Status:           acc.Status,
		AsOf:             acc.UpdatedAt,
	}, nil
}

// HistoryInput narrows a transaction history query. Date bounds are
// inclusive; Type is an optional raw filter value validated here.
type HistoryInput struct {
	From *time.Time
	To   *time.Time
	Type string
}

// Transactions returns the account's transaction history, newest-first.
func (s *Service) Transactions(ctx context.Context, accountID string, input HistoryInput) ([]ledger.Transaction, error) {
	if input.Type != "" && !ledger.TransactionType(input.Type).Valid() {
		return nil, ErrInvalidTransactionType
	}
	if _, err := s.store.Account(ctx, accountID); err != nil {
		return nil, err
	}
	return s.store.AccountTransactions(ctx, accountID, ledger.TransactionFilter{
		From: input.From,
		To:   input.To,
		Type: ledger.TransactionType(input.Type),
	})
}
