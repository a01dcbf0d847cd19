package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Date bounds are
// inclusive; a zero-value filter matches everything.
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
	Type TransactionType // empty matches all types
}

// Store is the authoritative home of accounts, transactions, and
// transfers. It defines the contract implemented by ledger backends
// (in-memory and Postgres).
//
// ApplyBalanceDelta is the single mutation point for account balances: it
// adds delta to the balance, refreshes the account's update timestamp, and
// returns the account as mutated. Only the transfer engine calls it.
type Store interface {
	Accounts(ctx context.Context) ([]Account, error)
	Account(ctx context.Context, id string) (Account, error)
	Transaction(ctx context.Context, id string) (Transaction, error)
	Transfer(ctx context.Context, id string) (Transfer, error)

	CreateTransfer(ctx context.Context, transfer Transfer) error
	SetTransferStatus(ctx context.Context, id string, status TransferStatus, processedAt *time.Time) error
	AppendTransaction(ctx context.Context, tx Transaction) error
	ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal, at time.Time) (Account, error)

	// AccountTransactions returns the account's transactions matching the
	// filter, ordered newest-first by creation time.
	AccountTransactions(ctx context.Context, accountID string, filter TransactionFilter) ([]Transaction, error)
}
