package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies customer accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

// AccountStatus tracks the lifecycle of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusFrozen   AccountStatus = "frozen"
)

// Account is a customer account. Balance is mutated exclusively through
// Store.ApplyBalanceDelta; credit account balances are stored negative
// (amount owed).
type Account struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"accountType"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TransactionType is the direction of a transaction relative to its account.
type TransactionType string

const (
	TransactionTypeDebit    TransactionType = "debit"
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionTypes lists every valid transaction type, in the order they are
// reported to clients.
var TransactionTypes = []TransactionType{TransactionTypeDebit, TransactionTypeCredit, TransactionTypeTransfer}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDebit, TransactionTypeCredit, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransferLink ties a settlement transaction back to the transfer that
// produced it.
type TransferLink struct {
	TransferID  string `json:"transferId"`
	FromAccount string `json:"fromAccount"`
	ToAccount   string `json:"toAccount"`
}

// Transaction is an immutable record of a balance-affecting event on a
// single account. BalanceAfter snapshots the account balance immediately
// after the transaction applied. Metadata is nil except on transactions
// produced by a settled transfer.
type Transaction struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"accountId"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	CreatedAt    time.Time       `json:"createdAt"`
	Metadata     *TransferLink   `json:"metadata,omitempty"`
}

// TransferStatus is the state of a transfer in its settlement lifecycle.
type TransferStatus string

const (
	TransferQueued     TransferStatus = "queued"
	TransferProcessing TransferStatus = "processing"
	TransferProcessed  TransferStatus = "processed"
	TransferFailed     TransferStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s TransferStatus) Terminal() bool {
	return s == TransferProcessed || s == TransferFailed
}

// Transfer is a request to move funds between two accounts. ProcessedAt is
// nil until the transfer reaches the processed state.
type Transfer struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	Status        TransferStatus  `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
}
