package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dataset is the full contents of a ledger, used to preload a store.
type Dataset struct {
	Accounts     []Account
	Transactions []Transaction
	Transfers    []Transfer
}

// Bootstrap returns the fixed demo dataset the service starts with: three
// CAD accounts, their transaction history, and one already-settled transfer.
func Bootstrap() Dataset {
	return Dataset{
		Accounts: []Account{
			{
				ID:            "acc_1001",
				AccountNumber: "1234567890",
				AccountType:   AccountTypeChecking,
				CustomerID:    "cust_001",
				CustomerName:  "Alice Johnson",
				Balance:       dec("15000.00"),
				Currency:      "CAD",
				Status:        AccountStatusActive,
				CreatedAt:     ts("2024-01-15T10:00:00Z"),
				UpdatedAt:     ts("2024-10-20T14:30:00Z"),
			},
			{
				ID:            "acc_1002",
				AccountNumber: "0987654321",
				AccountType:   AccountTypeSavings,
				CustomerID:    "cust_002",
				CustomerName:  "Bob Smith",
				Balance:       dec("45000.00"),
				Currency:      "CAD",
				Status:        AccountStatusActive,
				CreatedAt:     ts("2024-02-10T09:00:00Z"),
				UpdatedAt:     ts("2024-10-21T08:15:00Z"),
			},
			{
				ID:            "acc_1003",
				AccountNumber: "5555666677",
				AccountType:   AccountTypeCredit,
				CustomerID:    "cust_003",
				CustomerName:  "Carol White",
				Balance:       dec("-2500.00"),
				Currency:      "CAD",
				Status:        AccountStatusActive,
				CreatedAt:     ts("2024-03-05T11:30:00Z"),
				UpdatedAt:     ts("2024-10-22T16:45:00Z"),
			},
		},
		Transactions: []Transaction{
			{ID: "txn_5001", AccountID: "acc_1001", Type: TransactionTypeCredit, Amount: dec("5000.00"), Currency: "CAD", Description: "Salary deposit", BalanceAfter: dec("15000.00"), CreatedAt: ts("2024-10-01T09:00:00Z")},
			{ID: "txn_5002", AccountID: "acc_1001", Type: TransactionTypeDebit, Amount: dec("150.00"), Currency: "CAD", Description: "Grocery store purchase", BalanceAfter: dec("14850.00"), CreatedAt: ts("2024-10-05T14:30:00Z")},
			{ID: "txn_5003", AccountID: "acc_1002", Type: TransactionTypeCredit, Amount: dec("10000.00"), Currency: "CAD", Description: "Investment deposit", BalanceAfter: dec("45000.00"), CreatedAt: ts("2024-10-03T10:15:00Z")},
			{ID: "txn_5004", AccountID: "acc_1002", Type: TransactionTypeDebit, Amount: dec("500.00"), Currency: "CAD", Description: "ATM withdrawal", BalanceAfter: dec("44500.00"), CreatedAt: ts("2024-10-07T16:20:00Z")},
			{ID: "txn_5005", AccountID: "acc_1003", Type: TransactionTypeDebit, Amount: dec("1200.00"), Currency: "CAD", Description: "Electronics purchase", BalanceAfter: dec("-2500.00"), CreatedAt: ts("2024-10-02T11:45:00Z")},
			{ID: "txn_5006", AccountID: "acc_1003", Type: TransactionTypeCredit, Amount: dec("500.00"), Currency: "CAD", Description: "Payment received", BalanceAfter: dec("-2000.00"), CreatedAt: ts("2024-10-08T13:00:00Z")},
			{
				ID: "txn_5007", AccountID: "acc_1001", Type: TransactionTypeTransfer, Amount: dec("300.00"), Currency: "CAD",
				Description: "Transfer to savings", BalanceAfter: dec("14550.00"), CreatedAt: ts("2024-10-10T10:00:00Z"),
				Metadata: &TransferLink{TransferID: "tfr_7001", FromAccount: "acc_1001", ToAccount: "acc_1002"},
			},
			{
				ID: "txn_5008", AccountID: "acc_1002", Type: TransactionTypeTransfer, Amount: dec("300.00"), Currency: "CAD",
				Description: "Transfer from checking", BalanceAfter: dec("44800.00"), CreatedAt: ts("2024-10-10T10:00:01Z"),
				Metadata: &TransferLink{TransferID: "tfr_7001", FromAccount: "acc_1001", ToAccount: "acc_1002"},
			},
			{ID: "txn_5009", AccountID: "acc_1001", Type: TransactionTypeDebit, Amount: dec("75.50"), Currency: "CAD", Description: "Restaurant payment", BalanceAfter: dec("14474.50"), CreatedAt: ts("2024-10-15T19:30:00Z")},
			{ID: "txn_5010", AccountID: "acc_1002", Type: TransactionTypeCredit, Amount: dec("1500.00"), Currency: "CAD", Description: "Interest payment", BalanceAfter: dec("46300.00"), CreatedAt: ts("2024-10-20T00:00:00Z")},
		},
		Transfers: []Transfer{
			{
				ID:            "tfr_7001",
				FromAccountID: "acc_1001",
				ToAccountID:   "acc_1002",
				Amount:        dec("300.00"),
				Currency:      "CAD",
				Description:   "Transfer to savings",
				Status:        TransferProcessed,
				CreatedAt:     ts("2024-10-10T09:59:55Z"),
				ProcessedAt:   tsp("2024-10-10T10:00:00Z"),
			},
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}
