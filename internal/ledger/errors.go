package ledger

import "errors"

var (
	// ErrAccountNotFound indicates the account identifier resolved to nothing.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound indicates the transaction identifier resolved to nothing.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransferNotFound indicates the transfer identifier resolved to nothing.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrTransferExists indicates a transfer with the same identifier was
	// already recorded.
	ErrTransferExists = errors.New("transfer already exists")
)
