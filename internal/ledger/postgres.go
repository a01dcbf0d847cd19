package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore persists the ledger in PostgreSQL. It implements the same
// Store contract as the in-memory store so the engine and query layer are
// indifferent to the backend. Unlike the in-memory store, accounts here can
// genuinely disappear between transfer creation and settlement, which is
// what drives a transfer to the failed state.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed ledger store.
func NewPostgres(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `id, account_number, account_type, customer_id, customer_name, balance::text, currency, status, created_at, updated_at`

func (s *PostgresStore) Accounts(ctx context.Context) ([]Account, error) {
	rows, err := s.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Account(ctx context.Context, id string) (Account, error) {
	row := s.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return acc, err
}

func (s *PostgresStore) Transaction(ctx context.Context, id string) (Transaction, error) {
	row := s.db.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, err
}

func (s *PostgresStore) Transfer(ctx context.Context, id string) (Transfer, error) {
	row := s.db.QueryRow(ctx, `SELECT id, from_account_id, to_account_id, amount::text, currency, description, status, created_at, processed_at
        FROM transfers WHERE id = $1`, id)
	var (
		tr          Transfer
		amount      string
		processedAt *time.Time
	)
	err := row.Scan(&tr.ID, &tr.FromAccountID, &tr.ToAccountID, &amount, &tr.Currency, &tr.Description, &tr.Status, &tr.CreatedAt, &processedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transfer{}, ErrTransferNotFound
	}
	if err != nil {
		return Transfer{}, err
	}
	if tr.Amount, err = decimal.NewFromString(amount); err != nil {
		return Transfer{}, fmt.Errorf("decode transfer amount: %w", err)
	}
	tr.ProcessedAt = processedAt
	return tr, nil
}

func (s *PostgresStore) CreateTransfer(ctx context.Context, transfer Transfer) error {
	_, err := s.db.Exec(ctx, `INSERT INTO transfers (id, from_account_id, to_account_id, amount, currency, description, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transfer.ID, transfer.FromAccountID, transfer.ToAccountID, transfer.Amount.String(),
		transfer.Currency, transfer.Description, transfer.Status, transfer.CreatedAt)
	return err
}

func (s *PostgresStore) SetTransferStatus(ctx context.Context, id string, status TransferStatus, processedAt *time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE transfers SET status = $2, processed_at = COALESCE($3, processed_at) WHERE id = $1`,
		id, status, processedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransferNotFound
	}
	return nil
}

func (s *PostgresStore) AppendTransaction(ctx context.Context, tx Transaction) error {
	var transferID, fromAccount, toAccount *string
	if tx.Metadata != nil {
		transferID = &tx.Metadata.TransferID
		fromAccount = &tx.Metadata.FromAccount
		toAccount = &tx.Metadata.ToAccount
	}
	_, err := s.db.Exec(ctx, `INSERT INTO transactions
        (id, account_id, type, amount, currency, description, balance_after, created_at, transfer_id, from_account, to_account)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		tx.ID, tx.AccountID, tx.Type, tx.Amount.String(), tx.Currency, tx.Description,
		tx.BalanceAfter.String(), tx.CreatedAt, transferID, fromAccount, toAccount)
	return err
}

func (s *PostgresStore) ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal, at time.Time) (Account, error) {
	row := s.db.QueryRow(ctx, `UPDATE accounts SET balance = balance + $2::numeric, updated_at = $3
        WHERE id = $1 RETURNING `+accountColumns, accountID, delta.String(), at)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return acc, err
}

func (s *PostgresStore) AccountTransactions(ctx context.Context, accountID string, filter TransactionFilter) ([]Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE account_id = $1`
	args := []any{accountID}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

const txColumns = `id, account_id, type, amount::text, currency, description, balance_after::text, created_at, transfer_id, from_account, to_account`

func scanAccount(row pgx.Row) (Account, error) {
	var (
		acc     Account
		balance string
	)
	err := row.Scan(&acc.ID, &acc.AccountNumber, &acc.AccountType, &acc.CustomerID, &acc.CustomerName,
		&balance, &acc.Currency, &acc.Status, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return Account{}, err
	}
	if acc.Balance, err = decimal.NewFromString(balance); err != nil {
		return Account{}, fmt.Errorf("decode account balance: %w", err)
	}
	return acc, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		tx                                 Transaction
		amount, balanceAfter               string
		transferID, fromAccount, toAccount *string
	)
	err := row.Scan(&tx.ID, &tx.AccountID, &tx.Type, &amount, &tx.Currency, &tx.Description,
		&balanceAfter, &tx.CreatedAt, &transferID, &fromAccount, &toAccount)
	if err != nil {
		return Transaction{}, err
	}
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return Transaction{}, fmt.Errorf("decode transaction amount: %w", err)
	}
	if tx.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
		return Transaction{}, fmt.Errorf("decode balance after: %w", err)
	}
	if transferID != nil {
		tx.Metadata = &TransferLink{TransferID: *transferID}
		if fromAccount != nil {
			tx.Metadata.FromAccount = *fromAccount
		}
		if toAccount != nil {
			tx.Metadata.ToAccount = *toAccount
		}
	}
	return tx, nil
}
