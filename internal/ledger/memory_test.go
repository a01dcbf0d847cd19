package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapDataset(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	accounts, err := store.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "acc_1001", accounts[0].ID)
	assert.True(t, accounts[0].Balance.Equal(dec("15000.00")))
	assert.True(t, accounts[2].Balance.Equal(dec("-2500.00")))
	assert.Equal(t, AccountTypeCredit, accounts[2].AccountType)

	tx, err := store.Transaction(ctx, "txn_5007")
	require.NoError(t, err)
	require.NotNil(t, tx.Metadata)
	assert.Equal(t, "tfr_7001", tx.Metadata.TransferID)

	tr, err := store.Transfer(ctx, "tfr_7001")
	require.NoError(t, err)
	assert.Equal(t, TransferProcessed, tr.Status)
	require.NotNil(t, tr.ProcessedAt)
}

func TestLookupsReturnSentinels(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	_, err := store.Account(ctx, "acc_9999")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = store.Transaction(ctx, "txn_9999")
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = store.Transfer(ctx, "tfr_9999")
	assert.ErrorIs(t, err, ErrTransferNotFound)
}

func TestApplyBalanceDelta(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	at := time.Now().UTC()
	acc, err := store.ApplyBalanceDelta(ctx, "acc_1001", dec("-300.00"), at)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(dec("14700.00")))
	assert.Equal(t, at, acc.UpdatedAt)

	// The mutation must be visible to subsequent reads.
	again, err := store.Account(ctx, "acc_1001")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(dec("14700.00")))

	_, err = store.ApplyBalanceDelta(ctx, "acc_9999", decimal.NewFromInt(1), at)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountTransactionsOrderingAndBounds(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	all, err := store.AccountTransactions(ctx, "acc_1001", TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].CreatedAt.Before(all[i].CreatedAt), "expected newest-first ordering")
	}

	// Inclusive bounds: from matches txn_5002 exactly, to matches txn_5007 exactly.
	from := ts("2024-10-05T14:30:00Z")
	to := ts("2024-10-10T10:00:00Z")
	window, err := store.AccountTransactions(ctx, "acc_1001", TransactionFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "txn_5007", window[0].ID)
	assert.Equal(t, "txn_5002", window[1].ID)
}

func TestAccountTransactionsTypeFilter(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	debits, err := store.AccountTransactions(ctx, "acc_1001", TransactionFilter{Type: TransactionTypeDebit})
	require.NoError(t, err)
	require.Len(t, debits, 2)
	for _, tx := range debits {
		assert.Equal(t, TransactionTypeDebit, tx.Type)
	}
}

func TestAppendTransaction(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	tx := Transaction{
		ID:           "txn_new",
		AccountID:    "acc_1001",
		Type:         TransactionTypeDebit,
		Amount:       dec("10.00"),
		Currency:     "CAD",
		Description:  "Coffee",
		BalanceAfter: dec("14990.00"),
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.AppendTransaction(ctx, tx))

	got, err := store.Transaction(ctx, "txn_new")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("10.00")))

	listed, err := store.AccountTransactions(ctx, "acc_1001", TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, "txn_new", listed[0].ID)
}

func TestSetTransferStatus(t *testing.T) {
	store := NewMemory(Bootstrap())
	ctx := context.Background()

	tr := Transfer{
		ID:            "tfr_test",
		FromAccountID: "acc_1001",
		ToAccountID:   "acc_1002",
		Amount:        dec("25.00"),
		Currency:      "CAD",
		Status:        TransferQueued,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.CreateTransfer(ctx, tr))
	assert.ErrorIs(t, store.CreateTransfer(ctx, tr), ErrTransferExists)

	require.NoError(t, store.SetTransferStatus(ctx, "tfr_test", TransferProcessing, nil))
	got, err := store.Transfer(ctx, "tfr_test")
	require.NoError(t, err)
	assert.Equal(t, TransferProcessing, got.Status)
	assert.Nil(t, got.ProcessedAt)

	done := time.Now().UTC()
	require.NoError(t, store.SetTransferStatus(ctx, "tfr_test", TransferProcessed, &done))
	got, err = store.Transfer(ctx, "tfr_test")
	require.NoError(t, err)
	assert.Equal(t, TransferProcessed, got.Status)
	require.NotNil(t, got.ProcessedAt)
	assert.Equal(t, done, *got.ProcessedAt)

	assert.ErrorIs(t, store.SetTransferStatus(ctx, "tfr_missing", TransferFailed, nil), ErrTransferNotFound)
}
