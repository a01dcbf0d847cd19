package account

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplebank/accounts-service/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tsp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func newService() *Service {
	return NewService(ledger.NewMemory(ledger.Bootstrap()))
}

func TestBalanceAvailableBalance(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name          string
		accountID     string
		wantBalance   string
		wantAvailable string
	}{
		{"checking equals balance", "acc_1001", "15000.00", "15000.00"},
		{"savings equals balance", "acc_1002", "45000.00", "45000.00"},
		{"credit is absolute value", "acc_1003", "-2500.00", "2500.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := svc.Balance(ctx, tc.accountID)
			require.NoError(t, err)
			assert.True(t, view.Balance.Equal(dec(tc.wantBalance)), "balance %s", view.Balance)
			assert.True(t, view.AvailableBalance.Equal(dec(tc.wantAvailable)), "available %s", view.AvailableBalance)
		})
	}
}

func TestBalanceUnknownAccount(t *testing.T) {
	svc := newService()
	_, err := svc.Balance(context.Background(), "acc_9999")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestTransactionsTypeValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Transactions(ctx, "acc_1001", HistoryInput{Type: "bogus"})
	require.ErrorIs(t, err, ErrInvalidTransactionType)
	assert.Contains(t, err.Error(), "debit, credit, transfer")

	txns, err := svc.Transactions(ctx, "acc_1001", HistoryInput{Type: "credit"})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "txn_5001", txns[0].ID)
}

func TestTransactionsDateWindow(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	txns, err := svc.Transactions(ctx, "acc_1001", HistoryInput{
		From: tsp("2024-10-01T00:00:00Z"),
		To:   tsp("2024-10-09T23:59:59Z"),
	})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "txn_5002", txns[0].ID)
	assert.Equal(t, "txn_5001", txns[1].ID)
}

func TestStatementAggregation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	st, err := svc.Statement(ctx, "acc_1001", StatementInput{
		From: tsp("2024-10-01T00:00:00Z"),
		To:   tsp("2024-10-31T23:59:59Z"),
	})
	require.NoError(t, err)

	// Window covers the full seed history for acc_1001: one 5000 credit,
	// debits 150 + 75.50, plus a transfer-typed entry that counts in neither.
	assert.True(t, st.Summary.TotalCredits.Equal(dec("5000.00")), "credits %s", st.Summary.TotalCredits)
	assert.True(t, st.Summary.TotalDebits.Equal(dec("225.50")), "debits %s", st.Summary.TotalDebits)
	assert.True(t, st.Summary.NetChange.Equal(st.Summary.TotalCredits.Sub(st.Summary.TotalDebits)))
	assert.Equal(t, 4, st.Summary.TransactionCount)

	assert.True(t, st.ClosingBalance.Equal(dec("15000.00")))
	assert.True(t, st.OpeningBalance.Equal(st.ClosingBalance.Sub(st.Summary.NetChange)))
	assert.Equal(t, FormatJSON, st.Format)
	assert.Equal(t, "Alice Johnson", st.CustomerName)
}

func TestStatementValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Statement(ctx, "acc_1001", StatementInput{To: tsp("2024-10-31T00:00:00Z")})
	assert.ErrorIs(t, err, ErrMissingDateRange)

	_, err = svc.Statement(ctx, "acc_1001", StatementInput{From: tsp("2024-10-01T00:00:00Z")})
	assert.ErrorIs(t, err, ErrMissingDateRange)

	_, err = svc.Statement(ctx, "acc_1001", StatementInput{
		From:   tsp("2024-10-01T00:00:00Z"),
		To:     tsp("2024-10-31T00:00:00Z"),
		Format: "xml",
	})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = svc.Statement(ctx, "acc_9999", StatementInput{
		From: tsp("2024-10-01T00:00:00Z"),
		To:   tsp("2024-10-31T00:00:00Z"),
	})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestRenderCSV(t *testing.T) {
	svc := newService()

	st, err := svc.Statement(context.Background(), "acc_1001", StatementInput{
		From:   tsp("2024-10-01T00:00:00Z"),
		To:     tsp("2024-10-31T23:59:59Z"),
		Format: FormatCSV,
	})
	require.NoError(t, err)

	body, err := RenderCSV(st)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(body)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// 10 summary rows, blank separator collapses, header row, then one row
	// per transaction.
	require.True(t, len(records) >= 11+st.Summary.TransactionCount)
	assert.Equal(t, []string{"accountId", "acc_1001"}, records[0])

	header := records[len(records)-st.Summary.TransactionCount-1]
	assert.Equal(t, "id", header[0])

	first := records[len(records)-st.Summary.TransactionCount]
	assert.Equal(t, "txn_5009", first[0], "newest transaction first")
}
