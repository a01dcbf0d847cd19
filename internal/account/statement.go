package account

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplebank/accounts-service/internal/ledger"
)

// Statement output formats.
const (
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatCSV  = "csv"
)

// StatementInput captures a statement request. Both date bounds are
// required; Format defaults to json.
type StatementInput struct {
	From   *time.Time
	To     *time.Time
	Format string
}

// StatementPeriod is the inclusive date window a statement covers.
type StatementPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// StatementSummary aggregates the window's activity.
type StatementSummary struct {
	TotalDebits      decimal.Decimal `json:"totalDebits"`
	TotalCredits     decimal.Decimal `json:"totalCredits"`
	NetChange        decimal.Decimal `json:"netChange"`
	TransactionCount int             `json:"transactionCount"`
}

// Statement is the aggregated view of an account's activity over a window.
//
// OpeningBalance is derived by subtracting the window's net change from the
// current closing balance. That is an approximation: any activity after the
// window's end also moves the closing balance, and the derivation ignores
// it.
type Statement struct {
	AccountID       string               `json:"accountId"`
	AccountNumber   string               `json:"accountNumber"`
	AccountType     ledger.AccountType   `json:"accountType"`
	CustomerName    string               `json:"customerName"`
	StatementPeriod StatementPeriod      `json:"statementPeriod"`
	OpeningBalance  decimal.Decimal      `json:"openingBalance"`
	ClosingBalance  decimal.Decimal      `json:"closingBalance"`
	Currency        string               `json:"currency"`
	Summary         StatementSummary     `json:"summary"`
	Transactions    []ledger.Transaction `json:"transactions"`
	GeneratedAt     time.Time            `json:"generatedAt"`
	Format          string               `json:"format"`
}

// Statement aggregates the account's activity over the requested window.
func (s *Service) Statement(ctx context.Context, accountID string, input StatementInput) (Statement, error) {
	if input.From == nil || input.To == nil {
		return Statement{}, ErrMissingDateRange
	}
	format := input.Format
	if format == "" {
		format = FormatJSON
	}
	switch format {
	case FormatJSON, FormatPDF, FormatCSV:
	default:
		return Statement{}, ErrInvalidFormat
	}

	acc, err := s.store.Account(ctx, accountID)
	if err != nil {
		return Statement{}, err
	}

	txns, err := s.store.AccountTransactions(ctx, accountID, ledger.TransactionFilter{From: input.From, To: input.To})
	if err != nil {
		return Statement{}, err
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, tx := range txns {
		switch tx.Type {
		case ledger.TransactionTypeDebit:
			debits = debits.Add(tx.Amount)
		case ledger.TransactionTypeCredit:
			credits = credits.Add(tx.Amount)
		}
	}
	netChange := credits.Sub(debits)

	return Statement{
		AccountID:       acc.ID,
		AccountNumber:   acc.AccountNumber,
		AccountType:     acc.AccountType,
		CustomerName:    acc.CustomerName,
		StatementPeriod: StatementPeriod{From: *input.From, To: *input.To},
		OpeningBalance:  acc.Balance.Sub(netChange),
		ClosingBalance:  acc.Balance,
		Currency:        acc.Currency,
		Summary: StatementSummary{
			TotalDebits:      debits,
			TotalCredits:     credits,
			NetChange:        netChange,
			TransactionCount: len(txns),
		},
		Transactions: txns,
		GeneratedAt:  time.Now().UTC(),
		Format:       format,
	}, nil
}

// RenderCSV serializes a statement for the csv output format: a summary
// block followed by one row per transaction.
func RenderCSV(st Statement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	summary := [][]string{
		{"accountId", st.AccountID},
		{"accountNumber", st.AccountNumber},
		{"customerName", st.CustomerName},
		{"periodFrom", st.StatementPeriod.From.Format(time.RFC3339)},
		{"periodTo", st.StatementPeriod.To.Format(time.RFC3339)},
		{"openingBalance", st.OpeningBalance.String()},
		{"closingBalance", st.ClosingBalance.String()},
		{"totalDebits", st.Summary.TotalDebits.String()},
		{"totalCredits", st.Summary.TotalCredits.String()},
		{"netChange", st.Summary.NetChange.String()},
		{},
		{"id", "type", "amount", "currency", "description", "balanceAfter", "createdAt"},
	}
	if err := w.WriteAll(summary); err != nil {
		return nil, err
	}

	for _, tx := range st.Transactions {
		record := []string{
			tx.ID,
			string(tx.Type),
			tx.Amount.String(),
			tx.Currency,
			tx.Description,
			tx.BalanceAfter.String(),
			tx.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
