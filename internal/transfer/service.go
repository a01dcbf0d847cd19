package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maplebank/accounts-service/internal/ledger"
	"github.com/maplebank/accounts-service/internal/notification"
)

var (
	// ErrSourceAccountNotFound indicates the source account id resolved to nothing.
	ErrSourceAccountNotFound = errors.New("source account not found")
	// ErrDestinationAccountNotFound indicates the destination account id resolved to nothing.
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	// ErrSameAccount rejects transfers where source and destination are equal.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrNonPositiveAmount rejects transfers whose amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be a positive number greater than 0")
	// ErrAccountNotActive rejects transfers involving an inactive or frozen account.
	ErrAccountNotActive = errors.New("both accounts must be active to perform a transfer")
	// ErrInsufficientFunds rejects transfers the source account cannot cover.
	ErrInsufficientFunds = errors.New("insufficient funds in source account")
)

// Config tunes the two settlement delays. Creation puts a transfer in the
// queued state; after QueueDelay it advances to processing, and after a
// further SettleDelay its balance effects are applied.
type Config struct {
	QueueDelay  time.Duration
	SettleDelay time.Duration
}

// DefaultConfig holds the stock clearing delays: half a second queued, one
// second processing.
func DefaultConfig() Config {
	return Config{QueueDelay: 500 * time.Millisecond, SettleDelay: time.Second}
}

// Service validates and executes transfers. Creation is synchronous and
// fully validated; settlement happens later on timer-scheduled steps so the
// caller gets the queued record back immediately and polls for status.
type Service struct {
	store    ledger.Store
	notifier notification.Notifier
	logger   *slog.Logger
	cfg      Config
}

// NewService builds a transfer service instance.
func NewService(store ledger.Store, notifier notification.Notifier, logger *slog.Logger, cfg Config) *Service {
	if cfg.QueueDelay <= 0 {
		cfg.QueueDelay = DefaultConfig().QueueDelay
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultConfig().SettleDelay
	}
	return &Service{store: store, notifier: notifier, logger: logger, cfg: cfg}
}

// CreateInput captures the data needed to move funds between accounts.
type CreateInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
}

// Create validates the request, records the transfer in the queued state,
// and schedules its settlement. Every validation failure is reported here;
// nothing invalid ever reaches the queued state.
func (s *Service) Create(ctx context.Context, input CreateInput) (ledger.Transfer, error) {
	if input.FromAccountID == input.ToAccountID {
		return ledger.Transfer{}, ErrSameAccount
	}
	if !input.Amount.IsPositive() {
		return ledger.Transfer{}, ErrNonPositiveAmount
	}

	from, err := s.store.Account(ctx, input.FromAccountID)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return ledger.Transfer{}, ErrSourceAccountNotFound
		}
		return ledger.Transfer{}, err
	}
	to, err := s.store.Account(ctx, input.ToAccountID)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return ledger.Transfer{}, ErrDestinationAccountNotFound
		}
		return ledger.Transfer{}, err
	}

	if from.Status != ledger.AccountStatusActive || to.Status != ledger.AccountStatusActive {
		return ledger.Transfer{}, ErrAccountNotActive
	}
	if from.Balance.LessThan(input.Amount) {
		return ledger.Transfer{}, ErrInsufficientFunds
	}

	transfer := ledger.Transfer{
		ID:            "tfr_" + uuid.NewString(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        input.Amount,
		Currency:      from.Currency,
		Description:   input.Description,
		Status:        ledger.TransferQueued,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.CreateTransfer(ctx, transfer); err != nil {
		return ledger.Transfer{}, err
	}

	time.AfterFunc(s.cfg.QueueDelay, func() { s.beginProcessing(transfer.ID) })

	return transfer, nil
}

// beginProcessing advances a queued transfer to processing and schedules the
// settlement step. The processing state is never skipped.
func (s *Service) beginProcessing(id string) {
	ctx := context.Background()
	if err := s.store.SetTransferStatus(ctx, id, ledger.TransferProcessing, nil); err != nil {
		s.logger.Error("advance transfer to processing", "transfer_id", id, "error", err)
		return
	}
	time.AfterFunc(s.cfg.SettleDelay, func() { s.settle(id) })
}

// settle applies a processing transfer's balance effects. It re-reads both
// accounts so completion observes the latest account state at execution
// time. If either account has disappeared the transfer is marked failed and
// nothing is mutated; no caller is waiting at this point, so the failure is
// only recorded on the transfer itself.
func (s *Service) settle(id string) {
	ctx := context.Background()

	transfer, err := s.store.Transfer(ctx, id)
	if err != nil {
		s.logger.Error("load transfer for settlement", "transfer_id", id, "error", err)
		return
	}

	from, err := s.store.Account(ctx, transfer.FromAccountID)
	if err == nil {
		_, err = s.store.Account(ctx, transfer.ToAccountID)
	}
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			s.fail(ctx, transfer)
			return
		}
		s.logger.Error("load accounts for settlement", "transfer_id", id, "error", err)
		return
	}

	now := time.Now().UTC()

	fromAfter, err := s.store.ApplyBalanceDelta(ctx, transfer.FromAccountID, transfer.Amount.Neg(), now)
	if err != nil {
		s.logger.Error("debit source account", "transfer_id", id, "error", err)
		return
	}
	toAfter, err := s.store.ApplyBalanceDelta(ctx, transfer.ToAccountID, transfer.Amount, now)
	if err != nil {
		s.logger.Error("credit destination account", "transfer_id", id, "error", err)
		return
	}

	link := &ledger.TransferLink{
		TransferID:  transfer.ID,
		FromAccount: transfer.FromAccountID,
		ToAccount:   transfer.ToAccountID,
	}

	debit := ledger.Transaction{
		ID:           "txn_" + uuid.NewString(),
		AccountID:    fromAfter.ID,
		Type:         ledger.TransactionTypeDebit,
		Amount:       transfer.Amount,
		Currency:     transfer.Currency,
		Description:  fmt.Sprintf("Transfer to %s", toAfter.AccountNumber),
		BalanceAfter: fromAfter.Balance,
		CreatedAt:    now,
		Metadata:     link,
	}
	credit := ledger.Transaction{
		ID:           "txn_" + uuid.NewString(),
		AccountID:    toAfter.ID,
		Type:         ledger.TransactionTypeCredit,
		Amount:       transfer.Amount,
		Currency:     transfer.Currency,
		Description:  fmt.Sprintf("Transfer from %s", from.AccountNumber),
		BalanceAfter: toAfter.Balance,
		CreatedAt:    now,
		Metadata:     link,
	}

	if err := s.store.AppendTransaction(ctx, debit); err != nil {
		s.logger.Error("append debit transaction", "transfer_id", id, "error", err)
		return
	}
	if err := s.store.AppendTransaction(ctx, credit); err != nil {
		s.logger.Error("append credit transaction", "transfer_id", id, "error", err)
		return
	}

	if err := s.store.SetTransferStatus(ctx, id, ledger.TransferProcessed, &now); err != nil {
		s.logger.Error("mark transfer processed", "transfer_id", id, "error", err)
		return
	}

	s.logger.Info("transfer settled", "transfer_id", id, "amount", transfer.Amount.String(), "currency", transfer.Currency)

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferSettled,
			Destination: transfer.ToAccountID,
			Body:        fmt.Sprintf("You received %s %s from account %s", transfer.Amount.String(), transfer.Currency, transfer.FromAccountID),
		})
	}
}

func (s *Service) fail(ctx context.Context, transfer ledger.Transfer) {
	if err := s.store.SetTransferStatus(ctx, transfer.ID, ledger.TransferFailed, nil); err != nil {
		s.logger.Error("mark transfer failed", "transfer_id", transfer.ID, "error", err)
		return
	}
	s.logger.Warn("transfer failed", "transfer_id", transfer.ID, "from", transfer.FromAccountID, "to", transfer.ToAccountID)
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferFailed,
			Destination: transfer.FromAccountID,
			Body:        fmt.Sprintf("Transfer %s could not be completed", transfer.ID),
		})
	}
}

// StatusView is the read-side projection of a transfer's lifecycle.
// EstimatedCompletion is nil once the transfer reaches a terminal state.
type StatusView struct {
	TransferID          string                `json:"transferId"`
	Status              ledger.TransferStatus `json:"status"`
	FromAccountID       string                `json:"fromAccountId"`
	ToAccountID         string                `json:"toAccountId"`
	Amount              decimal.Decimal       `json:"amount"`
	Currency            string                `json:"currency"`
	CreatedAt           time.Time             `json:"createdAt"`
	ProcessedAt         *time.Time            `json:"processedAt"`
	EstimatedCompletion *time.Time            `json:"estimatedCompletionTime"`
}

// Status returns the lifecycle projection for a transfer.
func (s *Service) Status(ctx context.Context, id string) (StatusView, error) {
	transfer, err := s.store.Transfer(ctx, id)
	if err != nil {
		return StatusView{}, err
	}

	view := StatusView{
		TransferID:    transfer.ID,
		Status:        transfer.Status,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		Amount:        transfer.Amount,
		Currency:      transfer.Currency,
		CreatedAt:     transfer.CreatedAt,
		ProcessedAt:   transfer.ProcessedAt,
	}
	if !transfer.Status.Terminal() {
		eta := time.Now().UTC().Add(s.cfg.QueueDelay + s.cfg.SettleDelay)
		view.EstimatedCompletion = &eta
	}
	return view, nil
}
