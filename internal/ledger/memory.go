package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type memoryStore struct {
	mu           sync.RWMutex
	accounts     map[string]Account
	accountOrder []string
	transactions []Transaction
	txIndex      map[string]int
	transfers    map[string]Transfer
}

// NewMemory creates a concurrency-safe in-memory store preloaded with the
// provided dataset. Settlement steps scheduled by the transfer engine may
// run on separate timer goroutines, so every mutation holds the store lock.
func NewMemory(data Dataset) Store {
	s := &memoryStore{
		accounts:  make(map[string]Account, len(data.Accounts)),
		txIndex:   make(map[string]int, len(data.Transactions)),
		transfers: make(map[string]Transfer, len(data.Transfers)),
	}
	for _, acc := range data.Accounts {
		s.accounts[acc.ID] = acc
		s.accountOrder = append(s.accountOrder, acc.ID)
	}
	for _, tx := range data.Transactions {
		s.txIndex[tx.ID] = len(s.transactions)
		s.transactions = append(s.transactions, tx)
	}
	for _, tr := range data.Transfers {
		s.transfers[tr.ID] = tr
	}
	return s
}

func (s *memoryStore) Accounts(_ context.Context) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		out = append(out, s.accounts[id])
	}
	return out, nil
}

func (s *memoryStore) Account(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acc, nil
}

func (s *memoryStore) Transaction(_ context.Context, id string) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.txIndex[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return s.transactions[idx], nil
}

func (s *memoryStore) Transfer(_ context.Context, id string) (Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tr, ok := s.transfers[id]
	if !ok {
		return Transfer{}, ErrTransferNotFound
	}
	return tr, nil
}

func (s *memoryStore) CreateTransfer(_ context.Context, transfer Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transfers[transfer.ID]; exists {
		return ErrTransferExists
	}
	s.transfers[transfer.ID] = transfer
	return nil
}

func (s *memoryStore) SetTransferStatus(_ context.Context, id string, status TransferStatus, processedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.transfers[id]
	if !ok {
		return ErrTransferNotFound
	}
	tr.Status = status
	if processedAt != nil {
		tr.ProcessedAt = processedAt
	}
	s.transfers[id] = tr
	return nil
}

func (s *memoryStore) AppendTransaction(_ context.Context, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txIndex[tx.ID] = len(s.transactions)
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *memoryStore) ApplyBalanceDelta(_ context.Context, accountID string, delta decimal.Decimal, at time.Time) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.UpdatedAt = at
	s.accounts[accountID] = acc
	return acc, nil
}

func (s *memoryStore) AccountTransactions(_ context.Context, accountID string, filter TransactionFilter) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Transaction
	for _, tx := range s.transactions {
		if tx.AccountID != accountID {
			continue
		}
		if !matchesFilter(tx, filter) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matchesFilter(tx Transaction, filter TransactionFilter) bool {
	if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && tx.CreatedAt.After(*filter.To) {
		return false
	}
	if filter.Type != "" && tx.Type != filter.Type {
		return false
	}
	return true
}
