package account

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-memory map, suitable for tests and
// single-process deployments seeded from a JSON file.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied accounts.
func NewMemoryStore(accounts []Account) *MemoryStore {
	m := &MemoryStore{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

// Get returns a copy of the stored account.
func (m *MemoryStore) Get(_ context.Context, id string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

// Update applies mutate under the write lock so concurrent debits against the
// same account serialize.
func (m *MemoryStore) Update(_ context.Context, id string, mutate func(*Account) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if err := mutate(&a); err != nil {
		return err
	}
	m.accounts[id] = a
	return nil
}

// MemoryLedger implements Ledger with an append-only in-memory slice.
type MemoryLedger struct {
	mu  sync.RWMutex
	txs []Transaction
}

// NewMemoryLedger returns a MemoryLedger preloaded with the supplied
// transactions, assumed ordered oldest first.
func NewMemoryLedger(txs []Transaction) *MemoryLedger {
	return &MemoryLedger{txs: append([]Transaction(nil), txs...)}
}

// QueryByAccount filters the ledger for entries touching the account.
func (l *MemoryLedger) QueryByAccount(_ context.Context, accountID string) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, 0, 8)
	for _, tx := range l.txs {
		if tx.Involves(accountID) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Append records tx at the end of the ledger.
func (l *MemoryLedger) Append(_ context.Context, tx Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = append(l.txs, tx)
	return nil
}
