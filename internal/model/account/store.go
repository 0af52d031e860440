package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no account exists for the requested identifier.
	ErrNotFound = errors.New("account not found")
	// ErrInsufficientFunds means a debit would take the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Store exposes account lookup and atomic mutation.
type Store interface {
	// Get returns the account for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Account, error)

	// Update applies mutate to the account for id under the store's write
	// lock. If mutate returns an error the account is left unchanged and the
	// error is returned as-is.
	Update(ctx context.Context, id string, mutate func(*Account) error) error
}

// Ledger exposes the append/query transaction log.
type Ledger interface {
	// QueryByAccount returns every transaction touching the account, ordered
	// oldest first. A missing account yields an empty slice, not an error.
	QueryByAccount(ctx context.Context, accountID string) ([]Transaction, error)

	// Append records a new transaction at the end of the ledger.
	Append(ctx context.Context, tx Transaction) error
}
