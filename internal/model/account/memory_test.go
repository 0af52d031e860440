package account_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visali231996/banking-agent/internal/model/account"
)

func TestMemoryStoreGetAndUpdate(t *testing.T) {
	store := account.NewMemoryStore([]account.Account{
		{ID: "ACC-001", PIN: "1234", Balance: 500, AvgTransaction: 100},
	})
	ctx := context.Background()

	got, err := store.Get(ctx, "ACC-001")
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Balance)

	err = store.Update(ctx, "ACC-001", func(a *account.Account) error {
		a.Balance -= 200
		return nil
	})
	require.NoError(t, err)

	got, err = store.Get(ctx, "ACC-001")
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Balance)
}

func TestMemoryStoreUpdateErrorLeavesAccountUnchanged(t *testing.T) {
	store := account.NewMemoryStore([]account.Account{
		{ID: "ACC-001", PIN: "1234", Balance: 500},
	})
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := store.Update(ctx, "ACC-001", func(a *account.Account) error {
		a.Balance = 0
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	got, err := store.Get(ctx, "ACC-001")
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Balance)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := account.NewMemoryStore(nil)
	ctx := context.Background()

	_, err := store.Get(ctx, "ACC-404")
	assert.ErrorIs(t, err, account.ErrNotFound)

	err = store.Update(ctx, "ACC-404", func(*account.Account) error { return nil })
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestMemoryLedgerQueryFiltersAndPreservesOrder(t *testing.T) {
	day := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("parse day: %v", err)
		}
		return ts
	}
	ledger := account.NewMemoryLedger([]account.Transaction{
		{FromAccount: "ACC-001", ToAccount: "ACC-002", Amount: 10, Timestamp: day("2026-01-01"), Status: account.StatusCompleted},
		{FromAccount: "ACC-003", ToAccount: "ACC-004", Amount: 20, Timestamp: day("2026-01-02"), Status: account.StatusCompleted},
		{FromAccount: "ACC-002", ToAccount: "ACC-001", Amount: 30, Timestamp: day("2026-01-03"), Status: account.StatusCompleted},
	})
	ctx := context.Background()

	txs, err := ledger.QueryByAccount(ctx, "ACC-001")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 10.0, txs[0].Amount)
	assert.Equal(t, 30.0, txs[1].Amount)

	require.NoError(t, ledger.Append(ctx, account.Transaction{
		FromAccount: "ACC-001", ToAccount: "ACC-004", Amount: 40,
		Timestamp: day("2026-01-04"), Status: account.StatusCompleted,
	}))

	txs, err = ledger.QueryByAccount(ctx, "ACC-001")
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, 40.0, txs[2].Amount, "appended entry is most recent")
}

func TestLoadSeed(t *testing.T) {
	doc := `{
		"ACCOUNTS_DB": {
			"ACC-001": {"pin": "1234", "balance": 5000, "avg_transaction": 500}
		},
		"TRANSACTIONS_DB": [
			{"from_account": "ACC-001", "to_account": "ACC-002", "amount": 450, "timestamp": "2026-08-02", "status": "completed"},
			{"from_account": "ACC-002", "to_account": "ACC-001", "amount": 120, "timestamp": "2026-08-05T10:30:00Z", "status": "pending"}
		]
	}`
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	accounts, txs, err := account.LoadSeed(path)
	require.NoError(t, err)

	require.Len(t, accounts, 1)
	assert.Equal(t, "ACC-001", accounts[0].ID)
	assert.Equal(t, "1234", accounts[0].PIN)
	assert.Equal(t, 500.0, accounts[0].AvgTransaction)

	require.Len(t, txs, 2)
	assert.Equal(t, "2026-08-02", txs[0].Timestamp.Format("2006-01-02"))
	assert.Equal(t, account.StatusPending, txs[1].Status)
}

func TestLoadSeedBadTimestamp(t *testing.T) {
	doc := `{
		"ACCOUNTS_DB": {},
		"TRANSACTIONS_DB": [
			{"from_account": "A", "to_account": "B", "amount": 1, "timestamp": "not-a-date", "status": "completed"}
		]
	}`
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, _, err := account.LoadSeed(path)
	assert.Error(t, err)
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, _, err := account.LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
