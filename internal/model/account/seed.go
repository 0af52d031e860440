package account

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// seedFile mirrors the on-disk seed document: a map of accounts keyed by id
// plus an ordered transaction list.
type seedFile struct {
	Accounts     map[string]seedAccount `json:"ACCOUNTS_DB"`
	Transactions []seedTransaction      `json:"TRANSACTIONS_DB"`
}

type seedAccount struct {
	PIN            string  `json:"pin"`
	Balance        float64 `json:"balance"`
	AvgTransaction float64 `json:"avg_transaction"`
}

type seedTransaction struct {
	FromAccount string  `json:"from_account"`
	ToAccount   string  `json:"to_account"`
	Amount      float64 `json:"amount"`
	Timestamp   string  `json:"timestamp"`
	Status      string  `json:"status"`
}

// LoadSeed reads account and transaction seed data from a JSON file.
// Transaction timestamps accept RFC 3339 or a bare date.
func LoadSeed(path string) ([]Account, []Transaction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed file: %w", err)
	}

	var doc seedFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse seed file: %w", err)
	}

	accounts := make([]Account, 0, len(doc.Accounts))
	for id, a := range doc.Accounts {
		accounts = append(accounts, Account{
			ID:             id,
			PIN:            a.PIN,
			Balance:        a.Balance,
			AvgTransaction: a.AvgTransaction,
		})
	}

	txs := make([]Transaction, 0, len(doc.Transactions))
	for i, t := range doc.Transactions {
		ts, err := parseSeedTime(t.Timestamp)
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, Transaction{
			FromAccount: t.FromAccount,
			ToAccount:   t.ToAccount,
			Amount:      t.Amount,
			Timestamp:   ts,
			Status:      t.Status,
		})
	}

	return accounts, txs, nil
}

func parseSeedTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// Seed provides default demo accounts and ledger entries used when no seed
// file is configured.
func Seed() ([]Account, []Transaction) {
	accounts := []Account{
		{ID: "ACC-001", PIN: "1234", Balance: 5000, AvgTransaction: 500},
		{ID: "ACC-002", PIN: "5678", Balance: 12500, AvgTransaction: 1500},
		{ID: "ACC-003", PIN: "4321", Balance: 830, AvgTransaction: 200},
	}

	day := func(s string) time.Time {
		ts, _ := time.Parse("2006-01-02", s)
		return ts
	}
	txs := []Transaction{
		{FromAccount: "ACC-001", ToAccount: "ACC-002", Amount: 450, Timestamp: day("2026-08-02"), Status: StatusCompleted},
		{FromAccount: "ACC-003", ToAccount: "ACC-001", Amount: 120, Timestamp: day("2026-08-05"), Status: StatusCompleted},
		{FromAccount: "ACC-001", ToAccount: "ACC-003", Amount: 75, Timestamp: day("2026-08-11"), Status: StatusCompleted},
		{FromAccount: "ACC-002", ToAccount: "ACC-003", Amount: 900, Timestamp: day("2026-08-14"), Status: StatusCompleted},
		{FromAccount: "ACC-001", ToAccount: "ACC-002", Amount: 300, Timestamp: day("2026-08-17"), Status: StatusPending},
		{FromAccount: "ACC-002", ToAccount: "ACC-001", Amount: 1100, Timestamp: day("2026-08-20"), Status: StatusCompleted},
		{FromAccount: "ACC-001", ToAccount: "ACC-003", Amount: 60, Timestamp: day("2026-08-24"), Status: StatusCompleted},
	}

	return accounts, txs
}
