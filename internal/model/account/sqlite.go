package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store and Ledger on a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath and ensures the schema
// exists. WAL mode keeps concurrent readers from blocking the writer.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		pin TEXT NOT NULL,
		balance REAL NOT NULL,
		avg_transaction REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		from_account TEXT NOT NULL,
		to_account TEXT NOT NULL,
		amount REAL NOT NULL,
		timestamp INTEGER NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tx_from ON transactions(from_account);
	CREATE INDEX IF NOT EXISTS idx_tx_to ON transactions(to_account);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get retrieves an account by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, pin, balance, avg_transaction FROM accounts WHERE id = ?`, id)

	var a Account
	err := row.Scan(&a.ID, &a.PIN, &a.Balance, &a.AvgTransaction)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("scan account row: %w", err)
	}
	return a, nil
}

// Update applies mutate inside an immediate transaction so the read-modify-
// write of the balance is atomic.
func (s *SQLiteStore) Update(ctx context.Context, id string, mutate func(*Account) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, pin, balance, avg_transaction FROM accounts WHERE id = ?`, id)

	var a Account
	err = row.Scan(&a.ID, &a.PIN, &a.Balance, &a.AvgTransaction)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("scan account row: %w", err)
	}

	if err := mutate(&a); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET pin = ?, balance = ?, avg_transaction = ? WHERE id = ?`,
		a.PIN, a.Balance, a.AvgTransaction, id); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// QueryByAccount returns all transactions touching the account, oldest first.
func (s *SQLiteStore) QueryByAccount(ctx context.Context, accountID string) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_account, to_account, amount, timestamp, status
		 FROM transactions
		 WHERE from_account = ? OR to_account = ?
		 ORDER BY seq ASC`, accountID, accountID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		var ts int64
		if err := rows.Scan(&t.FromAccount, &t.ToAccount, &t.Amount, &ts, &t.Status); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		t.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Append records a new transaction at the end of the ledger.
func (s *SQLiteStore) Append(ctx context.Context, t Transaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (from_account, to_account, amount, timestamp, status)
		 VALUES (?, ?, ?, ?, ?)`,
		t.FromAccount, t.ToAccount, t.Amount, t.Timestamp.Unix(), t.Status)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// SeedIfEmpty loads seed accounts and transactions when the accounts table is
// empty, so a fresh database starts with usable demo data.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context, accounts []Account, txs []Transaction) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, a := range accounts {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO accounts (id, pin, balance, avg_transaction) VALUES (?, ?, ?, ?)`,
			a.ID, a.PIN, a.Balance, a.AvgTransaction); err != nil {
			return fmt.Errorf("seed account %s: %w", a.ID, err)
		}
	}
	for _, t := range txs {
		if err := s.Append(ctx, t); err != nil {
			return fmt.Errorf("seed transaction: %w", err)
		}
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
