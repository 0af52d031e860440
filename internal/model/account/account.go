package account

import "time"

// Transaction statuses as stored in the ledger.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Account is a single bank account record.
type Account struct {
	ID             string  `json:"id"`
	PIN            string  `json:"pin"`
	Balance        float64 `json:"balance"`
	AvgTransaction float64 `json:"avgTransaction"`
}

// Transaction is one ledger entry between two accounts.
type Transaction struct {
	FromAccount string    `json:"fromAccount"`
	ToAccount   string    `json:"toAccount"`
	Amount      float64   `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

// Involves reports whether the transaction touches the given account on
// either side.
func (t Transaction) Involves(accountID string) bool {
	return t.FromAccount == accountID || t.ToAccount == accountID
}
