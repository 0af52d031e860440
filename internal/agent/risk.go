package agent

import (
	"context"
	"errors"

	"github.com/visali231996/banking-agent/internal/audit"
	"github.com/visali231996/banking-agent/internal/model/account"
	"github.com/visali231996/banking-agent/internal/model/conversation"
)

// Risk tiers for a proposed transfer.
const (
	RiskLow    = 0.0
	RiskMedium = 1.0
	RiskHigh   = 2.0
)

const defaultAvgTransaction = 1000

// AssessRisk scores a transfer amount against the account's typical activity.
// The 5000 boundary is exclusive: exactly 5000 is medium, not high.
func AssessRisk(amount, avgTransaction float64) float64 {
	switch {
	case amount > 5000:
		return RiskHigh
	case amount >= 1000 || amount >= avgTransaction*3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// stepRisk scores the current transfer and routes it to immediate execution,
// an approval request, or fraud escalation. It emits no reply of its own.
func (e *Engine) stepRisk(ctx context.Context, st *conversation.State) (Node, error) {
	avg := float64(defaultAvgTransaction)
	acct, err := e.accounts.Get(ctx, st.UserID)
	switch {
	case err == nil:
		if acct.AvgTransaction > 0 {
			avg = acct.AvgTransaction
		}
	case errors.Is(err, account.ErrNotFound):
		// Score against the default average; the execute step reports the
		// missing account to the user.
	default:
		return nodeEnd, err
	}

	st.RiskScore = AssessRisk(st.TransactionAmount, avg)
	e.audit.Record(audit.Event{
		Level:   audit.LevelWarn,
		UserID:  st.UserID,
		Message: "risk assessed",
		Fields: map[string]any{
			"amount": st.TransactionAmount,
			"score":  st.RiskScore,
		},
	})
	return routeRisk(st.RiskScore), nil
}

// routeRisk maps a risk tier to the next node.
func routeRisk(score float64) Node {
	switch score {
	case RiskHigh:
		return nodeEscalate
	case RiskMedium:
		return nodeApproval
	default:
		return nodeExecute
	}
}
