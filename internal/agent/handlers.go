package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/visali231996/banking-agent/internal/audit"
	"github.com/visali231996/banking-agent/internal/model/account"
	"github.com/visali231996/banking-agent/internal/model/conversation"
)

const (
	replyAccountNotFound = "I'm sorry, I couldn't find your account details."
	replyNoTransactions  = "You have no recent transactions."

	historyDisplayLimit = 5
)

// stepBalance looks up the account and reports the current balance.
func (e *Engine) stepBalance(ctx context.Context, st *conversation.State) (Node, error) {
	acct, err := e.accounts.Get(ctx, st.UserID)
	if errors.Is(err, account.ErrNotFound) {
		st.AppendAssistant(replyAccountNotFound)
		return nodeEnd, nil
	}
	if err != nil {
		return nodeEnd, err
	}

	balance := acct.Balance
	st.AccountBalance = &balance
	st.AppendAssistant(fmt.Sprintf("Your current account balance is %s.", money(balance)))
	return nodeEnd, nil
}

// stepHistory replies with the most recent transactions touching the account.
// The reply shows at most historyDisplayLimit entries; the state keeps the
// full filtered set.
func (e *Engine) stepHistory(ctx context.Context, st *conversation.State) (Node, error) {
	txs, err := e.ledger.QueryByAccount(ctx, st.UserID)
	if err != nil {
		return nodeEnd, err
	}
	if len(txs) == 0 {
		st.AppendAssistant(replyNoTransactions)
		return nodeEnd, nil
	}

	st.TransactionHistory = txs

	recent := txs
	if len(recent) > historyDisplayLimit {
		recent = recent[len(recent)-historyDisplayLimit:]
	}

	var b strings.Builder
	b.WriteString("Your recent transactions:\n")
	for _, tx := range recent {
		direction := "IN"
		if tx.FromAccount == st.UserID {
			direction = "OUT"
		}
		fmt.Fprintf(&b, "- %s | %s | %s | status: %s\n",
			tx.Timestamp.Format("2006-01-02"), direction, money(tx.Amount), tx.Status)
	}
	st.AppendAssistant(strings.TrimRight(b.String(), "\n"))
	return nodeEnd, nil
}

// stepApproval parks the transfer as a pending action and asks for an explicit
// confirmation.
func (e *Engine) stepApproval(_ context.Context, st *conversation.State) (Node, error) {
	st.PendingAction = &conversation.PendingAction{
		Type:      conversation.PendingActionTransfer,
		Amount:    st.TransactionAmount,
		Recipient: st.RecipientAccount,
	}
	st.AppendAssistant(fmt.Sprintf(
		"Transferring %s to %s is unusual for this account. Reply YES to confirm.",
		money(st.TransactionAmount), st.RecipientAccount))
	return nodeEnd, nil
}

// stepExecute debits the account and appends a ledger entry. The pending
// action's amount and recipient win over the current turn's extraction, so a
// confirmation turn moves exactly what was approved. The pending action is
// always cleared: executed, declined or failed, it is resolved either way.
func (e *Engine) stepExecute(ctx context.Context, st *conversation.State) (Node, error) {
	amount := st.TransactionAmount
	recipient := st.RecipientAccount
	if p := st.PendingAction; p != nil && p.Type == conversation.PendingActionTransfer {
		amount = p.Amount
		if p.Recipient != "" {
			recipient = p.Recipient
		}
	}
	st.PendingAction = nil
	st.Intent = conversation.IntentNone

	var newBalance float64
	err := e.accounts.Update(ctx, st.UserID, func(a *account.Account) error {
		if a.Balance < amount {
			return account.ErrInsufficientFunds
		}
		a.Balance -= amount
		newBalance = a.Balance
		return nil
	})
	switch {
	case errors.Is(err, account.ErrNotFound):
		st.AppendAssistant(replyAccountNotFound)
		return nodeEnd, nil
	case errors.Is(err, account.ErrInsufficientFunds):
		st.AppendAssistant(fmt.Sprintf(
			"Transfer declined: your balance does not cover %s.", money(amount)))
		e.audit.Record(audit.Event{
			Level:   audit.LevelWarn,
			UserID:  st.UserID,
			Message: "transfer declined, insufficient funds",
			Fields:  map[string]any{"amount": amount},
		})
		return nodeEnd, nil
	case err != nil:
		return nodeEnd, err
	}

	if err := e.ledger.Append(ctx, account.Transaction{
		FromAccount: st.UserID,
		ToAccount:   recipient,
		Amount:      amount,
		Timestamp:   time.Now().UTC(),
		Status:      account.StatusCompleted,
	}); err != nil {
		// The balance already moved; surface the gap in the audit trail
		// instead of failing the turn.
		e.audit.Record(audit.Event{
			Level:   audit.LevelError,
			UserID:  st.UserID,
			Message: "ledger append failed after transfer",
			Fields:  map[string]any{"amount": amount, "error": err.Error()},
		})
	}

	st.AppendAssistant(fmt.Sprintf("Transfer completed. New balance: %s.", money(newBalance)))
	e.audit.Record(audit.Event{
		Level:   audit.LevelInfo,
		UserID:  st.UserID,
		Message: "transfer executed",
		Fields: map[string]any{
			"amount":  amount,
			"balance": newBalance,
		},
	})
	return nodeEnd, nil
}

// stepEscalate blocks a high-risk transfer outright: no execution, no pending
// state, a case id for the user to reference.
func (e *Engine) stepEscalate(_ context.Context, st *conversation.State) (Node, error) {
	caseID := newCaseID()

	recipient := st.RecipientAccount
	if recipient == "" && st.PendingAction != nil {
		recipient = st.PendingAction.Recipient
	}
	if recipient == "" {
		recipient = "an unknown account"
	}
	st.PendingAction = nil

	st.AppendAssistant(fmt.Sprintf(
		"Security alert: transaction blocked.\n"+
			"Your request to transfer %s to %s was flagged by our risk assessment.\n"+
			"Status: escalated for manual review. Reference: %s.\n"+
			"No funds have been moved. Our fraud team will contact you within 24 hours.",
		money(st.TransactionAmount), recipient, caseID))

	e.audit.Record(audit.Event{
		Level:   audit.LevelWarn,
		UserID:  st.UserID,
		Message: "transfer escalated to fraud review",
		Fields: map[string]any{
			"amount":  st.TransactionAmount,
			"case_id": caseID,
		},
	})
	return nodeEnd, nil
}

// stepClarify asks for the transfer details the classifier could not extract,
// instead of letting an unspecified transfer reach the risk path.
func (e *Engine) stepClarify(_ context.Context, st *conversation.State) (Node, error) {
	var missing []string
	if st.TransactionAmount <= 0 {
		missing = append(missing, "the amount")
	}
	if st.RecipientAccount == "" {
		missing = append(missing, "the recipient account")
	}
	st.AppendAssistant(fmt.Sprintf(
		"To make a transfer I need %s. For example: \"send $200 to ACC-002\".",
		strings.Join(missing, " and ")))
	return nodeEnd, nil
}

// newCaseID mints a fraud case reference like "FRD-9F86D081".
func newCaseID() string {
	u := uuid.New()
	return fmt.Sprintf("FRD-%X", u[:4])
}
