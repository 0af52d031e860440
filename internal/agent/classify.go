package agent

import (
	"context"
	"strings"

	"github.com/visali231996/banking-agent/internal/audit"
	"github.com/visali231996/banking-agent/internal/model/conversation"
)

var historyKeywords = []string{"history", "transactions", "past", "recent"}

// stepClassify recomputes the intent from the latest message and routes to the
// matching action node. The confirmation check runs first against the latest
// message regardless of author, so a bare "yes" resolves a pending transfer
// without re-extracting amount or recipient.
func (e *Engine) stepClassify(_ context.Context, st *conversation.State) (Node, error) {
	if latest, ok := st.LastMessage(); ok {
		if strings.EqualFold(strings.TrimSpace(latest.Content), "yes") && st.PendingAction != nil {
			st.Intent = conversation.IntentConfirm
			e.audit.Record(audit.Event{
				Level:   audit.LevelInfo,
				UserID:  st.UserID,
				Message: "pending action confirmed",
				Fields:  map[string]any{"amount": st.PendingAction.Amount},
			})
			return routeIntent(st), nil
		}
	}

	user, ok := st.LastUserMessage()
	if !ok {
		st.Intent = conversation.IntentUnknown
		return nodeEnd, nil
	}
	text := strings.ToLower(user.Content)

	// Per-turn extraction results never carry over; only PendingAction does.
	st.TransactionAmount = 0
	st.RecipientAccount = ""

	switch {
	case containsAny(text, historyKeywords...):
		st.Intent = conversation.IntentHistory
	case strings.Contains(text, "balance") || strings.Contains(text, "money"):
		st.Intent = conversation.IntentBalance
	case strings.Contains(text, "transfer") || strings.Contains(text, "send"):
		st.Intent = conversation.IntentTransfer
		if amount, ok := ParseAmount(text); ok {
			st.TransactionAmount = amount
		}
		if recipient, ok := ParseRecipient(text); ok {
			st.RecipientAccount = recipient
		}
	default:
		st.Intent = conversation.IntentUnknown
	}

	// A fresh actionable intent abandons whatever was awaiting confirmation.
	if st.Intent != conversation.IntentUnknown {
		st.PendingAction = nil
	}

	e.audit.Record(audit.Event{
		Level:   audit.LevelInfo,
		UserID:  st.UserID,
		Message: "intent classified",
		Fields: map[string]any{
			"intent": string(st.Intent),
			"amount": st.TransactionAmount,
		},
	})
	return routeIntent(st), nil
}

// routeIntent maps the classified intent to the next node. A transfer with a
// missing amount or recipient is routed to clarification instead of the risk
// path so the agent never moves unspecified funds.
func routeIntent(st *conversation.State) Node {
	switch st.Intent {
	case conversation.IntentConfirm:
		return nodeExecute
	case conversation.IntentBalance:
		return nodeBalance
	case conversation.IntentHistory:
		return nodeHistory
	case conversation.IntentTransfer:
		if st.TransactionAmount <= 0 || st.RecipientAccount == "" {
			return nodeClarify
		}
		return nodeRisk
	default:
		return nodeEnd
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
