package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/visali231996/banking-agent/internal/audit"
	"github.com/visali231996/banking-agent/internal/model/account"
	"github.com/visali231996/banking-agent/internal/model/conversation"
)

const (
	replyAuthenticated = "You are authenticated. How can I help you today?"
	replyPINRequired   = "A PIN is required to proceed. Please include your PIN in your message."
)

// stepAuth gates the turn on PIN verification. Once authenticated the flag
// latches and the gate passes straight through to classification. The turn
// where the PIN is accepted replies with the confirmation and stops; intents
// are handled from the next turn on.
func (e *Engine) stepAuth(ctx context.Context, st *conversation.State) (Node, error) {
	if st.Authenticated {
		return nodeClassify, nil
	}

	last, ok := st.LastUserMessage()
	if !ok {
		return nodeEnd, nil
	}

	acct, err := e.accounts.Get(ctx, st.UserID)
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		return nodeEnd, err
	}

	if err == nil && acct.PIN != "" && strings.Contains(last.Content, acct.PIN) {
		st.Authenticated = true
		st.AppendAssistant(replyAuthenticated)
		// The message text stays out of the audit trail: it contains the PIN.
		e.audit.Record(audit.Event{
			Level:   audit.LevelInfo,
			UserID:  st.UserID,
			Message: "authentication succeeded",
		})
		return nodeEnd, nil
	}

	st.AppendAssistant(replyPINRequired)
	e.audit.Record(audit.Event{
		Level:   audit.LevelWarn,
		UserID:  st.UserID,
		Message: "authentication failed",
	})
	return nodeEnd, nil
}
