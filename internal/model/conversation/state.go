package conversation

import "github.com/visali231996/banking-agent/internal/model/account"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single utterance in the conversation transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is the classified purpose of the latest user message.
type Intent string

const (
	IntentNone     Intent = "none"
	IntentBalance  Intent = "balance"
	IntentTransfer Intent = "transfer"
	IntentHistory  Intent = "history"
	IntentConfirm  Intent = "confirm_action"
	IntentUnknown  Intent = "unknown"
)

// PendingActionTransfer is the only pending action type the agent produces.
const PendingActionTransfer = "transfer"

// PendingAction is a transfer awaiting explicit user confirmation. It is the
// only piece of per-turn context that must survive to a later turn.
type PendingAction struct {
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Recipient string  `json:"recipient"`
}

// State is the conversation record threaded through the agent. Messages grow
// monotonically; Intent, TransactionAmount, RecipientAccount and RiskScore are
// recomputed every turn, while Authenticated and PendingAction carry across
// turns.
type State struct {
	Messages           []Message             `json:"messages"`
	UserID             string                `json:"userId"`
	Authenticated      bool                  `json:"authenticated"`
	Intent             Intent                `json:"intent"`
	AccountBalance     *float64              `json:"accountBalance,omitempty"`
	TransactionAmount  float64               `json:"transactionAmount,omitempty"`
	RecipientAccount   string                `json:"recipientAccount,omitempty"`
	RiskScore          float64               `json:"riskScore"`
	PendingAction      *PendingAction        `json:"pendingAction,omitempty"`
	TransactionHistory []account.Transaction `json:"transactionHistory,omitempty"`
}

// New returns the initial state for a fresh session bound to an account.
func New(userID string) State {
	return State{
		UserID: userID,
		Intent: IntentNone,
	}
}

// Clone returns a deep copy so a turn can evolve the state without aliasing
// the caller's slices.
func (s State) Clone() State {
	out := s
	out.Messages = append([]Message(nil), s.Messages...)
	out.TransactionHistory = append([]account.Transaction(nil), s.TransactionHistory...)
	if s.AccountBalance != nil {
		v := *s.AccountBalance
		out.AccountBalance = &v
	}
	if s.PendingAction != nil {
		p := *s.PendingAction
		out.PendingAction = &p
	}
	return out
}

// AppendUser adds a user message to the transcript.
func (s *State) AppendUser(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: content})
}

// AppendAssistant adds an assistant reply to the transcript.
func (s *State) AppendAssistant(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
}

// LastMessage returns the most recent message regardless of author.
func (s *State) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// LastUserMessage returns the most recent user-authored message.
func (s *State) LastUserMessage() (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}
