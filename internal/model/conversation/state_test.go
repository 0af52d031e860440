package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visali231996/banking-agent/internal/model/conversation"
)

func TestNewState(t *testing.T) {
	st := conversation.New("ACC-001")
	assert.Equal(t, "ACC-001", st.UserID)
	assert.Equal(t, conversation.IntentNone, st.Intent)
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.PendingAction)
}

func TestCloneDoesNotAliasMutableFields(t *testing.T) {
	st := conversation.New("ACC-001")
	st.AppendUser("hello")
	st.PendingAction = &conversation.PendingAction{
		Type:   conversation.PendingActionTransfer,
		Amount: 100,
	}
	balance := 500.0
	st.AccountBalance = &balance

	clone := st.Clone()
	clone.AppendAssistant("hi")
	clone.PendingAction.Amount = 999
	*clone.AccountBalance = 1

	assert.Len(t, st.Messages, 1, "original transcript untouched")
	assert.Equal(t, 100.0, st.PendingAction.Amount)
	assert.Equal(t, 500.0, *st.AccountBalance)
}

func TestLastUserMessageSkipsAssistant(t *testing.T) {
	st := conversation.New("ACC-001")

	_, ok := st.LastUserMessage()
	assert.False(t, ok)

	st.AppendUser("first")
	st.AppendAssistant("reply")

	msg, ok := st.LastUserMessage()
	require.True(t, ok)
	assert.Equal(t, "first", msg.Content)

	latest, ok := st.LastMessage()
	require.True(t, ok)
	assert.Equal(t, conversation.RoleAssistant, latest.Role)
}
