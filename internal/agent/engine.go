// Package agent implements the conversation state machine: an explicit step
// graph that authenticates the user, classifies intent and routes each turn to
// exactly one terminal banking action.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/visali231996/banking-agent/internal/audit"
	"github.com/visali231996/banking-agent/internal/model/account"
	"github.com/visali231996/banking-agent/internal/model/conversation"
)

// Node names one step in the conversation graph.
type Node string

const (
	nodeAuth     Node = "auth"
	nodeClassify Node = "classify"
	nodeBalance  Node = "balance"
	nodeHistory  Node = "history"
	nodeRisk     Node = "risk"
	nodeApproval Node = "approval"
	nodeExecute  Node = "execute"
	nodeEscalate Node = "escalate"
	nodeClarify  Node = "clarify"

	// nodeEnd is the terminal sentinel; no step is registered for it.
	nodeEnd Node = "end"
)

// ErrStepBudget means a turn exceeded the maximum node transitions, which only
// happens if the routing table is miswired into a cycle.
var ErrStepBudget = errors.New("step budget exceeded")

const defaultMaxSteps = 10

// stepFunc runs one node against the evolving state and names the next node.
type stepFunc func(ctx context.Context, st *conversation.State) (Node, error)

// Engine drives one conversation turn through the step graph.
type Engine struct {
	accounts account.Store
	ledger   account.Ledger
	audit    audit.Sink
	maxSteps int
	steps    map[Node]stepFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxSteps overrides the per-turn node transition budget.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// New wires the step graph against the supplied collaborators.
func New(accounts account.Store, ledger account.Ledger, sink audit.Sink, opts ...Option) *Engine {
	e := &Engine{
		accounts: accounts,
		ledger:   ledger,
		audit:    sink,
		maxSteps: defaultMaxSteps,
	}
	if e.audit == nil {
		e.audit = audit.NopSink{}
	}
	for _, opt := range opts {
		opt(e)
	}

	e.steps = map[Node]stepFunc{
		nodeAuth:     e.stepAuth,
		nodeClassify: e.stepClassify,
		nodeBalance:  e.stepBalance,
		nodeHistory:  e.stepHistory,
		nodeRisk:     e.stepRisk,
		nodeApproval: e.stepApproval,
		nodeExecute:  e.stepExecute,
		nodeEscalate: e.stepEscalate,
		nodeClarify:  e.stepClarify,
	}
	return e
}

// RunTurn appends userMessage to the prior state and walks the graph from the
// auth node until a terminal step. It returns the evolved state and the single
// assistant reply produced this turn; an empty reply means the turn ended
// silently (unrecognized intent). On error the prior state is returned
// unchanged.
func (e *Engine) RunTurn(ctx context.Context, prior conversation.State, userMessage string) (conversation.State, string, error) {
	st := prior.Clone()
	st.AppendUser(userMessage)
	replyStart := len(st.Messages)

	node := nodeAuth
	for steps := 0; node != nodeEnd; steps++ {
		if steps >= e.maxSteps {
			return prior, "", fmt.Errorf("%w: %d transitions without reaching a terminal node", ErrStepBudget, e.maxSteps)
		}
		step, ok := e.steps[node]
		if !ok {
			return prior, "", fmt.Errorf("no step registered for node %q", node)
		}
		next, err := step(ctx, &st)
		if err != nil {
			return prior, "", fmt.Errorf("step %s: %w", node, err)
		}
		node = next
	}

	return st, lastAssistantReply(st.Messages[replyStart:]), nil
}

// lastAssistantReply picks the reply out of the messages appended this turn.
func lastAssistantReply(appended []conversation.Message) string {
	for i := len(appended) - 1; i >= 0; i-- {
		if appended[i].Role == conversation.RoleAssistant {
			return appended[i].Content
		}
	}
	return ""
}
