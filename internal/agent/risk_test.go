package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/visali231996/banking-agent/internal/agent"
)

func TestAssessRiskTiering(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		avg    float64
		want   float64
	}{
		{name: "exactly 5000 is medium not high", amount: 5000, avg: 1000, want: agent.RiskMedium},
		{name: "5001 is high", amount: 5001, avg: 1000, want: agent.RiskHigh},
		{name: "just under absolute threshold", amount: 999, avg: 1000, want: agent.RiskLow},
		{name: "exactly 1000 is medium", amount: 1000, avg: 1000, want: agent.RiskMedium},
		{name: "triple the average is medium", amount: 300, avg: 100, want: agent.RiskMedium},
		{name: "under triple the average", amount: 299, avg: 100, want: agent.RiskLow},
		{name: "zero amount", amount: 0, avg: 1000, want: agent.RiskLow},
		{name: "zero average treats any amount as unusual", amount: 500, avg: 0, want: agent.RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agent.AssessRisk(tt.amount, tt.avg))
		})
	}
}
