package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateInventoryHardLimitTrips(t *testing.T) {
	c := NewController(80, 1e9)
	assert.True(t, c.Evaluate(80, 0), "inventory at hard limit should trip risk_off")
	assert.True(t, c.Evaluate(-80, 0), "short inventory at hard limit should trip risk_off")
	assert.False(t, c.Evaluate(79, 0), "inventory below hard limit should not trip")
}

// S5 — drawdown_usd = 200.00 exactly trips risk_off.
func TestEvaluateDrawdownBoundaryScenario(t *testing.T) {
	c := NewController(1<<40, 200)
	assert.True(t, c.Evaluate(0, 200.0), "drawdown exactly at threshold must trip risk_off")
	assert.False(t, c.Evaluate(0, 199.99), "drawdown below threshold must not trip")
}

func TestEvaluateNoHysteresis(t *testing.T) {
	c := NewController(80, 200)
	assert.True(t, c.Evaluate(85, 0), "expected risk_off true")
	assert.False(t, c.Evaluate(10, 0), "controller must not latch: next tick with safe inputs should clear risk_off")
}
