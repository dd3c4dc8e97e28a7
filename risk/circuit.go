// Package risk derives the risk-off regime the quote engine gates on.
package risk

// Controller evaluates risk_off from inventory and drawdown. It holds no
// history and no hysteresis: every call is a pure function of its inputs,
// and the result may toggle on any tick.
type Controller struct {
	InvHard   int64
	MaxDDUSD  float64
}

// NewController returns a Controller bound to the given thresholds.
func NewController(invHard int64, maxDDUSD float64) *Controller {
	return &Controller{InvHard: invHard, MaxDDUSD: maxDDUSD}
}

// Evaluate reports whether risk_off should latch for this tick: the
// inventory has breached the hard limit, or the drawdown has breached
// its USD threshold.
func (c *Controller) Evaluate(inventory int64, drawdownUSD float64) bool {
	absI := inventory
	if absI < 0 {
		absI = -absI
	}
	return absI >= c.InvHard || drawdownUSD >= c.MaxDDUSD
}
