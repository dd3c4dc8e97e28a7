package config

import "fmt"

// Validate rejects parameter combinations the core cannot run with.
func Validate(p Params) error {
	if p.TickUSD <= 0 {
		return fmt.Errorf("tick_usd must be > 0")
	}
	if p.QtyMin <= 0 {
		return fmt.Errorf("qty_min must be > 0")
	}
	if p.QtyBase < p.QtyMin {
		return fmt.Errorf("qty_base must be >= qty_min")
	}
	if p.Delta < 0 {
		return fmt.Errorf("delta must be >= 0")
	}
	if p.InvSoft <= 0 {
		return fmt.Errorf("inv_soft must be > 0")
	}
	if p.InvHard <= 0 {
		return fmt.Errorf("inv_hard must be > 0")
	}
	if p.InvSoft > p.InvHard {
		return fmt.Errorf("inv_soft must be <= inv_hard")
	}
	if p.MaxDDUSD < 0 {
		return fmt.Errorf("max_dd_usd must be >= 0")
	}
	if p.BuyRate < 0 || p.BuyRate > 1 {
		return fmt.Errorf("buy_rate must be in [0,1]")
	}
	if p.SellRate < 0 || p.SellRate > 1 {
		return fmt.Errorf("sell_rate must be in [0,1]")
	}
	if p.MaxSynQty < 0 {
		return fmt.Errorf("max_syn_qty must be >= 0")
	}
	return nil
}
