package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
symbol: BTC-SIM
tick_usd: 0.01
delta: 0.5
qty_base: 2
qty_min: 1
lambda: 0.05
inv_soft: 50
inv_hard: 80
max_dd_usd: 200
buy_rate: 0.1
sell_rate: 0.1
max_syn_qty: 5
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTemp(t, validYAML)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Symbol != "BTC-SIM" || p.InvHard != 80 || p.QtyMin != 1 {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestLoadMissingFileReturnsErrInputOpenFailure(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if _, ok := err.(ErrInputOpenFailure); !ok {
		t.Fatalf("expected ErrInputOpenFailure, got %T: %v", err, err)
	}
}

func TestLoadRejectsInvalidInventoryThresholds(t *testing.T) {
	path := writeTemp(t, strings.Replace(validYAML, "inv_soft: 50", "inv_soft: 90", 1))
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for inv_soft > inv_hard")
	}
}

func TestValidateRejectsOutOfRangeRates(t *testing.T) {
	p := Params{TickUSD: 0.01, QtyMin: 1, QtyBase: 1, InvSoft: 1, InvHard: 2, BuyRate: 1.5}
	if err := Validate(p); err == nil {
		t.Fatal("expected error for buy_rate > 1")
	}
}
