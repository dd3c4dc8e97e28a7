package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params carries every tunable the core consumes, loaded once at startup
// and held by the quote engine and risk controller as an explicit value
// — never as process-wide state.
type Params struct {
	Symbol string `yaml:"symbol"`

	TickUSD   float64 `yaml:"tick_usd"`
	Delta     float64 `yaml:"delta"`
	QtyBase   int64   `yaml:"qty_base"`
	QtyMin    int64   `yaml:"qty_min"`
	Lambda    float64 `yaml:"lambda"`
	InvSoft   int64   `yaml:"inv_soft"`
	InvHard   int64   `yaml:"inv_hard"`
	MaxDDUSD  float64 `yaml:"max_dd_usd"`
	BuyRate   float64 `yaml:"buy_rate"`
	SellRate  float64 `yaml:"sell_rate"`
	MaxSynQty int64   `yaml:"max_syn_qty"`

	Logging LoggingParams `yaml:"logging"`
	Metrics MetricsParams `yaml:"metrics"`
}

// LoggingParams configures the zap-backed logger.
type LoggingParams struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsParams configures the Prometheus HTTP listener.
type MetricsParams struct {
	Addr string `yaml:"addr"`
}

// ErrInputOpenFailure is returned when the event stream or config file
// cannot be opened; cmd/simulate exits non-zero on it.
type ErrInputOpenFailure string

func (e ErrInputOpenFailure) Error() string { return string(e) }

// Load reads YAML config from path, validates it, and returns Params.
func Load(path string) (Params, error) {
	var p Params
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, ErrInputOpenFailure(fmt.Sprintf("read config %s: %v", path, err))
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(p); err != nil {
		return p, err
	}
	return p, nil
}
