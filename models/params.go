package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default parameter values, applied on first boot.
var (
	DefaultBaseFee              = decimal.NewFromInt(1000)
	DefaultFundingCommissionBps = int64(200)
	DefaultTickSize             = 4
	DefaultMaxNameBytes         = 64
	DefaultMaxCooldownSeconds   = uint64(86400)
)

// Params are the global economic and validation parameters. Updates apply
// to future admissions and issuances only; modules created earlier keep the
// values frozen into them at admission time.
type Params struct {
	// BaseFee is the flat fee required to deploy an asset and the starting
	// surcharge for the issuance fee escalator.
	BaseFee decimal.Decimal `json:"base_fee" db:"base_fee"`
	// FundingCommissionBps is the commission taken on revenue-share
	// payouts, in basis points.
	FundingCommissionBps int64 `json:"funding_commission_bps" db:"funding_commission_bps"`
	// TickSize is the exact byte length every symbol must have.
	TickSize int `json:"tick_size" db:"tick_size"`
	// MaxNameBytes bounds the display name length in bytes.
	MaxNameBytes int `json:"max_name_bytes" db:"max_name_bytes"`
	// MaxCooldownSeconds bounds the per-asset cooldown window.
	MaxCooldownSeconds uint64 `json:"max_cooldown_seconds" db:"max_cooldown_seconds"`
}

// DefaultParams returns the parameter set used before any admin update.
func DefaultParams() Params {
	return Params{
		BaseFee:              DefaultBaseFee,
		FundingCommissionBps: DefaultFundingCommissionBps,
		TickSize:             DefaultTickSize,
		MaxNameBytes:         DefaultMaxNameBytes,
		MaxCooldownSeconds:   DefaultMaxCooldownSeconds,
	}
}

// Validate rejects parameter sets that would make admission unsatisfiable.
func (p Params) Validate() error {
	if p.BaseFee.IsNegative() {
		return fmt.Errorf("base fee cannot be negative")
	}
	if p.FundingCommissionBps < 0 || p.FundingCommissionBps > 10000 {
		return fmt.Errorf("funding commission must be between 0 and 10000 bps")
	}
	if p.TickSize <= 0 {
		return fmt.Errorf("tick size must be positive")
	}
	if p.MaxNameBytes <= 0 {
		return fmt.Errorf("max name bytes must be positive")
	}
	return nil
}
