package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneDec = decimal.NewFromInt(1)

// ValidateDefinition applies the admission rules in order, failing fast
// with a distinct reason per rule. It never touches registry state; symbol
// uniqueness and fee sufficiency are checked by the registry afterwards.
func ValidateDefinition(def AssetDefinition, params Params) error {
	if SymbolByteLen(def.Symbol) != params.TickSize {
		return &ValidationError{Reason: fmt.Sprintf("symbol must be exactly %d bytes", params.TickSize)}
	}
	if len(def.Name) > params.MaxNameBytes {
		return &ValidationError{Reason: fmt.Sprintf("name exceeds %d bytes", params.MaxNameBytes)}
	}
	if def.Cap.IsNegative() || def.LimitPerIssue.IsNegative() || def.MaxBatchSize.IsNegative() ||
		def.GatingMinQuantity.IsNegative() || def.FundingRateBps.IsNegative() {
		return &ValidationError{Reason: "amounts cannot be negative"}
	}
	if def.Cap.LessThan(def.LimitPerIssue) {
		return &ValidationError{Reason: "cap must be at least the per-issue limit"}
	}
	if def.GatingAsset != "" && !def.GatingMinQuantity.IsPositive() {
		return &ValidationError{Reason: "gating asset set but minimum quantity is not positive"}
	}
	if def.GatingAsset == "" && !def.GatingMinQuantity.IsZero() {
		return &ValidationError{Reason: "gating minimum quantity set without a gating asset"}
	}
	if def.CooldownSeconds > params.MaxCooldownSeconds {
		return &ValidationError{Reason: fmt.Sprintf("cooldown exceeds maximum of %d seconds", params.MaxCooldownSeconds)}
	}
	if def.MaxBatchSize.GreaterThan(oneDec) && def.CooldownSeconds != 0 {
		return &ValidationError{Reason: "batch issuance and cooldown throttling are mutually exclusive"}
	}
	if (def.FundingRateBps.IsPositive() || def.FundingTarget != "") &&
		(!def.FundingRateBps.IsPositive() || def.FundingTarget == "") {
		return &ValidationError{Reason: "funding rate and funding target must be set together"}
	}
	return nil
}
