package models_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/tickmint/models"
)

func validDefinition() models.AssetDefinition {
	return models.AssetDefinition{
		Symbol:        "tick",
		Name:          "A Test Asset",
		Cap:           decimal.NewFromInt(21000),
		LimitPerIssue: decimal.NewFromInt(1000),
		MaxBatchSize:  decimal.NewFromInt(1),
	}
}

func TestValidateDefinitionAccepts(t *testing.T) {
	require.NoError(t, models.ValidateDefinition(validDefinition(), models.DefaultParams()))
}

func TestValidateDefinitionRejections(t *testing.T) {
	params := models.DefaultParams()

	tests := []struct {
		name   string
		mutate func(*models.AssetDefinition)
		reason string
	}{
		{
			name:   "symbol too short",
			mutate: func(d *models.AssetDefinition) { d.Symbol = "abc" },
			reason: "symbol must be exactly 4 bytes",
		},
		{
			name:   "symbol too long",
			mutate: func(d *models.AssetDefinition) { d.Symbol = "abcde" },
			reason: "symbol must be exactly 4 bytes",
		},
		{
			name: "name too long",
			mutate: func(d *models.AssetDefinition) {
				name := make([]byte, params.MaxNameBytes+1)
				for i := range name {
					name[i] = 'x'
				}
				d.Name = string(name)
			},
			reason: "name exceeds",
		},
		{
			name: "cap below per-issue limit",
			mutate: func(d *models.AssetDefinition) {
				d.Cap = decimal.NewFromInt(10)
				d.LimitPerIssue = decimal.NewFromInt(11)
			},
			reason: "cap must be at least",
		},
		{
			name:   "negative cap",
			mutate: func(d *models.AssetDefinition) { d.Cap = decimal.NewFromInt(-1) },
			reason: "amounts cannot be negative",
		},
		{
			// The sign check beats the pairing check: a negative rate with a
			// target set is reported as a negative amount.
			name: "negative funding rate with target set",
			mutate: func(d *models.AssetDefinition) {
				d.FundingRateBps = decimal.NewFromInt(-100)
				d.FundingTarget = "So11111111111111111111111111111111111111112"
			},
			reason: "amounts cannot be negative",
		},
		{
			name: "gating asset without minimum quantity",
			mutate: func(d *models.AssetDefinition) {
				d.GatingAsset = "So11111111111111111111111111111111111111112"
				d.GatingMinQuantity = decimal.Zero
			},
			reason: "gating asset set but minimum quantity",
		},
		{
			name: "gating quantity without gating asset",
			mutate: func(d *models.AssetDefinition) {
				d.GatingMinQuantity = decimal.NewFromInt(5)
			},
			reason: "without a gating asset",
		},
		{
			name: "cooldown above global maximum",
			mutate: func(d *models.AssetDefinition) {
				d.CooldownSeconds = params.MaxCooldownSeconds + 1
			},
			reason: "cooldown exceeds maximum",
		},
		{
			name: "batching combined with cooldown",
			mutate: func(d *models.AssetDefinition) {
				d.MaxBatchSize = decimal.NewFromInt(5)
				d.CooldownSeconds = 60
			},
			reason: "mutually exclusive",
		},
		{
			name: "funding rate without target",
			mutate: func(d *models.AssetDefinition) {
				d.FundingRateBps = decimal.NewFromInt(100)
			},
			reason: "must be set together",
		},
		{
			name: "funding target without rate",
			mutate: func(d *models.AssetDefinition) {
				d.FundingTarget = "So11111111111111111111111111111111111111112"
			},
			reason: "must be set together",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def := validDefinition()
			tc.mutate(&def)

			err := models.ValidateDefinition(def, params)
			require.Error(t, err)

			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Reason, tc.reason)
		})
	}
}

// A wrong-length symbol is rejected with the length reason even when every
// other field is broken too: validation is ordered and fails fast.
func TestValidateDefinitionFailsFastOnSymbolLength(t *testing.T) {
	def := validDefinition()
	def.Symbol = "abc"
	def.Cap = decimal.NewFromInt(1)
	def.LimitPerIssue = decimal.NewFromInt(100)
	def.GatingMinQuantity = decimal.NewFromInt(1)

	err := models.ValidateDefinition(def, models.DefaultParams())
	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Reason, "symbol must be exactly 4 bytes")
}

func TestValidateDefinitionAcceptsConsistentOptions(t *testing.T) {
	def := validDefinition()
	def.GatingAsset = "So11111111111111111111111111111111111111112"
	def.GatingMinQuantity = decimal.NewFromInt(10)
	def.FundingRateBps = decimal.NewFromInt(250)
	def.FundingTarget = "So11111111111111111111111111111111111111112"
	require.NoError(t, models.ValidateDefinition(def, models.DefaultParams()))

	// Batching is fine as long as no cooldown is set.
	def = validDefinition()
	def.MaxBatchSize = decimal.NewFromInt(10)
	def.CooldownSeconds = 0
	require.NoError(t, models.ValidateDefinition(def, models.DefaultParams()))
}
