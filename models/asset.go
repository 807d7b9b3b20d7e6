package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetDefinition is what a caller proposes for admission. Addresses are
// base58-encoded public keys; empty string means "none" for the optional
// gating and funding fields.
type AssetDefinition struct {
	Symbol             string          `json:"symbol"`
	Name               string          `json:"name"`
	Cap                decimal.Decimal `json:"cap"`
	LimitPerIssue      decimal.Decimal `json:"limit_per_issue"`
	MaxBatchSize       decimal.Decimal `json:"max_batch_size"`
	CooldownSeconds    uint64          `json:"cooldown_seconds"`
	GatingAsset        string          `json:"gating_asset"`
	GatingMinQuantity  decimal.Decimal `json:"gating_min_quantity"`
	FundingRateBps     decimal.Decimal `json:"funding_rate_bps"`
	FundingTarget      string          `json:"funding_target"`
}

// AssetRecord is a registered asset. Immutable after creation; the per-asset
// issuance module mutates its own counter, never this record.
type AssetRecord struct {
	ID                uint64          `json:"id" db:"id"`
	Symbol            string          `json:"symbol" db:"symbol"` // canonical (lower-cased)
	Name              string          `json:"name" db:"name"`
	Cap               decimal.Decimal `json:"cap" db:"cap"`
	LimitPerIssue     decimal.Decimal `json:"limit_per_issue" db:"limit_per_issue"`
	MaxBatchSize      decimal.Decimal `json:"max_batch_size" db:"max_batch_size"`
	CooldownSeconds   uint64          `json:"cooldown_seconds" db:"cooldown_seconds"`
	GatingAsset       string          `json:"gating_asset" db:"gating_asset"`
	GatingMinQuantity decimal.Decimal `json:"gating_min_quantity" db:"gating_min_quantity"`
	FundingRateBps    decimal.Decimal `json:"funding_rate_bps" db:"funding_rate_bps"`
	FundingTarget     string          `json:"funding_target" db:"funding_target"`
	Creator           string          `json:"creator" db:"creator"`
	ModuleAddress     string          `json:"module_address" db:"module_address"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// IsZero reports whether the record is the empty padding value used to fill
// page slots past the available result count.
func (r AssetRecord) IsZero() bool {
	return r.ID == 0 && r.Symbol == ""
}

// StatusFilter selects assets by issuance progress.
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusInProgress StatusFilter = "in_progress" // issued < cap
	StatusEnded      StatusFilter = "ended"       // issued == cap
)

// ParseStatusFilter maps a query-string value onto a filter; the empty
// string means "all".
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusEnded:
		return StatusEnded, true
	}
	return "", false
}

// AssetView joins a record with the live issuance total reported by its
// module.
type AssetView struct {
	Record AssetRecord     `json:"record"`
	Issued decimal.Decimal `json:"issued"`
}
