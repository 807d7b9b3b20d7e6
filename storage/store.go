package storage

import (
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// Store is the registry's persistence surface: two tables (id → record,
// canonical symbol → id), a scalar next-id counter, the global parameters,
// and the fee vault. Implemented by the Postgres DB and by MemoryStore.
type Store interface {
	// GetParams returns the current global parameters.
	GetParams() (models.Params, error)
	SetBaseFee(fee decimal.Decimal) error
	SetFundingCommission(bps int64) error
	SetTickSize(size int) error

	// PeekNextID returns the id the next successful admission will take,
	// without consuming it. Ids start at 1; 0 is the "not found" sentinel.
	PeekNextID() (uint64, error)
	// CreateAsset persists a record atomically: it consumes rec.ID (which
	// must still equal the stored next id), inserts the record, and credits
	// the paid fee to the vault. On any failure nothing is persisted.
	CreateAsset(rec models.AssetRecord, paidFee decimal.Decimal) error
	GetAssetByID(id uint64) (models.AssetRecord, bool, error)
	// GetIDBySymbol returns the id registered for a canonical symbol, or 0
	// when absent. It never returns a not-found error.
	GetIDBySymbol(canonical string) (uint64, error)
	// Count returns the number of registered assets (next id minus one).
	Count() (uint64, error)
	// ListAssets returns all records in ascending id order.
	ListAssets() ([]models.AssetRecord, error)
	// SetIssued persists the issuance total reported by an asset's module,
	// so the total survives a restart.
	SetIssued(id uint64, total decimal.Decimal) error
	// GetIssued returns the persisted issuance total, zero when the asset
	// has never minted.
	GetIssued(id uint64) (decimal.Decimal, error)

	// AddFees credits issuance fees collected by a module to the vault.
	AddFees(amount decimal.Decimal) error
	FeeBalance() (decimal.Decimal, error)
	// WithdrawFees debits the vault, failing with
	// models.ErrInsufficientFunds when the balance is too small.
	WithdrawFees(amount decimal.Decimal) error

	Close() error
}
