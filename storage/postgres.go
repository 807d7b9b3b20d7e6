package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// The registry_state singleton row holds the scalar counter and the fee
// vault; updating both in the same statement as the record insert's
// transaction keeps admission atomic (a rolled-back deploy never consumes
// an id).

func (d *DB) GetParams() (models.Params, error) {
	var p models.Params
	err := d.Get(&p, `SELECT base_fee, funding_commission_bps, tick_size, max_name_bytes, max_cooldown_seconds FROM params WHERE id = 1`)
	if err != nil {
		return models.Params{}, fmt.Errorf("failed to load params: %w", err)
	}
	return p, nil
}

func (d *DB) SetBaseFee(fee decimal.Decimal) error {
	_, err := d.Exec(`UPDATE params SET base_fee = $1 WHERE id = 1`, fee)
	if err != nil {
		return fmt.Errorf("failed to update base fee: %w", err)
	}
	return nil
}

func (d *DB) SetFundingCommission(bps int64) error {
	_, err := d.Exec(`UPDATE params SET funding_commission_bps = $1 WHERE id = 1`, bps)
	if err != nil {
		return fmt.Errorf("failed to update funding commission: %w", err)
	}
	return nil
}

func (d *DB) SetTickSize(size int) error {
	_, err := d.Exec(`UPDATE params SET tick_size = $1 WHERE id = 1`, size)
	if err != nil {
		return fmt.Errorf("failed to update tick size: %w", err)
	}
	return nil
}

func (d *DB) PeekNextID() (uint64, error) {
	var next uint64
	if err := d.Get(&next, `SELECT next_id FROM registry_state WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("failed to read next id: %w", err)
	}
	return next, nil
}

func (d *DB) CreateAsset(rec models.AssetRecord, paidFee decimal.Decimal) error {
	tx, err := d.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE registry_state SET next_id = next_id + 1, fee_vault = fee_vault + $1 WHERE id = 1 AND next_id = $2`,
		paidFee, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve id %d: %w", rec.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reserve id %d: %w", rec.ID, err)
	}
	if affected != 1 {
		return fmt.Errorf("id %d is no longer the next id", rec.ID)
	}

	_, err = tx.NamedExec(`
		INSERT INTO assets (id, symbol, name, cap, limit_per_issue, max_batch_size, cooldown_seconds,
			gating_asset, gating_min_quantity, funding_rate_bps, funding_target,
			creator, module_address, created_at)
		VALUES (:id, :symbol, :name, :cap, :limit_per_issue, :max_batch_size, :cooldown_seconds,
			:gating_asset, :gating_min_quantity, :funding_rate_bps, :funding_target,
			:creator, :module_address, :created_at)`, rec)
	if err != nil {
		return fmt.Errorf("failed to insert asset %q: %w", rec.Symbol, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit asset %q: %w", rec.Symbol, err)
	}
	return nil
}

const assetColumns = `id, symbol, name, cap, limit_per_issue, max_batch_size, cooldown_seconds,
	gating_asset, gating_min_quantity, funding_rate_bps, funding_target,
	creator, module_address, created_at`

func (d *DB) GetAssetByID(id uint64) (models.AssetRecord, bool, error) {
	var rec models.AssetRecord
	err := d.Get(&rec, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AssetRecord{}, false, nil
	}
	if err != nil {
		return models.AssetRecord{}, false, fmt.Errorf("failed to load asset %d: %w", id, err)
	}
	return rec, true, nil
}

func (d *DB) GetIDBySymbol(canonical string) (uint64, error) {
	var id uint64
	err := d.Get(&id, `SELECT id FROM assets WHERE symbol = $1`, canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up symbol %q: %w", canonical, err)
	}
	return id, nil
}

func (d *DB) Count() (uint64, error) {
	next, err := d.PeekNextID()
	if err != nil {
		return 0, err
	}
	return next - 1, nil
}

func (d *DB) ListAssets() ([]models.AssetRecord, error) {
	recs := []models.AssetRecord{}
	if err := d.Select(&recs, `SELECT `+assetColumns+` FROM assets ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return recs, nil
}

func (d *DB) SetIssued(id uint64, total decimal.Decimal) error {
	_, err := d.Exec(`UPDATE assets SET issued = $2 WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("failed to persist issued total for asset %d: %w", id, err)
	}
	return nil
}

func (d *DB) GetIssued(id uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := d.Get(&total, `SELECT issued FROM assets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read issued total for asset %d: %w", id, err)
	}
	return total, nil
}

func (d *DB) AddFees(amount decimal.Decimal) error {
	_, err := d.Exec(`UPDATE registry_state SET fee_vault = fee_vault + $1 WHERE id = 1`, amount)
	if err != nil {
		return fmt.Errorf("failed to credit fee vault: %w", err)
	}
	return nil
}

func (d *DB) FeeBalance() (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := d.Get(&balance, `SELECT fee_vault FROM registry_state WHERE id = 1`); err != nil {
		return decimal.Zero, fmt.Errorf("failed to read fee vault: %w", err)
	}
	return balance, nil
}

func (d *DB) WithdrawFees(amount decimal.Decimal) error {
	res, err := d.Exec(
		`UPDATE registry_state SET fee_vault = fee_vault - $1 WHERE id = 1 AND fee_vault >= $1`,
		amount,
	)
	if err != nil {
		return fmt.Errorf("failed to debit fee vault: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to debit fee vault: %w", err)
	}
	if affected != 1 {
		return models.ErrInsufficientFunds
	}
	return nil
}
