package storage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/tickmint/models"
	"github.com/ferreirogomes/tickmint/storage"
)

func record(id uint64, symbol string) models.AssetRecord {
	return models.AssetRecord{
		ID:            id,
		Symbol:        symbol,
		Name:          "Test",
		Cap:           decimal.NewFromInt(1000),
		LimitPerIssue: decimal.NewFromInt(100),
		MaxBatchSize:  decimal.NewFromInt(1),
		Creator:       "creator",
		ModuleAddress: symbol + "-addr",
	}
}

func TestCreateAssetConsumesIDsInOrder(t *testing.T) {
	store := storage.NewMemoryStore()
	fee := decimal.NewFromInt(1000)

	id, err := store.PeekNextID()
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	require.NoError(t, store.CreateAsset(record(1, "aaaa"), fee))
	require.NoError(t, store.CreateAsset(record(2, "bbbb"), fee))

	id, err = store.PeekNextID()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	balance, err := store.FeeBalance()
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(2000)))
}

func TestCreateAssetRejectsStaleID(t *testing.T) {
	store := storage.NewMemoryStore()
	fee := decimal.NewFromInt(1000)

	require.NoError(t, store.CreateAsset(record(1, "aaaa"), fee))

	// A stale reservation must not insert or consume anything.
	err := store.CreateAsset(record(1, "bbbb"), fee)
	require.Error(t, err)

	id, _ := store.PeekNextID()
	assert.Equal(t, uint64(2), id)
	_, err = store.GetIDBySymbol("bbbb")
	require.NoError(t, err)
	count, _ := store.Count()
	assert.Equal(t, uint64(1), count)
}

func TestCreateAssetRejectsDuplicateSymbol(t *testing.T) {
	store := storage.NewMemoryStore()
	fee := decimal.NewFromInt(1000)

	require.NoError(t, store.CreateAsset(record(1, "aaaa"), fee))

	var conflictErr *models.ConflictError
	err := store.CreateAsset(record(2, "aaaa"), fee)
	require.ErrorAs(t, err, &conflictErr)

	id, _ := store.PeekNextID()
	assert.Equal(t, uint64(2), id)
	balance, _ := store.FeeBalance()
	assert.True(t, balance.Equal(fee))
}

func TestLookupsAndListing(t *testing.T) {
	store := storage.NewMemoryStore()
	fee := decimal.NewFromInt(1000)
	require.NoError(t, store.CreateAsset(record(1, "aaaa"), fee))
	require.NoError(t, store.CreateAsset(record(2, "bbbb"), fee))

	rec, found, err := store.GetAssetByID(2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "bbbb", rec.Symbol)

	_, found, err = store.GetAssetByID(9)
	require.NoError(t, err)
	assert.False(t, found)

	id, err := store.GetIDBySymbol("bbbb")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)

	id, err = store.GetIDBySymbol("none")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	recs, err := store.ListAssets()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, uint64(1), recs[0].ID)
	assert.Equal(t, uint64(2), recs[1].ID)
}

func TestIssuedTotals(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.CreateAsset(record(1, "aaaa"), decimal.NewFromInt(1000)))

	total, err := store.GetIssued(1)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	require.NoError(t, store.SetIssued(1, decimal.NewFromInt(250)))
	require.NoError(t, store.SetIssued(1, decimal.NewFromInt(900)))

	total, err = store.GetIssued(1)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(900)))

	// An asset that never minted reads back zero.
	total, err = store.GetIssued(42)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestFeeVault(t *testing.T) {
	store := storage.NewMemoryStore()

	require.NoError(t, store.AddFees(decimal.NewFromInt(500)))
	require.NoError(t, store.WithdrawFees(decimal.NewFromInt(200)))

	balance, err := store.FeeBalance()
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(300)))

	err = store.WithdrawFees(decimal.NewFromInt(301))
	require.ErrorIs(t, err, models.ErrInsufficientFunds)

	balance, _ = store.FeeBalance()
	assert.True(t, balance.Equal(decimal.NewFromInt(300)))
}

func TestParamsUpdates(t *testing.T) {
	store := storage.NewMemoryStore()

	params, err := store.GetParams()
	require.NoError(t, err)
	assert.Equal(t, 4, params.TickSize)

	require.NoError(t, store.SetTickSize(5))
	require.NoError(t, store.SetBaseFee(decimal.NewFromInt(2500)))
	require.NoError(t, store.SetFundingCommission(150))

	params, err = store.GetParams()
	require.NoError(t, err)
	assert.Equal(t, 5, params.TickSize)
	assert.True(t, params.BaseFee.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, int64(150), params.FundingCommissionBps)
}
