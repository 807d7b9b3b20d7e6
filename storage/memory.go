package storage

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// MemoryStore is an in-process Store used when no database is configured
// and by the service tests. It gives the same atomicity guarantees as the
// Postgres store via a single mutex.
type MemoryStore struct {
	mu         sync.RWMutex
	params     models.Params
	nextID     uint64
	byID       map[uint64]models.AssetRecord
	idBySymbol map[string]uint64
	issued     map[uint64]decimal.Decimal
	feeVault   decimal.Decimal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		params:     models.DefaultParams(),
		nextID:     1,
		byID:       make(map[uint64]models.AssetRecord),
		idBySymbol: make(map[string]uint64),
		issued:     make(map[uint64]decimal.Decimal),
		feeVault:   decimal.Zero,
	}
}

func (m *MemoryStore) GetParams() (models.Params, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params, nil
}

func (m *MemoryStore) SetBaseFee(fee decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.BaseFee = fee
	return nil
}

func (m *MemoryStore) SetFundingCommission(bps int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.FundingCommissionBps = bps
	return nil
}

func (m *MemoryStore) SetTickSize(size int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.TickSize = size
	return nil
}

func (m *MemoryStore) PeekNextID() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nextID, nil
}

func (m *MemoryStore) CreateAsset(rec models.AssetRecord, paidFee decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID != m.nextID {
		return &models.ValidationError{Reason: "record id is no longer the next id"}
	}
	if _, taken := m.idBySymbol[rec.Symbol]; taken {
		return &models.ConflictError{Symbol: rec.Symbol}
	}

	m.byID[rec.ID] = rec
	m.idBySymbol[rec.Symbol] = rec.ID
	m.nextID++
	m.feeVault = m.feeVault.Add(paidFee)
	return nil
}

func (m *MemoryStore) GetAssetByID(id uint64) (models.AssetRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[id]
	return rec, ok, nil
}

func (m *MemoryStore) GetIDBySymbol(canonical string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idBySymbol[canonical], nil
}

func (m *MemoryStore) Count() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nextID - 1, nil
}

func (m *MemoryStore) ListAssets() ([]models.AssetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]models.AssetRecord, 0, len(m.byID))
	for id := uint64(1); id < m.nextID; id++ {
		if rec, ok := m.byID[id]; ok {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (m *MemoryStore) SetIssued(id uint64, total decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued[id] = total
	return nil
}

func (m *MemoryStore) GetIssued(id uint64) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total, ok := m.issued[id]
	if !ok {
		return decimal.Zero, nil
	}
	return total, nil
}

func (m *MemoryStore) AddFees(amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeVault = m.feeVault.Add(amount)
	return nil
}

func (m *MemoryStore) FeeBalance() (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.feeVault, nil
}

func (m *MemoryStore) WithdrawFees(amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.feeVault.LessThan(amount) {
		return models.ErrInsufficientFunds
	}
	m.feeVault = m.feeVault.Sub(amount)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
