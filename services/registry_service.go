package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/events"
	"github.com/ferreirogomes/tickmint/models"
	"github.com/ferreirogomes/tickmint/storage"
)

// RegistryService owns admission: it validates proposed definitions,
// reserves identifiers, instantiates issuance modules at their derived
// addresses, and persists records. Admissions are serialized by a mutex so
// no two deploys can race the id counter or the symbol index; a failed
// deploy leaves the registry exactly as it was, reserved id included.
type RegistryService struct {
	mu sync.Mutex

	store     storage.Store
	deriver   *AddressDeriver
	modules   *ModuleDirectory
	emitter   *events.Emitter
	balanceOf BalanceOf
	now       func() time.Time
}

func NewRegistryService(
	store storage.Store,
	deriver *AddressDeriver,
	modules *ModuleDirectory,
	emitter *events.Emitter,
	balanceOf BalanceOf,
) *RegistryService {
	return &RegistryService{
		store:     store,
		deriver:   deriver,
		modules:   modules,
		emitter:   emitter,
		balanceOf: balanceOf,
		now:       time.Now,
	}
}

// Deploy admits a new asset. Validation order: symbol length, name length,
// cap vs limit, gating consistency, cooldown bound, batch/cooldown
// exclusivity, funding consistency, then symbol uniqueness and fee
// sufficiency. On success the record is persisted with the next id and its
// module is live at the derived address.
func (s *RegistryService) Deploy(def models.AssetDefinition, paidFee decimal.Decimal, creator string) (models.AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	params, err := s.store.GetParams()
	if err != nil {
		return models.AssetRecord{}, err
	}

	if err := models.ValidateDefinition(def, params); err != nil {
		return models.AssetRecord{}, err
	}
	if creator == "" {
		return models.AssetRecord{}, &models.ValidationError{Reason: "creator address is required"}
	}

	def.Symbol = models.CanonicalSymbol(def.Symbol)
	existing, err := s.store.GetIDBySymbol(def.Symbol)
	if err != nil {
		return models.AssetRecord{}, err
	}
	if existing != 0 {
		return models.AssetRecord{}, &models.ConflictError{Symbol: def.Symbol}
	}

	if paidFee.LessThan(params.BaseFee) {
		return models.AssetRecord{}, models.ErrInsufficientPayment
	}

	id, err := s.store.PeekNextID()
	if err != nil {
		return models.AssetRecord{}, err
	}

	addr, err := s.deriver.Derive(id, def, params)
	if err != nil {
		return models.AssetRecord{}, &models.InstantiationError{Address: "", Err: err}
	}

	mod := NewIssuanceModule(id, addr, def, params, s.balanceOf, s.store.AddFees, s.issuedSink(id))
	if err := s.modules.Install(mod); err != nil {
		return models.AssetRecord{}, &models.InstantiationError{Address: addr.String(), Err: err}
	}

	rec := models.AssetRecord{
		ID:                id,
		Symbol:            def.Symbol,
		Name:              def.Name,
		Cap:               def.Cap,
		LimitPerIssue:     def.LimitPerIssue,
		MaxBatchSize:      def.MaxBatchSize,
		CooldownSeconds:   def.CooldownSeconds,
		GatingAsset:       def.GatingAsset,
		GatingMinQuantity: def.GatingMinQuantity,
		FundingRateBps:    def.FundingRateBps,
		FundingTarget:     def.FundingTarget,
		Creator:           creator,
		ModuleAddress:     addr.String(),
		CreatedAt:         s.now().UTC(),
	}

	if err := s.store.CreateAsset(rec, paidFee); err != nil {
		// Roll the instantiation back; the id was never consumed.
		s.modules.Remove(addr.String())
		return models.AssetRecord{}, err
	}

	s.emitter.Publish(events.NewAdmission(rec))
	slog.Info("asset admitted",
		"id", rec.ID, "symbol", rec.Symbol, "module", rec.ModuleAddress, "creator", creator)
	return rec, nil
}

// LookupBySymbol canonicalizes the input and returns the registered id, or
// 0 when absent. It never fails on a missing symbol.
func (s *RegistryService) LookupBySymbol(symbol string) (uint64, error) {
	return s.store.GetIDBySymbol(models.CanonicalSymbol(symbol))
}

// Count returns the number of registered assets.
func (s *RegistryService) Count() (uint64, error) {
	return s.store.Count()
}

// GetByID joins a record with the live issuance total from its module.
func (s *RegistryService) GetByID(id uint64) (models.AssetView, bool, error) {
	rec, found, err := s.store.GetAssetByID(id)
	if err != nil || !found {
		return models.AssetView{}, found, err
	}
	return s.view(rec), true, nil
}

// GetBySymbol resolves a symbol (case-insensitively) to its joined view.
func (s *RegistryService) GetBySymbol(symbol string) (models.AssetView, bool, error) {
	id, err := s.LookupBySymbol(symbol)
	if err != nil || id == 0 {
		return models.AssetView{}, false, err
	}
	return s.GetByID(id)
}

// Module returns the live issuance module for an asset id.
func (s *RegistryService) Module(id uint64) (*IssuanceModule, bool, error) {
	rec, found, err := s.store.GetAssetByID(id)
	if err != nil || !found {
		return nil, false, err
	}
	mod, ok := s.modules.Get(rec.ModuleAddress)
	return mod, ok, nil
}

// Withdraw debits the fee vault. Moving the funds is the value-transfer
// collaborator's job; the registry only enforces the balance.
func (s *RegistryService) Withdraw(to string, amount decimal.Decimal) error {
	if to == "" {
		return &models.ValidationError{Reason: "withdrawal destination is required"}
	}
	if !amount.IsPositive() {
		return &models.ValidationError{Reason: "withdrawal amount must be positive"}
	}
	if err := s.store.WithdrawFees(amount); err != nil {
		return err
	}
	slog.Info("fees withdrawn", "to", to, "amount", amount)
	return nil
}

// UpdateBaseFee changes the flat deploy fee and the escalator base for
// future admissions; already-deployed modules keep their frozen copy.
func (s *RegistryService) UpdateBaseFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return &models.ValidationError{Reason: "base fee cannot be negative"}
	}
	return s.store.SetBaseFee(fee)
}

func (s *RegistryService) UpdateFundingCommission(bps int64) error {
	if bps < 0 || bps > 10000 {
		return &models.ValidationError{Reason: "funding commission must be between 0 and 10000 bps"}
	}
	return s.store.SetFundingCommission(bps)
}

func (s *RegistryService) UpdateTickSize(size int) error {
	if size <= 0 {
		return &models.ValidationError{Reason: "tick size must be positive"}
	}
	return s.store.SetTickSize(size)
}

// FeeBalance reports the vault balance held for the operator.
func (s *RegistryService) FeeBalance() (decimal.Decimal, error) {
	return s.store.FeeBalance()
}

// Rehydrate re-instantiates issuance modules for records already persisted,
// restoring each module's issued total from the store, so lookups and
// status filters keep their answers across a restart.
func (s *RegistryService) Rehydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.store.ListAssets()
	if err != nil {
		return err
	}
	params, err := s.store.GetParams()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, ok := s.modules.Get(rec.ModuleAddress); ok {
			continue
		}
		addr, err := solana.PublicKeyFromBase58(rec.ModuleAddress)
		if err != nil {
			return fmt.Errorf("failed to rehydrate module for asset %d: %w", rec.ID, err)
		}
		issued, err := s.store.GetIssued(rec.ID)
		if err != nil {
			return fmt.Errorf("failed to rehydrate module for asset %d: %w", rec.ID, err)
		}
		mod := NewIssuanceModule(rec.ID, addr, definitionOf(rec), params, s.balanceOf, s.store.AddFees, s.issuedSink(rec.ID))
		mod.RestoreIssued(issued)
		if err := s.modules.Install(mod); err != nil {
			return fmt.Errorf("failed to rehydrate module for asset %d: %w", rec.ID, err)
		}
	}
	return nil
}

func (s *RegistryService) issuedSink(id uint64) IssuedSink {
	return func(total decimal.Decimal) error {
		return s.store.SetIssued(id, total)
	}
}

func definitionOf(rec models.AssetRecord) models.AssetDefinition {
	return models.AssetDefinition{
		Symbol:            rec.Symbol,
		Name:              rec.Name,
		Cap:               rec.Cap,
		LimitPerIssue:     rec.LimitPerIssue,
		MaxBatchSize:      rec.MaxBatchSize,
		CooldownSeconds:   rec.CooldownSeconds,
		GatingAsset:       rec.GatingAsset,
		GatingMinQuantity: rec.GatingMinQuantity,
		FundingRateBps:    rec.FundingRateBps,
		FundingTarget:     rec.FundingTarget,
	}
}

func (s *RegistryService) view(rec models.AssetRecord) models.AssetView {
	issued := decimal.Zero
	if mod, ok := s.modules.Get(rec.ModuleAddress); ok {
		issued = mod.TotalIssued()
	}
	return models.AssetView{Record: rec, Issued: issued}
}
