package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// BalanceOf reports how much of a gating asset a holder owns. Holder
// balances live outside this registry, so the lookup is injected.
type BalanceOf func(asset, holder string) decimal.Decimal

// FeeSink receives fees collected by a module, crediting the vault.
type FeeSink func(amount decimal.Decimal) error

// IssuedSink persists the module's issuance total after each mint, so the
// total survives a restart.
type IssuedSink func(total decimal.Decimal) error

// IssuanceModule is the isolated per-asset unit that tracks issuance
// against the record's cap and limits. It captures the asset definition and
// the global fee and commission values frozen at admission time: later
// parameter updates never reach an already-deployed module.
type IssuanceModule struct {
	mu sync.Mutex

	id      uint64
	address solana.PublicKey
	def     models.AssetDefinition

	baseFee              decimal.Decimal
	fundingCommissionBps int64

	issued    decimal.Decimal
	escalator *FeeEscalator
	balanceOf BalanceOf
	sink      FeeSink
	persist   IssuedSink
}

func NewIssuanceModule(
	id uint64,
	address solana.PublicKey,
	def models.AssetDefinition,
	frozen models.Params,
	balanceOf BalanceOf,
	sink FeeSink,
	persist IssuedSink,
) *IssuanceModule {
	return &IssuanceModule{
		id:                   id,
		address:              address,
		def:                  def,
		baseFee:              frozen.BaseFee,
		fundingCommissionBps: frozen.FundingCommissionBps,
		issued:               decimal.Zero,
		escalator:            NewFeeEscalator(frozen.BaseFee, def.CooldownSeconds),
		balanceOf:            balanceOf,
		sink:                 sink,
		persist:              persist,
	}
}

// RestoreIssued seeds the counter from persisted state on rehydration.
func (m *IssuanceModule) RestoreIssued(total decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued = total
}

func (m *IssuanceModule) ID() uint64 { return m.id }

func (m *IssuanceModule) Address() solana.PublicKey { return m.address }

// TotalIssued returns the number of units issued so far.
func (m *IssuanceModule) TotalIssued() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issued
}

// QuoteFee returns the fee an issuance attempt would owe right now.
func (m *IssuanceModule) QuoteFee(now time.Time) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.escalator.Quote(now)
}

// Mint issues amount units to caller, enforcing the per-issue limit times
// the batch allowance, the hard cap, optional holder gating, and the
// escalator fee. Attempts against the same module are serialized; modules
// for different assets are independent.
func (m *IssuanceModule) Mint(caller string, amount, paidFee decimal.Decimal, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !amount.IsPositive() {
		return &models.ValidationError{Reason: "mint amount must be positive"}
	}

	allowance := m.def.LimitPerIssue
	if m.def.MaxBatchSize.GreaterThan(decimal.NewFromInt(1)) {
		allowance = m.def.LimitPerIssue.Mul(m.def.MaxBatchSize)
	}
	if amount.GreaterThan(allowance) {
		return &models.ValidationError{Reason: fmt.Sprintf("mint amount exceeds allowance of %s", allowance)}
	}
	if m.issued.Add(amount).GreaterThan(m.def.Cap) {
		return &models.ValidationError{Reason: "mint would exceed the issuance cap"}
	}
	if m.def.GatingAsset != "" {
		held := decimal.Zero
		if m.balanceOf != nil {
			held = m.balanceOf(m.def.GatingAsset, caller)
		}
		if held.LessThan(m.def.GatingMinQuantity) {
			return &models.ValidationError{Reason: "caller does not hold enough of the gating asset"}
		}
	}

	due := m.escalator.Quote(now)
	if paidFee.LessThan(due) {
		return models.ErrInsufficientPayment
	}

	if paidFee.IsPositive() && m.sink != nil {
		if err := m.sink(paidFee); err != nil {
			return fmt.Errorf("failed to bank issuance fee: %w", err)
		}
	}

	newTotal := m.issued.Add(amount)
	if m.persist != nil {
		if err := m.persist(newTotal); err != nil {
			return fmt.Errorf("failed to persist issuance total: %w", err)
		}
	}

	m.escalator.Settle(now)
	m.issued = newTotal
	return nil
}

// ModuleDirectory is the in-process factory registry: it constructs nothing
// itself but owns the address → module mapping under a lock, so
// instantiation is atomic with address registration.
type ModuleDirectory struct {
	mu      sync.RWMutex
	modules map[string]*IssuanceModule
}

func NewModuleDirectory() *ModuleDirectory {
	return &ModuleDirectory{modules: make(map[string]*IssuanceModule)}
}

// Install registers a freshly constructed module under its address. On an
// occupied address the caller must roll the whole admission back.
func (d *ModuleDirectory) Install(mod *IssuanceModule) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := mod.Address().String()
	if _, occupied := d.modules[key]; occupied {
		return fmt.Errorf("address %s already occupied", key)
	}
	d.modules[key] = mod
	return nil
}

func (d *ModuleDirectory) Get(address string) (*IssuanceModule, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	mod, ok := d.modules[address]
	return mod, ok
}

// Remove unregisters a module after a failed admission.
func (d *ModuleDirectory) Remove(address string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.modules, address)
}
