package services

import (
	"time"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// FeeEscalator prices repeated actions against a cooldown window. An
// attempt outside the window is free of surcharge and resets the surcharge
// to the base fee; an attempt inside the window owes the current surcharge,
// which doubles on payment while the window refreshes. The surcharge has no
// ceiling: sustained contention grows it geometrically without bound.
//
// Not safe for concurrent use; the owning issuance module serializes
// access, since the read-modify-write on the window state is not
// commutative.
type FeeEscalator struct {
	baseFee    decimal.Decimal
	cooldown   time.Duration
	lastAction time.Time
	surcharge  decimal.Decimal
}

func NewFeeEscalator(baseFee decimal.Decimal, cooldownSeconds uint64) *FeeEscalator {
	return &FeeEscalator{
		baseFee:   baseFee,
		cooldown:  time.Duration(cooldownSeconds) * time.Second,
		surcharge: baseFee,
	}
}

// Quote returns the fee due for an attempt at now without changing state.
func (f *FeeEscalator) Quote(now time.Time) decimal.Decimal {
	if f.outsideWindow(now) {
		return decimal.Zero
	}
	return f.surcharge
}

// Settle records a successfully paid action at now and advances the policy:
// reset to the base fee outside the window, double inside it. The window
// anchor always moves to now.
func (f *FeeEscalator) Settle(now time.Time) {
	if f.outsideWindow(now) {
		f.surcharge = f.baseFee
	} else {
		f.surcharge = f.surcharge.Mul(two)
	}
	f.lastAction = now
}

func (f *FeeEscalator) outsideWindow(now time.Time) bool {
	if f.cooldown == 0 || f.lastAction.IsZero() {
		return true
	}
	return now.Sub(f.lastAction) >= f.cooldown
}
