// Package events carries the structured admission events emitted on every
// successful deploy and fans them out to in-process subscribers (the
// websocket stream among them).
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// Admission is emitted once per successful deploy.
type Admission struct {
	EventID       string          `json:"event_id"`
	ID            uint64          `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Cap           decimal.Decimal `json:"cap"`
	LimitPerIssue decimal.Decimal `json:"limit_per_issue"`
	ModuleAddress string          `json:"module_address"`
	Timestamp     time.Time       `json:"timestamp"`
}

// NewAdmission builds the event for a freshly persisted record.
func NewAdmission(rec models.AssetRecord) Admission {
	return Admission{
		EventID:       uuid.New().String(),
		ID:            rec.ID,
		Symbol:        rec.Symbol,
		Name:          rec.Name,
		Cap:           rec.Cap,
		LimitPerIssue: rec.LimitPerIssue,
		ModuleAddress: rec.ModuleAddress,
		Timestamp:     rec.CreatedAt,
	}
}

const subscriberBuffer = 16

// Emitter fans admission events out to subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the event.
type Emitter struct {
	mu      sync.RWMutex
	nextSub uint64
	subs    map[uint64]chan Admission
}

func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[uint64]chan Admission)}
}

// Subscribe returns a receive channel and a cancel function. Cancel closes
// the channel and must be called exactly once.
func (e *Emitter) Subscribe() (<-chan Admission, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan Admission, subscriberBuffer)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (e *Emitter) Publish(ev Admission) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
