package entries

import (
	"sync"

	"income-tax-tracker/internal/models"
)

// Ledger owns the per-owner partitions for the lifetime of the process.
// Nothing is persisted.
type Ledger struct {
	mu          sync.RWMutex
	collections map[string]Collection
	otherIncome map[string]bool
	ids         *IDGenerator
}

func NewLedger() *Ledger {
	return &Ledger{
		collections: make(map[string]Collection),
		otherIncome: make(map[string]bool),
		ids:         NewIDGenerator(),
	}
}

// NextID returns an id unique within this ledger.
func (l *Ledger) NextID() int64 {
	return l.ids.Next()
}

func (l *Ledger) Add(owner string, e models.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.collections[owner] = Append(ForOwner(l.collections, owner), e)
}

// Delete reports whether an entry was removed. A missing id is not an error.
func (l *Ledger) Delete(owner string, id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	before := ForOwner(l.collections, owner)
	after := Remove(before, id)
	l.collections[owner] = after
	return len(after) != len(before)
}

// Entries returns the owner's entries. Collections are never mutated in place,
// so the returned slice stays valid after later changes.
func (l *Ledger) Entries(owner string) Collection {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ForOwner(l.collections, owner)
}

func (l *Ledger) SetOtherIncome(owner string, hasOtherIncome bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.otherIncome[owner] = hasOtherIncome
}

func (l *Ledger) OtherIncome(owner string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.otherIncome[owner]
}

// Forget drops everything kept for owner.
func (l *Ledger) Forget(owner string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.collections, owner)
	delete(l.otherIncome, owner)
}
