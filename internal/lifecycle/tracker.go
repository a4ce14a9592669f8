// Package lifecycle mirrors the sales service's table and order state. It never
// decides a transition's outcome itself: every transition is a round trip whose
// reply replaces the cached snapshot.
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
)

type Sales interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	GetTable(ctx context.Context, id int64) (domain.Table, error)
	CreateTable(ctx context.Context, number int) error
	Reserve(ctx context.Context, tableID int64) (domain.Table, error)
	SubmitOrder(ctx context.Context, sub order.Submission) error
	CloseSale(ctx context.Context, tableID int64) (domain.SaleOrder, error)
}

type Snapshot struct {
	Table     domain.Table      `json:"table"`
	Pending   bool              `json:"pending"`
	LastOrder *domain.SaleOrder `json:"last_order,omitempty"`
}

// detach copies the snapshot so callers never hold the cached order.
func (s Snapshot) detach() Snapshot {
	if s.LastOrder != nil {
		so := s.LastOrder.Clone()
		s.LastOrder = &so
	}
	return s
}

// Actions lists what the view should enable for a table. It is advisory only,
// the sales service remains the authority.
type Actions struct {
	Reserve   bool `json:"reserve"`
	Order     bool `json:"order"`
	CloseSale bool `json:"close_sale"`
}

type entry struct {
	snap  Snapshot
	known bool
}

type Tracker struct {
	sales Sales

	mu      sync.Mutex
	entries map[int64]*entry
}

func NewTracker(sales Sales) *Tracker {
	return &Tracker{
		sales:   sales,
		entries: make(map[int64]*entry),
	}
}

func (t *Tracker) entryLocked(id int64) *entry {
	e, ok := t.entries[id]
	if !ok {
		e = &entry{snap: Snapshot{Table: domain.Table{ID: id}}}
		t.entries[id] = e
	}
	return e
}

// begin marks a table as having a request in flight.
func (t *Tracker) begin(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entryLocked(id)
	if e.snap.Pending {
		return fmt.Errorf("table %d: %w", id, domain.ErrPending)
	}
	e.snap.Pending = true
	return nil
}

// end clears the pending flag and applies update, if any, to the entry.
func (t *Tracker) end(id int64, update func(e *entry)) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entryLocked(id)
	e.snap.Pending = false
	if update != nil {
		update(e)
	}
	return e.snap.detach()
}

func (t *Tracker) store(tb domain.Table) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entryLocked(tb.ID)
	e.snap.Table = tb
	e.known = true
}

// Get returns the cached snapshot without a round trip.
func (t *Tracker) Get(id int64) (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok || !e.known {
		return Snapshot{}, false
	}
	return e.snap.detach(), true
}

func (t *Tracker) Allowed(id int64) Actions {
	snap, ok := t.Get(id)
	if !ok || snap.Pending {
		return Actions{}
	}
	switch snap.Table.Status {
	case domain.TableFree:
		return Actions{Reserve: true}
	case domain.TableReserved:
		return Actions{Order: true, CloseSale: true}
	case domain.TableClosed:
		return Actions{}
	}
	return Actions{}
}

// Refresh replaces the cache with the sales service's table list.
func (t *Tracker) Refresh(ctx context.Context) ([]Snapshot, error) {
	tables, err := t.sales.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fresh := make(map[int64]*entry, len(tables))
	out := make([]Snapshot, 0, len(tables))
	for _, tb := range tables {
		e := &entry{snap: Snapshot{Table: tb}, known: true}
		if old, ok := t.entries[tb.ID]; ok {
			e.snap.Pending = old.snap.Pending
			e.snap.LastOrder = old.snap.LastOrder
		}
		fresh[tb.ID] = e
		out = append(out, e.snap.detach())
	}
	for id, old := range t.entries {
		if _, ok := fresh[id]; !ok && old.snap.Pending {
			fresh[id] = old
		}
	}
	t.entries = fresh
	return out, nil
}

// Load fetches one table and caches it.
func (t *Tracker) Load(ctx context.Context, id int64) (Snapshot, error) {
	tb, err := t.sales.GetTable(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get table %d: %w", id, err)
	}
	t.store(tb)
	snap, _ := t.Get(id)
	return snap, nil
}

func (t *Tracker) CreateTable(ctx context.Context, number int) error {
	if number <= 0 {
		return fmt.Errorf("table number must be positive: %w", domain.ErrValidation)
	}
	if err := t.sales.CreateTable(ctx, number); err != nil {
		return fmt.Errorf("create table %d: %w", number, err)
	}
	return nil
}

func (t *Tracker) Reserve(ctx context.Context, id int64) (Snapshot, error) {
	if err := t.begin(id); err != nil {
		return Snapshot{}, err
	}
	tb, err := t.sales.Reserve(ctx, id)
	if err != nil {
		t.end(id, nil)
		return Snapshot{}, fmt.Errorf("reserve table %d: %w", id, err)
	}
	return t.end(id, func(e *entry) {
		e.snap.Table = tb
		e.known = true
	}), nil
}

// Submit sends a working order for the table. The table is reloaded afterwards
// since the sales service may have changed it.
func (t *Tracker) Submit(ctx context.Context, sub order.Submission) error {
	if err := t.begin(sub.TableID); err != nil {
		return err
	}
	if err := t.sales.SubmitOrder(ctx, sub); err != nil {
		t.end(sub.TableID, nil)
		return fmt.Errorf("submit order for table %d: %w", sub.TableID, err)
	}
	tb, err := t.sales.GetTable(ctx, sub.TableID)
	t.end(sub.TableID, func(e *entry) { applyReload(e, tb, err) })
	return nil
}

// CloseSale settles the table's open order and returns it with its computed total.
func (t *Tracker) CloseSale(ctx context.Context, id int64) (domain.SaleOrder, error) {
	if err := t.begin(id); err != nil {
		return domain.SaleOrder{}, err
	}
	so, err := t.sales.CloseSale(ctx, id)
	if err != nil {
		t.end(id, nil)
		return domain.SaleOrder{}, fmt.Errorf("close sale for table %d: %w", id, err)
	}
	tb, gerr := t.sales.GetTable(ctx, id)
	t.end(id, func(e *entry) {
		closed := so.Clone()
		e.snap.LastOrder = &closed
		applyReload(e, tb, gerr)
	})
	return so, nil
}

// applyReload replaces the cached table with a reloaded one; when the reload
// failed the entry is marked unknown so the next read goes to the sales service.
func applyReload(e *entry, tb domain.Table, err error) {
	if err != nil {
		e.known = false
		return
	}
	e.snap.Table = tb
	e.known = true
}

func (t *Tracker) Forget(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok && !e.snap.Pending {
		delete(t.entries, id)
	}
}
