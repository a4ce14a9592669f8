package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Skotchmaster/restaurant_pos/internal/bundle"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/lifecycle"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/shopspring/decimal"
)

func product(id int64, name string, price int64, cat domain.Category) domain.Product {
	return domain.Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: cat}
}

func menu() []domain.Product {
	return []domain.Product{
		product(1, "Soup", 200, domain.CategoryDish),
		product(2, "Juice", 100, domain.CategoryDrink),
		product(3, "Flan", 150, domain.CategoryDessert),
		product(4, "Steak", 600, domain.CategoryDish),
		product(5, "Wine", 500, domain.CategoryDrink),
	}
}

type fakeProducts struct {
	items   []domain.Product
	listErr error
	saved   []domain.Product
}

func (f *fakeProducts) List(context.Context) ([]domain.Product, error) {
	return f.items, f.listErr
}

func (f *fakeProducts) Get(_ context.Context, id int64) (domain.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeProducts) ListByCategory(_ context.Context, cat domain.Category) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.items {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Save(_ context.Context, p domain.Product) error {
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeProducts) Delete(context.Context, int64) error { return nil }

type fakeSales struct {
	mu        sync.Mutex
	tables    map[int64]domain.Table
	submitted []order.Submission
	submitErr error
	closeErr  error
	deleted   []int64
}

func newFakeSales(tables ...domain.Table) *fakeSales {
	f := &fakeSales{tables: make(map[int64]domain.Table)}
	for _, tb := range tables {
		f.tables[tb.ID] = tb
	}
	return f
}

func (f *fakeSales) ListTables(context.Context) ([]domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Table, 0, len(f.tables))
	for _, tb := range f.tables {
		out = append(out, tb)
	}
	return out, nil
}

func (f *fakeSales) GetTable(_ context.Context, id int64) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tb, ok := f.tables[id]
	if !ok {
		return domain.Table{}, fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	return tb, nil
}

func (f *fakeSales) CreateTable(_ context.Context, number int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := int64(len(f.tables) + 1)
	f.tables[id] = domain.Table{ID: id, Number: number, Status: domain.TableFree}
	return nil
}

func (f *fakeSales) Reserve(_ context.Context, id int64) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tb := f.tables[id]
	if tb.Status != domain.TableFree {
		return domain.Table{}, domain.ErrInvalidTransition
	}
	tb.Status = domain.TableReserved
	f.tables[id] = tb
	return tb, nil
}

func (f *fakeSales) SubmitOrder(_ context.Context, sub order.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, sub)
	return nil
}

func (f *fakeSales) CloseSale(_ context.Context, id int64) (domain.SaleOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closeErr != nil {
		return domain.SaleOrder{}, f.closeErr
	}
	tb := f.tables[id]
	tb.Status = domain.TableClosed
	f.tables[id] = tb
	return domain.SaleOrder{ID: 9, TableID: id, Status: domain.OrderClosed, Total: decimal.NewFromInt(500)}, nil
}

func (f *fakeSales) DeleteTable(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tables, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSales) CloseOrder(_ context.Context, orderID int64) (domain.SaleOrder, error) {
	return domain.SaleOrder{ID: orderID, Status: domain.OrderClosed}, nil
}

type memDrafts struct {
	items map[int64][]order.LineItem
}

func (m *memDrafts) SaveDraft(_ context.Context, tableID int64, _ string, items []order.LineItem) error {
	m.items[tableID] = items
	return nil
}

func (m *memDrafts) LoadDraft(_ context.Context, tableID int64) ([]order.LineItem, error) {
	items, ok := m.items[tableID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return items, nil
}

func (m *memDrafts) DeleteDraft(_ context.Context, tableID int64) error {
	delete(m.items, tableID)
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

type fixture struct {
	svc      *Service
	products *fakeProducts
	sales    *fakeSales
	drafts   *memDrafts
	events   *recorder
}

func newFixture(tables ...domain.Table) *fixture {
	f := &fixture{
		products: &fakeProducts{items: menu()},
		sales:    newFakeSales(tables...),
		drafts:   &memDrafts{items: make(map[int64][]order.LineItem)},
		events:   &recorder{},
	}
	f.svc = New(Deps{
		Products: f.products,
		Admin:    f.sales,
		Tracker:  lifecycle.NewTracker(f.sales),
		Prices:   bundle.DefaultPrices(),
		Drafts:   f.drafts,
		Events:   f.events,
	})
	return f
}

func ptr(id int64) *int64 { return &id }
