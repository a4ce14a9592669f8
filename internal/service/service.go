// Package service ties the composition engine, the bundle calculator and the
// lifecycle tracker to the remote collaborators behind the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/Skotchmaster/restaurant_pos/internal/bundle"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/lifecycle"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
)

type Products interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	ListByCategory(ctx context.Context, cat domain.Category) ([]domain.Product, error)
	Save(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// TableAdmin covers the sales calls that bypass the tracker.
type TableAdmin interface {
	DeleteTable(ctx context.Context, id int64) error
	CloseOrder(ctx context.Context, orderID int64) (domain.SaleOrder, error)
}

type Drafts interface {
	SaveDraft(ctx context.Context, tableID int64, operatorID string, items []order.LineItem) error
	LoadDraft(ctx context.Context, tableID int64) ([]order.LineItem, error)
	DeleteDraft(ctx context.Context, tableID int64) error
}

type MenuIndex interface {
	Sync(ctx context.Context, products []domain.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []domain.Product, error)
	Remove(ctx context.Context, id int64) error
}

type Deps struct {
	Products Products
	Admin    TableAdmin
	Tracker  *lifecycle.Tracker
	Prices   bundle.PriceTable
	// Drafts and Index are optional.
	Drafts Drafts
	Index  MenuIndex
	Events events.Publisher
}

type Service struct {
	products Products
	admin    TableAdmin
	tracker  *lifecycle.Tracker
	calc     *bundle.Calculator
	drafts   Drafts
	index    MenuIndex
	events   events.Publisher

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(d Deps) *Service {
	pub := d.Events
	if pub == nil {
		pub = events.Discard{}
	}
	return &Service{
		products: d.Products,
		admin:    d.Admin,
		tracker:  d.Tracker,
		calc:     bundle.NewCalculator(d.Prices),
		drafts:   d.Drafts,
		index:    d.Index,
		events:   pub,
		sessions: make(map[int64]*session),
	}
}

func (s *Service) Tracker() *lifecycle.Tracker { return s.tracker }

func (s *Service) publish(ctx context.Context, typ string, tableID int64, operatorID string, data any) {
	ev := events.New(typ, tableID, operatorID, data)
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"type", typ,
			"table_id", tableID,
			"error", err,
		)
	}
}
