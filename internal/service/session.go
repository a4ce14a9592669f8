package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/restaurant_pos/internal/bundle"
	"github.com/Skotchmaster/restaurant_pos/internal/catalog"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
)

// session is the editing state for one table. Its order is never shared with
// another table; mu serializes mutations.
type session struct {
	mu         sync.Mutex
	id         uuid.UUID
	operatorID string
	table      domain.Table
	order      *order.WorkingOrder
	view       *catalog.View
}

type SessionView struct {
	ID       uuid.UUID          `json:"id"`
	Table    domain.Table       `json:"table"`
	Items    []order.LineItem   `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Menu     catalog.Partitions `json:"menu"`
}

type Mutation struct {
	SessionView
	Message string         `json:"message"`
	Changes []order.Change `json:"changes,omitempty"`
}

func (ss *session) viewLocked() SessionView {
	return SessionView{
		ID:       ss.id,
		Table:    ss.table,
		Items:    ss.order.Items(),
		Subtotal: ss.order.Subtotal(),
		Menu:     ss.view.Partition(),
	}
}

// OpenSession starts, or resumes, the editing session of a table. The catalog
// snapshot is taken once here and stays fixed for the session.
func (s *Service) OpenSession(ctx context.Context, tableID int64, operatorID string) (SessionView, error) {
	s.mu.Lock()
	ss, ok := s.sessions[tableID]
	s.mu.Unlock()
	if ok {
		ss.mu.Lock()
		defer ss.mu.Unlock()
		return ss.viewLocked(), nil
	}

	view, err := s.loadCatalog(ctx)
	if err != nil {
		return SessionView{}, err
	}
	snap, err := s.tracker.Load(ctx, tableID)
	if err != nil {
		return SessionView{}, err
	}
	wo, err := s.restoreDraft(ctx, tableID)
	if err != nil {
		return SessionView{}, err
	}

	ss = &session{
		id:         uuid.New(),
		operatorID: operatorID,
		table:      snap.Table,
		order:      wo,
		view:       view,
	}

	s.mu.Lock()
	if cur, ok := s.sessions[tableID]; ok {
		ss = cur
	} else {
		s.sessions[tableID] = ss
	}
	s.mu.Unlock()

	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.viewLocked(), nil
}

func (s *Service) restoreDraft(ctx context.Context, tableID int64) (*order.WorkingOrder, error) {
	if s.drafts == nil {
		return order.New(tableID), nil
	}
	items, err := s.drafts.LoadDraft(ctx, tableID)
	if errors.Is(err, domain.ErrNotFound) {
		return order.New(tableID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	wo, err := order.Restore(tableID, items)
	if err != nil {
		logging.FromContext(ctx).Warn("draft_discarded", "table_id", tableID, "error", err)
		return order.New(tableID), nil
	}
	return wo, nil
}

func (s *Service) session(tableID int64) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.sessions[tableID]
	if !ok {
		return nil, fmt.Errorf("no session for table %d: %w", tableID, domain.ErrNotFound)
	}
	return ss, nil
}

func (s *Service) ViewSession(tableID int64) (SessionView, error) {
	ss, err := s.session(tableID)
	if err != nil {
		return SessionView{}, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.viewLocked(), nil
}

// EndSession discards the working order. The persisted draft is kept so the
// table can be resumed later.
func (s *Service) EndSession(tableID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tableID)
}

func (s *Service) AddProduct(ctx context.Context, tableID, productID int64) (Mutation, error) {
	ss, err := s.session(tableID)
	if err != nil {
		return Mutation{}, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()

	p, ok := ss.view.Find(productID)
	if !ok {
		return Mutation{}, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}
	c := ss.order.AddProduct(p)
	s.saveDraft(ctx, ss)
	return Mutation{SessionView: ss.viewLocked(), Message: c.Message, Changes: []order.Change{c}}, nil
}

// RemoveOne never fails for a missing line; the message says so instead.
func (s *Service) RemoveOne(ctx context.Context, tableID int64, key order.Key) (Mutation, error) {
	ss, err := s.session(tableID)
	if err != nil {
		return Mutation{}, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()

	c, ok := ss.order.RemoveOne(key)
	if !ok {
		return Mutation{SessionView: ss.viewLocked(), Message: fmt.Sprintf("%s not in order", key)}, nil
	}
	s.saveDraft(ctx, ss)
	return Mutation{SessionView: ss.viewLocked(), Message: c.Message, Changes: []order.Change{c}}, nil
}

func (s *Service) QuoteBundle(tableID int64, kind bundle.Kind, sel bundle.Selection) (bundle.Quote, error) {
	ss, err := s.session(tableID)
	if err != nil {
		return bundle.Quote{}, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return s.calc.Quote(kind, sel, ss.view)
}

func (s *Service) ConfirmBundle(ctx context.Context, tableID int64, kind bundle.Kind, sel bundle.Selection) (Mutation, error) {
	ss, err := s.session(tableID)
	if err != nil {
		return Mutation{}, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()

	res, err := s.calc.Confirm(ss.order, kind, sel, ss.view)
	if err != nil {
		return Mutation{}, err
	}
	s.saveDraft(ctx, ss)
	s.publish(ctx, events.BundleConfirmed, tableID, ss.operatorID, res.Quote)
	return Mutation{SessionView: ss.viewLocked(), Message: res.Message, Changes: res.Changes}, nil
}

// Submit sends the working order to the sales service. On success the order is
// emptied; on failure it is left intact so the operator can retry.
func (s *Service) Submit(ctx context.Context, tableID int64) (Mutation, error) {
	ss, err := s.session(tableID)
	if err != nil {
		return Mutation{}, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.order.Empty() {
		return Mutation{}, fmt.Errorf("order is empty: %w", domain.ErrValidation)
	}
	sub := ss.order.ToSubmission()
	total := ss.order.Subtotal()
	if err := s.tracker.Submit(ctx, sub); err != nil {
		return Mutation{}, err
	}

	ss.order.Clear()
	if snap, ok := s.tracker.Get(tableID); ok {
		ss.table = snap.Table
	}
	s.dropDraft(ctx, tableID)
	s.publish(ctx, events.OrderSubmitted, tableID, ss.operatorID, map[string]any{
		"items":    sub.Items,
		"subtotal": total,
	})
	return Mutation{SessionView: ss.viewLocked(), Message: "order submitted"}, nil
}

// saveDraft persists the working order; a failure only costs crash recovery.
func (s *Service) saveDraft(ctx context.Context, ss *session) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.SaveDraft(ctx, ss.order.TableID, ss.operatorID, ss.order.Items()); err != nil {
		logging.FromContext(ctx).Warn("draft_save_failed", "table_id", ss.order.TableID, "error", err)
	}
}

func (s *Service) dropDraft(ctx context.Context, tableID int64) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.DeleteDraft(ctx, tableID); err != nil {
		logging.FromContext(ctx).Warn("draft_delete_failed", "table_id", tableID, "error", err)
	}
}
