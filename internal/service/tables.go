package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/lifecycle"
)

type TableState struct {
	lifecycle.Snapshot
	Allowed lifecycle.Actions `json:"allowed"`
}

func (s *Service) state(snap lifecycle.Snapshot) TableState {
	return TableState{Snapshot: snap, Allowed: s.tracker.Allowed(snap.Table.ID)}
}

func (s *Service) ListTables(ctx context.Context) ([]TableState, error) {
	snaps, err := s.tracker.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TableState, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, s.state(snap))
	}
	return out, nil
}

func (s *Service) GetTable(ctx context.Context, id int64) (TableState, error) {
	snap, err := s.tracker.Load(ctx, id)
	if err != nil {
		return TableState{}, err
	}
	return s.state(snap), nil
}

func (s *Service) CreateTable(ctx context.Context, number int, operatorID string) error {
	if err := s.tracker.CreateTable(ctx, number); err != nil {
		return err
	}
	s.publish(ctx, events.TableCreated, 0, operatorID, map[string]int{"number": number})
	return nil
}

func (s *Service) Reserve(ctx context.Context, id int64, operatorID string) (TableState, error) {
	snap, err := s.tracker.Reserve(ctx, id)
	if err != nil {
		return TableState{}, err
	}
	s.syncSessionTable(snap.Table)
	s.publish(ctx, events.TableReserved, id, operatorID, snap.Table)
	return s.state(snap), nil
}

// CloseSale settles the table. Its editing session, if any, ends with it.
func (s *Service) CloseSale(ctx context.Context, id int64, operatorID string) (domain.SaleOrder, error) {
	so, err := s.tracker.CloseSale(ctx, id)
	if err != nil {
		return domain.SaleOrder{}, err
	}
	s.EndSession(id)
	s.dropDraft(ctx, id)
	s.publish(ctx, events.SaleClosed, id, operatorID, so)
	return so, nil
}

func (s *Service) DeleteTable(ctx context.Context, id int64) error {
	if err := s.admin.DeleteTable(ctx, id); err != nil {
		return fmt.Errorf("delete table %d: %w", id, err)
	}
	s.tracker.Forget(id)
	s.EndSession(id)
	s.dropDraft(ctx, id)
	return nil
}

func (s *Service) CloseOrder(ctx context.Context, orderID int64) (domain.SaleOrder, error) {
	so, err := s.admin.CloseOrder(ctx, orderID)
	if err != nil {
		return domain.SaleOrder{}, fmt.Errorf("close order %d: %w", orderID, err)
	}
	return so, nil
}

func (s *Service) syncSessionTable(tb domain.Table) {
	s.mu.Lock()
	ss, ok := s.sessions[tb.ID]
	s.mu.Unlock()
	if !ok {
		return
	}
	ss.mu.Lock()
	ss.table = tb
	ss.mu.Unlock()
}
