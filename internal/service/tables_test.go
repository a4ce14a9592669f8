package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve_UpdatesStateAndSession(t *testing.T) {
	f := newFixture(domain.Table{ID: 1, Number: 3, Status: domain.TableFree})
	ctx := context.Background()
	_, err := f.svc.OpenSession(ctx, 1, "op")
	require.NoError(t, err)

	st, err := f.svc.Reserve(ctx, 1, "op")
	require.NoError(t, err)
	assert.Equal(t, domain.TableReserved, st.Table.Status)
	assert.True(t, st.Allowed.Order)
	assert.True(t, st.Allowed.CloseSale)
	assert.False(t, st.Allowed.Reserve)

	v, err := f.svc.ViewSession(1)
	require.NoError(t, err)
	assert.Equal(t, domain.TableReserved, v.Table.Status)
	assert.Equal(t, []string{events.TableReserved}, f.events.types())
}

func TestReserve_InvalidTransition(t *testing.T) {
	f := newFixture(reserved)
	_, err := f.svc.Reserve(context.Background(), 1, "op")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.events.types())
}

func TestCloseSale_EndsSession(t *testing.T) {
	f := newFixture(reserved)
	ctx := context.Background()
	_, err := f.svc.OpenSession(ctx, 1, "op")
	require.NoError(t, err)
	f.drafts.items[1] = []order.LineItem{{Name: "Soup", Quantity: 1, Category: domain.CategoryDish}}

	so, err := f.svc.CloseSale(ctx, 1, "op")
	require.NoError(t, err)
	assert.Equal(t, "500", so.Total.String())
	assert.NotContains(t, f.drafts.items, int64(1))

	_, err = f.svc.ViewSession(1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	st, err := f.svc.GetTable(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TableClosed, st.Table.Status)
	assert.Equal(t, domain.OrderClosed, st.LastOrder.Status)
}

func TestCloseSale_NoOpenOrder(t *testing.T) {
	f := newFixture(reserved)
	ctx := context.Background()
	_, err := f.svc.GetTable(ctx, 1)
	require.NoError(t, err)

	f.sales.closeErr = domain.NoOpenOrder()
	_, err = f.svc.CloseSale(ctx, 1, "op")
	require.ErrorIs(t, err, domain.ErrNoOpenOrder)
	assert.Equal(t, "no open order found", domain.Short(err))

	snap, ok := f.svc.Tracker().Get(1)
	require.True(t, ok)
	assert.Equal(t, domain.TableReserved, snap.Table.Status)
	assert.False(t, snap.Pending)
}

func TestCreateAndListTables(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.CreateTable(ctx, 4, "op"))
	require.ErrorIs(t, f.svc.CreateTable(ctx, 0, "op"), domain.ErrValidation)

	tables, err := f.svc.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 4, tables[0].Table.Number)
	assert.True(t, tables[0].Allowed.Reserve)
	assert.Equal(t, []string{events.TableCreated}, f.events.types())
}

func TestDeleteTable(t *testing.T) {
	f := newFixture(reserved)
	ctx := context.Background()
	_, err := f.svc.OpenSession(ctx, 1, "op")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTable(ctx, 1))
	assert.Equal(t, []int64{1}, f.sales.deleted)
	_, ok := f.svc.Tracker().Get(1)
	assert.False(t, ok)
	_, err = f.svc.ViewSession(1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
