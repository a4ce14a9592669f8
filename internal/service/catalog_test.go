package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	synced    int
	searchErr error
	removeErr error
	hits      []domain.Product
	removed   []int64
}

func (f *fakeIndex) Sync(_ context.Context, products []domain.Product) error {
	f.synced = len(products)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int, int) (int64, []domain.Product, error) {
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	return int64(len(f.hits)), f.hits, nil
}

func (f *fakeIndex) Remove(_ context.Context, id int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

func TestSaveProduct_Validates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.svc.SaveProduct(ctx, domain.Product{Name: "", Price: decimal.NewFromInt(10), Category: domain.CategoryDish})
	require.ErrorIs(t, err, domain.ErrValidation)
	err = f.svc.SaveProduct(ctx, domain.Product{Name: "Promo", Price: decimal.NewFromInt(10), Category: domain.CategoryPromo})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.products.saved)

	require.NoError(t, f.svc.SaveProduct(ctx, product(0, "Tea", 80, domain.CategoryDrink)))
	assert.Len(t, f.products.saved, 1)
}

func TestProductsByCategory_RejectsPromo(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ProductsByCategory(context.Background(), domain.CategoryPromo)
	require.ErrorIs(t, err, domain.ErrValidation)

	drinks, err := f.svc.ProductsByCategory(context.Background(), domain.CategoryDrink)
	require.NoError(t, err)
	assert.Len(t, drinks, 2)
}

func TestSearchMenu_Fallback(t *testing.T) {
	f := newFixture()
	res, err := f.svc.SearchMenu(context.Background(), "SOUP", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Soup", res.Items[0].Name)

	res, err = f.svc.SearchMenu(context.Background(), "", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	assert.Len(t, res.Items, 2)

	res, err = f.svc.SearchMenu(context.Background(), "", 9, 3)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestSearchMenu_UsesIndex(t *testing.T) {
	f := newFixture()
	idx := &fakeIndex{hits: []domain.Product{product(4, "Steak", 600, domain.CategoryDish)}}
	f.svc.index = idx

	res, err := f.svc.SearchMenu(context.Background(), "steak", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Size)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(4), res.Items[0].ID)

	idx.searchErr = errors.New("cluster down")
	res, err = f.svc.SearchMenu(context.Background(), "juice", 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Juice", res.Items[0].Name)
	assert.Equal(t, 5, idx.synced)
}

func TestMenu_ListFailure(t *testing.T) {
	f := newFixture()
	f.products.listErr = domain.Unavailable(errors.New("dial tcp"))
	_, err := f.svc.Menu(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestDeleteProduct_RemovesFromIndex(t *testing.T) {
	f := newFixture()
	idx := &fakeIndex{}
	f.svc.index = idx

	require.NoError(t, f.svc.DeleteProduct(context.Background(), 5))
	assert.Equal(t, []int64{5}, idx.removed)

	idx.removeErr = errors.New("cluster down")
	require.NoError(t, f.svc.DeleteProduct(context.Background(), 6))
	assert.Equal(t, []int64{5}, idx.removed)
}
