package catalog

import (
	"testing"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Soup", Description: "Tomato soup", Price: decimal.NewFromInt(200), Category: domain.CategoryDish},
		{ID: 2, Name: "Juice", Description: "Fresh orange", Price: decimal.NewFromInt(100), Category: domain.CategoryDrink},
		{ID: 3, Name: "Flan", Price: decimal.NewFromInt(150), Category: domain.CategoryDessert},
		{ID: 4, Name: "Promo executive", Price: decimal.NewFromInt(-50), Category: domain.CategoryPromo},
		{ID: 1, Name: "Soup again", Price: decimal.NewFromInt(1), Category: domain.CategoryDish},
	}
}

func TestNewView_DropsPromoAndDuplicates(t *testing.T) {
	t.Parallel()

	v := NewView(sample())
	assert.Equal(t, 3, v.Len())

	p, ok := v.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Soup", p.Name)

	_, ok = v.Find(4)
	assert.False(t, ok)
}

func TestPartition(t *testing.T) {
	t.Parallel()

	parts := NewView(sample()).Partition()
	require.Len(t, parts.Dishes, 1)
	require.Len(t, parts.Drinks, 1)
	require.Len(t, parts.Desserts, 1)
	assert.Equal(t, "Flan", parts.Desserts[0].Name)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	v := NewView(sample())
	assert.Len(t, v.Filter(""), 3)

	hits := v.Filter("ORANGE")
	require.Len(t, hits, 1)
	assert.Equal(t, int64(2), hits[0].ID)

	assert.Empty(t, v.Filter("pizza"))
}

func TestAll_ReturnsCopy(t *testing.T) {
	t.Parallel()

	v := NewView(sample())
	all := v.All()
	all[0].Name = "changed"
	p, _ := v.Find(1)
	assert.Equal(t, "Soup", p.Name)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := domain.Product{Name: "Tea", Price: decimal.NewFromInt(80), Category: domain.CategoryDrink}
	require.NoError(t, Validate(ok))

	cases := map[string]domain.Product{
		"empty name":     {Name: " ", Price: decimal.NewFromInt(1), Category: domain.CategoryDish},
		"zero price":     {Name: "x", Price: decimal.Zero, Category: domain.CategoryDish},
		"negative price": {Name: "x", Price: decimal.NewFromInt(-1), Category: domain.CategoryDish},
		"promo":          {Name: "x", Price: decimal.NewFromInt(1), Category: domain.CategoryPromo},
		"no category":    {Name: "x", Price: decimal.NewFromInt(1)},
	}
	for name, p := range cases {
		assert.ErrorIs(t, Validate(p), domain.ErrValidation, name)
	}
}
