package bundle

import (
	"testing"

	"github.com/Skotchmaster/restaurant_pos/internal/catalog"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prod(id int64, name string, price int64, cat domain.Category) domain.Product {
	return domain.Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: cat}
}

func testView() *catalog.View {
	return catalog.NewView([]domain.Product{
		prod(1, "Soup", 200, domain.CategoryDish),
		prod(2, "Juice", 100, domain.CategoryDrink),
		prod(3, "Flan", 150, domain.CategoryDessert),
		prod(4, "Steak", 600, domain.CategoryDish),
		prod(5, "Wine", 500, domain.CategoryDrink),
		prod(6, "Cake", 700, domain.CategoryDessert),
	})
}

func id(v int64) *int64 { return &v }

func TestConfirm_ExecutiveSurcharge(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(DefaultPrices())
	o := order.New(1)
	res, err := calc.Confirm(o, Executive, Selection{Dish: id(1), Drink: id(2), Dessert: id(3)}, testView())
	require.NoError(t, err)

	assert.Equal(t, "450", res.RealSum.String())
	assert.Equal(t, "500", res.FixedPrice.String())
	assert.Equal(t, "50", res.Discount.String())
	assert.Equal(t, "executive menu added (fixed price: $500)", res.Message)

	items := o.Items()
	require.Len(t, items, 4)
	promo := items[3]
	assert.Nil(t, promo.ProductID)
	assert.Equal(t, "Promo executive", promo.Name)
	assert.Equal(t, domain.CategoryPromo, promo.Category)
	assert.Equal(t, "50", promo.UnitPrice.String())
	assert.True(t, o.Subtotal().Equal(res.FixedPrice))
}

func TestConfirm_StudentDiscount(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(DefaultPrices())
	o := order.New(1)
	res, err := calc.Confirm(o, Student, Selection{Dish: id(4), Drink: id(5)}, testView())
	require.NoError(t, err)

	assert.Equal(t, "1100", res.RealSum.String())
	assert.Equal(t, "-100", res.Discount.String())

	items := o.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Promo student", items[2].Name)
	assert.Equal(t, "-100", items[2].UnitPrice.String())
}

func TestConfirm_ZeroDiscountAddsNoLine(t *testing.T) {
	t.Parallel()

	prices := DefaultPrices()
	prices.Daily = decimal.NewFromInt(350)
	calc := NewCalculator(prices)
	o := order.New(1)

	res, err := calc.Confirm(o, Daily, Selection{Dish: id(1), Dessert: id(3)}, testView())
	require.NoError(t, err)
	assert.True(t, res.Discount.IsZero())
	assert.Equal(t, 2, o.Len())
	for _, it := range o.Items() {
		assert.NotEqual(t, domain.CategoryPromo, it.Category)
	}
}

func TestConfirm_IgnoresUnrequiredSlot(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(DefaultPrices())
	o := order.New(1)
	res, err := calc.Confirm(o, Student, Selection{Dish: id(1), Drink: id(2), Dessert: id(6)}, testView())
	require.NoError(t, err)
	assert.Len(t, res.Products, 2)
	assert.Equal(t, "300", res.RealSum.String())
}

func TestConfirm_IncompleteLeavesOrderUntouched(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		kind Kind
		sel  Selection
		slot Slot
	}{
		{"executive without dessert", Executive, Selection{Dish: id(1), Drink: id(2)}, SlotDessert},
		{"student without drink", Student, Selection{Dish: id(1)}, SlotDrink},
		{"daily without dish", Daily, Selection{Dessert: id(3)}, SlotDish},
		{"unknown product", Daily, Selection{Dish: id(99), Dessert: id(3)}, SlotDish},
		{"wrong category", Student, Selection{Dish: id(1), Drink: id(3)}, SlotDrink},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calc := NewCalculator(DefaultPrices())
			o := order.New(1)
			o.AddProduct(prod(1, "Soup", 200, domain.CategoryDish))
			before := o.Items()

			_, err := calc.Confirm(o, tc.kind, tc.sel, testView())
			require.ErrorIs(t, err, domain.ErrIncompleteSelection)

			var ise *IncompleteSelectionError
			require.ErrorAs(t, err, &ise)
			assert.Equal(t, tc.slot, ise.Slot)
			assert.Equal(t, before, o.Items())
		})
	}
}

func TestConfirm_AggregatesWithStandaloneItems(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(DefaultPrices())
	o := order.New(1)
	o.AddProduct(prod(1, "Soup", 200, domain.CategoryDish))

	_, err := calc.Confirm(o, Executive, Selection{Dish: id(1), Drink: id(2), Dessert: id(3)}, testView())
	require.NoError(t, err)
	_, err = calc.Confirm(o, Executive, Selection{Dish: id(1), Drink: id(2), Dessert: id(3)}, testView())
	require.NoError(t, err)

	items := o.Items()
	require.Len(t, items, 5)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Promo executive", items[3].Name)
	assert.Equal(t, "Promo executive", items[4].Name)
}

func TestQuote_SumPlusDiscountIsFixedPrice(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(DefaultPrices())
	view := testView()
	for _, kind := range Kinds {
		for _, dish := range []int64{1, 4} {
			q, err := calc.Quote(kind, Selection{Dish: id(dish), Drink: id(5), Dessert: id(6)}, view)
			require.NoError(t, err)
			assert.True(t, q.RealSum.Add(q.Discount).Equal(q.FixedPrice), "%s dish %d", kind, dish)
		}
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind(" daily ")
	require.NoError(t, err)
	assert.Equal(t, Daily, k)
	assert.Equal(t, "Promo daily", k.Label())

	_, err = ParseKind("brunch")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUnknownKindPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Kind(9).Requires(SlotDish) })
	assert.Panics(t, func() { DefaultPrices().Price(Kind(0)) })
}

func TestParsePrices(t *testing.T) {
	t.Parallel()

	p, err := ParsePrices("500", "1000.50", "1200")
	require.NoError(t, err)
	assert.Equal(t, "1000.5", p.Student.String())

	_, err = ParsePrices("abc", "1", "1")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = ParsePrices("1", "0", "1")
	require.ErrorIs(t, err, domain.ErrValidation)
}
