// Package bundle prices fixed-price menu combos and folds them into a working order.
package bundle

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/catalog"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	Executive Kind = iota + 1
	Student
	Daily
)

var Kinds = []Kind{Executive, Student, Daily}

func (k Kind) String() string {
	switch k {
	case Executive:
		return "EXECUTIVE"
	case Student:
		return "STUDENT"
	case Daily:
		return "DAILY"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown bundle kind %q: %w", s, domain.ErrValidation)
}

// Label is the name given to the bundle's adjustment line.
func (k Kind) Label() string {
	return "Promo " + strings.ToLower(k.String())
}

type Slot uint8

const (
	SlotDish Slot = iota + 1
	SlotDrink
	SlotDessert
)

var slots = []Slot{SlotDish, SlotDrink, SlotDessert}

func (s Slot) String() string {
	switch s {
	case SlotDish:
		return "dish"
	case SlotDrink:
		return "drink"
	case SlotDessert:
		return "dessert"
	default:
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
}

func (s Slot) category() domain.Category {
	switch s {
	case SlotDish:
		return domain.CategoryDish
	case SlotDrink:
		return domain.CategoryDrink
	case SlotDessert:
		return domain.CategoryDessert
	}
	panic(fmt.Sprintf("bundle: unknown slot %d", uint8(s)))
}

// Requires reports whether kind k needs a product in slot s. It panics on an
// unknown kind.
func (k Kind) Requires(s Slot) bool {
	switch k {
	case Executive:
		return true
	case Student:
		return s == SlotDish || s == SlotDrink
	case Daily:
		return s == SlotDish || s == SlotDessert
	}
	panic(fmt.Sprintf("bundle: unknown kind %d", uint8(k)))
}

type PriceTable struct {
	Executive decimal.Decimal
	Student   decimal.Decimal
	Daily     decimal.Decimal
}

func DefaultPrices() PriceTable {
	return PriceTable{
		Executive: decimal.NewFromInt(500),
		Student:   decimal.NewFromInt(1000),
		Daily:     decimal.NewFromInt(1200),
	}
}

// ParsePrices builds a price table from decimal strings. Every price must be
// positive.
func ParsePrices(executive, student, daily string) (PriceTable, error) {
	var t PriceTable
	for _, f := range []struct {
		kind Kind
		raw  string
		dst  *decimal.Decimal
	}{
		{Executive, executive, &t.Executive},
		{Student, student, &t.Student},
		{Daily, daily, &t.Daily},
	} {
		d, err := decimal.NewFromString(strings.TrimSpace(f.raw))
		if err != nil {
			return PriceTable{}, fmt.Errorf("%s price %q: %w", f.kind, f.raw, domain.ErrValidation)
		}
		if !d.IsPositive() {
			return PriceTable{}, fmt.Errorf("%s price must be positive: %w", f.kind, domain.ErrValidation)
		}
		*f.dst = d
	}
	return t, nil
}

func (t PriceTable) Price(k Kind) decimal.Decimal {
	switch k {
	case Executive:
		return t.Executive
	case Student:
		return t.Student
	case Daily:
		return t.Daily
	}
	panic(fmt.Sprintf("bundle: unknown kind %d", uint8(k)))
}

// Selection holds the chosen product id per slot. Slots the kind does not
// require are ignored.
type Selection struct {
	Dish    *int64
	Drink   *int64
	Dessert *int64
}

func (s Selection) get(slot Slot) *int64 {
	switch slot {
	case SlotDish:
		return s.Dish
	case SlotDrink:
		return s.Drink
	case SlotDessert:
		return s.Dessert
	}
	return nil
}

type IncompleteSelectionError struct {
	Slot Slot
}

func (e *IncompleteSelectionError) Error() string {
	return "select a " + e.Slot.String()
}

func (e *IncompleteSelectionError) Unwrap() error { return domain.ErrIncompleteSelection }

type Quote struct {
	Kind       Kind             `json:"kind"`
	Products   []domain.Product `json:"products"`
	RealSum    decimal.Decimal  `json:"real_sum"`
	FixedPrice decimal.Decimal  `json:"fixed_price"`
	// Discount is FixedPrice - RealSum: negative when the bundle is cheaper than
	// its parts, positive for a surcharge.
	Discount decimal.Decimal `json:"discount"`
}

type Calculator struct {
	Prices PriceTable
}

func NewCalculator(prices PriceTable) *Calculator {
	return &Calculator{Prices: prices}
}

// Quote resolves the selection against the catalog and prices it without
// touching any order.
func (c *Calculator) Quote(kind Kind, sel Selection, view *catalog.View) (Quote, error) {
	q := Quote{
		Kind:       kind,
		RealSum:    decimal.Zero,
		FixedPrice: c.Prices.Price(kind),
	}
	for _, slot := range slots {
		if !kind.Requires(slot) {
			continue
		}
		id := sel.get(slot)
		if id == nil {
			return Quote{}, &IncompleteSelectionError{Slot: slot}
		}
		p, ok := view.Find(*id)
		if !ok || p.Category != slot.category() {
			return Quote{}, &IncompleteSelectionError{Slot: slot}
		}
		q.Products = append(q.Products, p)
		q.RealSum = q.RealSum.Add(p.Price)
	}
	q.Discount = q.FixedPrice.Sub(q.RealSum)
	return q, nil
}

type Result struct {
	Quote
	Changes []order.Change `json:"changes"`
	Message string         `json:"message"`
}

// Confirm prices the bundle and, only if every required slot resolves, adds its
// products to o followed by an adjustment line when the discount is non-zero.
func (c *Calculator) Confirm(o *order.WorkingOrder, kind Kind, sel Selection, view *catalog.View) (Result, error) {
	q, err := c.Quote(kind, sel, view)
	if err != nil {
		return Result{}, err
	}
	res := Result{Quote: q}
	for _, p := range q.Products {
		res.Changes = append(res.Changes, o.AddProduct(p))
	}
	if !q.Discount.IsZero() {
		res.Changes = append(res.Changes, o.AppendAdjustment(kind.Label(), q.Discount))
	}
	res.Message = fmt.Sprintf("%s menu added (fixed price: $%s)", strings.ToLower(kind.String()), q.FixedPrice.String())
	return res, nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
