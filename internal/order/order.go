// Package order is the in-memory order composition engine: it aggregates catalog
// products and synthesized bundle adjustments into the working order of one table.
package order

import (
	"fmt"
	"slices"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/shopspring/decimal"
)

// LineItem is one row of a working order. ProductID is nil exactly for
// synthesized bundle adjustment lines.
type LineItem struct {
	ProductID *int64          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  domain.Category `json:"category"`
}

func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// WorkingOrder is the order under construction for a single table.
// No two items share a non-nil ProductID and every quantity is at least 1.
type WorkingOrder struct {
	TableID int64
	items   []LineItem
}

func New(tableID int64) *WorkingOrder {
	return &WorkingOrder{TableID: tableID}
}

// Restore rebuilds a working order from previously saved items.
func Restore(tableID int64, items []LineItem) (*WorkingOrder, error) {
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("item %q has quantity %d: %w", it.Name, it.Quantity, domain.ErrValidation)
		}
		if it.ProductID == nil {
			if it.Category != domain.CategoryPromo {
				return nil, fmt.Errorf("item %q has no product id: %w", it.Name, domain.ErrValidation)
			}
			continue
		}
		if _, dup := seen[*it.ProductID]; dup {
			return nil, fmt.Errorf("product %d appears twice: %w", *it.ProductID, domain.ErrValidation)
		}
		seen[*it.ProductID] = struct{}{}
	}
	o := New(tableID)
	o.items = cloneItems(items)
	return o, nil
}

// Items returns a copy of the line items in insertion order.
func (o *WorkingOrder) Items() []LineItem {
	return cloneItems(o.items)
}

func (o *WorkingOrder) Len() int { return len(o.items) }

func (o *WorkingOrder) Empty() bool { return len(o.items) == 0 }

// Change describes the effect of a single mutation.
type Change struct {
	Item    LineItem `json:"item"`
	Removed bool     `json:"removed"`
	Message string   `json:"message"`
}

// AddProduct increments the quantity of the line already holding p, or appends a
// new line for it.
func (o *WorkingOrder) AddProduct(p domain.Product) Change {
	if i := o.indexOfProduct(p.ID); i >= 0 {
		o.items[i].Quantity++
		it := o.items[i]
		return Change{Item: cloneItem(it), Message: fmt.Sprintf("added another %s (total %d)", it.Name, it.Quantity)}
	}
	id := p.ID
	it := LineItem{
		ProductID: &id,
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: p.Price,
		Category:  p.Category,
	}
	o.items = append(o.items, it)
	return Change{Item: cloneItem(it), Message: fmt.Sprintf("added %s", it.Name)}
}

// AppendAdjustment appends a PROMO line that carries no catalog identity.
// Adjustments never aggregate, each confirmed bundle gets its own line.
func (o *WorkingOrder) AppendAdjustment(label string, amount decimal.Decimal) Change {
	it := LineItem{
		Name:      label,
		Quantity:  1,
		UnitPrice: amount,
		Category:  domain.CategoryPromo,
	}
	o.items = append(o.items, it)
	return Change{Item: it, Message: fmt.Sprintf("added %s", label)}
}

// Key selects a line item: by product id, or by name for adjustment lines.
type Key struct {
	ProductID *int64
	Name      string
}

func ProductKey(id int64) Key { return Key{ProductID: &id} }

func NameKey(name string) Key { return Key{Name: name} }

func (k Key) String() string {
	if k.ProductID != nil {
		return fmt.Sprintf("product %d", *k.ProductID)
	}
	return fmt.Sprintf("%q", k.Name)
}

// RemoveOne decrements the matching line, dropping it when its quantity reaches
// zero. A missing key is not an error: ok is false and the order is untouched.
func (o *WorkingOrder) RemoveOne(k Key) (c Change, ok bool) {
	i := o.indexOf(k)
	if i < 0 {
		return Change{}, false
	}
	if o.items[i].Quantity > 1 {
		o.items[i].Quantity--
		it := o.items[i]
		return Change{Item: cloneItem(it), Message: fmt.Sprintf("removed one %s", it.Name)}, true
	}
	it := o.items[i]
	o.items = slices.Delete(o.items, i, i+1)
	it.Quantity = 0
	return Change{Item: it, Removed: true, Message: fmt.Sprintf("removed %s", it.Name)}, true
}

// Subtotal sums quantity × unit price over every line, adjustments included.
func (o *WorkingOrder) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// Clear empties the order after a successful submission.
func (o *WorkingOrder) Clear() {
	o.items = nil
}

func (o *WorkingOrder) indexOf(k Key) int {
	if k.ProductID != nil {
		return o.indexOfProduct(*k.ProductID)
	}
	for i, it := range o.items {
		if it.ProductID == nil && it.Name == k.Name {
			return i
		}
	}
	return -1
}

func (o *WorkingOrder) indexOfProduct(id int64) int {
	for i, it := range o.items {
		if it.ProductID != nil && *it.ProductID == id {
			return i
		}
	}
	return -1
}

func cloneItem(it LineItem) LineItem {
	if it.ProductID != nil {
		id := *it.ProductID
		it.ProductID = &id
	}
	return it
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}
