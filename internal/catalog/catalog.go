// Package catalog holds the read-only product snapshot a composition session works from.
package catalog

import (
	"slices"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
)

// View is an immutable snapshot of the products catalog.
type View struct {
	products []domain.Product
	byID     map[int64]int
}

// NewView copies products into a snapshot. PROMO entries are dropped since they
// only exist as synthesized order lines.
func NewView(products []domain.Product) *View {
	v := &View{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if !p.Category.Orderable() {
			continue
		}
		if _, dup := v.byID[p.ID]; dup {
			continue
		}
		v.byID[p.ID] = len(v.products)
		v.products = append(v.products, p)
	}
	return v
}

func (v *View) Len() int { return len(v.products) }

func (v *View) All() []domain.Product {
	return slices.Clone(v.products)
}

func (v *View) Find(id int64) (domain.Product, bool) {
	i, ok := v.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return v.products[i], true
}

func (v *View) ByCategory(c domain.Category) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range v.products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

type Partitions struct {
	Dishes   []domain.Product `json:"dishes"`
	Drinks   []domain.Product `json:"drinks"`
	Desserts []domain.Product `json:"desserts"`
}

func (v *View) Partition() Partitions {
	return Partitions{
		Dishes:   v.ByCategory(domain.CategoryDish),
		Drinks:   v.ByCategory(domain.CategoryDrink),
		Desserts: v.ByCategory(domain.CategoryDessert),
	}
}

// Filter does a case-insensitive substring match over name and description.
func (v *View) Filter(q string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return v.All()
	}
	out := make([]domain.Product, 0)
	for _, p := range v.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
