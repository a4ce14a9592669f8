package order

import (
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/shopspring/decimal"
)

// SubmissionItem is the wire projection of a line item. The sales service prices
// catalog lines itself, so UnitPrice and Name are only set for PROMO lines.
type SubmissionItem struct {
	ProductID *int64           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Name      *string          `json:"name,omitempty"`
	Category  domain.Category  `json:"category"`
}

type Submission struct {
	TableID int64            `json:"table_id"`
	Items   []SubmissionItem `json:"items"`
}

func (o *WorkingOrder) ToSubmission() Submission {
	s := Submission{
		TableID: o.TableID,
		Items:   make([]SubmissionItem, 0, len(o.items)),
	}
	for _, it := range o.items {
		it = cloneItem(it)
		si := SubmissionItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Category:  it.Category,
		}
		if it.Category == domain.CategoryPromo {
			price := it.UnitPrice
			name := it.Name
			si.UnitPrice = &price
			si.Name = &name
		}
		s.Items = append(s.Items, si)
	}
	return s
}
