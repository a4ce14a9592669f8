package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. ID 0 means the product has not been saved yet.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
}

type Table struct {
	ID     int64       `json:"id"`
	Number int         `json:"number"`
	Status TableStatus `json:"status"`
}

type SettledItem struct {
	ID        int64           `json:"id"`
	ProductID *int64          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  Category        `json:"category,omitzero"`
}

// SaleOrder is the sales service's view of an order; Total is computed remotely.
type SaleOrder struct {
	ID      int64           `json:"id"`
	TableID int64           `json:"table_id"`
	Status  OrderStatus     `json:"status"`
	Total   decimal.Decimal `json:"total"`
	Items   []SettledItem   `json:"items"`
}

// Clone returns a copy that shares no memory with o.
func (o SaleOrder) Clone() SaleOrder {
	if o.Items == nil {
		return o
	}
	items := make([]SettledItem, len(o.Items))
	for n, it := range o.Items {
		if it.ProductID != nil {
			id := *it.ProductID
			it.ProductID = &id
		}
		items[n] = it
	}
	o.Items = items
	return o
}
