package sales

import (
	"encoding/json"
	"fmt"

	"github.com/Skotchmaster/restaurant_pos/internal/client/remote"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
)

type TableDTO struct {
	ID     int64  `json:"id"`
	Number int    `json:"numero"`
	Status string `json:"estado"`
}

func (d TableDTO) toDomain() (domain.Table, error) {
	st, err := remote.TableStatusFromWire(d.Status)
	if err != nil {
		return domain.Table{}, fmt.Errorf("table %d: %w", d.ID, err)
	}
	return domain.Table{ID: d.ID, Number: d.Number, Status: st}, nil
}

// OrderItemRequest keeps productoId as an explicit null for promo lines.
type OrderItemRequest struct {
	ProductID *int64       `json:"productoId"`
	Quantity  int          `json:"cantidad"`
	PromoName *string      `json:"nombrePromocion,omitempty"`
	UnitPrice *json.Number `json:"precioUnitario,omitempty"`
	Category  string       `json:"tipo,omitempty"`
}

type OrderRequest struct {
	TableID int64              `json:"mesaId"`
	Items   []OrderItemRequest `json:"items"`
}

type SettledItemDTO struct {
	ID        int64       `json:"id"`
	ProductID *int64      `json:"productoId"`
	Quantity  int         `json:"cantidad"`
	UnitPrice json.Number `json:"precioUnitario"`
	Category  string      `json:"tipo"`
}

type OrderDTO struct {
	ID      int64            `json:"id"`
	TableID int64            `json:"mesaId"`
	Status  string           `json:"estado"`
	Total   json.Number      `json:"total"`
	Items   []SettledItemDTO `json:"items"`
}

func (d OrderDTO) toDomain() (domain.SaleOrder, error) {
	st, err := remote.OrderStatusFromWire(d.Status)
	if err != nil {
		return domain.SaleOrder{}, fmt.Errorf("order %d: %w", d.ID, err)
	}
	total, err := toDecimal(d.Total)
	if err != nil {
		return domain.SaleOrder{}, fmt.Errorf("order %d total: %w", d.ID, err)
	}
	so := domain.SaleOrder{
		ID:      d.ID,
		TableID: d.TableID,
		Status:  st,
		Total:   total,
		Items:   make([]domain.SettledItem, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		price, err := toDecimal(it.UnitPrice)
		if err != nil {
			return domain.SaleOrder{}, fmt.Errorf("order %d item %d price: %w", d.ID, it.ID, err)
		}
		var cat domain.Category
		if it.Category != "" {
			if cat, err = remote.CategoryFromWire(it.Category); err != nil {
				return domain.SaleOrder{}, fmt.Errorf("order %d item %d: %w", d.ID, it.ID, err)
			}
		}
		so.Items = append(so.Items, domain.SettledItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Category:  cat,
		})
	}
	return so, nil
}
