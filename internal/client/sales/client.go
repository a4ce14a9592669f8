// Package sales is the HTTP client for the remote sales service, which owns
// tables and orders.
package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Skotchmaster/restaurant_pos/internal/client/remote"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/shopspring/decimal"
)

type Client struct {
	rc *remote.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rc: remote.New(baseURL, timeout)}
}

func (c *Client) ListTables(ctx context.Context) ([]domain.Table, error) {
	var dtos []TableDTO
	if err := c.rc.Do(ctx, http.MethodGet, "/mesas/listar", nil, &dtos); err != nil {
		return nil, remote.Generic(err)
	}
	out := make([]domain.Table, 0, len(dtos))
	for _, d := range dtos {
		t, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Client) GetTable(ctx context.Context, id int64) (domain.Table, error) {
	var dto TableDTO
	if err := c.rc.Do(ctx, http.MethodGet, fmt.Sprintf("/mesas/buscar/%d", id), nil, &dto); err != nil {
		return domain.Table{}, remote.Generic(err)
	}
	return dto.toDomain()
}

// CreateTable registers a new free table. A number already in use fails with
// domain.ErrDuplicateTable.
func (c *Client) CreateTable(ctx context.Context, number int) error {
	req := TableDTO{Number: number, Status: remote.TableStatusToWire(domain.TableFree)}
	err := c.rc.Do(ctx, http.MethodPost, "/mesas/agregar", req, nil)
	if err == nil {
		return nil
	}
	var se *remote.StatusError
	if errors.As(err, &se) && (se.Status == http.StatusConflict || strings.Contains(se.Message, "Duplicate entry")) {
		return &domain.RemoteError{
			Kind:    domain.ErrDuplicateTable,
			Message: fmt.Sprintf("a table with number %d already exists", number),
			Cause:   se,
		}
	}
	return remote.Generic(err)
}

func (c *Client) DeleteTable(ctx context.Context, id int64) error {
	if err := c.rc.Do(ctx, http.MethodPost, "/mesas/eliminar", id, nil); err != nil {
		return remote.Generic(err)
	}
	return nil
}

func (c *Client) Reserve(ctx context.Context, tableID int64) (domain.Table, error) {
	var dto TableDTO
	if err := c.rc.Do(ctx, http.MethodPost, fmt.Sprintf("/mesas/reservar/%d", tableID), nil, &dto); err != nil {
		return domain.Table{}, transitionError(err, "table was already reserved or closed")
	}
	return dto.toDomain()
}

func (c *Client) SubmitOrder(ctx context.Context, sub order.Submission) error {
	req := OrderRequest{TableID: sub.TableID, Items: make([]OrderItemRequest, 0, len(sub.Items))}
	for _, it := range sub.Items {
		item := OrderItemRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			PromoName: it.Name,
			Category:  remote.CategoryToWire(it.Category),
		}
		if it.UnitPrice != nil {
			n := json.Number(it.UnitPrice.String())
			item.UnitPrice = &n
		}
		req.Items = append(req.Items, item)
	}
	if err := c.rc.Do(ctx, http.MethodPost, "/pedidos/agregar", req, nil); err != nil {
		return transitionError(err, "order was rejected")
	}
	return nil
}

// CloseSale closes the table's open order and returns it with the total the
// sales service computed.
func (c *Client) CloseSale(ctx context.Context, tableID int64) (domain.SaleOrder, error) {
	var dto OrderDTO
	if err := c.rc.Do(ctx, http.MethodPost, fmt.Sprintf("/mesas/cerrar-venta/%d", tableID), nil, &dto); err != nil {
		return domain.SaleOrder{}, transitionError(err, "sale cannot be closed")
	}
	return dto.toDomain()
}

func (c *Client) CloseOrder(ctx context.Context, orderID int64) (domain.SaleOrder, error) {
	var dto OrderDTO
	if err := c.rc.Do(ctx, http.MethodPost, fmt.Sprintf("/pedidos/cerrar/%d", orderID), nil, &dto); err != nil {
		return domain.SaleOrder{}, transitionError(err, "order cannot be closed")
	}
	return dto.toDomain()
}

// transitionError tags a rejected state change. The "no open order" reply is
// recognised by its message since the sales service does not use a distinct status.
func transitionError(err error, fallback string) error {
	var se *remote.StatusError
	if !errors.As(err, &se) {
		return err
	}
	switch {
	case domain.IsNoOpenOrderMessage(se.Message):
		e := domain.NoOpenOrder()
		e.Cause = se
		return e
	case se.Status == http.StatusNotFound:
		return remote.Generic(err)
	case se.Status >= 400 && se.Status < 500:
		msg := se.Message
		if msg == "" {
			msg = fallback
		}
		return &domain.RemoteError{Kind: domain.ErrInvalidTransition, Message: msg, Cause: se}
	}
	return remote.Generic(err)
}

func toDecimal(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
