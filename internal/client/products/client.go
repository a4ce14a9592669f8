// Package products is the HTTP client for the remote products (menu) service.
package products

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
	"github.com/shopspring/decimal"
)

type Client struct {
	rc *remote.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rc: remote.New(baseURL, timeout)}
}

type ProductDTO struct {
	ID          int64       `json:"id"`
	Name        string      `json:"nombre"`
	Description string      `json:"descripcion"`
	Price       json.Number `json:"precio"`
	Category    string      `json:"tipo"`
}

func toDomain(d ProductDTO) (domain.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d price %q: %w", d.ID, d.Price, err)
	}
	cat, err := remote.CategoryFromWire(d.Category)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", d.ID, err)
	}
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    cat,
	}, nil
}

func fromDomain(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.Number(p.Price.String()),
		Category:    remote.CategoryToWire(p.Category),
	}
}

func toDomainList(dtos []ProductDTO) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		p, err := toDomain(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var dtos []ProductDTO
	if err := c.rc.Do(ctx, http.MethodGet, "/listar", nil, &dtos); err != nil {
		return nil, remote.Generic(err)
	}
	return toDomainList(dtos)
}

func (c *Client) Get(ctx context.Context, id int64) (domain.Product, error) {
	var dto ProductDTO
	if err := c.rc.Do(ctx, http.MethodGet, fmt.Sprintf("/buscar/%d", id), nil, &dto); err != nil {
		return domain.Product{}, remote.Generic(err)
	}
	return toDomain(dto)
}

func (c *Client) ListByCategory(ctx context.Context, cat domain.Category) ([]domain.Product, error) {
	var dtos []ProductDTO
	if err := c.rc.Do(ctx, http.MethodGet, "/tipo/"+remote.CategoryToWire(cat), nil, &dtos); err != nil {
		return nil, remote.Generic(err)
	}
	return toDomainList(dtos)
}

// Save stores a new product. The products service rejects a duplicate identity.
func (c *Client) Save(ctx context.Context, p domain.Product) error {
	err := c.rc.Do(ctx, http.MethodPost, "/agregar", fromDomain(p), nil)
	if err == nil {
		return nil
	}
	var se *remote.StatusError
	if errors.As(err, &se) && (se.Status == http.StatusConflict || strings.Contains(se.Message, "Duplicate entry")) {
		return &domain.RemoteError{Kind: domain.ErrDuplicate, Message: fmt.Sprintf("product %q already exists", p.Name), Cause: se}
	}
	return remote.Generic(err)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.rc.Do(ctx, http.MethodPost, "/eliminar", id, nil); err != nil {
		return remote.Generic(err)
	}
	return nil
}
