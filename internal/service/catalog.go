package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/restaurant_pos/internal/catalog"
	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
)

type SearchResult struct {
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Items []domain.Product `json:"items"`
}

// loadCatalog fetches a fresh snapshot and mirrors it into the search index.
func (s *Service) loadCatalog(ctx context.Context) (*catalog.View, error) {
	prods, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	view := catalog.NewView(prods)
	if s.index != nil {
		if err := s.index.Sync(ctx, view.All()); err != nil {
			logging.FromContext(ctx).Warn("menu_index_failed", "error", err)
		}
	}
	return view, nil
}

func (s *Service) Menu(ctx context.Context) (catalog.Partitions, error) {
	view, err := s.loadCatalog(ctx)
	if err != nil {
		return catalog.Partitions{}, err
	}
	return view.Partition(), nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, cat domain.Category) ([]domain.Product, error) {
	if !cat.Orderable() {
		return nil, fmt.Errorf("category %s is not orderable: %w", cat, domain.ErrValidation)
	}
	prods, err := s.products.ListByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("list %s products: %w", cat, err)
	}
	return prods, nil
}

// SaveProduct validates locally before the round trip. Open sessions keep the
// snapshot they started with.
func (s *Service) SaveProduct(ctx context.Context, p domain.Product) error {
	if err := catalog.Validate(p); err != nil {
		return err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return fmt.Errorf("save product %q: %w", p.Name, err)
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("menu_index_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// SearchMenu queries the search index when one is configured and falls back to
// filtering a fresh snapshot otherwise.
func (s *Service) SearchMenu(ctx context.Context, query string, page, size int) (SearchResult, error) {
	from, limit, page := paginate(page, size)
	res := SearchResult{Page: page, Size: limit}

	if s.index != nil {
		total, prods, err := s.index.Search(ctx, query, from, limit)
		if err == nil {
			res.Total, res.Items = total, prods
			return res, nil
		}
		logging.FromContext(ctx).Warn("menu_search_fallback", "error", err)
	}

	view, err := s.loadCatalog(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	hits := view.Filter(query)
	res.Total = int64(len(hits))
	if from >= len(hits) {
		res.Items = []domain.Product{}
		return res, nil
	}
	res.Items = hits[from:min(from+limit, len(hits))]
	return res, nil
}

func paginate(page, size int) (from, limit, p int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return (page - 1) * size, size, page
}
