package httpserver

import (
	"net/http"
	"strconv"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc *service.Service
}

func (h *CatalogHTTP) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_menu")

	menu, err := h.Svc.Menu(ctx)
	if err != nil {
		return fail(l, "get_menu_error", err)
	}
	return c.JSON(http.StatusOK, menu)
}

func (h *CatalogHTTP) SearchMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_menu")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	res, err := h.Svc.SearchMenu(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_menu_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": map[string]any{
			"page":        res.Page,
			"size":        res.Size,
			"total":       res.Total,
			"total_pages": (res.Total + int64(res.Size) - 1) / int64(res.Size),
			"has_prev":    res.Page > 1,
			"has_next":    int64(res.Page*res.Size) < res.Total,
		},
	})
}

func (h *CatalogHTTP) GetByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_by_category")

	cat, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		return fail(l, "get_by_category_error", err)
	}
	prods, err := h.Svc.ProductsByCategory(ctx, cat)
	if err != nil {
		return fail(l, "get_by_category_error", err)
	}
	return c.JSON(http.StatusOK, prods)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c, l, "get_product_error", "id")
	if err != nil {
		return err
	}
	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	cat, err := domain.ParseCategory(req.Category)
	if err != nil {
		return fail(l, "create_product_error", err)
	}

	p := domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    cat,
	}
	if err := h.Svc.SaveProduct(ctx, p); err != nil {
		return fail(l, "create_product_error", err)
	}

	l.Info("create_product_success", "name", p.Name)
	return c.JSON(http.StatusCreated, message("product "+p.Name+" saved"))
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := parseID(c, l, "delete_product_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
