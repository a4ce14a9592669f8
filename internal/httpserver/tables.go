package httpserver

import (
	"fmt"
	"net/http"

	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	middleware "github.com/Skotchmaster/restaurant_pos/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
)

type TablesHTTP struct {
	Svc *service.Service
}

func (h *TablesHTTP) ListTables(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tables.list")

	tables, err := h.Svc.ListTables(ctx)
	if err != nil {
		return fail(l, "list_tables_error", err)
	}
	return c.JSON(http.StatusOK, tables)
}

func (h *TablesHTTP) CreateTable(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tables.create")

	var req transport.CreateTableRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_table_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.CreateTable(ctx, req.Number, middleware.OperatorID(c)); err != nil {
		return fail(l, "create_table_error", err)
	}

	l.Info("create_table_success", "number", req.Number)
	return c.JSON(http.StatusCreated, message(fmt.Sprintf("table %d created", req.Number)))
}

func (h *TablesHTTP) GetTable(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tables.get")

	id, err := parseID(c, l, "get_table_error", "id")
	if err != nil {
		return err
	}
	st, err := h.Svc.GetTable(ctx, id)
	if err != nil {
		return fail(l, "get_table_error", err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *TablesHTTP) Reserve(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tables.reserve")

	id, err := parseID(c, l, "reserve_table_error", "id")
	if err != nil {
		return err
	}
	st, err := h.Svc.Reserve(ctx, id, middleware.OperatorID(c))
	if err != nil {
		return fail(l, "reserve_table_error", err)
	}

	l.Info("reserve_table_success", "table_id", id)
	return c.JSON(http.StatusOK, st)
}

func (h *TablesHTTP) CloseSale(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tables.close_sale")

	id, err := parseID(c, l, "close_sale_error", "id")
	if err != nil {
		return err
	}
	so, err := h.Svc.CloseSale(ctx, id, middleware.OperatorID(c))
	if err != nil {
		return fail(l, "close_sale_error", err)
	}

	l.Info("close_sale_success", "table_id", id, "total", so.Total.String())
	return c.JSON(http.StatusOK, so)
}

func (h *TablesHTTP) DeleteTable(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tables.delete")

	id, err := parseID(c, l, "delete_table_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteTable(ctx, id); err != nil {
		return fail(l, "delete_table_error", err)
	}

	l.Info("delete_table_success", "table_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *TablesHTTP) CloseOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.close")

	id, err := parseID(c, l, "close_order_error", "id")
	if err != nil {
		return err
	}
	so, err := h.Svc.CloseOrder(ctx, id)
	if err != nil {
		return fail(l, "close_order_error", err)
	}
	return c.JSON(http.StatusOK, so)
}
