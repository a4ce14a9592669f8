package httpserver

import (
	"net/http"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/bundle"
	"github.com/Skotchmaster/restaurant_pos/internal/order"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	middleware "github.com/Skotchmaster/restaurant_pos/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
)

type SessionsHTTP struct {
	Svc *service.Service
}

func (h *SessionsHTTP) Open(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.open")

	tableID, err := parseID(c, l, "open_session_error", "tableId")
	if err != nil {
		return err
	}
	v, err := h.Svc.OpenSession(ctx, tableID, middleware.OperatorID(c))
	if err != nil {
		return fail(l, "open_session_error", err)
	}

	l.Info("open_session_success", "table_id", tableID, "session_id", v.ID)
	return c.JSON(http.StatusOK, v)
}

func (h *SessionsHTTP) View(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.view")

	tableID, err := parseID(c, l, "view_session_error", "tableId")
	if err != nil {
		return err
	}
	v, err := h.Svc.ViewSession(tableID)
	if err != nil {
		return fail(l, "view_session_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *SessionsHTTP) End(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.end")

	tableID, err := parseID(c, l, "end_session_error", "tableId")
	if err != nil {
		return err
	}
	h.Svc.EndSession(tableID)
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionsHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.add_item")

	tableID, err := parseID(c, l, "add_item_error", "tableId")
	if err != nil {
		return err
	}
	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m, err := h.Svc.AddProduct(ctx, tableID, req.ProductID)
	if err != nil {
		return fail(l, "add_item_error", err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *SessionsHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.remove_item")

	tableID, err := parseID(c, l, "remove_item_error", "tableId")
	if err != nil {
		return err
	}
	var req transport.RemoveItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var key order.Key
	switch {
	case req.ProductID != nil:
		key = order.ProductKey(*req.ProductID)
	case strings.TrimSpace(req.Name) != "":
		key = order.NameKey(req.Name)
	default:
		l.Warn("remove_item_error", "status", 400, "reason", "product_id or name required")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id or name required")
	}

	m, err := h.Svc.RemoveOne(ctx, tableID, key)
	if err != nil {
		return fail(l, "remove_item_error", err)
	}
	return c.JSON(http.StatusOK, m)
}

func bindBundle(c echo.Context) (bundle.Kind, bundle.Selection, error) {
	var req transport.BundleRequest
	if err := c.Bind(&req); err != nil {
		return 0, bundle.Selection{}, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	kind, err := bundle.ParseKind(req.Kind)
	if err != nil {
		return 0, bundle.Selection{}, echo.NewHTTPError(http.StatusBadRequest, "unknown bundle kind")
	}
	return kind, bundle.Selection{Dish: req.DishID, Drink: req.DrinkID, Dessert: req.DessertID}, nil
}

func (h *SessionsHTTP) QuoteBundle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.quote_bundle")

	tableID, err := parseID(c, l, "quote_bundle_error", "tableId")
	if err != nil {
		return err
	}
	kind, sel, err := bindBundle(c)
	if err != nil {
		l.Warn("quote_bundle_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	q, err := h.Svc.QuoteBundle(tableID, kind, sel)
	if err != nil {
		return fail(l, "quote_bundle_error", err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *SessionsHTTP) ConfirmBundle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.confirm_bundle")

	tableID, err := parseID(c, l, "confirm_bundle_error", "tableId")
	if err != nil {
		return err
	}
	kind, sel, err := bindBundle(c)
	if err != nil {
		l.Warn("confirm_bundle_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	m, err := h.Svc.ConfirmBundle(ctx, tableID, kind, sel)
	if err != nil {
		return fail(l, "confirm_bundle_error", err)
	}

	l.Info("confirm_bundle_success", "table_id", tableID, "kind", kind.String())
	return c.JSON(http.StatusOK, m)
}

func (h *SessionsHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sessions.submit")

	tableID, err := parseID(c, l, "submit_order_error", "tableId")
	if err != nil {
		return err
	}
	m, err := h.Svc.Submit(ctx, tableID)
	if err != nil {
		return fail(l, "submit_order_error", err)
	}

	l.Info("submit_order_success", "table_id", tableID)
	return c.JSON(http.StatusOK, m)
}
