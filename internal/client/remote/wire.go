package remote

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
)

// Enum spellings used on the wire by the sales and products services.
var categoryWire = map[domain.Category]string{
	domain.CategoryDish:    "PLATO",
	domain.CategoryDrink:   "BEBIDA",
	domain.CategoryDessert: "POSTRE",
	domain.CategoryPromo:   "PROMO",
}

func CategoryToWire(c domain.Category) string {
	return categoryWire[c]
}

func CategoryFromWire(s string) (domain.Category, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, w := range categoryWire {
		if w == s {
			return c, nil
		}
	}
	return domain.ParseCategory(s)
}

func TableStatusFromWire(s string) (domain.TableStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIBRE", "FREE":
		return domain.TableFree, nil
	case "RESERVADA", "RESERVED", "OCUPADA":
		return domain.TableReserved, nil
	case "CERRADA", "CLOSED":
		return domain.TableClosed, nil
	}
	return 0, fmt.Errorf("unknown table status %q", s)
}

func TableStatusToWire(s domain.TableStatus) string {
	switch s {
	case domain.TableFree:
		return "LIBRE"
	case domain.TableReserved:
		return "RESERVADA"
	case domain.TableClosed:
		return "CERRADA"
	}
	return ""
}

func OrderStatusFromWire(s string) (domain.OrderStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ABIERTO", "OPEN":
		return domain.OrderOpen, nil
	case "CERRADO", "CLOSED":
		return domain.OrderClosed, nil
	}
	return 0, fmt.Errorf("unknown order status %q", s)
}
