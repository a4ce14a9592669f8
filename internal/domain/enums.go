package domain

import (
	"fmt"
	"strings"
)

type Category uint8

const (
	CategoryDish Category = iota + 1
	CategoryDrink
	CategoryDessert
	// CategoryPromo tags synthesized bundle discount lines; the catalog never holds it.
	CategoryPromo
)

func (c Category) String() string {
	switch c {
	case CategoryDish:
		return "DISH"
	case CategoryDrink:
		return "DRINK"
	case CategoryDessert:
		return "DESSERT"
	case CategoryPromo:
		return "PROMO"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

func (c Category) Valid() bool {
	return c >= CategoryDish && c <= CategoryPromo
}

// Orderable reports whether products of this category may be stored in the catalog.
func (c Category) Orderable() bool {
	return c.Valid() && c != CategoryPromo
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DISH":
		return CategoryDish, nil
	case "DRINK":
		return CategoryDrink, nil
	case "DESSERT":
		return CategoryDessert, nil
	case "PROMO":
		return CategoryPromo, nil
	}
	return 0, fmt.Errorf("unknown category %q: %w", s, ErrValidation)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal category %d: %w", uint8(c), ErrValidation)
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

type TableStatus uint8

const (
	TableFree TableStatus = iota + 1
	TableReserved
	TableClosed
)

func (s TableStatus) String() string {
	switch s {
	case TableFree:
		return "FREE"
	case TableReserved:
		return "RESERVED"
	case TableClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("TableStatus(%d)", uint8(s))
	}
}

func (s TableStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type OrderStatus uint8

const (
	OrderOpen OrderStatus = iota + 1
	OrderClosed
)

func (s OrderStatus) String() string {
	switch s {
	case OrderOpen:
		return "OPEN"
	case OrderClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("OrderStatus(%d)", uint8(s))
	}
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
