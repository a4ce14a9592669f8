package catalog

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
)

// Validate checks a product before it is sent to the products service.
func Validate(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("price must be greater than zero: %w", domain.ErrValidation)
	}
	if !p.Category.Orderable() {
		return fmt.Errorf("category %s cannot be stored in the catalog: %w", p.Category, domain.ErrValidation)
	}
	return nil
}
