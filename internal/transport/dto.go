package transport

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

type CreateTableRequest struct {
	Number int `json:"number"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

// RemoveItemRequest selects a catalog line by ProductID or an adjustment line by Name.
type RemoveItemRequest struct {
	ProductID *int64 `json:"product_id"`
	Name      string `json:"name"`
}

type BundleRequest struct {
	Kind      string `json:"kind"`
	DishID    *int64 `json:"dish_id"`
	DrinkID   *int64 `json:"drink_id"`
	DessertID *int64 `json:"dessert_id"`
}
