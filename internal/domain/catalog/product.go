// Package catalog holds the product and category payloads exchanged with
// the Inventra backend. The frontend never mutates these locally beyond
// forwarding create/deactivate requests and re-fetching.
package catalog

import "github.com/shopspring/decimal"

// Product is the catalog payload returned by /products.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CategoryID   string          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	LowStockAt   int             `json:"lowStockAt"`
	IsActive     bool            `json:"isActive"`
}

// Category is the payload returned by /categories.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewProductInput is the body for POST /products.
type NewProductInput struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CategoryID   string          `json:"categoryId,omitempty"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	LowStockAt   int             `json:"lowStockAt"`
}
