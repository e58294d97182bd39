// Package report holds the manager-report payloads returned by the
// Inventra backend. All aggregation happens server-side; the frontend
// renders these rows as-is.
package report

import "github.com/shopspring/decimal"

// SalesSummary is the payload of GET /reports/sales-summary.
type SalesSummary struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	InvoiceCount int             `json:"invoiceCount"`
	ItemsSold    int             `json:"itemsSold"`
	GrossTotal   decimal.Decimal `json:"grossTotal"`
}

// TopProductRow is one row of GET /reports/top-products and
// GET /reports/top-selling.
type TopProductRow struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	QtySold     int             `json:"qtySold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// LowStockRow is one row of GET /reports/low-stock: a product at or below
// its low-stock threshold at some branch.
type LowStockRow struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	BranchID    string `json:"branchId"`
	BranchName  string `json:"branchName"`
	Quantity    int    `json:"quantity"`
	LowStockAt  int    `json:"lowStockAt"`
}

// ValuationRow is one row of GET /reports/stock-valuation.
type ValuationRow struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	BranchName  string          `json:"branchName"`
	Quantity    int             `json:"quantity"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Value       decimal.Decimal `json:"value"`
}
