package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one itemized row of a completed sale.
type InvoiceLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Invoice is the backend-issued, immutable record of a completed sale.
// It is treated as display data once received; the frontend never edits it.
type Invoice struct {
	PublicID    string          `json:"publicId"`
	Number      string          `json:"number"`
	BranchID    string          `json:"branchId"`
	BranchName  string          `json:"branchName,omitempty"`
	CashierName string          `json:"cashierName,omitempty"`
	Note        string          `json:"note,omitempty"`
	Lines       []InvoiceLine   `json:"items"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CheckoutItem is one line of the checkout payload, carrying the unit price
// locked in when the product was added to the cart.
type CheckoutItem struct {
	ProductID string          `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CheckoutInput is the body for POST /sales/checkout. The entire sale is
// submitted in one request; the backend applies the stock decrement and
// assigns the invoice number atomically.
type CheckoutInput struct {
	BranchID string         `json:"branchId"`
	Note     string         `json:"note,omitempty"`
	Items    []CheckoutItem `json:"items"`
}
