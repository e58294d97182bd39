// Package inventory holds branch and stock payloads exchanged with the
// Inventra backend. Stock arithmetic lives entirely in the backend; the
// frontend only displays levels and forwards movement requests.
package inventory

import "time"

// Transaction types recorded by the backend stock ledger.
const (
	TxnReceive = "RECEIVE"
	TxnSale    = "SALE"
	TxnAdjust  = "ADJUST"
	TxnDamage  = "DAMAGE"
)

// Branch is a physical store location with its own stock quantities.
type Branch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"isActive"`
}

// StockLevel is one row of GET /inventory: a product's quantity at a branch.
type StockLevel struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Unit        string `json:"unit"`
	BranchID    string `json:"branchId"`
	Quantity    int    `json:"quantity"`
	LowStockAt  int    `json:"lowStockAt"`
}

// IsLow reports whether the level sits at or below its low-stock threshold.
func (s StockLevel) IsLow() bool {
	return s.LowStockAt > 0 && s.Quantity <= s.LowStockAt
}

// Transaction is one backend-recorded stock movement.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	BranchID    string    `json:"branchId"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note,omitempty"`
	ActorName   string    `json:"actorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MovementInput is the body for POST /inventory/{receive,adjust,sale,damage}.
type MovementInput struct {
	BranchID  string `json:"branchId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}
