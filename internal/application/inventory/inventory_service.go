// Package inventory forwards stock movements and level queries to the
// Inventra backend. All stock arithmetic is backend-owned; nothing here
// computes a quantity.
package inventory

import (
	"context"
	"strings"

	"github.com/inventra/frontend/internal/application/refdata"
	"github.com/inventra/frontend/internal/domain/inventory"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// Service handles inventory levels, movements, and transaction history.
type Service struct {
	api *apiclient.Client
}

// NewService creates an inventory service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Levels returns stock levels for a branch, optionally filtered server-side
// by search.
func (s *Service) Levels(ctx context.Context, token, branchID, search string) ([]inventory.StockLevel, error) {
	if branchID == "" {
		return nil, shared.ErrBranchRequired
	}
	resp, err := s.api.Get(ctx, token, "/inventory", map[string]string{
		"branchId": branchID,
		"search":   strings.TrimSpace(search),
	})
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]inventory.StockLevel](resp)
}

// Movement forwards one stock movement (receive, adjust, sale, damage).
// Quantity must be positive; the direction is implied by the movement kind.
func (s *Service) Movement(ctx context.Context, token, kind string, input inventory.MovementInput) (inventory.Transaction, error) {
	var path string
	switch kind {
	case inventory.TxnReceive:
		path = "/inventory/receive"
	case inventory.TxnAdjust:
		path = "/inventory/adjust"
	case inventory.TxnSale:
		path = "/inventory/sale"
	case inventory.TxnDamage:
		path = "/inventory/damage"
	default:
		return inventory.Transaction{}, shared.NewDomainError("INVALID_INPUT", "Unknown movement type")
	}

	if input.BranchID == "" {
		return inventory.Transaction{}, shared.ErrBranchRequired
	}
	if input.ProductID == "" {
		return inventory.Transaction{}, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if input.Quantity <= 0 {
		return inventory.Transaction{}, shared.NewDomainError("INVALID_INPUT", "Quantity must be a positive integer")
	}
	input.Note = strings.TrimSpace(input.Note)

	resp, err := s.api.Post(ctx, token, path, input)
	if err != nil {
		return inventory.Transaction{}, err
	}
	return apiclient.Decode[inventory.Transaction](resp)
}

// Transactions returns the movement history for a branch, optionally
// narrowed to one product.
func (s *Service) Transactions(ctx context.Context, token, branchID, productID string) ([]inventory.Transaction, error) {
	if branchID == "" {
		return nil, shared.ErrBranchRequired
	}
	resp, err := s.api.Get(ctx, token, "/inventory/txns", map[string]string{
		"branchId":  branchID,
		"productId": productID,
	})
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]inventory.Transaction](resp)
}

// BranchService handles branch listing and creation.
type BranchService struct {
	api     *apiclient.Client
	refdata *refdata.Provider
}

// NewBranchService creates a BranchService.
func NewBranchService(api *apiclient.Client, ref *refdata.Provider) *BranchService {
	return &BranchService{api: api, refdata: ref}
}

// List returns all branches.
func (s *BranchService) List(ctx context.Context, token string) ([]inventory.Branch, error) {
	return s.refdata.Branches(ctx, token)
}

// Create forwards a new branch to the backend.
func (s *BranchService) Create(ctx context.Context, token string, branch inventory.Branch) (inventory.Branch, error) {
	branch.Name = strings.TrimSpace(branch.Name)
	if branch.Name == "" {
		return inventory.Branch{}, shared.NewDomainError("INVALID_INPUT", "Branch name is required")
	}

	resp, err := s.api.Post(ctx, token, "/branches", branch)
	if err != nil {
		return inventory.Branch{}, err
	}
	created, err := apiclient.Decode[inventory.Branch](resp)
	if err != nil {
		return inventory.Branch{}, err
	}

	s.refdata.Invalidate()
	return created, nil
}
