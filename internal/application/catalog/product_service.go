// Package catalog forwards product and category management to the Inventra
// backend and keeps the reference-data cache coherent.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/inventra/frontend/internal/application/refdata"
	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// ProductService handles product listing, creation, and deactivation.
type ProductService struct {
	api     *apiclient.Client
	refdata *refdata.Provider
}

// NewProductService creates a ProductService.
func NewProductService(api *apiclient.Client, ref *refdata.Provider) *ProductService {
	return &ProductService{api: api, refdata: ref}
}

// List returns products, filtered by a case-insensitive search over name
// and SKU and sorted by name. Lists are small; filtering happens here
// rather than in the backend.
func (s *ProductService) List(ctx context.Context, token, search string) ([]catalog.Product, error) {
	products, err := s.refdata.Products(ctx, token)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), search) ||
				strings.Contains(strings.ToLower(p.SKU), search) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return products, nil
}

// Create forwards a new product to the backend.
func (s *ProductService) Create(ctx context.Context, token string, input catalog.NewProductInput) (catalog.Product, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	if input.SKU == "" || input.Name == "" {
		return catalog.Product{}, shared.NewDomainError("INVALID_INPUT", "SKU and name are required")
	}
	if input.SellingPrice.IsNegative() || input.CostPrice.IsNegative() {
		return catalog.Product{}, shared.NewDomainError("INVALID_INPUT", "Prices cannot be negative")
	}

	resp, err := s.api.Post(ctx, token, "/products", input)
	if err != nil {
		return catalog.Product{}, err
	}
	product, err := apiclient.Decode[catalog.Product](resp)
	if err != nil {
		return catalog.Product{}, err
	}

	s.refdata.Invalidate()
	return product, nil
}

// Deactivate soft-deactivates a product. The backend keeps the record for
// invoice history; it just stops being sellable.
func (s *ProductService) Deactivate(ctx context.Context, token, id string) error {
	if id == "" {
		return shared.ErrInvalidInput
	}
	if _, err := s.api.Delete(ctx, token, "/products/"+id); err != nil {
		return err
	}
	s.refdata.Invalidate()
	return nil
}
