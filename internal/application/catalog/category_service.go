package catalog

import (
	"context"
	"strings"

	"github.com/inventra/frontend/internal/application/refdata"
	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// CategoryService handles category listing and creation.
type CategoryService struct {
	api     *apiclient.Client
	refdata *refdata.Provider
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(api *apiclient.Client, ref *refdata.Provider) *CategoryService {
	return &CategoryService{api: api, refdata: ref}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context, token string) ([]catalog.Category, error) {
	return s.refdata.Categories(ctx, token)
}

// Create forwards a new category to the backend.
func (s *CategoryService) Create(ctx context.Context, token, name string) (catalog.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Category{}, shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}

	resp, err := s.api.Post(ctx, token, "/categories", map[string]string{"name": name})
	if err != nil {
		return catalog.Category{}, err
	}
	category, err := apiclient.Decode[catalog.Category](resp)
	if err != nil {
		return catalog.Category{}, err
	}

	s.refdata.Invalidate()
	return category, nil
}
