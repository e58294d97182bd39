// Package refdata is the shared fetch-and-cache provider for reference
// lists (products, categories, branches). Pages read through it instead of
// re-fetching on every render; any mutation invalidates the cache so the
// next read observes backend state.
package refdata

import (
	"context"
	"sync"
	"time"

	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/inventra/frontend/internal/domain/inventory"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// DefaultTTL bounds staleness when no mutation happens through this
// process (e.g., another cashier's instance created a product).
const DefaultTTL = 30 * time.Second

// Provider caches reference lists. Reference data is tenant-wide, so the
// cache is shared across sessions; whichever caller triggers a refill
// supplies the token for the fetch.
type Provider struct {
	api *apiclient.Client
	ttl time.Duration

	mu           sync.Mutex
	products     []catalog.Product
	productsAt   time.Time
	categories   []catalog.Category
	categoriesAt time.Time
	branches     []inventory.Branch
	branchesAt   time.Time
}

// NewProvider creates a provider with the given staleness bound.
func NewProvider(api *apiclient.Client, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{api: api, ttl: ttl}
}

// Products returns the cached product list, refreshing it when stale.
func (p *Provider) Products(ctx context.Context, token string) ([]catalog.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.productsAt) < p.ttl && p.products != nil {
		return cloneSlice(p.products), nil
	}

	resp, err := p.api.Get(ctx, token, "/products", nil)
	if err != nil {
		return nil, err
	}
	products, err := apiclient.Decode[[]catalog.Product](resp)
	if err != nil {
		return nil, err
	}
	p.products = products
	p.productsAt = time.Now()
	return cloneSlice(products), nil
}

// ProductByID resolves one product from the cached list.
func (p *Provider) ProductByID(ctx context.Context, token, id string) (catalog.Product, error) {
	products, err := p.Products(ctx, token)
	if err != nil {
		return catalog.Product{}, err
	}
	for _, prod := range products {
		if prod.ID == id {
			return prod, nil
		}
	}
	return catalog.Product{}, shared.ErrNotFound
}

// Categories returns the cached category list, refreshing it when stale.
func (p *Provider) Categories(ctx context.Context, token string) ([]catalog.Category, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.categoriesAt) < p.ttl && p.categories != nil {
		return cloneSlice(p.categories), nil
	}

	resp, err := p.api.Get(ctx, token, "/categories", nil)
	if err != nil {
		return nil, err
	}
	categories, err := apiclient.Decode[[]catalog.Category](resp)
	if err != nil {
		return nil, err
	}
	p.categories = categories
	p.categoriesAt = time.Now()
	return cloneSlice(categories), nil
}

// Branches returns the cached branch list, refreshing it when stale.
func (p *Provider) Branches(ctx context.Context, token string) ([]inventory.Branch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.branchesAt) < p.ttl && p.branches != nil {
		return cloneSlice(p.branches), nil
	}

	resp, err := p.api.Get(ctx, token, "/branches", nil)
	if err != nil {
		return nil, err
	}
	branches, err := apiclient.Decode[[]inventory.Branch](resp)
	if err != nil {
		return nil, err
	}
	p.branches = branches
	p.branchesAt = time.Now()
	return cloneSlice(branches), nil
}

// Invalidate drops every cached list. Called after any catalog or branch
// mutation and on sign-out.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.products = nil
	p.productsAt = time.Time{}
	p.categories = nil
	p.categoriesAt = time.Time{}
	p.branches = nil
	p.branchesAt = time.Time{}
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
