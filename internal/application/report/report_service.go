// Package report fetches manager reports from the Inventra backend. The
// routes that expose these are manager-only; the backend re-checks the role
// on every call.
package report

import (
	"context"
	"time"

	"github.com/inventra/frontend/internal/domain/report"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// DateRange bounds a report query. Dates are calendar days in the shop's
// timezone, formatted YYYY-MM-DD on the wire.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "From and to dates are required")
	}
	if r.To.Before(r.From) {
		return shared.NewDomainError("INVALID_INPUT", "End date must not be before start date")
	}
	return nil
}

func (r DateRange) query(extra map[string]string) map[string]string {
	q := map[string]string{
		"from": r.From.Format("2006-01-02"),
		"to":   r.To.Format("2006-01-02"),
	}
	for k, v := range extra {
		q[k] = v
	}
	return q
}

// Service fetches the manager reports.
type Service struct {
	api *apiclient.Client
}

// NewService creates a report service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// SalesSummary returns invoice count, items sold, and gross revenue for a
// date range, optionally scoped to one branch.
func (s *Service) SalesSummary(ctx context.Context, token string, r DateRange, branchID string) (report.SalesSummary, error) {
	if err := r.validate(); err != nil {
		return report.SalesSummary{}, err
	}
	resp, err := s.api.Get(ctx, token, "/reports/sales-summary", r.query(map[string]string{
		"branchId": branchID,
	}))
	if err != nil {
		return report.SalesSummary{}, err
	}
	return apiclient.Decode[report.SalesSummary](resp)
}

// TopProducts returns the best sellers by revenue for a date range.
func (s *Service) TopProducts(ctx context.Context, token string, r DateRange, branchID string) ([]report.TopProductRow, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	resp, err := s.api.Get(ctx, token, "/reports/top-products", r.query(map[string]string{
		"branchId": branchID,
	}))
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]report.TopProductRow](resp)
}

// TopSelling returns the best sellers by quantity for a date range.
func (s *Service) TopSelling(ctx context.Context, token string, r DateRange, branchID string) ([]report.TopProductRow, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	resp, err := s.api.Get(ctx, token, "/reports/top-selling", r.query(map[string]string{
		"branchId": branchID,
	}))
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]report.TopProductRow](resp)
}

// LowStock returns products at or below their low-stock threshold.
func (s *Service) LowStock(ctx context.Context, token, branchID string) ([]report.LowStockRow, error) {
	resp, err := s.api.Get(ctx, token, "/reports/low-stock", map[string]string{
		"branchId": branchID,
	})
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]report.LowStockRow](resp)
}

// StockValuation returns the cost value of stock on hand per product.
func (s *Service) StockValuation(ctx context.Context, token, branchID string) ([]report.ValuationRow, error) {
	resp, err := s.api.Get(ctx, token, "/reports/stock-valuation", map[string]string{
		"branchId": branchID,
	})
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]report.ValuationRow](resp)
}
