package sale

import (
	"context"
	"strconv"
	"strings"

	"github.com/inventra/frontend/internal/domain/sale"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
)

// InvoiceService reads finalized invoices for history and reprint.
type InvoiceService struct {
	api *apiclient.Client
}

// NewInvoiceService creates an InvoiceService.
func NewInvoiceService(api *apiclient.Client) *InvoiceService {
	return &InvoiceService{api: api}
}

// List returns recent invoices, optionally scoped to a branch and filtered
// by invoice number or cashier name. Take caps the result size; zero means
// the backend default.
func (s *InvoiceService) List(ctx context.Context, token, branchID, search string, take int) ([]sale.Invoice, error) {
	query := map[string]string{
		"branchId": branchID,
		"search":   strings.TrimSpace(search),
	}
	if take > 0 {
		query["take"] = strconv.Itoa(take)
	}
	resp, err := s.api.Get(ctx, token, "/invoices", query)
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]sale.Invoice](resp)
}

// Get returns one invoice by its public id, lines included.
func (s *InvoiceService) Get(ctx context.Context, token, publicID string) (sale.Invoice, error) {
	if publicID == "" {
		return sale.Invoice{}, shared.ErrInvalidInput
	}
	resp, err := s.api.Get(ctx, token, "/invoices/"+publicID, nil)
	if err != nil {
		return sale.Invoice{}, err
	}
	return apiclient.Decode[sale.Invoice](resp)
}
