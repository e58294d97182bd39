package sale

import (
	"context"
	"strings"
	"sync"

	"github.com/inventra/frontend/internal/domain/sale"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/inventra/frontend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CheckoutService turns a session's cart into a backend invoice with a
// single atomic call. The backend validates stock, decrements it, and
// creates the invoice in one transaction; there is no separate stock
// reservation step here.
type CheckoutService struct {
	api     *apiclient.Client
	carts   *CartStore
	metrics *telemetry.FrontendMetrics
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(api *apiclient.Client, carts *CartStore, metrics *telemetry.FrontendMetrics, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		api:      api,
		carts:    carts,
		metrics:  metrics,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

type checkoutResponse struct {
	Invoice sale.Invoice `json:"invoice"`
}

// Checkout validates the cart and branch, submits the sale, and on success
// clears the session's cart and note. On any failure the cart is left
// exactly as it was. At most one checkout per session runs at a time.
func (s *CheckoutService) Checkout(ctx context.Context, token, sessionID, branchID string) (sale.Invoice, error) {
	if err := s.begin(sessionID); err != nil {
		return sale.Invoice{}, err
	}
	defer s.end(sessionID)

	snap := s.carts.Snapshot(sessionID)
	if len(snap.Lines) == 0 {
		s.record(ctx, "rejected", 0)
		return sale.Invoice{}, shared.ErrEmptyCart
	}
	if branchID == "" {
		s.record(ctx, "rejected", len(snap.Lines))
		return sale.Invoice{}, shared.ErrBranchRequired
	}

	input := sale.CheckoutInput{
		BranchID: branchID,
		Note:     strings.TrimSpace(snap.Note),
		Items:    make([]sale.CheckoutItem, 0, len(snap.Lines)),
	}
	for _, line := range snap.Lines {
		input.Items = append(input.Items, sale.CheckoutItem{
			ProductID: line.ProductID,
			Qty:       line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	resp, err := s.api.Post(ctx, token, "/sales/checkout", input)
	if err != nil {
		s.record(ctx, "failed", len(snap.Lines))
		s.logger.Warn("checkout rejected by backend",
			zap.String("branch_id", branchID),
			zap.Int("lines", len(snap.Lines)),
			zap.Error(err))
		return sale.Invoice{}, err
	}

	decoded, err := apiclient.Decode[checkoutResponse](resp)
	if err != nil {
		s.record(ctx, "failed", len(snap.Lines))
		return sale.Invoice{}, err
	}

	s.carts.Clear(sessionID)
	s.record(ctx, "success", len(snap.Lines))
	s.logger.Info("checkout completed",
		zap.String("invoice_number", decoded.Invoice.Number),
		zap.String("branch_id", branchID),
		zap.Int("lines", len(snap.Lines)))
	return decoded.Invoice, nil
}

func (s *CheckoutService) begin(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return shared.ErrCheckoutInFlight
	}
	s.inFlight[sessionID] = true
	return nil
}

func (s *CheckoutService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

func (s *CheckoutService) record(ctx context.Context, result string, lines int) {
	if s.metrics != nil {
		s.metrics.RecordCheckout(ctx, result, lines)
	}
}
