package sale

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inventra/frontend/internal/domain/catalog"
	domainsale "github.com/inventra/frontend/internal/domain/sale"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*apiclient.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	return client, srv
}

func testProduct(id, name string, price string) catalog.Product {
	return catalog.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         name,
		Unit:         "pcs",
		SellingPrice: decimal.RequireFromString(price),
		IsActive:     true,
	}
}

func checkoutBackend(t *testing.T, calls *atomic.Int64, capture *domainsale.CheckoutInput) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sales/checkout", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invoice":{"publicId":"inv-1","number":"INV-000123","branchId":"b1","grandTotal":"200","items":[]}}`))
	})
}

func TestCheckoutRejectsWithoutNetwork(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, checkoutBackend(t, &calls, nil))

	carts := NewCartStore()
	defer carts.Close()
	svc := NewCheckoutService(client, carts, nil, zap.NewNop())

	t.Run("empty cart", func(t *testing.T) {
		_, err := svc.Checkout(context.Background(), "tok", "sess-1", "b1")
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		assert.Zero(t, calls.Load())
	})

	t.Run("missing branch", func(t *testing.T) {
		carts.Add("sess-1", testProduct("p1", "Milk", "50"))
		_, err := svc.Checkout(context.Background(), "tok", "sess-1", "")
		assert.ErrorIs(t, err, shared.ErrBranchRequired)
		assert.Zero(t, calls.Load())
	})
}

func TestCheckoutPayloadKeepsSnapshottedPrice(t *testing.T) {
	var calls atomic.Int64
	var captured domainsale.CheckoutInput
	client, _ := newTestClient(t, checkoutBackend(t, &calls, &captured))

	carts := NewCartStore()
	defer carts.Close()
	svc := NewCheckoutService(client, carts, nil, zap.NewNop())

	p := testProduct("p1", "Milk", "100")
	carts.Add("sess-1", p)
	carts.Add("sess-1", p)

	// The catalog price changing after the add must not affect the payload.
	p.SellingPrice = decimal.RequireFromString("140")

	_, err := svc.Checkout(context.Background(), "tok", "sess-1", "b1")
	require.NoError(t, err)

	require.Len(t, captured.Items, 1)
	assert.Equal(t, "p1", captured.Items[0].ProductID)
	assert.Equal(t, 2, captured.Items[0].Qty)
	assert.True(t, captured.Items[0].UnitPrice.Equal(decimal.RequireFromString("100")),
		"unit price %s should be the price at add time", captured.Items[0].UnitPrice)
	assert.Equal(t, "b1", captured.BranchID)
}

func TestCheckoutSuccessClearsCartAndNote(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, checkoutBackend(t, &calls, nil))

	carts := NewCartStore()
	defer carts.Close()
	svc := NewCheckoutService(client, carts, nil, zap.NewNop())

	carts.Add("sess-1", testProduct("p1", "Milk", "100"))
	carts.SetNote("sess-1", "regular customer")

	invoice, err := svc.Checkout(context.Background(), "tok", "sess-1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "INV-000123", invoice.Number)

	snap := carts.Snapshot("sess-1")
	assert.Empty(t, snap.Lines)
	assert.Empty(t, snap.Note)
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Insufficient stock for Milk"}`))
	}))

	carts := NewCartStore()
	defer carts.Close()
	svc := NewCheckoutService(client, carts, nil, zap.NewNop())

	carts.Add("sess-1", testProduct("p1", "Milk", "100"))
	carts.Add("sess-1", testProduct("p2", "Bread", "40"))
	carts.SetNote("sess-1", "hold for pickup")
	before := carts.Snapshot("sess-1")

	_, err := svc.Checkout(context.Background(), "tok", "sess-1", "b1")
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Insufficient stock for Milk", apiErr.Message)

	after := carts.Snapshot("sess-1")
	assert.Equal(t, before.Lines, after.Lines)
	assert.Equal(t, before.Note, after.Note)
	assert.True(t, before.Total.Equal(after.Total))
}

func TestCheckoutSingleFlightPerSession(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invoice":{"publicId":"inv-1","number":"INV-000123","branchId":"b1","grandTotal":"100","items":[]}}`))
	}))

	carts := NewCartStore()
	defer carts.Close()
	svc := NewCheckoutService(client, carts, nil, zap.NewNop())
	carts.Add("sess-1", testProduct("p1", "Milk", "100"))

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), "tok", "sess-1", "b1")
		firstDone <- err
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first checkout never reached the backend")
	}

	_, err := svc.Checkout(context.Background(), "tok", "sess-1", "b1")
	assert.ErrorIs(t, err, shared.ErrCheckoutInFlight)

	close(release)
	require.NoError(t, <-firstDone)
}

func TestCartStoreIsolatesSessions(t *testing.T) {
	carts := NewCartStore()
	defer carts.Close()

	carts.Add("sess-a", testProduct("p1", "Milk", "50"))
	carts.Add("sess-b", testProduct("p2", "Bread", "40"))
	carts.SetNote("sess-a", "note a")

	a := carts.Snapshot("sess-a")
	b := carts.Snapshot("sess-b")

	require.Len(t, a.Lines, 1)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "p1", a.Lines[0].ProductID)
	assert.Equal(t, "p2", b.Lines[0].ProductID)
	assert.Equal(t, "note a", a.Note)
	assert.Empty(t, b.Note)

	carts.Clear("sess-a")
	assert.Empty(t, carts.Snapshot("sess-a").Lines)
	assert.Len(t, carts.Snapshot("sess-b").Lines, 1)
}

func TestCartStoreQuantityInput(t *testing.T) {
	carts := NewCartStore()
	defer carts.Close()

	carts.Add("sess-1", testProduct("p1", "Milk", "50"))
	carts.SetQuantityInput("sess-1", "p1", "3")
	snap := carts.Snapshot("sess-1")
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
	assert.True(t, snap.Total.Equal(decimal.RequireFromString("150")))

	carts.SetQuantityInput("sess-1", "p1", "abc")
	assert.Equal(t, 3, carts.Snapshot("sess-1").Lines[0].Quantity)

	carts.SetQuantityInput("sess-1", "p1", "0")
	assert.Empty(t, carts.Snapshot("sess-1").Lines)
}
