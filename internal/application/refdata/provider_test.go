package refdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProvider(t *testing.T, ttl time.Duration) (*Provider, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1","sku":"A-1","name":"Milk","unit":"pcs","sellingPrice":"50","isActive":true}]`))
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Dairy"}]`))
	})
	mux.HandleFunc("GET /branches", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"b1","name":"Main"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	return NewProvider(client, ttl), &calls
}

func TestProviderCachesWithinTTL(t *testing.T) {
	p, calls := newProvider(t, time.Hour)

	for i := 0; i < 3; i++ {
		products, err := p.Products(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Milk", products[0].Name)
	}
	assert.EqualValues(t, 1, calls.Load())

	_, err := p.Categories(context.Background(), "tok")
	require.NoError(t, err)
	_, err = p.Branches(context.Background(), "tok")
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestProviderInvalidateForcesRefetch(t *testing.T) {
	p, calls := newProvider(t, time.Hour)

	_, err := p.Products(context.Background(), "tok")
	require.NoError(t, err)
	p.Invalidate()
	_, err = p.Products(context.Background(), "tok")
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load())
}

func TestProviderReturnsCopies(t *testing.T) {
	p, _ := newProvider(t, time.Hour)

	first, err := p.Products(context.Background(), "tok")
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := p.Products(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Milk", second[0].Name)
}

func TestProductByID(t *testing.T) {
	p, _ := newProvider(t, time.Hour)

	product, err := p.ProductByID(context.Background(), "tok", "p1")
	require.NoError(t, err)
	assert.Equal(t, "A-1", product.SKU)

	_, err = p.ProductByID(context.Background(), "tok", "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
