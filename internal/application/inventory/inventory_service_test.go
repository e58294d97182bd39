package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	domaininv "github.com/inventra/frontend/internal/domain/inventory"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*Service, *atomic.Int64, *[]string) {
	t.Helper()
	var calls atomic.Int64
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/inventory":
			assert.Equal(t, "b1", r.URL.Query().Get("branchId"))
			_, _ = w.Write([]byte(`[{"productId":"p1","productName":"Milk","quantity":3,"lowStockAt":5}]`))
		case "/inventory/txns":
			_, _ = w.Write([]byte(`[{"id":"t1","type":"RECEIVE","quantity":10}]`))
		default:
			var input domaininv.MovementInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Positive(t, input.Quantity)
			_, _ = w.Write([]byte(`{"id":"t2","type":"ADJUST","quantity":4}`))
		}
	}))
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	return NewService(client), &calls, &paths
}

func TestLevelsRequiresBranch(t *testing.T) {
	svc, calls, _ := newService(t)

	_, err := svc.Levels(context.Background(), "tok", "", "")
	assert.ErrorIs(t, err, shared.ErrBranchRequired)
	assert.Zero(t, calls.Load())

	levels, err := svc.Levels(context.Background(), "tok", "b1", "")
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.True(t, levels[0].IsLow())
}

func TestMovementRouting(t *testing.T) {
	svc, _, paths := newService(t)

	input := domaininv.MovementInput{BranchID: "b1", ProductID: "p1", Quantity: 4}
	for kind, want := range map[string]string{
		domaininv.TxnReceive: "/inventory/receive",
		domaininv.TxnAdjust:  "/inventory/adjust",
		domaininv.TxnSale:    "/inventory/sale",
		domaininv.TxnDamage:  "/inventory/damage",
	} {
		*paths = (*paths)[:0]
		_, err := svc.Movement(context.Background(), "tok", kind, input)
		require.NoError(t, err)
		require.Len(t, *paths, 1)
		assert.Equal(t, want, (*paths)[0])
	}
}

func TestMovementValidation(t *testing.T) {
	svc, calls, _ := newService(t)

	cases := []struct {
		name  string
		kind  string
		input domaininv.MovementInput
	}{
		{"unknown kind", "TRANSFER", domaininv.MovementInput{BranchID: "b1", ProductID: "p1", Quantity: 1}},
		{"missing branch", domaininv.TxnReceive, domaininv.MovementInput{ProductID: "p1", Quantity: 1}},
		{"missing product", domaininv.TxnReceive, domaininv.MovementInput{BranchID: "b1", Quantity: 1}},
		{"zero quantity", domaininv.TxnReceive, domaininv.MovementInput{BranchID: "b1", ProductID: "p1"}},
		{"negative quantity", domaininv.TxnReceive, domaininv.MovementInput{BranchID: "b1", ProductID: "p1", Quantity: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Movement(context.Background(), "tok", tc.kind, tc.input)
			require.Error(t, err)
		})
	}
	assert.Zero(t, calls.Load())
}
