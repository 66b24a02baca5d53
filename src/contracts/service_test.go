package contracts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradejournal/src/model"
)

func TestResolveExactMatch(t *testing.T) {
	svc := NewService(nil)

	got := svc.Resolve(context.Background(), "NQ")

	require.Equal(t, "E-mini NASDAQ-100", got.Name)
	require.True(t, got.TickSize.Equal(decimal.RequireFromString("0.25")))
	require.True(t, got.TickValue.Equal(decimal.NewFromInt(5)))
}

func TestResolveStripsMonthCode(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		symbol   string
		wantName string
	}{
		{"NQU5", "E-mini NASDAQ-100"},
		{"MNQH25", "Micro E-mini NASDAQ-100"},
		{"ESZ26", "E-mini S&P 500"},
		{"6EM25", "Euro FX"},
	}
	for _, tt := range tests {
		got := svc.Resolve(context.Background(), tt.symbol)
		require.Equal(t, tt.wantName, got.Name, "symbol %s", tt.symbol)
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	svc := NewService(nil)

	got := svc.Resolve(context.Background(), "XXAB99")

	require.Equal(t, "Unknown Contract", got.Name)
	require.True(t, got.TickSize.Equal(decimal.RequireFromString("0.01")))
	require.True(t, got.TickValue.Equal(decimal.NewFromInt(1)))
}

func TestResolveCachesRemoteLookups(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"FOO","tickSize":0.5,"tickValue":2.5,"name":"Foo Future","exchange":"TEST"}`))
	}))
	defer server.Close()

	remote := NewRemoteClient(Config{ReferenceAPIURL: server.URL, ReferenceAPIKey: "demo"})
	svc := NewService(remote)

	first := svc.Resolve(context.Background(), "FOO")
	second := svc.Resolve(context.Background(), "FOO")

	require.Equal(t, int32(1), calls.Load(), "remote lookup must be memoized")
	require.Equal(t, "Foo Future", first.Name)
	require.True(t, first.TickSize.Equal(second.TickSize))
}

func TestResolveSwallowsRemoteFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	remote := NewRemoteClient(Config{ReferenceAPIURL: server.URL})
	svc := NewService(remote)

	got := svc.Resolve(context.Background(), "FOO")

	require.Equal(t, "Unknown Contract", got.Name)
}

func TestCommissionTiers(t *testing.T) {
	micro := model.ContractSpec{ContractType: model.ContractTypeMicro}
	mini := model.ContractSpec{ContractType: model.ContractTypeMini}

	require.True(t, CommissionPerSide(micro).Equal(decimal.RequireFromString("0.35")))
	require.True(t, CommissionPerSide(mini).Equal(decimal.RequireFromString("1.29")))
	require.True(t, CommissionPerSide(model.ContractSpec{}).Equal(decimal.RequireFromString("1.29")))
}

func TestExchangeFeeDefaultsWhenUndeclared(t *testing.T) {
	declared := model.ContractSpec{ExchangeFee: decimal.RequireFromString("0.35")}
	undeclared := model.ContractSpec{}

	require.True(t, ExchangeFeePerSide(declared).Equal(decimal.RequireFromString("0.35")))
	require.True(t, ExchangeFeePerSide(undeclared).Equal(decimal.RequireFromString("1.38")))
}

func TestPriceDifferenceToDollars(t *testing.T) {
	nq := specsTable["NQ"] // 0.25 tick, $5 per tick

	got := PriceDifferenceToDollars(decimal.NewFromInt(10), nq)
	require.True(t, got.Equal(decimal.NewFromInt(200)), "10 points on NQ is $200, got %s", got)
}

func TestPriceDifferenceToDollarsIsLinear(t *testing.T) {
	spec := specsTable["ES"]
	d := decimal.RequireFromString("1.75")
	k := decimal.NewFromInt(7)

	scaledFirst := PriceDifferenceToDollars(d.Mul(k), spec)
	convertedFirst := PriceDifferenceToDollars(d, spec).Mul(k)

	require.True(t, scaledFirst.Equal(convertedFirst), "got %s vs %s", scaledFirst, convertedFirst)
}
