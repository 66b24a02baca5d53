package pnl

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/utils"
)

// SpecResolver is the contract-spec collaborator the pipeline needs. It must
// never fail; unresolvable symbols come back as the default spec.
type SpecResolver interface {
	Resolve(ctx context.Context, symbol string) model.ContractSpec
}

// Normalize converts raw fills into canonical trades. Per-record problems
// (bad quantity, bad price, bad date) degrade to safe defaults instead of
// failing the batch. now is injected so tests can pin the date fallback.
func Normalize(fills []model.RawFill, now func() time.Time) []model.Trade {
	if now == nil {
		now = time.Now
	}

	trades := make([]model.Trade, 0, len(fills))
	for _, fill := range fills {
		qty := parseQuantity(fill.Quantity)
		price := parsePrice(fill.Price)
		isBuy := strings.EqualFold(strings.TrimSpace(fill.Side), "buy")

		side := model.SideSell
		signedQty := -qty
		if isBuy {
			side = model.SideBuy
			signedQty = qty
		}

		symbol := strings.TrimSpace(fill.Symbol)
		if symbol == "" {
			symbol = "Unknown"
		}

		orderType := strings.TrimSpace(fill.OrderType)
		if orderType == "" {
			orderType = "Unknown"
		}

		trades = append(trades, model.Trade{
			Date:      utils.ParseTradeDate(fill.Date, now),
			Symbol:    symbol,
			Quantity:  signedQty,
			Price:     price,
			Side:      side,
			Value:     price.Mul(decimal.NewFromInt(qty)),
			OrderType: orderType,
			Status:    fill.Status,
			NetPnL:    decimal.Zero,
			GrossPnL:  decimal.Zero,
		})
	}
	return trades
}

// Annotate sorts trades chronologically, resolves every distinct symbol's
// contract spec up front, and runs each trade through the position tracker.
// The input slice is not modified; the returned slice carries the P&L fields.
func Annotate(ctx context.Context, trades []model.Trade, specs SpecResolver) []model.Trade {
	annotated := make([]model.Trade, len(trades))
	copy(annotated, trades)

	// Ascending order is mandatory: the tracker's average-cost state depends
	// on it. Stable sort keeps same-timestamp fills in file order.
	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].Date.Before(annotated[j].Date)
	})

	resolved := make(map[string]model.ContractSpec)
	for _, t := range annotated {
		if _, ok := resolved[t.Symbol]; !ok {
			resolved[t.Symbol] = specs.Resolve(ctx, t.Symbol)
		}
	}

	tracker := NewTracker()
	for i := range annotated {
		tracker.Apply(&annotated[i], resolved[annotated[i].Symbol])
	}

	logger.WithField("trades", len(annotated)).Debug("P&L annotation complete")
	return annotated
}

// Process is the full fills-to-annotated-trades pipeline.
func Process(ctx context.Context, fills []model.RawFill, specs SpecResolver, now func() time.Time) []model.Trade {
	return Annotate(ctx, Normalize(fills, now), specs)
}

func parseQuantity(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.WithField("quantity", raw).Warn("Unparseable fill quantity, defaulting to 0")
		return 0
	}
	return int64(f)
}

func parsePrice(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.WithField("price", raw).Warn("Unparseable fill price, defaulting to 0")
		return decimal.Zero
	}
	return d
}
