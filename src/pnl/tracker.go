// Package pnl derives realized profit and loss from a chronological stream
// of fills using average-cost position accounting, one state machine per
// instrument.
package pnl

import (
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/contracts"
	"tradejournal/src/model"
)

// PositionState is the running average-cost position for one symbol. It only
// lives for the duration of one computation pass; recalculations always
// replay the full trade history instead of resuming old state, because the
// average cost basis depends on everything that came before.
type PositionState struct {
	Quantity     int64 // signed. positive = long, negative = short
	TotalCost    decimal.Decimal
	AveragePrice decimal.Decimal
	RealizedPnL  decimal.Decimal

	TotalCommission  decimal.Decimal
	TotalClearingFee decimal.Decimal
	TotalExchangeFee decimal.Decimal
	TotalFees        decimal.Decimal

	Spec model.ContractSpec
}

func newPositionState(spec model.ContractSpec) *PositionState {
	return &PositionState{
		TotalCost:        decimal.Zero,
		AveragePrice:     decimal.Zero,
		RealizedPnL:      decimal.Zero,
		TotalCommission:  decimal.Zero,
		TotalClearingFee: decimal.Zero,
		TotalExchangeFee: decimal.Zero,
		TotalFees:        decimal.Zero,
		Spec:             spec,
	}
}

func (p *PositionState) snapshot() model.PositionSnapshot {
	return model.PositionSnapshot{
		Quantity:         p.Quantity,
		AveragePrice:     p.AveragePrice,
		RealizedPnL:      p.RealizedPnL,
		TotalCommission:  p.TotalCommission,
		TotalClearingFee: p.TotalClearingFee,
		TotalExchangeFee: p.TotalExchangeFee,
		TotalFees:        p.TotalFees,
	}
}

// Tracker applies fills to per-symbol position states. Fills must arrive in
// ascending chronological order; feeding them out of order silently changes
// every subsequent average cost and realized P&L.
type Tracker struct {
	positions map[string]*PositionState
}

func NewTracker() *Tracker {
	return &Tracker{positions: make(map[string]*PositionState)}
}

// Position returns the current state for a symbol, or nil if the symbol has
// not traded yet.
func (t *Tracker) Position(symbol string) *PositionState {
	return t.positions[symbol]
}

// Apply runs one fill through the state machine and writes the resulting
// fee, P&L, and position snapshot fields onto the trade.
func (t *Tracker) Apply(trade *model.Trade, spec model.ContractSpec) {
	qty := trade.AbsQuantity()
	qtyDec := decimal.NewFromInt(qty)
	price := trade.Price
	isBuy := trade.Side == model.SideBuy

	commission := contracts.CommissionPerSide(spec).Mul(qtyDec)
	clearingFee := decimal.Zero // excluded from net P&L, kept for schema completeness
	exchangeFee := contracts.ExchangeFeePerSide(spec).Mul(qtyDec)
	totalFees := commission.Add(exchangeFee)

	state, ok := t.positions[trade.Symbol]
	if !ok {
		state = newPositionState(spec)
		t.positions[trade.Symbol] = state
	}

	var gross decimal.Decimal
	if isBuy {
		gross = state.applyBuy(qty, price)
	} else {
		gross = state.applySell(qty, price)
	}

	state.TotalCommission = state.TotalCommission.Add(commission)
	state.TotalClearingFee = state.TotalClearingFee.Add(clearingFee)
	state.TotalExchangeFee = state.TotalExchangeFee.Add(exchangeFee)
	state.TotalFees = state.TotalFees.Add(totalFees)

	net := gross.Sub(totalFees)

	trade.GrossPnL = gross
	trade.Commission = commission
	trade.ClearingFee = clearingFee
	trade.ExchangeFee = exchangeFee
	trade.TotalFees = totalFees
	trade.NetPnL = net
	trade.PositionAfter = state.snapshot()

	logger.WithFields(map[string]interface{}{
		"symbol":    trade.Symbol,
		"side":      trade.Side,
		"qty":       qty,
		"price":     price.String(),
		"gross_pnl": gross.String(),
		"fees":      totalFees.String(),
		"net_pnl":   net.String(),
		"position":  state.Quantity,
	}).Debug("Applied fill")
}

// applyBuy adds to a long position or covers a short. Returns the realized
// gross P&L, which is zero unless short contracts are covered.
func (p *PositionState) applyBuy(qty int64, price decimal.Decimal) decimal.Decimal {
	if p.Quantity >= 0 {
		// Opening or extending a long: re-average the cost basis.
		p.TotalCost = p.TotalCost.Add(price.Mul(decimal.NewFromInt(qty)))
		p.Quantity += qty
		p.AveragePrice = p.TotalCost.Div(decimal.NewFromInt(p.Quantity))
		return decimal.Zero
	}

	shortQty := -p.Quantity
	coverQty := min64(qty, shortQty)

	// Short cover realizes (entry average - cover price) per contract.
	diff := p.AveragePrice.Sub(price)
	gross := contracts.PriceDifferenceToDollars(diff, p.Spec).
		Mul(decimal.NewFromInt(coverQty))
	p.RealizedPnL = p.RealizedPnL.Add(gross)

	p.Quantity += coverQty
	p.TotalCost = p.TotalCost.Add(p.AveragePrice.Mul(decimal.NewFromInt(coverQty)))

	if qty > shortQty {
		// Reversal: everything beyond the cover opens a fresh long at the
		// fill price.
		excess := qty - shortQty
		p.Quantity = excess
		p.TotalCost = price.Mul(decimal.NewFromInt(excess))
		p.AveragePrice = price
	} else if p.Quantity == 0 {
		p.AveragePrice = decimal.Zero
		p.TotalCost = decimal.Zero
	}

	return gross
}

// applySell reduces a long position, extends a short, or opens one.
func (p *PositionState) applySell(qty int64, price decimal.Decimal) decimal.Decimal {
	switch {
	case p.Quantity > 0:
		sellQty := min64(qty, p.Quantity)

		diff := price.Sub(p.AveragePrice)
		gross := contracts.PriceDifferenceToDollars(diff, p.Spec).
			Mul(decimal.NewFromInt(sellQty))
		p.RealizedPnL = p.RealizedPnL.Add(gross)

		p.Quantity -= sellQty
		p.TotalCost = p.TotalCost.Sub(p.AveragePrice.Mul(decimal.NewFromInt(sellQty)))

		if qty > sellQty {
			excess := qty - sellQty
			p.Quantity = -excess
			p.TotalCost = price.Mul(decimal.NewFromInt(excess)).Neg()
			p.AveragePrice = price
		} else if p.Quantity == 0 {
			p.AveragePrice = decimal.Zero
			p.TotalCost = decimal.Zero
		}

		return gross

	case p.Quantity < 0:
		// Extending a short: re-average. TotalCost and Quantity are both
		// negative, so the division yields a positive average price.
		p.TotalCost = p.TotalCost.Sub(price.Mul(decimal.NewFromInt(qty)))
		p.Quantity -= qty
		p.AveragePrice = p.TotalCost.Div(decimal.NewFromInt(p.Quantity))
		return decimal.Zero

	default:
		// Flat: open a new short.
		p.Quantity = -qty
		p.TotalCost = price.Mul(decimal.NewFromInt(qty)).Neg()
		p.AveragePrice = price
		return decimal.Zero
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
