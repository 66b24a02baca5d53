package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// RawFill is one execution row exactly as it came out of the broker export,
// all fields still strings. It only lives between the parser and the
// normalization step of the P&L pipeline.
type RawFill struct {
	Date      string `json:"date"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	Status    string `json:"status"`
	OrderType string `json:"order_type"`
}

// Trade is the canonical, normalized fill. Identity fields are set once by
// normalization; the P&L fields are filled in by the position tracker and
// never touched again.
type Trade struct {
	Date     time.Time       `json:"date"`
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"` // signed. positive = buy
	Price    decimal.Decimal `json:"price"`
	Side     string          `json:"side"` // BUY or SELL
	Value    decimal.Decimal `json:"value"`

	OrderType string `json:"order_type,omitempty"`
	Status    string `json:"status,omitempty"`

	NetPnL        decimal.Decimal  `json:"net_pnl"`
	GrossPnL      decimal.Decimal  `json:"gross_pnl"`
	Commission    decimal.Decimal  `json:"commission"`
	ClearingFee   decimal.Decimal  `json:"clearing_fee"`
	ExchangeFee   decimal.Decimal  `json:"exchange_fee"`
	TotalFees     decimal.Decimal  `json:"total_fees"`
	PositionAfter PositionSnapshot `json:"position_after"`
}

// AbsQuantity returns the unsigned fill size.
func (t Trade) AbsQuantity() int64 {
	if t.Quantity < 0 {
		return -t.Quantity
	}
	return t.Quantity
}

// PositionSnapshot is the state of the symbol's position immediately after a
// trade was applied.
type PositionSnapshot struct {
	Quantity         int64           `json:"quantity"`
	AveragePrice     decimal.Decimal `json:"average_price"`
	RealizedPnL      decimal.Decimal `json:"realized_pnl"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	TotalClearingFee decimal.Decimal `json:"total_clearing_fee"`
	TotalExchangeFee decimal.Decimal `json:"total_exchange_fee"`
	TotalFees        decimal.Decimal `json:"total_fees"`
}
