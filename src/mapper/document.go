// Package mapper converts between the in-memory trading models and the JSON
// documents stored per account. The store has no native date type, so dates
// travel as ISO 8601 strings and are parsed back on load.
package mapper

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

type storedTrade struct {
	Date        string          `json:"date"` // RFC 3339
	Symbol      string          `json:"symbol"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Value       decimal.Decimal `json:"value"`
	Side        string          `json:"side"`
	OrderType   string          `json:"order_type"`
	Status      string          `json:"status"`
	NetPnL      decimal.Decimal `json:"net_pnl"`
	GrossPnL    decimal.Decimal `json:"gross_pnl"`
	Commission  decimal.Decimal `json:"commission"`
	ClearingFee decimal.Decimal `json:"clearing_fee"`
	ExchangeFee decimal.Decimal `json:"exchange_fee"`
	TotalFees   decimal.Decimal `json:"total_fees"`

	Position model.PositionSnapshot `json:"position"`
}

type storedDay struct {
	Date    string `json:"date"` // RFC 3339
	DateKey string `json:"date_key"`

	TotalPnL         decimal.Decimal `json:"total_pnl"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	TotalClearingFee decimal.Decimal `json:"total_clearing_fee"`
	TotalExchangeFee decimal.Decimal `json:"total_exchange_fee"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	TotalValue       decimal.Decimal `json:"total_value"`

	TradeCount       int `json:"trade_count"`
	TransactionCount int `json:"transaction_count"`

	WinCount     int  `json:"win_count"`
	LossCount    int  `json:"loss_count"`
	NeutralCount int  `json:"neutral_count"`
	IsWin        bool `json:"is_win"`
	IsLoss       bool `json:"is_loss"`
	IsNeutral    bool `json:"is_neutral"`

	CumulativePnL decimal.Decimal `json:"cumulative_pnl"`
	Performance   decimal.Decimal `json:"performance"`

	Journal string `json:"journal,omitempty"`
}

// parseStoredDate parses an ISO 8601 date written by Encode*. A record with a
// corrupt date is kept with the current time rather than dropped.
func parseStoredDate(raw string, now func() time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Local()
	}
	logger.WithField("value", raw).Warn("Unreadable stored date, substituting current time")
	return now()
}

// EncodeTrades serializes annotated trades into the JSON document stored on
// the account's trading data row.
func EncodeTrades(trades []model.Trade) (string, error) {
	stored := make([]storedTrade, 0, len(trades))
	for _, t := range trades {
		stored = append(stored, storedTrade{
			Date:        t.Date.Format(time.RFC3339),
			Symbol:      t.Symbol,
			Quantity:    t.Quantity,
			Price:       t.Price,
			Value:       t.Value,
			Side:        t.Side,
			OrderType:   t.OrderType,
			Status:      t.Status,
			NetPnL:      t.NetPnL,
			GrossPnL:    t.GrossPnL,
			Commission:  t.Commission,
			ClearingFee: t.ClearingFee,
			ExchangeFee: t.ExchangeFee,
			TotalFees:   t.TotalFees,
			Position:    t.PositionAfter,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeTrades is the inverse of EncodeTrades.
func DecodeTrades(document string, now func() time.Time) ([]model.Trade, error) {
	if document == "" {
		return nil, nil
	}

	var stored []storedTrade
	if err := json.Unmarshal([]byte(document), &stored); err != nil {
		return nil, err
	}

	trades := make([]model.Trade, 0, len(stored))
	for _, s := range stored {
		trades = append(trades, model.Trade{
			Date:          parseStoredDate(s.Date, now),
			Symbol:        s.Symbol,
			Quantity:      s.Quantity,
			Price:         s.Price,
			Value:         s.Value,
			Side:          s.Side,
			OrderType:     s.OrderType,
			Status:        s.Status,
			NetPnL:        s.NetPnL,
			GrossPnL:      s.GrossPnL,
			Commission:    s.Commission,
			ClearingFee:   s.ClearingFee,
			ExchangeFee:   s.ExchangeFee,
			TotalFees:     s.TotalFees,
			PositionAfter: s.Position,
		})
	}
	return trades, nil
}

// EncodeDailyData serializes the daily series for storage.
func EncodeDailyData(days []model.DailyPerformance) (string, error) {
	stored := make([]storedDay, 0, len(days))
	for _, d := range days {
		stored = append(stored, storedDay{
			Date:             d.Date.Format(time.RFC3339),
			DateKey:          d.DateKey,
			TotalPnL:         d.TotalPnL,
			TotalCommission:  d.TotalCommission,
			TotalClearingFee: d.TotalClearingFee,
			TotalExchangeFee: d.TotalExchangeFee,
			TotalFees:        d.TotalFees,
			TotalValue:       d.TotalValue,
			TradeCount:       d.TradeCount,
			TransactionCount: d.TransactionCount,
			WinCount:         d.WinCount,
			LossCount:        d.LossCount,
			NeutralCount:     d.NeutralCount,
			IsWin:            d.IsWin,
			IsLoss:           d.IsLoss,
			IsNeutral:        d.IsNeutral,
			CumulativePnL:    d.CumulativePnL,
			Performance:      d.Performance,
			Journal:          d.Journal,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeDailyData is the inverse of EncodeDailyData.
func DecodeDailyData(document string, now func() time.Time) ([]model.DailyPerformance, error) {
	if document == "" {
		return nil, nil
	}

	var stored []storedDay
	if err := json.Unmarshal([]byte(document), &stored); err != nil {
		return nil, err
	}

	days := make([]model.DailyPerformance, 0, len(stored))
	for _, s := range stored {
		days = append(days, model.DailyPerformance{
			Date:             parseStoredDate(s.Date, now),
			DateKey:          s.DateKey,
			TotalPnL:         s.TotalPnL,
			TotalCommission:  s.TotalCommission,
			TotalClearingFee: s.TotalClearingFee,
			TotalExchangeFee: s.TotalExchangeFee,
			TotalFees:        s.TotalFees,
			TotalValue:       s.TotalValue,
			TradeCount:       s.TradeCount,
			TransactionCount: s.TransactionCount,
			WinCount:         s.WinCount,
			LossCount:        s.LossCount,
			NeutralCount:     s.NeutralCount,
			IsWin:            s.IsWin,
			IsLoss:           s.IsLoss,
			IsNeutral:        s.IsNeutral,
			CumulativePnL:    s.CumulativePnL,
			Performance:      s.Performance,
			Journal:          s.Journal,
		})
	}
	return days, nil
}
