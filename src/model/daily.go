package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyPerformance aggregates all fills of one local calendar day. Exactly
// one record exists per DateKey. A day can also exist with zeroed aggregates
// when it only carries a journal entry.
type DailyPerformance struct {
	Date    time.Time `json:"date"`
	DateKey string    `json:"date_key"` // yyyy-mm-dd, local time

	TotalPnL         decimal.Decimal `json:"total_pnl"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	TotalClearingFee decimal.Decimal `json:"total_clearing_fee"`
	TotalExchangeFee decimal.Decimal `json:"total_exchange_fee"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	TotalValue       decimal.Decimal `json:"total_value"`

	// TradeCount counts completed round trips. TransactionCount counts raw
	// fills. They differ whenever a round trip takes more than one fill.
	TradeCount       int `json:"trade_count"`
	TransactionCount int `json:"transaction_count"`

	WinCount     int  `json:"win_count"`
	LossCount    int  `json:"loss_count"`
	NeutralCount int  `json:"neutral_count"`
	IsWin        bool `json:"is_win"`
	IsLoss       bool `json:"is_loss"`
	IsNeutral    bool `json:"is_neutral"`

	CumulativePnL decimal.Decimal `json:"cumulative_pnl"`
	Performance   decimal.Decimal `json:"performance"` // totalPnL / totalValue * 100

	Journal string `json:"journal,omitempty"`
}

// NewJournalOnlyDay builds a zeroed, neutral day record that exists solely to
// hold a journal entry for a day without any fills.
func NewJournalOnlyDay(date time.Time, dateKey, journal string) DailyPerformance {
	return DailyPerformance{
		Date:             date,
		DateKey:          dateKey,
		TotalPnL:         decimal.Zero,
		TotalCommission:  decimal.Zero,
		TotalClearingFee: decimal.Zero,
		TotalExchangeFee: decimal.Zero,
		TotalFees:        decimal.Zero,
		TotalValue:       decimal.Zero,
		IsNeutral:        true,
		CumulativePnL:    decimal.Zero,
		Performance:      decimal.Zero,
		Journal:          journal,
	}
}

// PerformanceStats is the summary shown on top of the dashboard.
type PerformanceStats struct {
	TotalTrades int               `json:"total_trades"`
	TotalPnL    decimal.Decimal   `json:"total_pnl"`
	WinRate     decimal.Decimal   `json:"win_rate"` // percent of winning days
	BestDay     *DailyPerformance `json:"best_day"`
	WorstDay    *DailyPerformance `json:"worst_day"`
	AvgDailyPnL decimal.Decimal   `json:"avg_daily_pnl"`
}
