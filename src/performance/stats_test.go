package performance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradejournal/src/model"
)

func statDay(dateKey string, pnl float64, trips, transactions int, win bool) model.DailyPerformance {
	date, _ := time.ParseInLocation("2006-01-02", dateKey, time.Local)
	return model.DailyPerformance{
		Date:             date,
		DateKey:          dateKey,
		TotalPnL:         decimal.NewFromFloat(pnl),
		TradeCount:       trips,
		TransactionCount: transactions,
		IsWin:            win,
		IsLoss:           !win && pnl < 0,
		IsNeutral:        pnl == 0,
	}
}

func TestStats(t *testing.T) {
	days := []model.DailyPerformance{
		statDay("2024-03-04", 250, 3, 6, true),
		statDay("2024-03-05", -100, 2, 4, false),
		statDay("2024-03-06", 150, 1, 2, true),
	}

	stats := Stats(days)

	require.Equal(t, 6, stats.TotalTrades)
	require.True(t, decimal.NewFromInt(300).Equal(stats.TotalPnL))
	require.True(t, decimal.NewFromInt(100).Equal(stats.AvgDailyPnL))

	// 2 winning days of 3.
	expectedWinRate := decimal.NewFromInt(2).Div(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(100))
	require.True(t, expectedWinRate.Equal(stats.WinRate))

	require.NotNil(t, stats.BestDay)
	require.Equal(t, "2024-03-04", stats.BestDay.DateKey)
	require.NotNil(t, stats.WorstDay)
	require.Equal(t, "2024-03-05", stats.WorstDay.DateKey)
}

func TestStatsIgnoresJournalOnlyDays(t *testing.T) {
	days := []model.DailyPerformance{
		statDay("2024-03-04", 100, 1, 2, true),
		model.NewJournalOnlyDay(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), "2024-03-05", "no trades"),
	}

	stats := Stats(days)

	require.Equal(t, 1, stats.TotalTrades)
	require.True(t, decimal.NewFromInt(100).Equal(stats.TotalPnL))
	// One trading day, one win.
	require.True(t, decimal.NewFromInt(100).Equal(stats.WinRate))
	require.True(t, decimal.NewFromInt(100).Equal(stats.AvgDailyPnL))
	require.Equal(t, "2024-03-04", stats.BestDay.DateKey)
	require.Equal(t, "2024-03-04", stats.WorstDay.DateKey)
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats(nil)

	require.Equal(t, 0, stats.TotalTrades)
	require.True(t, stats.TotalPnL.IsZero())
	require.True(t, stats.WinRate.IsZero())
	require.True(t, stats.AvgDailyPnL.IsZero())
	require.Nil(t, stats.BestDay)
	require.Nil(t, stats.WorstDay)
}
