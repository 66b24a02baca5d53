package performance

import (
	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// Stats summarizes a daily series into headline numbers for the stats panel.
// Days without trades (journal-only records) are excluded from win rate,
// best/worst day, and the daily average.
func Stats(days []model.DailyPerformance) model.PerformanceStats {
	stats := model.PerformanceStats{
		TotalPnL:    decimal.Zero,
		WinRate:     decimal.Zero,
		AvgDailyPnL: decimal.Zero,
	}

	tradingDays := 0
	winDays := 0

	for i := range days {
		day := &days[i]
		if day.TransactionCount == 0 {
			continue
		}

		tradingDays++
		stats.TotalTrades += day.TradeCount
		stats.TotalPnL = stats.TotalPnL.Add(day.TotalPnL)

		if day.IsWin {
			winDays++
		}
		if stats.BestDay == nil || day.TotalPnL.GreaterThan(stats.BestDay.TotalPnL) {
			stats.BestDay = day
		}
		if stats.WorstDay == nil || day.TotalPnL.LessThan(stats.WorstDay.TotalPnL) {
			stats.WorstDay = day
		}
	}

	if tradingDays > 0 {
		daysDec := decimal.NewFromInt(int64(tradingDays))
		stats.WinRate = decimal.NewFromInt(int64(winDays)).Div(daysDec).Mul(hundred)
		stats.AvgDailyPnL = stats.TotalPnL.Div(daysDec)
	}

	return stats
}
