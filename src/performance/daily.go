// Package performance aggregates annotated trades into per-day metrics and
// cumulative series for the calendar view.
package performance

import (
	"sort"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/utils"
)

var hundred = decimal.NewFromInt(100)

// Aggregate groups annotated trades by local calendar day and computes each
// day's totals, win/loss classification, round-trip trade count, cumulative
// P&L, and performance percentage. The result is sorted ascending by date,
// one record per date key.
func Aggregate(trades []model.Trade) []model.DailyPerformance {
	byDay := make(map[string][]model.Trade)
	for _, trade := range trades {
		key := utils.DateKey(trade.Date)
		byDay[key] = append(byDay[key], trade)
	}

	days := make([]model.DailyPerformance, 0, len(byDay))
	for key, dayTrades := range byDay {
		days = append(days, aggregateDay(key, dayTrades))
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	// Walk ascending, accumulating P&L across days.
	cumulative := decimal.Zero
	for i := range days {
		cumulative = cumulative.Add(days[i].TotalPnL)
		days[i].CumulativePnL = cumulative
	}

	logger.WithFields(map[string]interface{}{
		"trades": len(trades),
		"days":   len(days),
	}).Debug("Daily aggregation complete")

	return days
}

func aggregateDay(key string, dayTrades []model.Trade) model.DailyPerformance {
	date := utils.StartOfDay(dayTrades[0].Date)

	day := model.DailyPerformance{
		Date:             date,
		DateKey:          key,
		TotalPnL:         decimal.Zero,
		TotalCommission:  decimal.Zero,
		TotalClearingFee: decimal.Zero,
		TotalExchangeFee: decimal.Zero,
		TotalFees:        decimal.Zero,
		TotalValue:       decimal.Zero,
		TransactionCount: len(dayTrades),
		TradeCount:       countRoundTrips(dayTrades),
	}

	for _, trade := range dayTrades {
		day.TotalPnL = day.TotalPnL.Add(trade.NetPnL)
		day.TotalCommission = day.TotalCommission.Add(trade.Commission)
		day.TotalClearingFee = day.TotalClearingFee.Add(trade.ClearingFee)
		day.TotalExchangeFee = day.TotalExchangeFee.Add(trade.ExchangeFee)
		day.TotalFees = day.TotalFees.Add(trade.TotalFees)
		day.TotalValue = day.TotalValue.Add(trade.Value.Abs())

		switch trade.NetPnL.Sign() {
		case 1:
			day.WinCount++
		case -1:
			day.LossCount++
		default:
			day.NeutralCount++
		}
	}

	switch day.TotalPnL.Sign() {
	case 1:
		day.IsWin = true
	case -1:
		day.IsLoss = true
	default:
		day.IsNeutral = true
	}

	if day.TotalValue.IsPositive() {
		day.Performance = day.TotalPnL.Div(day.TotalValue).Mul(hundred)
	} else {
		day.Performance = decimal.Zero
	}

	return day
}

// countRoundTrips replays the day's signed quantities per symbol, counting a
// completed round trip whenever the intraday running position returns to
// exactly zero after having been nonzero. The counter starts at zero each
// day, so a position opened on an earlier day contributes its round trip to
// the day it closes on.
func countRoundTrips(dayTrades []model.Trade) int {
	running := make(map[string]int64)
	total := 0

	for _, trade := range dayTrades {
		before := running[trade.Symbol]
		after := before + trade.Quantity
		running[trade.Symbol] = after

		if before != 0 && after == 0 {
			total++
		}
	}
	return total
}

// InsertJournalDay places a journal-only day record into an existing sorted
// series, keeping the one-record-per-date-key invariant and the cumulative
// P&L walk intact. A zero-P&L day inherits the previous day's cumulative
// value, so no recomputation of other days is needed.
func InsertJournalDay(days []model.DailyPerformance, day model.DailyPerformance) []model.DailyPerformance {
	idx := sort.Search(len(days), func(i int) bool {
		return !days[i].Date.Before(day.Date)
	})
	if idx < len(days) && days[idx].DateKey == day.DateKey {
		days[idx].Journal = day.Journal
		return days
	}

	if idx > 0 {
		day.CumulativePnL = days[idx-1].CumulativePnL
	} else {
		day.CumulativePnL = decimal.Zero
	}

	days = append(days, model.DailyPerformance{})
	copy(days[idx+1:], days[idx:])
	days[idx] = day
	return days
}
