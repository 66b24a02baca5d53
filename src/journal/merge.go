// Package journal orchestrates the full import flow: parse an export file,
// run the P&L pipeline, merge with previously stored trades, derive the daily
// series, and persist the result per account.
package journal

import (
	"fmt"
	"sort"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// mergeKey identifies a fill for deduplication. Two fills with the same
// timestamp, symbol, signed quantity, price, and side are considered the same
// execution reported twice.
func mergeKey(t model.Trade) string {
	return fmt.Sprintf("%d_%s_%d_%s_%s",
		t.Date.UnixMilli(), t.Symbol, t.Quantity, t.Price.String(), t.Side)
}

// Merge combines previously stored trades with a new batch, dropping incoming
// duplicates. When both sides carry the same fill the existing record wins.
// The result is sorted ascending by date and must be re-annotated before use,
// since P&L fields of the incoming trades were computed without the existing
// history.
func Merge(existing, incoming []model.Trade) []model.Trade {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]model.Trade, 0, len(existing)+len(incoming))

	for _, t := range existing {
		seen[mergeKey(t)] = struct{}{}
		merged = append(merged, t)
	}

	skipped := 0
	for _, t := range incoming {
		key := mergeKey(t)
		if _, ok := seen[key]; ok {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, t)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	if skipped > 0 {
		logger.WithFields(map[string]interface{}{
			"existing": len(existing),
			"incoming": len(incoming),
			"skipped":  skipped,
		}).Info("Duplicate fills skipped during merge")
	}

	return merged
}
