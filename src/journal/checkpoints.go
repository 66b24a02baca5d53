package journal

import (
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// Checkpoints receives progress notifications while an import runs. The
// server installs the logging implementation; tests can capture calls.
type Checkpoints interface {
	ParseComplete(fileName string, fills int)
	PnLComplete(trades int)
	AggregationComplete(days int, stats model.PerformanceStats)
}

// LogCheckpoints writes each checkpoint as a structured log line.
type LogCheckpoints struct{}

func (LogCheckpoints) ParseComplete(fileName string, fills int) {
	logger.WithFields(map[string]interface{}{
		"file":  fileName,
		"fills": fills,
	}).Info("Export file parsed")
}

func (LogCheckpoints) PnLComplete(trades int) {
	logger.WithField("trades", trades).Info("P&L pipeline complete")
}

func (LogCheckpoints) AggregationComplete(days int, stats model.PerformanceStats) {
	logger.WithFields(map[string]interface{}{
		"days":      days,
		"total_pnl": stats.TotalPnL.String(),
		"win_rate":  stats.WinRate.StringFixed(1),
	}).Info("Daily aggregation complete")
}

// NopCheckpoints discards all notifications.
type NopCheckpoints struct{}

func (NopCheckpoints) ParseComplete(string, int)                       {}
func (NopCheckpoints) PnLComplete(int)                                 {}
func (NopCheckpoints) AggregationComplete(int, model.PerformanceStats) {}
