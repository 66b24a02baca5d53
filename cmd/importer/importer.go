// Package importer runs the trade import flow from the command line, without
// the HTTP server.
package importer

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"tradejournal/src/contracts"
	"tradejournal/src/database"
	"tradejournal/src/journal"
	"tradejournal/src/repository"
)

type Importer struct{}

func (t *Importer) service() *journal.Service {
	specs := contracts.NewService(contracts.NewRemoteClient(contracts.GetConfig()))
	return journal.NewService(specs, repository.NewTradingDataRepository(), journal.LogCheckpoints{})
}

// Import reads one export file and stores the derived trades and daily series
// for the account.
func (t *Importer) Import(accountID, filePath, mode string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to main database")
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		logrus.WithError(err).Error("Failed to open export file")
		return err
	}
	defer file.Close()

	result, err := t.service().ProcessFile(ctx, accountID, filepath.Base(filePath), file, mode)
	if err != nil {
		logrus.WithError(err).Error("Import failed")
		return err
	}

	logrus.WithFields(map[string]interface{}{
		"account":   accountID,
		"file":      result.FileName,
		"trades":    len(result.Trades),
		"days":      len(result.DailyData),
		"total_pnl": result.Stats.TotalPnL.StringFixed(2),
	}).Info("Import finished")

	return nil
}

// Stats prints the stored summary for an account.
func (t *Importer) Stats(accountID string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to main database")
		return err
	}

	result, err := t.service().Load(ctx, accountID)
	if err != nil {
		logrus.WithError(err).Error("Failed to load trading data")
		return err
	}

	stats := result.Stats
	logrus.WithFields(map[string]interface{}{
		"account":       accountID,
		"trades":        stats.TotalTrades,
		"total_pnl":     stats.TotalPnL.StringFixed(2),
		"win_rate":      stats.WinRate.StringFixed(1) + "%",
		"avg_daily_pnl": stats.AvgDailyPnL.StringFixed(2),
	}).Info("Account stats")

	if stats.BestDay != nil {
		logrus.WithFields(map[string]interface{}{
			"date": stats.BestDay.DateKey,
			"pnl":  stats.BestDay.TotalPnL.StringFixed(2),
		}).Info("Best day")
	}
	if stats.WorstDay != nil {
		logrus.WithFields(map[string]interface{}{
			"date": stats.WorstDay.DateKey,
			"pnl":  stats.WorstDay.TotalPnL.StringFixed(2),
		}).Info("Worst day")
	}

	return nil
}
