package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/mapper"
	"tradejournal/src/model"
	"tradejournal/src/parser"
	"tradejournal/src/performance"
	"tradejournal/src/pnl"
	"tradejournal/src/utils"
)

const (
	UploadModeReplace = "replace"
	UploadModeAppend  = "append"
)

var ErrNoTradingData = errors.New("no trading data stored for account")

// Store persists the per-account trading data document.
type Store interface {
	Save(ctx context.Context, data *model.TradingData) error
	FindByAccount(ctx context.Context, accountID string) (*model.TradingData, error)
}

// ImportResult is what an upload returns to the caller.
type ImportResult struct {
	Trades    []model.Trade            `json:"trades"`
	DailyData []model.DailyPerformance `json:"daily_data"`
	Stats     model.PerformanceStats   `json:"stats"`
	FileName  string                   `json:"file_name"`
	Merged    bool                     `json:"merged"`
}

// Service ties the parser, the P&L pipeline, the aggregator, and the store
// together.
type Service struct {
	specs pnl.SpecResolver
	store Store
	hooks Checkpoints
	now   func() time.Time
}

func NewService(specs pnl.SpecResolver, store Store, hooks Checkpoints) *Service {
	if hooks == nil {
		hooks = NopCheckpoints{}
	}
	return &Service{
		specs: specs,
		store: store,
		hooks: hooks,
		now:   time.Now,
	}
}

// ProcessFile imports one export file for an account. In replace mode the
// stored document is overwritten; in append mode the new fills are merged
// with the stored trades, duplicates dropped, and everything recomputed from
// the merged list. Validation failures abort the import before anything is
// written.
func (s *Service) ProcessFile(ctx context.Context, accountID, fileName string, r io.Reader, mode string) (*ImportResult, error) {
	if mode != UploadModeAppend {
		mode = UploadModeReplace
	}

	parsed, err := parser.Parse(r, fileName)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if issues := parser.Validate(parsed); len(issues) > 0 {
		return nil, errors.New(strings.Join(issues, "\n"))
	}
	s.hooks.ParseComplete(fileName, len(parsed.Fills))

	trades := pnl.Process(ctx, parsed.Fills, s.specs, s.now)
	merged := false

	if mode == UploadModeAppend {
		existing, err := s.loadTrades(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			combined := Merge(existing, trades)
			// P&L depends on the full fill history, so the merged list is
			// re-annotated from scratch.
			trades = pnl.Annotate(ctx, stripAnnotations(combined), s.specs)
			merged = true
		}
	}
	s.hooks.PnLComplete(len(trades))

	days := performance.Aggregate(trades)
	days = s.carryJournals(ctx, accountID, days)
	stats := performance.Stats(days)
	s.hooks.AggregationComplete(len(days), stats)

	if err := s.persist(ctx, accountID, fileName, mode, trades, days); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"account": accountID,
		"file":    fileName,
		"mode":    mode,
		"trades":  len(trades),
		"days":    len(days),
	}).Info("Import complete")

	return &ImportResult{
		Trades:    trades,
		DailyData: days,
		Stats:     stats,
		FileName:  fileName,
		Merged:    merged,
	}, nil
}

// SaveJournalEntry attaches a journal text to a day. Days that already exist
// keep their trade aggregates; a day without trades gets a zeroed record so
// the entry has somewhere to live.
func (s *Service) SaveJournalEntry(ctx context.Context, accountID, dateKey, text string) ([]model.DailyPerformance, error) {
	data, err := s.store.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = &model.TradingData{AccountID: accountID}
	}

	days, err := mapper.DecodeDailyData(data.DailyData, s.now)
	if err != nil {
		return nil, fmt.Errorf("decoding stored daily data: %w", err)
	}

	date, err := utils.ParseDateKey(dateKey)
	if err != nil {
		return nil, err
	}

	days = performance.InsertJournalDay(days, model.NewJournalOnlyDay(date, dateKey, text))

	encoded, err := mapper.EncodeDailyData(days)
	if err != nil {
		return nil, err
	}
	data.DailyData = encoded
	if err := s.store.Save(ctx, data); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"account": accountID,
		"date":    dateKey,
	}).Info("Journal entry saved")

	return days, nil
}

// Load returns the stored trades, daily series, and stats for an account.
func (s *Service) Load(ctx context.Context, accountID string) (*ImportResult, error) {
	data, err := s.store.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoTradingData
	}

	trades, err := mapper.DecodeTrades(data.Trades, s.now)
	if err != nil {
		return nil, fmt.Errorf("decoding stored trades: %w", err)
	}
	days, err := mapper.DecodeDailyData(data.DailyData, s.now)
	if err != nil {
		return nil, fmt.Errorf("decoding stored daily data: %w", err)
	}

	return &ImportResult{
		Trades:    trades,
		DailyData: days,
		Stats:     performance.Stats(days),
		FileName:  data.FileName,
	}, nil
}

func (s *Service) loadTrades(ctx context.Context, accountID string) ([]model.Trade, error) {
	data, err := s.store.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	trades, err := mapper.DecodeTrades(data.Trades, s.now)
	if err != nil {
		return nil, fmt.Errorf("decoding stored trades: %w", err)
	}
	return trades, nil
}

// carryJournals copies journal texts from the stored daily series onto the
// freshly computed one, so re-importing trades does not wipe notes. Journal
// days without trades survive as zeroed records.
func (s *Service) carryJournals(ctx context.Context, accountID string, days []model.DailyPerformance) []model.DailyPerformance {
	data, err := s.store.FindByAccount(ctx, accountID)
	if err != nil || data == nil {
		return days
	}
	stored, err := mapper.DecodeDailyData(data.DailyData, s.now)
	if err != nil {
		logger.WithError(err).Warn("Stored daily data unreadable, journal entries not carried over")
		return days
	}

	byKey := make(map[string]int, len(days))
	for i := range days {
		byKey[days[i].DateKey] = i
	}

	for _, old := range stored {
		if old.Journal == "" {
			continue
		}
		if i, ok := byKey[old.DateKey]; ok {
			days[i].Journal = old.Journal
		} else {
			days = performance.InsertJournalDay(days,
				model.NewJournalOnlyDay(old.Date, old.DateKey, old.Journal))
		}
	}
	return days
}

func (s *Service) persist(ctx context.Context, accountID, fileName, mode string, trades []model.Trade, days []model.DailyPerformance) error {
	tradesDoc, err := mapper.EncodeTrades(trades)
	if err != nil {
		return err
	}
	daysDoc, err := mapper.EncodeDailyData(days)
	if err != nil {
		return err
	}

	data, err := s.store.FindByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &model.TradingData{AccountID: accountID}
	}
	data.Trades = tradesDoc
	data.DailyData = daysDoc
	data.FileName = fileName
	data.UploadMode = mode
	data.UploadedAt = s.now()

	return s.store.Save(ctx, data)
}

// stripAnnotations clears the P&L fields so the tracker can recompute them
// over the merged history.
func stripAnnotations(trades []model.Trade) []model.Trade {
	out := make([]model.Trade, len(trades))
	for i, t := range trades {
		out[i] = model.Trade{
			Date:      t.Date,
			Symbol:    t.Symbol,
			Quantity:  t.Quantity,
			Price:     t.Price,
			Value:     t.Value,
			Side:      t.Side,
			OrderType: t.OrderType,
			Status:    t.Status,
		}
	}
	return out
}
