package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/contracts"
	"tradejournal/src/journal"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

// maxUploadBytes caps broker export uploads. Exports are small; anything
// bigger is not a fill file.
const maxUploadBytes = 16 << 20

type importService interface {
	ProcessFile(ctx context.Context, accountID, fileName string, r io.Reader, mode string) (*journal.ImportResult, error)
	SaveJournalEntry(ctx context.Context, accountID, dateKey, text string) ([]model.DailyPerformance, error)
	Load(ctx context.Context, accountID string) (*journal.ImportResult, error)
}

// UploadHandler returns a handler that imports a broker export file for an
// account. The file comes as multipart form field "file"; ?mode=append merges
// with the stored trades instead of replacing them.
func UploadHandler(svc importService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")
		if accountID == "" {
			http.Error(w, "missing account id", http.StatusBadRequest)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart request", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		mode := r.URL.Query().Get("mode")
		result, err := svc.ProcessFile(r.Context(), accountID, header.Filename, file, mode)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"account": accountID,
				"file":    header.Filename,
			}).WithError(err).Warn("Import rejected")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeJSON(w, result)
	}
}

// TradingDataHandler returns the stored trades and daily series of an account.
func TradingDataHandler(svc importService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")

		result, err := svc.Load(r.Context(), accountID)
		if err != nil {
			if errors.Is(err, journal.ErrNoTradingData) {
				http.Error(w, "no trading data for account", http.StatusNotFound)
				return
			}
			logger.WithError(err).Error("failed to load trading data")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, result)
	}
}

// StatsHandler returns only the summary stats of an account.
func StatsHandler(svc importService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")

		result, err := svc.Load(r.Context(), accountID)
		if err != nil {
			if errors.Is(err, journal.ErrNoTradingData) {
				http.Error(w, "no trading data for account", http.StatusNotFound)
				return
			}
			logger.WithError(err).Error("failed to load stats")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, result.Stats)
	}
}

type journalEntryRequest struct {
	Date string `json:"date"` // yyyy-mm-dd
	Text string `json:"text"`
}

// JournalHandler attaches a journal note to a day, creating a zeroed day
// record when the day has no trades.
func JournalHandler(svc importService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")

		var req journalEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Date == "" {
			http.Error(w, "missing date", http.StatusBadRequest)
			return
		}

		days, err := svc.SaveJournalEntry(r.Context(), accountID, req.Date, req.Text)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"account": accountID,
				"date":    req.Date,
			}).WithError(err).Warn("failed to save journal entry")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeJSON(w, days)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// DefaultImportService wires the journal service to the production contract
// resolver and repository.
func DefaultImportService() *journal.Service {
	specs := contracts.NewService(contracts.NewRemoteClient(contracts.GetConfig()))
	return journal.NewService(specs, repository.NewTradingDataRepository(), journal.LogCheckpoints{})
}
