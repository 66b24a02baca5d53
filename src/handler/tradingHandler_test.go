package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradejournal/src/journal"
	"tradejournal/src/model"
)

type fakeImportService struct {
	result     *journal.ImportResult
	days       []model.DailyPerformance
	err        error
	gotAccount string
	gotFile    string
	gotMode    string
	gotDate    string
	gotText    string
}

func (f *fakeImportService) ProcessFile(_ context.Context, accountID, fileName string, r io.Reader, mode string) (*journal.ImportResult, error) {
	f.gotAccount = accountID
	f.gotFile = fileName
	f.gotMode = mode
	io.Copy(io.Discard, r)
	return f.result, f.err
}

func (f *fakeImportService) SaveJournalEntry(_ context.Context, accountID, dateKey, text string) ([]model.DailyPerformance, error) {
	f.gotAccount = accountID
	f.gotDate = dateKey
	f.gotText = text
	return f.days, f.err
}

func (f *fakeImportService) Load(_ context.Context, accountID string) (*journal.ImportResult, error) {
	f.gotAccount = accountID
	return f.result, f.err
}

func tradingRouter(svc importService) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/accounts/{accountID}/upload", UploadHandler(svc))
	r.Get("/accounts/{accountID}/trading-data", TradingDataHandler(svc))
	r.Get("/accounts/{accountID}/stats", StatsHandler(svc))
	r.Put("/accounts/{accountID}/journal", JournalHandler(svc))
	return r
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	svc := &fakeImportService{
		result: &journal.ImportResult{FileName: "fills.csv"},
	}
	router := tradingRouter(svc)

	body, contentType := multipartUpload(t, "file", "fills.csv", "Date,Contract\n")
	req := httptest.NewRequest(http.MethodPost, "/accounts/acct-1/upload?mode=append", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "acct-1", svc.gotAccount)
	require.Equal(t, "fills.csv", svc.gotFile)
	require.Equal(t, "append", svc.gotMode)

	var result journal.ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Equal(t, "fills.csv", result.FileName)
}

func TestUploadHandlerMissingFile(t *testing.T) {
	router := tradingRouter(&fakeImportService{})

	body, contentType := multipartUpload(t, "wrong-field", "fills.csv", "data")
	req := httptest.NewRequest(http.MethodPost, "/accounts/acct-1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandlerRejectedImport(t *testing.T) {
	svc := &fakeImportService{err: errors.New("Missing required columns: Missing 'Date' column")}
	router := tradingRouter(svc)

	body, contentType := multipartUpload(t, "file", "bad.csv", "x\n")
	req := httptest.NewRequest(http.MethodPost, "/accounts/acct-1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Missing required columns")
}

func TestTradingDataHandlerNotFound(t *testing.T) {
	svc := &fakeImportService{err: journal.ErrNoTradingData}
	router := tradingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acct-1/trading-data", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	svc := &fakeImportService{
		result: &journal.ImportResult{
			Stats: model.PerformanceStats{
				TotalTrades: 12,
				TotalPnL:    decimal.NewFromInt(450),
				WinRate:     decimal.NewFromInt(75),
				AvgDailyPnL: decimal.NewFromInt(150),
			},
		},
	}
	router := tradingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acct-1/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.PerformanceStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	require.Equal(t, 12, stats.TotalTrades)
	require.True(t, decimal.NewFromInt(450).Equal(stats.TotalPnL))
}

func TestJournalHandler(t *testing.T) {
	svc := &fakeImportService{
		days: []model.DailyPerformance{{DateKey: "2024-03-04", Journal: "clean day"}},
	}
	router := tradingRouter(svc)

	payload := `{"date":"2024-03-04","text":"clean day"}`
	req := httptest.NewRequest(http.MethodPut, "/accounts/acct-1/journal", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2024-03-04", svc.gotDate)
	require.Equal(t, "clean day", svc.gotText)
}

func TestJournalHandlerMissingDate(t *testing.T) {
	router := tradingRouter(&fakeImportService{})

	req := httptest.NewRequest(http.MethodPut, "/accounts/acct-1/journal", strings.NewReader(`{"text":"x"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
