package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tradejournal/src/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}

func tradingDataColumns() []string {
	return []string{
		"id", "account_id", "trades", "daily_data",
		"file_name", "upload_mode", "uploaded_at", "created_at", "updated_at",
	}
}

func TestTradingDataRepositoryFindByAccount(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &TradingDataRepository{db: mockDB}

	uploadedAt := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)

	t.Run("returns stored document", func(t *testing.T) {
		rows := sqlmock.NewRows(tradingDataColumns()).
			AddRow(uint(7), "acct-1", `[]`, `[]`, "fills.csv", "replace", uploadedAt, uploadedAt, uploadedAt)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "trading_data" WHERE account_id = $1`)).
			WithArgs("acct-1", 1).
			WillReturnRows(rows)

		data, err := repo.FindByAccount(context.Background(), "acct-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data == nil {
			t.Fatal("expected a document, got nil")
		}
		if data.ID != 7 || data.FileName != "fills.csv" {
			t.Fatalf("unexpected document: %+v", data)
		}
	})

	t.Run("returns nil nil when account has no data", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "trading_data" WHERE account_id = $1`)).
			WithArgs("acct-2", 1).
			WillReturnRows(sqlmock.NewRows(tradingDataColumns()))

		data, err := repo.FindByAccount(context.Background(), "acct-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data != nil {
			t.Fatalf("expected nil for missing account, got %+v", data)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTradingDataRepositorySaveInsertsFirstUpload(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &TradingDataRepository{db: mockDB}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "trading_data" WHERE account_id = $1`)).
		WithArgs("acct-1", 1).
		WillReturnRows(sqlmock.NewRows(tradingDataColumns()))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "trading_data"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(1)))
	mock.ExpectCommit()

	data := &model.TradingData{
		AccountID:  "acct-1",
		Trades:     `[]`,
		DailyData:  `[]`,
		FileName:   "fills.csv",
		UploadMode: "replace",
		UploadedAt: time.Now(),
	}
	if err := repo.Save(context.Background(), data); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTradingDataRepositorySaveUpdatesExistingRow(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &TradingDataRepository{db: mockDB}

	createdAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(tradingDataColumns()).
		AddRow(uint(7), "acct-1", `[]`, `[]`, "old.csv", "replace", createdAt, createdAt, createdAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "trading_data" WHERE account_id = $1`)).
		WithArgs("acct-1", 1).
		WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "trading_data" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	data := &model.TradingData{
		AccountID:  "acct-1",
		Trades:     `[{"symbol":"NQ"}]`,
		DailyData:  `[]`,
		FileName:   "new.csv",
		UploadMode: "append",
		UploadedAt: time.Now(),
	}
	if err := repo.Save(context.Background(), data); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	if data.ID != 7 {
		t.Fatalf("expected existing row id to be reused, got %d", data.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTradingDataRepositoryDeleteByAccount(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &TradingDataRepository{db: mockDB}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "trading_data" WHERE account_id = $1`)).
		WithArgs("acct-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteByAccount(context.Background(), "acct-1"); err != nil {
		t.Fatalf("unexpected error deleting: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
