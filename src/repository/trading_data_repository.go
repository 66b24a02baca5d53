package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// TradingDataRepository handles the per-account trading data documents. Each
// account has at most one row; Save upserts on the account id.
type TradingDataRepository struct {
	db *gorm.DB
}

// NewTradingDataRepository creates a new repository instance using the main
// read/write database.
func NewTradingDataRepository() *TradingDataRepository {
	logger.WithField("component", "TradingDataRepository").
		Info("Creating new TradingDataRepository with MainDB")

	return &TradingDataRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradingDataRepository) WithDB(db *gorm.DB) *TradingDataRepository {
	return &TradingDataRepository{db: db}
}

// Save writes the document for its account, inserting the row on first upload
// and updating it afterwards.
func (r *TradingDataRepository) Save(
	ctx context.Context,
	data *model.TradingData,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":    "TradingDataRepository",
		"op":      "Save",
		"account": data.AccountID,
		"file":    data.FileName,
	}).Debug("Saving trading data")

	var existing model.TradingData
	err := r.db.WithContext(ctx).
		Where("account_id = ?", data.AccountID).
		First(&existing).Error

	switch {
	case err == nil:
		data.ID = existing.ID
		data.CreatedAt = existing.CreatedAt
		err = r.db.WithContext(ctx).Save(data).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = r.db.WithContext(ctx).Create(data).Error
	}

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "TradingDataRepository",
			"op":      "Save",
			"account": data.AccountID,
		}).WithError(err).Error("Failed to save trading data")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":    "TradingDataRepository",
		"op":      "Save",
		"account": data.AccountID,
		"id":      data.ID,
	}).Info("Trading data saved successfully")

	return nil
}

// FindByAccount fetches the document for one account.
// Returns (nil, nil) if the account has no stored data yet.
func (r *TradingDataRepository) FindByAccount(
	ctx context.Context,
	accountID string,
) (*model.TradingData, error) {

	logger.WithFields(map[string]interface{}{
		"repo":    "TradingDataRepository",
		"op":      "FindByAccount",
		"account": accountID,
	}).Debug("Fetching trading data")

	var data model.TradingData
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&data).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo":    "TradingDataRepository",
				"op":      "FindByAccount",
				"account": accountID,
			}).Info("No trading data stored for account")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":    "TradingDataRepository",
			"op":      "FindByAccount",
			"account": accountID,
		}).WithError(err).Error("Failed to fetch trading data")

		return nil, err
	}

	return &data, nil
}

// DeleteByAccount removes an account's document, e.g. when the account itself
// is deleted.
func (r *TradingDataRepository) DeleteByAccount(
	ctx context.Context,
	accountID string,
) error {

	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.TradingData{}).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "TradingDataRepository",
			"op":      "DeleteByAccount",
			"account": accountID,
		}).WithError(err).Error("Failed to delete trading data")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":    "TradingDataRepository",
		"op":      "DeleteByAccount",
		"account": accountID,
	}).Info("Trading data deleted")

	return nil
}
