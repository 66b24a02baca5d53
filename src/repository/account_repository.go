package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// AccountRepository handles CRUD for trading accounts.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new repository instance using the main
// read/write database.
func NewAccountRepository() *AccountRepository {
	logger.WithField("component", "AccountRepository").
		Info("Creating new AccountRepository with MainDB")

	return &AccountRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *AccountRepository) WithDB(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account. An id is generated when the caller left it
// empty.
func (r *AccountRepository) Create(
	ctx context.Context,
	account *model.Account,
) error {

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	logger.WithFields(map[string]interface{}{
		"repo": "AccountRepository",
		"op":   "Create",
		"id":   account.ID,
		"name": account.Name,
	}).Debug("Creating new account")

	err := r.db.WithContext(ctx).Create(account).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "AccountRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create account")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo": "AccountRepository",
		"op":   "Create",
		"id":   account.ID,
	}).Info("Account created successfully")

	return nil
}

// FindAll returns every account, newest first.
func (r *AccountRepository) FindAll(
	ctx context.Context,
) ([]model.Account, error) {

	var accounts []model.Account
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&accounts).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "AccountRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch accounts")

		return nil, err
	}

	return accounts, nil
}

// FindByID fetches a single account.
// Returns (nil, nil) if the account is not found.
func (r *AccountRepository) FindByID(
	ctx context.Context,
	id string,
) (*model.Account, error) {

	var account model.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo": "AccountRepository",
				"op":   "FindByID",
				"id":   id,
			}).Info("Account not found")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "AccountRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch account")

		return nil, err
	}

	return &account, nil
}

// Rename updates an account's display name.
func (r *AccountRepository) Rename(
	ctx context.Context,
	id, name string,
) error {

	err := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("name", name).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "AccountRepository",
			"op":   "Rename",
			"id":   id,
		}).WithError(err).Error("Failed to rename account")

		return err
	}

	return nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(
	ctx context.Context,
	id string,
) error {

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Account{}).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "AccountRepository",
			"op":   "Delete",
			"id":   id,
		}).WithError(err).Error("Failed to delete account")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo": "AccountRepository",
		"op":   "Delete",
		"id":   id,
	}).Info("Account deleted")

	return nil
}
