package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type accountStore interface {
	Create(ctx context.Context, account *model.Account) error
	FindAll(ctx context.Context) ([]model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type tradingDataDeleter interface {
	DeleteByAccount(ctx context.Context, accountID string) error
}

type accountRequest struct {
	Name string `json:"name"`
}

// ListAccountsHandler returns all accounts.
func ListAccountsHandler(store accountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := store.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list accounts")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, accounts)
	}
}

// CreateAccountHandler creates a new account from {"name": ...}.
func CreateAccountHandler(store accountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "missing account name", http.StatusBadRequest)
			return
		}

		account := &model.Account{Name: req.Name}
		if err := store.Create(r.Context(), account); err != nil {
			logger.WithError(err).Error("failed to create account")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(account); err != nil {
			logger.WithError(err).Error("failed to encode account response")
		}
	}
}

// RenameAccountHandler updates an account's name.
func RenameAccountHandler(store accountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "accountID")

		var req accountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "missing account name", http.StatusBadRequest)
			return
		}

		account, err := store.FindByID(r.Context(), id)
		if err != nil {
			logger.WithError(err).Error("failed to fetch account")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if account == nil {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		if err := store.Rename(r.Context(), id, req.Name); err != nil {
			logger.WithError(err).Error("failed to rename account")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		account.Name = req.Name
		writeJSON(w, account)
	}
}

// DeleteAccountHandler removes an account and its stored trading data.
func DeleteAccountHandler(store accountStore, data tradingDataDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "accountID")

		account, err := store.FindByID(r.Context(), id)
		if err != nil {
			logger.WithError(err).Error("failed to fetch account")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if account == nil {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		if err := data.DeleteByAccount(r.Context(), id); err != nil {
			logger.WithError(err).Error("failed to delete trading data")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := store.Delete(r.Context(), id); err != nil {
			logger.WithError(err).Error("failed to delete account")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DefaultAccountHandlers wires the account handlers to the production
// repositories.
func DefaultAccountHandlers() (list, create, rename, remove http.HandlerFunc) {
	accounts := repository.NewAccountRepository()
	data := repository.NewTradingDataRepository()
	return ListAccountsHandler(accounts),
		CreateAccountHandler(accounts),
		RenameAccountHandler(accounts),
		DeleteAccountHandler(accounts, data)
}
