package wallethandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/dto"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/theplant/luhn"
)

type ledgerService interface {
	Balance(userID int64) (decimal.Decimal, error)
	Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Transactions(userID int64) ([]domain.WalletTransaction, error)
}

type WalletHandler struct {
	ledger ledgerService
}

func New(ledger ledgerService) *WalletHandler {
	return &WalletHandler{
		ledger: ledger,
	}
}

func (h WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	balance, err := h.ledger.Balance(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		logger.Log.Error("error while fetching balance", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, userID, dto.Balance{Balance: balance})
}

// Deposit tops the wallet up from an external card. The card number gets a
// Luhn check before any money moves.
func (h WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var deposit dto.Deposit
	if err := json.NewDecoder(r.Body).Decode(&deposit); err != nil {
		logger.Log.Warn("error while decoding a deposit request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	card, err := strconv.Atoi(deposit.Card)
	if err != nil || !luhn.Valid(card) {
		logger.Log.Warn("invalid card number for deposit", logger.Int64("user_id", userID))
		http.Error(w, "invalid card number", http.StatusUnprocessableEntity)
		return
	}

	balance, err := h.ledger.Credit(userID, deposit.Amount, domain.TxTopUp)
	if err != nil {
		h.writeLedgerError(w, userID, err)
		return
	}

	writeJSON(w, userID, dto.Balance{Balance: balance})
}

func (h WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var withdrawal dto.Withdrawal
	if err := json.NewDecoder(r.Body).Decode(&withdrawal); err != nil {
		logger.Log.Warn("error while decoding a withdrawal request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	balance, err := h.ledger.Debit(userID, withdrawal.Amount, domain.TxWithdrawal)
	if err != nil {
		h.writeLedgerError(w, userID, err)
		return
	}

	writeJSON(w, userID, dto.Balance{Balance: balance})
}

func (h WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	transactions, err := h.ledger.Transactions(userID)
	if err != nil {
		logger.Log.Error("error while fetching transactions", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dtos := make([]dto.Transaction, len(transactions))
	for i, t := range transactions {
		dtos[i] = dto.Transaction{
			ID:        t.ID,
			Amount:    t.Amount,
			Kind:      string(t.Kind),
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, userID, dtos)
}

func (h WalletHandler) writeLedgerError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidAmount):
		http.Error(w, "amount must be positive", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInsufficientFunds):
		logger.Log.Warn("insufficient funds", logger.Int64("user_id", userID))
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	default:
		logger.Log.Error("wallet operation failed", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userIDHeader := r.Header.Get("User-ID")
	id, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, false
	}

	return id, true
}

func writeJSON(w http.ResponseWriter, userID int64, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("error while encoding response to JSON", logger.Int64("user_id", userID), logger.Error(err))
	}
}
