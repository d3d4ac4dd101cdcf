package service

import (
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

type walletRepository interface {
	Balance(userID int64) (decimal.Decimal, error)
	Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Transactions(userID int64) ([]domain.WalletTransaction, error)
}

// LedgerService is the only mutation path for wallet balances. Every credit
// and debit carries a transaction kind naming its causing event. There is no
// upper bound on a balance.
type LedgerService struct {
	repo  walletRepository
	locks *UserLocks
}

func NewLedgerService(repo walletRepository, locks *UserLocks) *LedgerService {
	return &LedgerService{
		repo:  repo,
		locks: locks,
	}
}

func (s *LedgerService) Balance(userID int64) (decimal.Decimal, error) {
	return s.repo.Balance(userID)
}

func (s *LedgerService) Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	balance, err := s.repo.Credit(userID, amount, kind)
	if err != nil {
		return decimal.Zero, err
	}

	logger.Log.Info("wallet credited",
		logger.Int64("user_id", userID),
		logger.String("amount", amount.String()),
		logger.String("kind", string(kind)),
	)

	return balance, nil
}

func (s *LedgerService) Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	balance, err := s.repo.Debit(userID, amount, kind)
	if err != nil {
		return decimal.Zero, err
	}

	logger.Log.Info("wallet debited",
		logger.Int64("user_id", userID),
		logger.String("amount", amount.String()),
		logger.String("kind", string(kind)),
	)

	return balance, nil
}

func (s *LedgerService) Transactions(userID int64) ([]domain.WalletTransaction, error) {
	return s.repo.Transactions(userID)
}
