package service

import (
	"sync"
	"testing"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCreditAndDebit(t *testing.T) {
	store, userID := newTestStore(t)
	ledger := NewLedgerService(store, NewUserLocks())

	balance, err := ledger.Credit(userID, decimal.RequireFromString("100.50"), domain.TxTopUp)
	require.NoError(t, err)
	requireAmount(t, "100.50", balance)

	balance, err = ledger.Debit(userID, decimal.RequireFromString("40.25"), domain.TxWithdrawal)
	require.NoError(t, err)
	requireAmount(t, "60.25", balance)
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	store, userID := newTestStore(t)
	ledger := NewLedgerService(store, NewUserLocks())

	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := ledger.Credit(userID, decimal.RequireFromString(amount), domain.TxTopUp)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "credit %s", amount)

		_, err = ledger.Debit(userID, decimal.RequireFromString(amount), domain.TxWithdrawal)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "debit %s", amount)
	}
}

func TestLedgerUnknownUser(t *testing.T) {
	store, _ := newTestStore(t)
	ledger := NewLedgerService(store, NewUserLocks())

	_, err := ledger.Credit(42, decimal.RequireFromString("10"), domain.TxTopUp)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = ledger.Debit(42, decimal.RequireFromString("10"), domain.TxWithdrawal)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLedgerNeverGoesNegative(t *testing.T) {
	store, userID := newTestStore(t)
	ledger := NewLedgerService(store, NewUserLocks())
	topUp(t, store, userID, "10.00")

	_, err := ledger.Debit(userID, decimal.RequireFromString("10.01"), domain.TxWithdrawal)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// the failed debit must not have touched the balance
	balance, err := ledger.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "10.00", balance)

	balance, err = ledger.Debit(userID, decimal.RequireFromString("10.00"), domain.TxWithdrawal)
	require.NoError(t, err)
	requireAmount(t, "0", balance)

	_, err = ledger.Debit(userID, decimal.RequireFromString("0.01"), domain.TxWithdrawal)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestLedgerTransactionsAreTagged(t *testing.T) {
	store, userID := newTestStore(t)
	ledger := NewLedgerService(store, NewUserLocks())

	_, err := ledger.Credit(userID, decimal.RequireFromString("50"), domain.TxTopUp)
	require.NoError(t, err)
	_, err = ledger.Debit(userID, decimal.RequireFromString("20"), domain.TxWithdrawal)
	require.NoError(t, err)

	txs, err := ledger.Transactions(userID)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, domain.TxTopUp, txs[0].Kind)
	requireAmount(t, "50", txs[0].Amount)
	assert.Equal(t, domain.TxWithdrawal, txs[1].Kind)
	requireAmount(t, "-20", txs[1].Amount)
	assert.NotEmpty(t, txs[0].ID)
}

func TestLedgerSerializesPerUser(t *testing.T) {
	store, userID := newTestStore(t)
	ledger := NewLedgerService(store, NewUserLocks())
	topUp(t, store, userID, "100")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ledger.Credit(userID, decimal.NewFromInt(1), domain.TxTopUp)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			// may fail with insufficient funds, but must never go negative
			_, _ = ledger.Debit(userID, decimal.NewFromInt(2), domain.TxWithdrawal)
		}()
	}
	wg.Wait()

	balance, err := ledger.Balance(userID)
	require.NoError(t, err)
	assert.False(t, balance.IsNegative(), "balance went negative: %s", balance)
}
