package wallethandler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/mkarpenko/storefront/internal/memstore"
	"github.com/mkarpenko/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*WalletHandler, int64) {
	t.Helper()

	store := memstore.New()
	userID, err := store.CreateUser("Jane Doe", "jane@example.com", "janedoe", "not-a-real-hash")
	require.NoError(t, err)

	return New(service.NewLedgerService(store, service.NewUserLocks())), userID
}

func doRequest(h http.HandlerFunc, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/wallet", strings.NewReader(body))
	req.Header.Set("User-ID", strconv.FormatInt(userID, 10))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestDepositValidatesCard(t *testing.T) {
	h, userID := newHandler(t)

	rec := doRequest(h.Deposit, userID, `{"amount":"100.00","card":"79927398714"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(h.Deposit, userID, `{"amount":"100.00","card":"not-a-card"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(h.Deposit, userID, `{"amount":"100.00","card":"79927398713"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":"100"}`, rec.Body.String())
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	h, userID := newHandler(t)

	rec := doRequest(h.Deposit, userID, `{"amount":"50.00","card":"79927398713"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h.Withdraw, userID, `{"amount":"50.01"}`)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = doRequest(h.Withdraw, userID, `{"amount":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h.Withdraw, userID, `{"amount":"50"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":"0"}`, rec.Body.String())
}
