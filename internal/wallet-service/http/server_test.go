package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/wallet-service/repo"
)

// fakeRepo simula o repositório Postgres com saldos em memória e
// idempotência por external_ref, igual ao contrato real.
type fakeRepo struct {
	balances  map[string]uint64
	transfers map[string]string // externalRef -> transferID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: map[string]uint64{}, transfers: map[string]string{}}
}

func (f *fakeRepo) GetOrCreateWallet(_ context.Context, userID string) (string, string, error) {
	if _, ok := f.balances[userID]; !ok {
		f.balances[userID] = 0
	}
	return "w-" + userID, itoa(f.balances[userID]), nil
}

func (f *fakeRepo) Deposit(_ context.Context, userID, amount, _ string) (string, string, error) {
	f.balances[userID] += atoi(amount)
	return "w-" + userID, itoa(f.balances[userID]), nil
}

func (f *fakeRepo) Debit(_ context.Context, userID, amount, ref string) (string, string, error) {
	if _, ok := f.balances[userID]; !ok {
		return "", "", repo.ErrNotFound
	}
	if id, ok := f.transfers[ref]; ok {
		return id, itoa(f.balances[userID]), nil
	}
	v := atoi(amount)
	if f.balances[userID] < v {
		return "", "", repo.ErrInsufficientFunds
	}
	f.balances[userID] -= v
	f.transfers[ref] = "t-" + ref
	return "t-" + ref, itoa(f.balances[userID]), nil
}

func (f *fakeRepo) Credit(_ context.Context, userID, amount, ref string) (string, string, error) {
	if id, ok := f.transfers[ref]; ok {
		return id, itoa(f.balances[userID]), nil
	}
	f.balances[userID] += atoi(amount)
	f.transfers[ref] = "t-" + ref
	return "t-" + ref, itoa(f.balances[userID]), nil
}

func itoa(v uint64) string { return strconv.FormatUint(v, 10) }

func atoi(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDepositAndGetWallet(t *testing.T) {
	f := newFakeRepo()
	h := NewServer(zap.NewNop(), f).Router()

	rec := post(t, h, "/wallet/deposit", `{"userId":"alice","amount":"1000","external_ref":"dep-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"1000"`)

	req := httptest.NewRequest(http.MethodGet, "/wallet?userId=alice", nil)
	get := httptest.NewRecorder()
	h.ServeHTTP(get, req)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), `"walletId":"w-alice"`)
}

func TestDebitInsufficientFundsConflicts(t *testing.T) {
	f := newFakeRepo()
	h := NewServer(zap.NewNop(), f).Router()

	post(t, h, "/wallet/deposit", `{"userId":"bob","amount":"100","external_ref":"dep-1"}`)

	rec := post(t, h, "/wallet/debit", `{"userId":"bob","amount":"500","externalRef":"buy-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDebitUnknownWallet(t *testing.T) {
	h := NewServer(zap.NewNop(), newFakeRepo()).Router()
	rec := post(t, h, "/wallet/debit", `{"userId":"ghost","amount":"1","externalRef":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransferIdempotencyByExternalRef(t *testing.T) {
	f := newFakeRepo()
	h := NewServer(zap.NewNop(), f).Router()

	post(t, h, "/wallet/deposit", `{"userId":"carol","amount":"1000","external_ref":"dep-1"}`)

	first := post(t, h, "/wallet/debit", `{"userId":"carol","amount":"400","externalRef":"buy-9"}`)
	require.Equal(t, http.StatusOK, first.Code)

	// retry com o mesmo external_ref devolve a mesma transferência, sem
	// debitar de novo
	second := post(t, h, "/wallet/debit", `{"userId":"carol","amount":"400","externalRef":"buy-9"}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, uint64(600), f.balances["carol"])
}

func TestTransferValidation(t *testing.T) {
	h := NewServer(zap.NewNop(), newFakeRepo()).Router()

	// sem external_ref
	rec := post(t, h, "/wallet/debit", `{"userId":"a","amount":"10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// valor negativo não é um decimal sem sinal válido
	rec = post(t, h, "/wallet/credit", `{"userId":"a","amount":"-5","externalRef":"r"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// método errado
	req := httptest.NewRequest(http.MethodGet, "/wallet/debit", nil)
	get := httptest.NewRecorder()
	h.ServeHTTP(get, req)
	assert.Equal(t, http.StatusMethodNotAllowed, get.Code)
}
