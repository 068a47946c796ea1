package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/assist"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
	"github.com/finbook-dev/finbook/internal/summary"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	st := store.New()
	summaries := summary.NewService(st)
	chat := assist.NewService(st, summaries, assist.Local{})
	return New(st, summaries, chat).Router(), st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAccountsSeeded(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/accounts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var accounts []map[string]any
	decode(t, w, &accounts)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Main Account", accounts[0]["name"])
	assert.Equal(t, "2450.00", accounts[0]["balance"])
}

func TestCreateAccount(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/accounts",
		`{"name":"Travel Fund","type":"other","openingBalance":"120.50"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var acct map[string]any
	decode(t, w, &acct)
	assert.Equal(t, "Travel Fund", acct["name"])
	assert.Equal(t, "120.50", acct["balance"])
}

func TestCreateAccountValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/accounts",
		`{"name":"","type":"main"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid name")
}

func TestGetAccountNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/accounts/acc_missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionLifecycle(t *testing.T) {
	r, st := newTestRouter(t)
	accts, err := st.Accounts()
	require.NoError(t, err)
	main := accts[0]

	w := doJSON(t, r, http.MethodPost, "/api/transactions", fmt.Sprintf(
		`{"accountId":%q,"type":"expense","amount":"50.00","description":"lunch","category":"food"}`,
		main.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var txn map[string]any
	decode(t, w, &txn)
	id, _ := txn["id"].(string)
	require.NotEmpty(t, id)

	// The balance rule runs server-side too.
	acct, err := st.Account(main.ID)
	require.NoError(t, err)
	assert.Equal(t, "2400", acct.Balance.String())

	w = doJSON(t, r, http.MethodGet, "/api/transactions?category=food", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	// Deleting twice is fine, and the balance stays where it was.
	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	acct, err = st.Account(main.ID)
	require.NoError(t, err)
	assert.Equal(t, "2400", acct.Balance.String())
}

func TestTransactionUnknownAccount(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/transactions",
		`{"accountId":"acc_missing","type":"income","amount":"10.00","category":"other"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionBadDateFilter(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/transactions?startDate=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebtLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/debts",
		`{"friendName":"Ravi","type":"owe","amount":"75.00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var debt map[string]any
	decode(t, w, &debt)
	id, _ := debt["id"].(string)

	w = doJSON(t, r, http.MethodPatch, "/api/debts/"+id, `{"amount":"80.00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &debt)
	assert.Equal(t, "80.00", debt["amount"])

	w = doJSON(t, r, http.MethodPost, "/api/debts/"+id+"/settle", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &debt)
	assert.Equal(t, true, debt["settled"])

	w = doJSON(t, r, http.MethodDelete, "/api/debts/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/debts/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReminderSnooze(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/reminders",
		`{"title":"rent","amount":"500.00","dueDate":"2026-09-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rem map[string]any
	decode(t, w, &rem)
	id, _ := rem["id"].(string)
	assert.Equal(t, "pending", rem["status"])

	w = doJSON(t, r, http.MethodPost, "/api/reminders/"+id+"/snooze",
		`{"until":"2026-09-08T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &rem)
	assert.Equal(t, "snoozed", rem["status"])

	w = doJSON(t, r, http.MethodPost, "/api/reminders/"+id+"/paid", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &rem)
	assert.Equal(t, "paid", rem["status"])
}

func TestSummaryEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var ov map[string]any
	decode(t, w, &ov)
	assert.Equal(t, "11200.00", ov["totalBalance"])
	assert.Contains(t, ov, "categorySpending")
	assert.Contains(t, ov, "recentTransactions")
}

// brokenStore simulates a backend whose reads fail, as a dropped
// database connection would.
type brokenStore struct {
	Store
}

func (brokenStore) Accounts() ([]model.Account, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Snapshot() (store.Snapshot, error) {
	return store.Snapshot{}, errors.New("connection refused")
}

func TestBackendErrorsSurfaceAsServerErrors(t *testing.T) {
	st := brokenStore{Store: store.New()}
	summaries := summary.NewService(st)
	chat := assist.NewService(st, summaries, assist.Local{})
	r := New(st, summaries, chat).Router()

	w := doJSON(t, r, http.MethodGet, "/api/accounts", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")

	w = doJSON(t, r, http.MethodGet, "/api/summary", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestChatEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/chat", `{"content":"what is my balance?"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var exchange map[string]map[string]any
	decode(t, w, &exchange)
	assert.Equal(t, "what is my balance?", exchange["user"]["content"])
	assert.NotEmpty(t, exchange["reply"]["content"])

	w = doJSON(t, r, http.MethodGet, "/api/chat", "")
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []map[string]any
	decode(t, w, &msgs)
	assert.Len(t, msgs, 2)

	w = doJSON(t, r, http.MethodPost, "/api/chat", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/chat", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/chat", "")
	decode(t, w, &msgs)
	assert.Empty(t, msgs)
}
