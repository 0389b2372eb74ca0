package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/chucky-1/cashflow/internal/model"
	"github.com/chucky-1/cashflow/internal/producer"
	"github.com/chucky-1/cashflow/internal/repository"
	"github.com/chucky-1/cashflow/internal/service"
)

const testSecret = "s3cret"

func init() {
	gin.SetMode(gin.TestMode)
}

type reminderFunc func(ctx context.Context) error

func (f reminderFunc) Send(ctx context.Context) error {
	return f(ctx)
}

func newTestLedger(storage *repository.LocalStorage) *service.Ledger {
	return service.NewLedger(storage, storage, storage, validator.New(), service.Settings{
		WalletID:   1,
		WageAmount: 5040,
		Location:   time.UTC,
		Clock:      func() time.Time { return time.Date(2024, 1, 6, 22, 0, 0, 0, time.UTC) },
	})
}

func setupTestServer(t *testing.T, secret string, reminder producer.Reminder) (http.Handler, *repository.LocalStorage) {
	t.Helper()
	storage := repository.NewLocalStorage()
	if reminder == nil {
		reminder = reminderFunc(func(context.Context) error { return nil })
	}
	h := NewHTTP(":0", newTestLedger(storage), service.NewAuth(secret), reminder)
	return h.Handler(), storage
}

func performRequest(r http.Handler, method, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	header := http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}
	return performRequest(r, http.MethodPost, path, strings.NewReader(form.Encode()), header)
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

func outstandingReceivables(t *testing.T, storage *repository.LocalStorage) []model.Receivable {
	t.Helper()
	rs, err := storage.OutstandingReceivables(context.Background())
	require.NoError(t, err)
	return rs
}

func TestHTTP_Healthz(t *testing.T) {
	r, _ := setupTestServer(t, testSecret, nil)

	resp := performRequest(r, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "ok", resp.Body.String())
}

func TestHTTP_Overview(t *testing.T) {
	r, storage := setupTestServer(t, testSecret, nil)
	_, err := storage.ProvisionWallet(context.Background(), &model.Wallet{ID: 1, CurrentCash: 1000, SafetyBuffer: 500})
	require.NoError(t, err)

	resp := postForm(r, "/receivables", url.Values{"title": {"refund"}, "amount": {"200"}, "dueDate": {"2024-01-27"}})
	require.Equal(t, http.StatusSeeOther, resp.Code)

	resp = performRequest(r, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var overview model.Overview
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &overview))
	require.Equal(t, int64(1000), overview.Wallet.CurrentCash)
	require.Len(t, overview.Receivables, 1)
	require.Empty(t, overview.Payables)
	require.Equal(t, "2024-01-27", overview.Projection.Cutoff)
	require.Equal(t, int64(1200), overview.Projection.ProjectedBalance)
	require.Equal(t, model.RiskSafe, overview.Projection.Risk)
}

func TestHTTP_AddReceivable(t *testing.T) {
	testTable := []struct {
		name   string
		form   url.Values
		status int
		body   string
	}{
		{
			name:   "valid",
			form:   url.Values{"title": {"refund"}, "amount": {"1200"}, "dueDate": {"2024-01-20"}},
			status: http.StatusSeeOther,
		},
		{
			name:   "blank title",
			form:   url.Values{"title": {" "}, "amount": {"1200"}, "dueDate": {"2024-01-20"}},
			status: http.StatusBadRequest,
			body:   `{"error":"invalid title: failed \"required\""}`,
		},
		{
			name:   "zero amount",
			form:   url.Values{"title": {"refund"}, "amount": {"0"}, "dueDate": {"2024-01-20"}},
			status: http.StatusBadRequest,
			body:   `{"error":"invalid amount: failed \"gt\""}`,
		},
		{
			name:   "non numeric amount",
			form:   url.Values{"title": {"refund"}, "amount": {"lots"}, "dueDate": {"2024-01-20"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed due date",
			form:   url.Values{"title": {"refund"}, "amount": {"1200"}, "dueDate": {"20/01/2024"}},
			status: http.StatusBadRequest,
			body:   `{"error":"invalid duedate: failed \"datetime\""}`,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			r, storage := setupTestServer(t, testSecret, nil)

			resp := postForm(r, "/receivables", testCase.form)
			require.Equal(t, testCase.status, resp.Code)
			if testCase.body != "" {
				require.JSONEq(t, testCase.body, resp.Body.String())
			}
			if testCase.status == http.StatusSeeOther {
				require.Equal(t, "/", resp.Header().Get("Location"))
				require.Len(t, outstandingReceivables(t, storage), 1)
				return
			}
			require.Empty(t, outstandingReceivables(t, storage))
		})
	}
}

func TestHTTP_AddPayable(t *testing.T) {
	r, storage := setupTestServer(t, testSecret, nil)

	resp := postForm(r, "/payables", url.Values{"title": {"card"}, "amount": {"8000"}})
	require.Equal(t, http.StatusSeeOther, resp.Code)

	payables, err := storage.OutstandingPayables(context.Background())
	require.NoError(t, err)
	require.Len(t, payables, 1)
	require.Equal(t, "2024-02-27", payables[0].DueDate)

	resp = postForm(r, "/payables", url.Values{"title": {"card"}})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_UpdateCash(t *testing.T) {
	r, storage := setupTestServer(t, testSecret, nil)

	resp := postForm(r, "/cash", url.Values{"type": {"spend"}, "amount": {"300"}})
	require.Equal(t, http.StatusNotFound, resp.Code)

	_, err := storage.ProvisionWallet(context.Background(), &model.Wallet{ID: 1, CurrentCash: 1000})
	require.NoError(t, err)

	resp = postForm(r, "/cash", url.Values{"type": {"spend"}, "amount": {"300"}})
	require.Equal(t, http.StatusSeeOther, resp.Code)
	resp = postForm(r, "/cash", url.Values{"type": {"income"}, "amount": {"50"}})
	require.Equal(t, http.StatusSeeOther, resp.Code)
	resp = postForm(r, "/cash", url.Values{"type": {"withdraw"}, "amount": {"50"}})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	wallet, err := storage.GetWallet(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(750), wallet.CurrentCash)
}

func TestHTTP_QuickAdd(t *testing.T) {
	r, storage := setupTestServer(t, testSecret, nil)

	resp := performRequest(r, http.MethodGet, "/api/quick-add?key=wrong", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "Unauthorized", resp.Body.String())
	require.Empty(t, outstandingReceivables(t, storage))

	for i := 0; i < 2; i++ {
		resp = performRequest(r, http.MethodGet, "/api/quick-add?key="+testSecret, nil, nil)
		require.Equal(t, http.StatusSeeOther, resp.Code)
		require.Equal(t, "/", resp.Header().Get("Location"))
	}

	receivables := outstandingReceivables(t, storage)
	require.Len(t, receivables, 1)
	require.Equal(t, "1月分給与", receivables[0].Title)
	require.Equal(t, "2024-02-15", receivables[0].DueDate)
	require.Equal(t, int64(10080), receivables[0].Amount)
}

func TestHTTP_QuickAddWithoutSecret(t *testing.T) {
	r, storage := setupTestServer(t, "", nil)

	resp := performRequest(r, http.MethodGet, "/api/quick-add?key=", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	resp = performRequest(r, http.MethodGet, "/api/quick-add", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Empty(t, outstandingReceivables(t, storage))
}

func TestHTTP_RemindShift(t *testing.T) {
	testTable := []struct {
		name      string
		header    http.Header
		sendErr   error
		status    int
		body      string
		wantCalls int
	}{
		{
			name:   "missing credential",
			status: http.StatusUnauthorized,
		},
		{
			name:   "wrong credential",
			header: bearer("nope"),
			status: http.StatusUnauthorized,
		},
		{
			name:      "webhook not configured",
			header:    bearer(testSecret),
			sendErr:   producer.ErrWebhookNotConfigured,
			status:    http.StatusInternalServerError,
			body:      `{"error":"Webhook URL not set"}`,
			wantCalls: 1,
		},
		{
			name:      "delivery failed",
			header:    bearer(testSecret),
			sendErr:   fmt.Errorf("%w: status 400", producer.ErrDelivery),
			status:    http.StatusInternalServerError,
			body:      `{"error":"Failed to send to Discord"}`,
			wantCalls: 1,
		},
		{
			name:      "sent",
			header:    bearer(testSecret),
			status:    http.StatusOK,
			body:      `{"success":true}`,
			wantCalls: 1,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			calls := 0
			r, _ := setupTestServer(t, testSecret, reminderFunc(func(context.Context) error {
				calls++
				return testCase.sendErr
			}))

			resp := performRequest(r, http.MethodGet, "/api/cron/remind-shift", nil, testCase.header)
			require.Equal(t, testCase.status, resp.Code)
			if testCase.body != "" {
				require.JSONEq(t, testCase.body, resp.Body.String())
			}
			require.Equal(t, testCase.wantCalls, calls)
		})
	}
}

func TestHTTP_RemindShiftDeliversToDiscord(t *testing.T) {
	var payload struct {
		Embeds []struct {
			URL string `json:"url"`
		} `json:"embeds"`
	}
	discord := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer discord.Close()

	reminder := service.NewReminder(producer.NewDiscord(discord.URL), "https://cash.example/", testSecret, 5040)
	r, _ := setupTestServer(t, testSecret, reminder)

	resp := performRequest(r, http.MethodGet, "/api/cron/remind-shift", nil, bearer(testSecret))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, payload.Embeds, 1)
	require.Equal(t, "https://cash.example/api/quick-add?key=s3cret", payload.Embeds[0].URL)
}
