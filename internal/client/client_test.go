package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetroops/pos-lebanon/internal/receipt"
)

func TestAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "", AuthorizationHeader(""))
	assert.Equal(t, "Basic YWxpY2U6c2VjcmV0", AuthorizationHeader("alice:secret"))
	assert.Equal(t, "Bearer eyJhbGciOiJIUzI1NiJ9.e30.sig", AuthorizationHeader("eyJhbGciOiJIUzI1NiJ9.e30.sig"))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "alice:secret", 5*time.Second, false)
}

func TestClient_GetConfig(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/pos/configs/3", r.URL.Path)
		assert.Equal(t, "Basic YWxpY2U6c2VjcmV0", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"name":"Beirut","lbp_usd_rate":89500,"display_lbp_total":true,"payment_method_ids":[1]}`))
	})

	cfg, err := c.GetConfig(3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), cfg.ID)
	assert.Equal(t, "Beirut", cfg.Name)
	assert.Equal(t, 89500.0, cfg.LBPUSDRate)
	assert.True(t, cfg.DisplayLBPTotal)
	assert.Equal(t, []uint{1}, cfg.PaymentMethodIDs)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"CONFIG_NOT_FOUND","message":"config 9 not found"}}`))
	})

	_, err := c.GetConfig(9)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "CONFIG_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "CONFIG_NOT_FOUND: config 9 not found", apiErr.Error())
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.ListConfigs()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "server returned status 502", apiErr.Error())
}

func TestClient_UpdateCurrencySendsOnlySetFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/pos/configs/1/currency", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"lbp_usd_rate": 90000.0}, body)

		_, _ = w.Write([]byte(`{"id":1,"name":"Main","lbp_usd_rate":90000,"display_lbp_total":true}`))
	})

	rate := 90000.0
	cfg, err := c.UpdateCurrency(1, CurrencyUpdate{LBPUSDRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, 90000.0, cfg.LBPUSDRate)
}

func TestClient_Convert(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pos/configs/1/convert", r.URL.Path)
		assert.Equal(t, "12.5", r.URL.Query().Get("amount"))
		_, _ = w.Write([]byte(`{"usd":12.5,"usd_formatted":"$ 12.50","lbp":1118750,"lbp_formatted":"1,118,750","rate":89500,"display_lbp_total":true}`))
	})

	conv, err := c.Convert(1, 12.5)
	require.NoError(t, err)
	assert.Equal(t, int64(1118750), conv.LBP)
	assert.Equal(t, "1,118,750", conv.LBPFormatted)
	assert.True(t, conv.ShowLBP)
}

func TestClient_AuthenticateCashier(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] == "secret" {
			_, _ = w.Write([]byte(`{"success":true,"user_id":7,"employee_id":false,"user_name":"alice"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid password."}`))
	})

	ok, err := c.AuthenticateCashier(1, "alice", "secret")
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.Equal(t, uint(7), ok.UserID)
	assert.Equal(t, false, ok.EmployeeID)

	bad, err := c.AuthenticateCashier(1, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, bad.Success)
	assert.Equal(t, "Invalid password.", bad.Message)
}

func TestClient_ShareReceipt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pos/configs/2/receipt/whatsapp", r.URL.Path)
		var body struct {
			Phone   string          `json:"phone"`
			Receipt receipt.Receipt `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "03 123 456", body.Phone)
		assert.Equal(t, "Order 0001", body.Receipt.OrderName)
		_, _ = w.Write([]byte(`{"url":"https://wa.me/96103123456?text=x","phone":"96103123456","message":"x"}`))
	})

	share, err := c.ShareReceipt(2, "03 123 456", receipt.Receipt{ShopName: "Shop", OrderName: "Order 0001", TotalUSD: 5})
	require.NoError(t, err)
	assert.Equal(t, "96103123456", share.Phone)
}

func TestClient_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc.def.ghi", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"username":"alice","user_id":7}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "abc.def.ghi", 5*time.Second, false)
	who, err := c.Whoami()
	require.NoError(t, err)
	assert.Equal(t, "alice", who.Username)
	assert.Equal(t, uint(7), who.UserID)
}
