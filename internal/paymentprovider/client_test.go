package paymentprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "100", req.Amount)
		assert.Equal(t, "ETB", req.Currency)
		assert.Equal(t, "unifinder-5-abc", req.TxRef)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"message": "Hosted Link",
			"data":    map[string]string{"checkout_url": "https://checkout.chapa.co/pay/xyz"},
		})
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)
	resp, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Amount:   "100",
		Currency: "ETB",
		Email:    "user@example.com",
		TxRef:    "unifinder-5-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "https://checkout.chapa.co/pay/xyz", resp.Data.CheckoutURL)
}

func TestInitializeTransaction_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "failed",
			"message": "Invalid currency",
		})
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)
	resp, err := client.InitializeTransaction(context.Background(), InitializeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "Invalid currency", resp.Message)
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/unifinder-5-abc", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]string{"status": "success"},
		})
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)
	resp, err := client.VerifyTransaction(context.Background(), "unifinder-5-abc")
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Data.Status)
}

func TestVerifyTransaction_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // клиент получает отказ соединения

	client := NewClient("sk-test", srv.URL)
	_, err := client.VerifyTransaction(context.Background(), "unifinder-5-abc")
	assert.Error(t, err)
}
