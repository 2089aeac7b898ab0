package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeClient_CreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/intent", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(9200), body["amount"])

		_ = json.NewEncoder(w).Encode(map[string]string{"clientSecret": "pi_123_secret_abc"})
	}))
	defer server.Close()

	client := NewBridgeClient(server.URL+"/", "secret-key", time.Second)
	intent, err := client.CreatePaymentIntent(context.Background(), 9200)

	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
}

func TestBridgeClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":"card declined"}`))
	}))
	defer server.Close()

	client := NewBridgeClient(server.URL, "", time.Second)
	_, err := client.CreatePaymentIntent(context.Background(), 100)

	var apiErr *ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "card declined", apiErr.Message)
}

func TestBridgeClient_CreateConnectAccount(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/connect", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, userID.String(), body["userId"])
		assert.Equal(t, "ph@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://onboard", "accountId": "acct_1"})
	}))
	defer server.Close()

	account, err := NewBridgeClient(server.URL, "k", time.Second).CreateConnectAccount(context.Background(), userID, "ph@example.com")

	require.NoError(t, err)
	assert.Equal(t, "acct_1", account.AccountID)
	assert.Equal(t, "https://onboard", account.URL)
}

func TestBridgeClient_CreateTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount      int64  `json:"amount"`
			Destination string `json:"destination"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(8000), body.Amount)
		assert.Equal(t, "acct_1", body.Destination)

		_ = json.NewEncoder(w).Encode(map[string]string{"transfer": "tr_9"})
	}))
	defer server.Close()

	transfer, err := NewBridgeClient(server.URL, "k", time.Second).CreateTransfer(context.Background(), 8000, "acct_1")

	require.NoError(t, err)
	assert.Equal(t, "tr_9", transfer.ID)
}
