package paypal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"panel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenHandler answers the client-credentials token request that precedes
// every API call; other paths fall through to next.
func tokenHandler(t *testing.T, next http.HandlerFunc) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "pp-client", user)
			require.Equal(t, "pp-secret", pass)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"pp-access","expires_in":32400}`))

			return
		}

		next(w, r)
	})
}

func newTestClient(t *testing.T, next http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(tokenHandler(t, next))
	t.Cleanup(server.Close)

	client := NewClient(&config.Config{
		PayPal: &config.PayPalConfig{
			ClientID:      "pp-client",
			ClientSecret:  "pp-secret",
			WebhookID:     "wh-1",
			ReturnBaseURL: "http://localhost:3000",
			APIBaseURL:    server.URL,
		},
		Premium: &config.PremiumConfig{Price: "4.99", Currency: "USD"},
	})

	return client.(*Client)
}

func TestClient_CreateOrder(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders", r.URL.Path)
		require.Equal(t, "Bearer pp-access", r.Header.Get("Authorization"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id":"order-1",
			"links":[
				{"href":"https://paypal.test/self","rel":"self"},
				{"href":"https://paypal.test/approve","rel":"approve"}
			]
		}`))
	})

	order, err := client.CreateOrder(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.OrderID)
	assert.Equal(t, "https://paypal.test/approve", order.ApprovalURL)

	assert.Equal(t, "CAPTURE", gotBody["intent"])
	units := gotBody["purchase_units"].([]any)
	unit := units[0].(map[string]any)
	assert.Equal(t, "user-1", unit["custom_id"])
	amount := unit["amount"].(map[string]any)
	assert.Equal(t, "USD", amount["currency_code"])
	assert.Equal(t, "4.99", amount["value"])
}

func TestClient_CreateOrder_NoApprovalLink(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"order-1","links":[{"href":"https://paypal.test/self","rel":"self"}]}`))
	})

	_, err := client.CreateOrder(context.Background(), "user-1")
	require.Error(t, err)
}

func TestClient_CaptureOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders/order-1/capture", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"purchase_units":[{"payments":{"captures":[
				{"id":"cap-1","custom_id":"user-1","status":"COMPLETED","create_time":"2026-08-29T10:00:00Z"}
			]}}]
		}`))
	})

	capture, err := client.CaptureOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "cap-1", capture.CaptureID)
	assert.Equal(t, "user-1", capture.UserID)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), capture.CapturedAt)
}

func TestClient_CaptureOrder_NoCompletedCapture(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"purchase_units":[{"payments":{"captures":[
				{"id":"cap-1","custom_id":"user-1","status":"PENDING"}
			]}}]
		}`))
	})

	_, err := client.CaptureOrder(context.Background(), "order-1")
	require.Error(t, err)
}

func TestClient_VerifyWebhook_PassesRawBodyThrough(t *testing.T) {
	rawBody := []byte(`{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"id":"cap-1"}}`)

	var gotBody map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/notifications/verify-webhook-signature", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verification_status":"SUCCESS"}`))
	})

	headers := http.Header{}
	headers.Set("Paypal-Auth-Algo", "SHA256withRSA")
	headers.Set("Paypal-Cert-Url", "https://api.paypal.test/cert")
	headers.Set("Paypal-Transmission-Id", "tid-1")
	headers.Set("Paypal-Transmission-Sig", "sig-1")
	headers.Set("Paypal-Transmission-Time", "2026-08-29T10:00:00Z")

	verified, err := client.VerifyWebhook(context.Background(), headers, rawBody)
	require.NoError(t, err)
	assert.True(t, verified)

	// The event block is forwarded as received, not re-serialized.
	assert.Equal(t, string(rawBody), string(gotBody["webhook_event"]))

	var webhookID string
	require.NoError(t, json.Unmarshal(gotBody["webhook_id"], &webhookID))
	assert.Equal(t, "wh-1", webhookID)
}

func TestClient_VerifyWebhook_Failure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verification_status":"FAILURE"}`))
	})

	verified, err := client.VerifyWebhook(context.Background(), http.Header{}, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestClient_ParseWebhookEvent(t *testing.T) {
	client := &Client{}

	capture, err := client.ParseWebhookEvent([]byte(`{
		"event_type":"PAYMENT.CAPTURE.COMPLETED",
		"resource":{"id":"cap-1","custom_id":"user-1","create_time":"2026-08-29T10:00:00Z"}
	}`))
	require.NoError(t, err)
	require.NotNil(t, capture)
	assert.Equal(t, "cap-1", capture.CaptureID)
	assert.Equal(t, "user-1", capture.UserID)
}

func TestClient_ParseWebhookEvent_NonCaptureEvent(t *testing.T) {
	client := &Client{}

	capture, err := client.ParseWebhookEvent([]byte(`{"event_type":"CHECKOUT.ORDER.APPROVED","resource":{"id":"order-1"}}`))
	require.NoError(t, err)
	assert.Nil(t, capture)
}

func TestClient_ParseWebhookEvent_MissingAttribution(t *testing.T) {
	client := &Client{}

	_, err := client.ParseWebhookEvent([]byte(`{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"id":"cap-1"}}`))
	require.Error(t, err)
}

func TestClient_TokenIsCachedAcrossCalls(t *testing.T) {
	tokenRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/oauth2/token" {
			tokenRequests++
			_, _ = w.Write([]byte(`{"access_token":"pp-access","expires_in":32400}`))

			return
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"order-1","links":[{"href":"https://paypal.test/approve","rel":"approve"}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(&config.Config{
		PayPal:  &config.PayPalConfig{ClientID: "pp-client", ClientSecret: "pp-secret", APIBaseURL: server.URL},
		Premium: &config.PremiumConfig{Price: "4.99", Currency: "USD"},
	}).(*Client)

	ctx := context.Background()
	_, err := client.CreateOrder(ctx, "user-1")
	require.NoError(t, err)
	_, err = client.CreateOrder(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, tokenRequests)
}
