// Package paypal implements the payment-provider client against the PayPal
// Orders v2 and webhook verification APIs.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"panel/config"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"

	captureCompletedEvent = "PAYMENT.CAPTURE.COMPLETED"
)

// Client talks to the PayPal REST API with client-credentials auth.
type Client struct {
	clientID      string
	clientSecret  string
	webhookID     string
	returnBaseURL string
	baseURL       string
	price         string
	currency      string
	client        *http.Client

	tokenMutex   sync.Mutex
	accessToken  string
	tokenExpires time.Time
}

// NewClient creates the payment-provider client. The Environment setting
// picks the sandbox or live endpoint unless an explicit override is set.
func NewClient(cfg *config.Config) service.PaymentService {
	baseURL := cfg.PayPal.APIBaseURL
	if baseURL == "" {
		if strings.EqualFold(cfg.PayPal.Environment, "live") {
			baseURL = liveBaseURL
		} else {
			baseURL = sandboxBaseURL
		}
	}

	return &Client{
		clientID:      cfg.PayPal.ClientID,
		clientSecret:  cfg.PayPal.ClientSecret,
		webhookID:     cfg.PayPal.WebhookID,
		returnBaseURL: cfg.PayPal.ReturnBaseURL,
		baseURL:       baseURL,
		price:         cfg.Premium.Price,
		currency:      cfg.Premium.Currency,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

// getAccessToken returns a cached client-credentials token, refreshing it a
// minute before expiry.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpires) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token request")
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to request access token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)

		return "", errors.Errorf("token request returned status %d", resp.StatusCode)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}

	c.accessToken = tokenResponse.AccessToken
	c.tokenExpires = time.Now().Add(time.Duration(tokenResponse.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

// post issues an authenticated JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &payload)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)

		return errors.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", path)
	}

	return nil
}

// CreateOrder starts an order for the fixed premium price. The buyer's user
// ID travels in custom_id so the asynchronous webhook can attribute the
// purchase without a session.
func (c *Client) CreateOrder(ctx context.Context, userID string) (*service.PaymentOrder, error) {
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"custom_id": userID,
				"amount": map[string]any{
					"currency_code": c.currency,
					"value":         c.price,
				},
			},
		},
		"application_context": map[string]any{
			"return_url": c.returnBaseURL + "/payment-success",
			"cancel_url": c.returnBaseURL + "/payment-cancel",
		},
	}

	var created struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}

	if err := c.post(ctx, "/v2/checkout/orders", body, &created); err != nil {
		return nil, domainerrors.ErrPaymentFailed.Wrap(err)
	}

	order := &service.PaymentOrder{OrderID: created.ID}
	for _, link := range created.Links {
		if link.Rel == "approve" {
			order.ApprovalURL = link.Href

			break
		}
	}

	if order.ApprovalURL == "" {
		return nil, domainerrors.ErrPaymentFailed.Wrap(errors.New("order response carried no approval link"))
	}

	return order, nil
}

// CaptureOrder captures an approved order on the browser-return path.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*service.PaymentCaptureResult, error) {
	var captured struct {
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID         string    `json:"id"`
					CustomID   string    `json:"custom_id"`
					Status     string    `json:"status"`
					CreateTime time.Time `json:"create_time"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}

	if err := c.post(ctx, "/v2/checkout/orders/"+orderID+"/capture", struct{}{}, &captured); err != nil {
		return nil, domainerrors.ErrPaymentFailed.Wrap(err)
	}

	for _, unit := range captured.PurchaseUnits {
		for _, capture := range unit.Payments.Captures {
			if capture.Status != "COMPLETED" {
				continue
			}

			capturedAt := capture.CreateTime
			if capturedAt.IsZero() {
				capturedAt = time.Now()
			}

			return &service.PaymentCaptureResult{
				CaptureID:  capture.ID,
				UserID:     capture.CustomID,
				CapturedAt: capturedAt,
			}, nil
		}
	}

	return nil, domainerrors.ErrPaymentFailed.Wrap(errors.New("capture response carried no completed capture"))
}

// VerifyWebhook checks notification authenticity with the provider's
// verification endpoint. The raw body bytes go through untouched; the
// provider rejects a re-serialized body.
func (c *Client) VerifyWebhook(ctx context.Context, headers http.Header, rawBody []byte) (bool, error) {
	body := map[string]any{
		"auth_algo":         headers.Get("Paypal-Auth-Algo"),
		"cert_url":          headers.Get("Paypal-Cert-Url"),
		"transmission_id":   headers.Get("Paypal-Transmission-Id"),
		"transmission_sig":  headers.Get("Paypal-Transmission-Sig"),
		"transmission_time": headers.Get("Paypal-Transmission-Time"),
		"webhook_id":        c.webhookID,
		"webhook_event":     json.RawMessage(rawBody),
	}

	var result struct {
		VerificationStatus string `json:"verification_status"`
	}

	if err := c.post(ctx, "/v1/notifications/verify-webhook-signature", body, &result); err != nil {
		return false, domainerrors.ErrWebhookVerificationFailed.Wrap(err)
	}

	return result.VerificationStatus == "SUCCESS", nil
}

// ParseWebhookEvent extracts the capture from a verified notification body.
func (c *Client) ParseWebhookEvent(rawBody []byte) (*service.PaymentCaptureResult, error) {
	var event struct {
		EventType string `json:"event_type"`
		Resource  struct {
			ID         string    `json:"id"`
			CustomID   string    `json:"custom_id"`
			CreateTime time.Time `json:"create_time"`
		} `json:"resource"`
	}

	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode webhook event")
	}

	if event.EventType != captureCompletedEvent {
		return nil, nil
	}

	if event.Resource.ID == "" || event.Resource.CustomID == "" {
		return nil, errors.New("capture event missing id or custom_id")
	}

	capturedAt := event.Resource.CreateTime
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	return &service.PaymentCaptureResult{
		CaptureID:  event.Resource.ID,
		UserID:     event.Resource.CustomID,
		CapturedAt: capturedAt,
	}, nil
}
