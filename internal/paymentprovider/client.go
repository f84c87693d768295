// Package paymentprovider реализует клиент Stripe Checkout: создание
// hosted-сессии оплаты и её авторитетное чтение для верификации платежа.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client — HTTP-клиент Stripe API с Bearer-авторизацией секретным ключом.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Stripe.
func NewClient(secretKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secretKey:  secretKey,
		apiURL:     "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s: %s", resp.Status, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe: unexpected status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// CreateCheckoutSession создаёт hosted checkout-сессию с одной позицией.
// Метаданные сессии используются при верификации платежа.
func (c *Client) CreateCheckoutSession(ctx context.Context, reqParams CreateSessionRequest) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", reqParams.Currency)
	form.Set("line_items[0][price_data][product_data][name]", reqParams.ProductName)
	form.Set("line_items[0][price_data][product_data][description]", reqParams.ProductDescription)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(reqParams.UnitAmount, 10))
	form.Set("line_items[0][quantity]", strconv.Itoa(reqParams.Quantity))
	form.Set("success_url", reqParams.SuccessURL)
	form.Set("cancel_url", reqParams.CancelURL)
	for key, value := range reqParams.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/checkout/sessions", form)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession возвращает сессию по её идентификатору. Ответ Stripe
// авторитетен: именно по нему подтверждается факт оплаты.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
