// Package offers talks to the partner Offers API and owns the
// credential bootstrap that establishes the service's identity with it.
package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"catalogd/internal/domain"
)

// Client is a bearer-token HTTP client for the partner Offers API.
// Outbound calls pass a shared rate limiter so a large catalog cannot
// hammer the partner during a sync cycle.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second/10), 10),
	}
}

// BaseURL returns the configured partner endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// UseToken attaches the bootstrapped access token to all later calls.
func (c *Client) UseToken(token string) { c.token = token }

// Authenticate requests a new access token. Called without a token, by
// the bootstrap only.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decoding auth response: %v", domain.ErrUpstream, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: auth response carries no token", domain.ErrUpstream)
	}
	return body.AccessToken, nil
}

// FetchOffers returns the partner's current offer snapshot for one
// product.
func (c *Client) FetchOffers(ctx context.Context, productID int64) ([]domain.FreshOffer, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/offers", productID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var fresh []domain.FreshOffer
	if err := json.NewDecoder(resp.Body).Decode(&fresh); err != nil {
		return nil, fmt.Errorf("%w: decoding offers for product %d: %v", domain.ErrUpstream, productID, err)
	}
	return fresh, nil
}

// RegisterProduct announces a newly created product to the partner so
// offers start flowing for it.
func (c *Client) RegisterProduct(ctx context.Context, p domain.Product) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/products/register", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		// The partner expects the raw token in a "Bearer" header, not
		// the usual Authorization scheme.
		req.Header.Set("Bearer", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrUpstream, method, path, resp.StatusCode)
	}
	return resp, nil
}
