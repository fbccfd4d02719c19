// Package authtoken fetches and caches OAuth2 client-credentials tokens. A
// *Client satisfies backend.TokenProvider.
package authtoken

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Sultan0902/BackendProvider/jsonutil"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

var (
	ErrTokenRequestFailed = errors.New("authtoken: token request failed")
	ErrNoAccessToken      = errors.New("authtoken: no access token in response")
	ErrRefreshThrottled   = errors.New("authtoken: token refresh throttled")
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultRefreshEvery  = time.Second
	DefaultRefreshBurst  = 5
	tokenExpiryBuffer    = 30 * time.Second
	grantTypeCredentials = "client_credentials"
)

//nolint:tagliatelle
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Client struct {
	tokenURL     string
	clientID     string
	clientSecret string
	restyClient  *resty.Client
	timeout      time.Duration
	limiter      *rate.Limiter

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

func New(tokenURL, clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		restyClient:  nil,
		timeout:      DefaultTimeout,
		limiter:      rate.NewLimiter(rate.Every(DefaultRefreshEvery), DefaultRefreshBurst),
		mu:           sync.RWMutex{},
		accessToken:  "",
		expiresAt:    time.Time{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = resty.New().SetHeader("Accept", "application/json")
	}

	return c
}

func (c *Client) GetToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		token := c.accessToken
		c.mu.RUnlock()

		return token, nil
	}
	c.mu.RUnlock()

	return c.refreshToken(ctx)
}

func (c *Client) refreshToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	// Bounds refetches when a backend keeps rejecting fresh tokens.
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshThrottled, err)
	}

	token, expiresIn, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.accessToken = token
	c.expiresAt = time.Now().Add(time.Duration(expiresIn)*time.Second - tokenExpiryBuffer)

	return c.accessToken, nil
}

func (c *Client) fetchToken(ctx context.Context) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    grantTypeCredentials,
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
		}).
		Post(c.tokenURL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch token: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", 0, fmt.Errorf("%w: status %d", ErrTokenRequestFailed, resp.StatusCode())
	}

	tokenResp, err := jsonutil.Decode[tokenResponse](jsonutil.Default, resp.Body())
	if err != nil {
		return "", 0, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", 0, ErrNoAccessToken
	}

	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}

func (c *Client) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = ""
	c.expiresAt = time.Time{}
}
