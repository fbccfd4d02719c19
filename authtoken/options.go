package authtoken

import (
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Option func(*Client)

// WithRestyClient sends token requests through restyClient, for example one
// built by backend.Client.Resty so token requests share its transport.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *Client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRefreshLimit allows burst token fetches, then one per every.
func WithRefreshLimit(every time.Duration, burst int) Option {
	return func(c *Client) {
		if every > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Every(every), burst)
		}
	}
}
