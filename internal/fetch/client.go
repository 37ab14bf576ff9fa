package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"wasc-audit/internal/webpage"
)

// Some public-sector sites answer differently to bot-looking requests, so
// the client presents browser-like headers.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/74.0.3729.169 Safari/537.36"
	referer   = "https://www.google.com/"
)

// Client fetches pages and parses them into webpage documents.
type Client struct {
	http *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	r := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Referer", referer).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &Client{http: r}
}

// GetPage downloads url and parses the response body. A non-2xx status is an
// error.
func (c *Client) GetPage(ctx context.Context, url string) (*webpage.Document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get %s: HTML Error Status %d", url, resp.StatusCode())
	}
	return webpage.ParseBytes(resp.Body(), resp.Header().Get("Content-Type"))
}

// Exists reports whether url answers with a success status. Used as a
// lightweight probe for conventional URLs; tries HEAD first, then GET for
// servers that refuse HEAD.
func (c *Client) Exists(ctx context.Context, url string) bool {
	resp, err := c.http.R().SetContext(ctx).Head(url)
	if err == nil && resp.IsSuccess() {
		return true
	}
	resp, err = c.http.R().SetContext(ctx).Get(url)
	return err == nil && resp.IsSuccess()
}
