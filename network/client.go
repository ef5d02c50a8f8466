// Package network provides the HTTP client shared by update checks and origin probing.
package network

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ytbridge/ytbridge/constant"
)

// Client is shared across the application.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// Get fetches url with the application user agent.
func Get(url string) (*http.Response, error) {
	return do(context.Background(), http.MethodGet, url)
}

func do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	return Client.Do(req)
}

// Reachable reports whether url answers with a non-error status.
func Reachable(ctx context.Context, url string) error {
	resp, err := do(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s answered %s", url, resp.Status)
	}
	return nil
}
