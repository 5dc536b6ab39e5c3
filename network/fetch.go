package network

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/log"
	"github.com/podfetch/podfetch/podcast"
)

// Fetcher retrieves the body behind a URL.
// size is the announced content length, or -1 when unknown.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body io.ReadCloser, size int64, err error)
}

// HTTPFetcher is a Fetcher backed by an http.Client.
type HTTPFetcher struct {
	Client *http.Client
}

// NewFetcher returns an HTTPFetcher using NewClient.
func NewFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: NewClient()}
}

// Fetch issues a GET request. Transport failures and non-2xx statuses wrap podcast.ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", podcast.ErrFetch, url, err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8")

	log.Debugf("GET %s", url)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", podcast.ErrFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: %s: unexpected status %s", podcast.ErrFetch, url, resp.Status)
	}

	return resp.Body, resp.ContentLength, nil
}

// Page fetches url and returns the whole body as text.
func Page(ctx context.Context, f Fetcher, url string) (string, error) {
	body, _, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", podcast.ErrFetch, url, err)
	}

	return string(data), nil
}
