// Package network provides a pre-configured HTTP client and the fetcher used for landing pages and media files.
package network

import (
	"net/http"
	"time"

	"github.com/podfetch/podfetch/key"
	"github.com/spf13/viper"
)

// NewClient builds the shared HTTP client from the network settings.
// With network.tls_fingerprint set, HTTPS requests present a browser TLS fingerprint.
func NewClient() *http.Client {
	timeout := time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}

	var transport http.RoundTripper = newTransport()
	if viper.GetBool(key.NetworkTLSFingerprint) {
		transport = newFingerprintTransport(timeout)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
