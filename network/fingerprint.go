package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/podfetch/podfetch/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// fingerprintTransport sends HTTPS requests over connections whose Client Hello
// mimics Chrome 120. It tries HTTP/2 first and falls back to HTTP/1.1.
// Plain HTTP requests use the regular tuned transport.
type fingerprintTransport struct {
	plain *http.Transport
	h2    *http2.Transport
	h1    *http.Transport
}

func newFingerprintTransport(timeout time.Duration) *fingerprintTransport {
	dialer := &net.Dialer{Timeout: timeout}

	return &fingerprintTransport{
		plain: newTransport(),
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialFingerprinted(ctx, dialer, network, addr, nil)
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialFingerprinted(ctx, dialer, network, addr, []string{"http/1.1"})
			},
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// GET requests have no body so the request can be replayed as is.
	log.Debugf("h2 request to %s failed, retrying over http/1.1: %s", req.URL.Host, err)
	return t.h1.RoundTrip(req)
}

// dialFingerprinted opens a TLS connection with Chrome's Client Hello.
// A nil protos keeps Chrome's own ALPN list (h2, http/1.1).
func dialFingerprinted(ctx context.Context, dialer *net.Dialer, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
