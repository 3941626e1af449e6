// Package source retrieves ontology documents from the local filesystem or
// over HTTP(S). Fetching is separate from parsing so the parser stays pure;
// a fetch failure is always a *SourceUnavailableError, distinct from a parse
// failure, so callers can decide to retry the fetch. No retry happens here.
package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a remote fetch. On timeout the fetch fails rather
// than hanging; there is no cancellation mechanism beyond it and the
// caller's context.
const DefaultTimeout = 30 * time.Second

// SourceUnavailableError reports that an ontology document could not be
// retrieved: filesystem miss, network failure, or timeout. Never retried
// automatically.
type SourceUnavailableError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Fetcher resolves ontology sources. The zero value is not usable; call
// NewFetcher.
type Fetcher struct {
	client *http.Client

	// AllowPrivate permits URLs resolving to loopback and private
	// addresses. Off by default to keep remote fetches pointed at public
	// ontology hosts; tests against local servers turn it on.
	AllowPrivate bool
}

// NewFetcher builds a fetcher with the given timeout; zero means
// DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// IsURL reports whether the source names a remote document.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch opens the named source for reading. Local paths are opened directly;
// http(s) URLs are validated and retrieved with the configured timeout. The
// caller owns the returned reader and must close it.
func (f *Fetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	if IsURL(src) {
		return f.fetchRemote(ctx, src)
	}
	file, err := os.Open(src)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src, Err: err}
	}
	return file, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, src string) (io.ReadCloser, error) {
	if err := f.validateURL(src); err != nil {
		return nil, &SourceUnavailableError{Source: src, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src, Err: err}
	}
	req.Header.Set("Accept", "application/rdf+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &SourceUnavailableError{
			Source: src,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return resp.Body, nil
}

// validateURL rejects schemes other than http(s) and, unless AllowPrivate is
// set, hosts that name loopback or private addresses.
func (f *Fetcher) validateURL(src string) error {
	u, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("URL has no host")
	}
	if f.AllowPrivate {
		return nil
	}

	host := u.Hostname()
	if host == "localhost" || strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("host %q is not a public address", host)
	}
	if ip := net.ParseIP(host); ip != nil && isPrivateIP(ip) {
		return fmt.Errorf("host %q is not a public address", host)
	}
	return nil
}

// isPrivateIP reports whether ip falls in a loopback, link-local, or private
// range.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsPrivate()
}
