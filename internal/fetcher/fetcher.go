package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// FailureKind classifies why a fetch failed so callers can map it to a
// meaningful status instead of a generic 500
type FailureKind int

const (
	KindInvalidURL FailureKind = iota
	KindTimeout
	KindNetwork
	KindUpstream
)

// Error is a typed fetch failure. KindUpstream carries the response status.
type Error struct {
	Kind   FailureKind
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		return fmt.Sprintf("invalid url: %v", e.Err)
	case KindTimeout:
		return "request timeout - the URL took too long to respond"
	case KindUpstream:
		return fmt.Sprintf("upstream returned status %d", e.Status)
	default:
		return fmt.Sprintf("failed to fetch url: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the raw fetched page before extraction
type Result struct {
	Body        []byte
	ContentType string
	FinalURL    string
}

const fetchTimeout = 30 * time.Second

// Fetcher performs bounded-time GETs against caller-supplied URLs
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Fetch validates the URL, issues the GET and returns the raw body.
// Only http and https schemes are accepted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &Error{Kind: KindInvalidURL, Err: fmt.Errorf("scheme %q not allowed", parsed.Scheme)}
	}

	log.Printf("[Fetcher] Fetching URL: %s", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}

	// Some sites reject bare scripted requests, so look like a browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Neurativo-Bot/1.0; Educational Content Extractor)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			log.Printf("[Fetcher] Timed out after %s: %s", fetchTimeout, rawURL)
			return nil, &Error{Kind: KindTimeout, Err: err}
		}
		log.Printf("[Fetcher] Request failed: %v", err)
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	log.Printf("[Fetcher] Response status: %d", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindUpstream, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/html"
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	log.Printf("[Fetcher] Fetched %d bytes (%s)", len(body), contentType)
	return &Result{Body: body, ContentType: contentType, FinalURL: finalURL}, nil
}

// isTimeout reports deadline and transport timeouts. Plain cancellation is
// not a timeout and falls through to the network kind.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsKind reports whether err is a fetch Error of the given kind
func IsKind(err error, kind FailureKind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}
