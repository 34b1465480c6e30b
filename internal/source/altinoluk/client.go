// Package altinoluk scrapes the altinoluk.com.tr magazine archive. The
// site has no API; everything is parsed out of subscriber-facing HTML, so
// the selectors here track the site's templates and degrade to empty
// results when the markup changes.
package altinoluk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/meoncu/34webdergi/internal/domain"
)

const (
	SourceID   = "altinoluk"
	SourceName = "Altınoluk Dergisi"
)

// Config holds site coupling: base origin, browser identity and the issue
// number anchor the resolver calibrates against.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	UserAgent      string
	AcceptLanguage string
	ReferenceIssue int
	ReferenceYear  int
	ReferenceMonth domain.Month
}

// Source fetches and parses archive pages.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	acceptLanguage string
	refIssue       int
	refYear        int
	refMonth       domain.Month
	converter      *md.Converter
	logger         *slog.Logger
}

// New creates a new Altınoluk source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		refIssue:       cfg.ReferenceIssue,
		refYear:        cfg.ReferenceYear,
		refMonth:       cfg.ReferenceMonth,
		converter:      md.NewConverter("", true, nil),
		logger:         logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// FetchError is a failed page fetch: network error, timeout or a non-2xx
// status. It is fatal to the single fetch and never retried here; retrying
// is an operator re-run.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NormalizeCookie wraps a bare session token as a PHPSESSID cookie so
// operators can paste either the raw token or a full cookie header.
func NormalizeCookie(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "=") {
		return "PHPSESSID=" + raw
	}
	return raw
}

// fetch performs one GET and returns the parsed document plus the raw page
// body (needed for paywall phrase detection on the whole page, not just
// the extracted container).
func (s *Source) fetch(ctx context.Context, pageURL, cookie string) (*goquery.Document, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", s.acceptLanguage)
	if cookie != "" {
		req.Header.Set("Cookie", NormalizeCookie(cookie))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &FetchError{URL: pageURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &FetchError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("parse html: %w", err)
	}

	return doc, string(body), nil
}

// resolveURL resolves hrefs against the site origin the way the archive
// links them: absolute links pass through, everything else is root-relative.
func (s *Source) resolveURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return s.baseURL + href
}
