// Package fetch retrieves job postings from URLs and reduces the HTML
// to the posting text. It knows the markup of the common ATS platforms
// and falls back to headless rendering for JavaScript-only pages.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies our requests to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeMatcher/1.0)"

// Result holds the raw and processed content of a fetched page.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
}

// Error wraps a fetch failure with the URL that caused it.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures HTTP fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the standard fetch configuration.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves the HTML content of a page.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return result, nil
}

// ExtractPostingText parses HTML and returns the job posting body text.
// Noise elements are stripped first, then the content selectors are tried
// in order; the document body is the fallback when none match.
func ExtractPostingText(html string, contentSelectors, noiseSelectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var content *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return collapseBlankLines(content.Text()), nil
}

// JobPosting fetches a job posting URL and extracts its text using
// selectors appropriate for the detected platform. When the extracted
// text looks like an unrendered SPA shell and useBrowser is set, the
// page is re-rendered in a headless browser before extraction.
func JobPosting(ctx context.Context, urlStr string, useBrowser bool, opts *Options) (*Result, error) {
	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	text, err := ExtractPostingText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
	}

	if NeedsBrowserRendering(text) && useBrowser {
		timeout := DefaultTimeout
		if opts != nil && opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		html, err := RenderWithBrowser(ctx, urlStr, timeout)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
		}
		result.HTML = html
		text, err = ExtractPostingText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform))
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: urlStr, Message: "page contained no extractable text"}
	}

	result.Text = text
	return result, nil
}

func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
