package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/monitoring-service/domain/errors"
)

const (
	maxExcerptRunes  = 280
	maxDocumentBytes = 4 << 20
)

// HTTPChecker searches each target site through its search page and keeps
// links whose text or title matches the fingerprint.
type HTTPChecker struct {
	client     *http.Client
	searchPath string
	maxBytes   int64
	now        func() time.Time
}

// NewHTTPChecker uses "/?s=" when searchPath is empty.
func NewHTTPChecker(client *http.Client, searchPath string) *HTTPChecker {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if strings.TrimSpace(searchPath) == "" {
		searchPath = "/?s="
	}
	return &HTTPChecker{
		client:     client,
		searchPath: searchPath,
		maxBytes:   maxDocumentBytes,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Check fails only when every target fails.
func (c *HTTPChecker) Check(
	ctx context.Context,
	targets []string,
	fingerprint entities.Fingerprint,
) ([]entities.Candidate, error) {
	if len(targets) == 0 {
		return []entities.Candidate{}, nil
	}

	candidates := make([]entities.Candidate, 0)
	seen := map[string]struct{}{}
	var errs []error
	for _, target := range targets {
		pageURL, err := c.searchURL(target, fingerprint)
		if err != nil {
			errs = append(errs, fmt.Errorf("target %s: %w", target, err))
			continue
		}
		doc, err := c.fetchDocument(ctx, pageURL.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("target %s: %w", target, err))
			continue
		}
		for _, candidate := range c.extract(doc, pageURL, fingerprint) {
			if _, ok := seen[candidate.URL]; ok {
				continue
			}
			seen[candidate.URL] = struct{}{}
			candidates = append(candidates, candidate)
		}
	}
	if len(errs) == len(targets) {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrCheckerUnavailable, errors.Join(errs...))
	}
	return candidates, nil
}

func (c *HTTPChecker) searchURL(target string, fingerprint entities.Fingerprint) (*url.URL, error) {
	base := strings.TrimSpace(target)
	if base == "" {
		return nil, errors.New("empty target")
	}
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	parsed, err := url.Parse(strings.TrimSuffix(base, "/") + c.searchPath + url.QueryEscape(strings.TrimSpace(fingerprint.Title)))
	if err != nil {
		return nil, fmt.Errorf("build search url: %w", err)
	}
	return parsed, nil
}

func (c *HTTPChecker) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "pressroom-monitor/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("site returned %s", resp.Status)
	}
	// Anything past maxBytes is not parsed.
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func (c *HTTPChecker) extract(doc *goquery.Document, page *url.URL, fingerprint entities.Fingerprint) []entities.Candidate {
	found := make([]entities.Candidate, 0)
	foundAt := c.now()
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		text := strings.Join(strings.Fields(link.Text()), " ")
		title, _ := link.Attr("title")
		if !fingerprint.Matches(text) && !fingerprint.Matches(title) {
			return
		}
		href, _ := link.Attr("href")
		resolved, err := page.Parse(strings.TrimSpace(href))
		if err != nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}
		excerpt := text
		if excerpt == "" {
			excerpt = title
		}
		if parent := link.Closest("article, li, p"); parent.Length() > 0 {
			if surrounding := strings.Join(strings.Fields(parent.Text()), " "); surrounding != "" {
				excerpt = surrounding
			}
		}
		found = append(found, entities.Candidate{
			URL:         resolved.String(),
			WebsiteName: resolved.Hostname(),
			FoundAt:     foundAt,
			Excerpt:     truncate(excerpt, maxExcerptRunes),
		})
	})
	return found
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}
