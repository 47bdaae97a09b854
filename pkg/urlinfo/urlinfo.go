// Package urlinfo enriches extracted URLs with page titles. Enrichment is
// strictly best-effort: a URL that cannot be fetched or parsed keeps an
// empty title, and no error ever propagates to the caller.
package urlinfo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// maxBodyBytes caps how much of a page is read for title extraction.
const maxBodyBytes = 2 << 20

// Info is one enriched URL.
type Info struct {
	URL   string `yaml:"url" json:"url"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

type Client struct {
	client *http.Client
}

// NewClient returns an enrichment client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// Enrich fetches every URL and attaches a page title where one can be
// recovered. Order is preserved; failures are recorded per URL.
func (c *Client) Enrich(ctx context.Context, urls []string) []Info {
	out := make([]Info, len(urls))
	for i, u := range urls {
		out[i] = Info{URL: u}
		title, err := c.Title(ctx, u)
		if err != nil {
			out[i].Error = err.Error()
			continue
		}
		out[i].Title = title
	}
	return out
}

// Title fetches one page and extracts its title, preferring the
// readability article title and falling back to the <title> element.
func (c *Client) Title(ctx context.Context, rawURL string) (string, error) {
	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(string(body)), parsedURL)
	if err == nil && strings.TrimSpace(article.Title) != "" {
		return strings.TrimSpace(article.Title), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
