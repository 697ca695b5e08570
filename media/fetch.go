package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/resilience"
)

const (
	defaultFetchTimeout = 30 * time.Second
	maxFetchBytes       = 25 << 20 // Discord's attachment ceiling
)

// ogMediaPattern pulls the direct media URL out of a share page's OpenGraph
// metadata. GIF services (Tenor, Giphy) all expose one of these tags.
var ogMediaPattern = regexp.MustCompile(`<meta[^>]+(?:property|name)="og:(?:image|video)"[^>]+content="([^"]+)"`)

// Fetcher downloads media content and resolves share pages to direct URLs.
// Transient download failures are retried with backoff.
type Fetcher struct {
	client *http.Client
	retry  resilience.RetryConfig
}

// NewFetcher creates a fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		retry:  resilience.DefaultRetryConfig(),
	}
}

type fetched struct {
	data        []byte
	contentType string
}

// Fetch downloads the content at url and returns the bytes and the reported
// content type. Server-side failures (5xx, broken connections) are retried;
// client-side rejections are not.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	res, err := resilience.Retry(ctx, f.retry, func() (fetched, error) {
		return f.fetchOnce(ctx, url)
	})
	if err != nil {
		return nil, "", err
	}
	return res.data, res.contentType, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fetched{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fetched{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError ||
			resp.StatusCode == http.StatusTooManyRequests {
			return fetched{}, errors.MediaFetch(url, statusErr)
		}
		// A definitive rejection; retrying will not change the answer.
		return fetched{}, errors.New(errors.ErrCodeInvalidInput, statusErr.Error())
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return fetched{}, fmt.Errorf("read body: %w", err)
	}
	return fetched{data: data, contentType: resp.Header.Get("Content-Type")}, nil
}

// ResolveAnimated resolves an animated-image share page to the direct media
// URL advertised in its OpenGraph metadata.
func (f *Fetcher) ResolveAnimated(ctx context.Context, pageURL string) (string, error) {
	page, _, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	match := ogMediaPattern.FindSubmatch(page)
	if match == nil {
		return "", fmt.Errorf("no media metadata in page %s", pageURL)
	}
	return string(match[1]), nil
}
