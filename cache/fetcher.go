package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the remote store has no blob at the
// requested path (HTTP 404, or 403 from stores that hide missing
// keys).
var ErrNotFound = errors.New("wait times not found")

// FetchError reports a remote response that is neither success nor
// not-found.
type FetchError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching %s: HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// Fetcher downloads precomputed wait-times blobs over HTTP from an
// object-store endpoint.
type Fetcher struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewFetcher builds a Fetcher for endpoint, e.g.
// "http://some-bucket.s3.amazonaws.com". A nil client falls back to
// http.DefaultClient; a nil logger disables logging.
func NewFetcher(endpoint string, client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

// Fetch downloads the blob at remotePath and returns its decompressed
// JSON body.
func (f *Fetcher) Fetch(ctx context.Context, remotePath string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", f.endpoint, remotePath)

	f.logger.Debug("fetching wait times", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		f.logger.Debug("wait times not found",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("wait times fetch failed",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return gunzipIfNeeded(body)
}

// gunzipIfNeeded decompresses buf when it carries the gzip magic; the
// transport may already have decoded Content-Encoding for us.
func gunzipIfNeeded(buf []byte) ([]byte, error) {
	if len(buf) < 2 || buf[0] != 0x1f || buf[1] != 0x8b {
		return buf, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
