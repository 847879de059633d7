package eddb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Client downloads market dump files over HTTP. Requests are rate limited
// and coalesced so concurrent loads of the same file hit the network once.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	baseURL string
}

// NewClient creates a dump download client for the given archive base URL.
// The dump host asks clients to stay below a handful of requests per second.
func NewClient(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 5 * time.Minute},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		baseURL: baseURL,
	}
}

// FetchFile downloads baseURL/name into destPath. The file is written to a
// temporary path first and renamed into place so a failed download never
// leaves a truncated dump behind.
func (c *Client) FetchFile(ctx context.Context, name, destPath string) error {
	_, err, _ := c.group.Do(name, func() (interface{}, error) {
		return nil, c.fetchFile(ctx, name, destPath)
	})
	return err
}

func (c *Client) fetchFile(ctx context.Context, name, destPath string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	url := c.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "ed-tradepair/1.0 (github.com)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: HTTP %d", name, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), name+".tmp*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), destPath)
}
