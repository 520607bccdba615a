// Package kitchen talks to the Emoji Kitchen and Twemoji asset hosts.
package kitchen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultTimeout caps a request when the caller's context has no deadline.
	DefaultTimeout = 10 * time.Second
	// maxSVGSize bounds a single emoji download.
	maxSVGSize = 1 << 20
	userAgent  = "mattermost-plugin-emojimix"
)

// ErrNotFound is returned when an asset does not exist on the CDN.
var ErrNotFound = errors.New("asset not found")

// Logger interface for logging operations
type Logger interface {
	LogDebug(message string, keyValuePairs ...any)
	LogInfo(message string, keyValuePairs ...any)
	LogWarn(message string, keyValuePairs ...any)
	LogError(message string, keyValuePairs ...any)
}

// Client probes composite images and downloads single emoji assets.
type Client struct {
	httpClient *http.Client
	logger     Logger
}

// NewClient creates a client with its own HTTP client.
func NewClient(logger Logger) *Client {
	return NewClientWithHTTPClient(&http.Client{Timeout: DefaultTimeout}, logger)
}

// NewClientWithHTTPClient creates a client on top of an existing HTTP client.
func NewClientWithHTTPClient(httpClient *http.Client, logger Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Probe issues a HEAD request for url, following redirects. It reports true
// only for a final 200 response. Transport failures are returned as errors;
// any other status is simply "not there".
func (c *Client) Probe(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to create probe request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "failed to send probe request")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.LogDebug("Probe returned non-OK status", "url", url, "status", resp.StatusCode)
		return false, nil
	}

	return true, nil
}

// DownloadSVG fetches one SVG asset. A missing asset yields ErrNotFound.
func (c *Client) DownloadSVG(ctx context.Context, url string) ([]byte, error) {
	const errMsg = "kitchen.DownloadSVG"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrap(ErrNotFound, errMsg)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.LogWarn("Emoji download failed", "url", url, "status", resp.StatusCode)
		return nil, errors.Wrap(errors.Errorf("response status code %d", resp.StatusCode), errMsg)
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" && !strings.Contains(contentType, "svg") {
		return nil, errors.Wrap(errors.Errorf("unexpected content type %q", contentType), errMsg)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSVGSize+1))
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}
	if len(body) > maxSVGSize {
		return nil, errors.Wrap(fmt.Errorf("asset too large (>%dKB)", maxSVGSize>>10), errMsg)
	}

	c.logger.LogDebug("Downloaded emoji asset", "url", url, "bytes", len(body))
	return body, nil
}
