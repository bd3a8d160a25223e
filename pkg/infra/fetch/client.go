package fetch

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/datafetch/pkg/domain/interfaces"
	"github.com/m-mizutani/datafetch/pkg/domain/model"
)

type client struct {
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(x *client) {
		x.httpClient = c
	}
}

// New creates a Fetcher that performs plain blocking HTTP GET
// transfers. No custom headers, no auth, no retries: recovery from a
// bad download is the caller's concern.
func New(opts ...Option) interfaces.Fetcher {
	c := &client{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads url and writes the full response body to destPath
func (x *client) Fetch(ctx context.Context, url, destPath string) (*model.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request archive", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write response body", goerr.V("path", destPath))
	}

	return &model.FetchResult{
		Path:    destPath,
		Size:    written,
		Headers: resp.Header,
	}, nil
}
