package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
)

type GlobalOptions struct {
	ServerUrl string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl: "http://localhost:3443",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if _, err := url.ParseRequestURI(o.ServerUrl); err != nil {
		return fmt.Errorf("invalid server url %q: %w", o.ServerUrl, err)
	}
	return nil
}

func (o *GlobalOptions) Client() *Client {
	return &Client{
		server:     o.ServerUrl,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Client talks to a running qpcr-planner-api.
type Client struct {
	server     string
	httpClient *http.Client
}

func (c *Client) GetInfo(ctx context.Context) (api.Info, error) {
	var info api.Info
	body, err := c.do(ctx, http.MethodGet, "/api/v1/info", nil)
	if err != nil {
		return info, err
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return info, fmt.Errorf("decoding info response: %w", err)
	}
	return info, nil
}

// Calculate posts doc and returns the plan rendered in format.
func (c *Client) Calculate(ctx context.Context, doc api.QPCRConfig, format string) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/v1/calculations?format="+url.QueryEscape(format), payload)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.server+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr api.Error
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("remote service returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("remote service returned status: %d", resp.StatusCode)
	}
	return body, nil
}
