package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

const maxBodyBytes = 10 << 20

// Options configures a Client.
type Options struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client sends roster descriptors to the student endpoint over HTTP.
type Client struct {
	endpoint *url.URL
	token    string
	timeout  time.Duration
	http     *http.Client
	logger   *zap.Logger
}

var _ roster.Endpoint = (*Client)(nil)

// New validates the endpoint and builds a client.
func New(opts Options) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be an http(s) URL", opts.Endpoint)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		token:    opts.Token,
		timeout:  opts.Timeout,
		http:     httpClient,
		logger:   logger,
	}, nil
}

// Do sends d and decodes the response envelope. Envelopes are returned whatever their
// code; an error is returned only when no envelope could be read.
func (c *Client) Do(ctx context.Context, d roster.Descriptor) (*models.Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, d)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.ErrTransport.Message)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("action", string(d.Action)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.ErrTransport.Message)
	}
	defer resp.Body.Close()

	env, err := decode(resp)
	if err != nil {
		c.logger.Warn("unreadable response",
			zap.String("action", string(d.Action)),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.ErrTransport.Message)
	}

	c.logger.Debug("request completed",
		zap.String("action", string(d.Action)),
		zap.String("method", req.Method),
		zap.Int("status", resp.StatusCode),
		zap.Int("code", env.Code),
		zap.Duration("duration", time.Since(start)),
	)
	return env, nil
}

func (c *Client) newRequest(ctx context.Context, d roster.Descriptor) (*http.Request, error) {
	target := *c.endpoint
	values := d.Values()

	var (
		req *http.Request
		err error
	)
	if d.Method() == http.MethodGet {
		query := target.Query()
		for key, vals := range values {
			query[key] = vals
		}
		target.RawQuery = query.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(values.Encode()))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func decode(resp *http.Response) (*models.Envelope, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope (HTTP %d): %w", resp.StatusCode, err)
	}
	if env.Code == 0 {
		return nil, fmt.Errorf("response without envelope code (HTTP %d)", resp.StatusCode)
	}
	return &env, nil
}
