// Package api wraps HTTP calls to the expense API with the session
// token, uniform error translation, and the global session-teardown
// side effect on 401 responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"homebook/internal/domain"
	"homebook/internal/infra/observability"
	"homebook/internal/session"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("api")

// Client is the authenticated HTTP client. Every call carries the
// current session token as a bearer credential when one is present.
// A single attempt per call: no retries, no request cancellation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    *session.Store
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu           sync.Mutex
	onInvalidate []func()
}

// NewClient creates the API client.
func NewClient(httpClient *http.Client, baseURL string, sess *session.Store, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    sess,
		metrics:    metrics,
		logger:     logger,
	}
}

// OnSessionInvalidated registers fn to run whenever any call comes back
// with status 401. The client clears the session store itself before
// notifying, so teardown happens even with no subscriber.
func (c *Client) OnSessionInvalidated(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onInvalidate = append(c.onInvalidate, fn)
}

func (c *Client) notifyInvalidated() {
	c.mu.Lock()
	subs := make([]func(), len(c.onInvalidate))
	copy(subs, c.onInvalidate)
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Get issues an authenticated GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, resource string, out any) error {
	body, err := c.do(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// Post issues an authenticated POST. The response body is discarded;
// callers re-fetch to observe the effect.
func (c *Client) Post(ctx context.Context, resource string, payload any) error {
	_, err := c.do(ctx, http.MethodPost, resource, payload)
	return err
}

// Put issues an authenticated PUT, discarding the response body.
func (c *Client) Put(ctx context.Context, resource string, payload any) error {
	_, err := c.do(ctx, http.MethodPut, resource, payload)
	return err
}

// Delete issues an authenticated DELETE, discarding the response body.
func (c *Client) Delete(ctx context.Context, resource string) error {
	_, err := c.do(ctx, http.MethodDelete, resource, nil)
	return err
}

// postDecode issues a POST and decodes the JSON body into out.
// Used by the authentication endpoints, which do return a body.
func (c *Client) postDecode(ctx context.Context, resource string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPost, resource, payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) do(ctx context.Context, method, resource string, payload any) ([]byte, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("API %s /%s", method, resource))
	defer span.End()
	span.SetAttributes(attribute.String("api.resource", resource))

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/%s", c.baseURL, resource), reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.session.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordAPICall(resource, time.Since(start))
	if err != nil {
		c.metrics.IncrAPIError(resource)
		c.logger.Error("api: request failed",
			zap.String("method", method),
			zap.String("resource", resource),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("api: session invalidated",
			zap.String("method", method),
			zap.String("resource", resource),
		)
		if err := c.session.Clear(); err != nil {
			c.logger.Error("api: failed to clear session", zap.Error(err))
		}
		c.notifyInvalidated()
		return nil, &domain.ErrUnauthorized{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncrAPIError(resource)
		c.logger.Warn("api: non-2xx response",
			zap.String("method", method),
			zap.String("resource", resource),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, &domain.ErrAPI{
			Method:   method,
			Resource: resource,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(respBody)),
		}
	}

	c.logger.Debug("api: request OK",
		zap.String("method", method),
		zap.String("resource", resource),
		zap.Int("status", resp.StatusCode),
	)

	return respBody, nil
}
