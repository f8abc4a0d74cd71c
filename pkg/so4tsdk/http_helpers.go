package so4tsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aussiebroadwan/userreport/pkg/slogx"
	"github.com/cenkalti/backoff/v4"
)

// v2Params returns the query parameters every API v2 call carries.
func (c *Client) v2Params() url.Values {
	q := url.Values{}
	if c.Team != "" {
		q.Set("team", c.Team)
	}
	if c.Key != "" {
		q.Set("key", c.Key)
	}
	return q
}

func (c *Client) v2Headers() map[string]string {
	return map[string]string{
		"X-API-Access-Token": c.Token,
		"Accept":             "application/json",
	}
}

func (c *Client) v3Headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.Token,
		"Accept":        "application/json",
	}
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	expBo := backoff.NewExponentialBackOff()
	expBo.InitialInterval = c.RetryInterval
	expBo.MaxElapsedTime = 5 * time.Minute
	return backoff.WithContext(backoff.WithMaxRetries(expBo, c.MaxRetries), ctx)
}

// getJSON performs a GET request and decodes a 200 response into target.
// Temporary failures are retried; everything else is returned at once.
func (c *Client) getJSON(
	ctx context.Context,
	rawURL string,
	headers map[string]string,
	target any,
) error {
	operation := func() error {
		resp, err := c.doRequest(ctx, http.MethodGet, rawURL, headers)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}

		err = decodeJSON(resp, target, http.StatusOK)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Temporary() {
			c.pause(apiErr.RetryAfter)
			return err
		}
		return backoff.Permanent(err)
	}

	notify := func(err error, next time.Duration) {
		slogx.FromContext(ctx).Warn("api_retry",
			"error", err,
			"next_in", next.String(),
		)
	}

	return backoff.RetryNotify(operation, c.newBackOff(ctx), notify)
}

// doRequest performs an HTTP request with the client's HTTP client.
func (c *Client) doRequest(
	ctx context.Context,
	method, rawURL string,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// decodeJSON decodes a JSON response into target, or returns an *APIError
// when the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// ============================================================================
// Pagination
// ============================================================================

// v2Wrapper is the common API v2 response wrapper.
type v2Wrapper[T any] struct {
	Items          []T  `json:"items"`
	HasMore        bool `json:"has_more"`
	Backoff        int  `json:"backoff"`
	QuotaRemaining int  `json:"quota_remaining"`
}

// v3Page is the API v3 paged list envelope.
type v3Page[T any] struct {
	TotalCount int `json:"totalCount"`
	PageSize   int `json:"pageSize"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

// getAllV2 walks every page of an API v2 list endpoint.
func getAllV2[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	logger := slogx.FromContext(ctx)

	var out []T
	for page := 1; ; page++ {
		q := c.v2Params()
		for k, vs := range params {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("pagesize", strconv.Itoa(c.PageSize))

		var w v2Wrapper[T]
		if err := c.getJSON(ctx, c.V2URL+path+"?"+q.Encode(), c.v2Headers(), &w); err != nil {
			return nil, fmt.Errorf("GET %s page %d: %w", path, page, err)
		}
		out = append(out, w.Items...)

		if w.Backoff > 0 {
			logger.Info("api_backoff", "path", path, "seconds", w.Backoff)
			c.pause(time.Duration(w.Backoff) * time.Second)
		}
		if !w.HasMore {
			return out, nil
		}
	}
}

// getAllV3 walks every page of an API v3 list endpoint.
func getAllV3[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var out []T
	for page := 1; ; page++ {
		q := url.Values{}
		for k, vs := range params {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(c.PageSize))

		var p v3Page[T]
		if err := c.getJSON(ctx, c.V3URL+path+"?"+q.Encode(), c.v3Headers(), &p); err != nil {
			return nil, fmt.Errorf("GET %s page %d: %w", path, page, err)
		}
		out = append(out, p.Items...)

		if len(p.Items) == 0 || page >= p.TotalPages {
			return out, nil
		}
	}
}
