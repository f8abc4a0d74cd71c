package so4tsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/userreport/pkg/httpx"
)

// API v2 error names, see https://api.stackexchange.com/docs/error-handling.
const (
	ErrorNameThrottleViolation = "throttle_violation"
	ErrorNameAccessDenied      = "access_denied"
	ErrorNameNoMethod          = "no_method"
	ErrorNameKeyRequired       = "key_required"
)

// APIError is a non-success response of either API version.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	// ID, Name and Message carry the API v2 error triple when present.
	ID      int    `json:"error_id"`
	Name    string `json:"error_name"`
	Message string `json:"error_message"`

	// RetryAfter is the server-suggested delay, zero when none was sent.
	RetryAfter time.Duration `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("so4t api: HTTP %d: %s: %s", e.StatusCode, e.Name, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("so4t api: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("so4t api: HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError ||
		e.Name == ErrorNameThrottleViolation
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// parseErrorResponse builds an APIError from a failed response. API v3 errors
// use problem-details style title/detail fields instead of the v2 triple.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RetryAfter: httpx.RetryAfter(resp),
	}

	var v2 struct {
		ID      int    `json:"error_id"`
		Name    string `json:"error_name"`
		Message string `json:"error_message"`
	}
	if err := json.Unmarshal(body, &v2); err == nil && v2.Name != "" {
		apiErr.ID = v2.ID
		apiErr.Name = v2.Name
		apiErr.Message = v2.Message
		return apiErr
	}

	var v3 struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &v3); err == nil {
		switch {
		case v3.Detail != "":
			apiErr.Message = v3.Detail
		case v3.Title != "":
			apiErr.Message = v3.Title
		}
	}

	return apiErr
}
