package so4tsdk

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/userreport/pkg/httpx"
	"github.com/aussiebroadwan/userreport/pkg/slogx"
)

const (
	businessHost     = "stackoverflowteams.com"
	businessV2URL    = "https://api.stackoverflowteams.com/2.3"
	businessV3Prefix = "https://api.stackoverflowteams.com/v3/teams/"

	// DefaultPageSize is the largest page both API versions accept.
	DefaultPageSize = 100
)

var (
	ErrInvalidURL   = errors.New("so4tsdk: base URL must look like https://stackoverflowteams.com/c/TEAM-NAME or https://SUBDOMAIN.stackenterprise.co")
	ErrMissingToken = errors.New("so4tsdk: an API access token is required")
	ErrMissingKey   = errors.New("so4tsdk: Enterprise instances require an API key")
)

// Client is a read-only client for API v2 and v3 of one Stack Overflow for
// Teams deployment.
type Client struct {
	// V2URL and V3URL are the API roots, without trailing slash. NewClient
	// derives them from the base URL.
	V2URL string
	V3URL string

	// Team is the team slug on Business; empty on Enterprise.
	Team string
	// Key is the Enterprise API v2 key.
	Key   string
	Token string

	HTTPClient *http.Client

	// PageSize is sent as pagesize / pageSize on paged endpoints.
	PageSize int

	// MaxRetries bounds the retries of one request. Zero disables retrying.
	MaxRetries uint64
	// RetryInterval is the first backoff interval between retries.
	RetryInterval time.Duration

	throttle *httpx.ThrottledTransport
}

// NewClient builds a client for the deployment at baseURL. Requests are
// throttled with httpx.APILimit and logged with slogx.Transport.
func NewClient(baseURL, token, key string) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	throttle := httpx.NewThrottledTransport(http.DefaultTransport, httpx.APILimit)
	c := &Client{
		Token: token,
		HTTPClient: &http.Client{
			Timeout:   60 * time.Second,
			Transport: slogx.NewTransport(throttle, nil),
		},
		PageSize:      DefaultPageSize,
		MaxRetries:    5,
		RetryInterval: time.Second,
		throttle:      throttle,
	}

	host := strings.ToLower(u.Hostname())
	if host == businessHost || strings.HasSuffix(host, "."+businessHost) {
		team := teamFromPath(u.Path)
		if team == "" {
			return nil, ErrInvalidURL
		}
		c.Team = team
		c.V2URL = businessV2URL
		c.V3URL = businessV3Prefix + url.PathEscape(team)
		return c, nil
	}

	if key == "" {
		return nil, ErrMissingKey
	}
	root := u.Scheme + "://" + u.Host
	c.Key = key
	c.V2URL = root + "/api/2.3"
	c.V3URL = root + "/api/v3"
	return c, nil
}

// IsEnterprise reports whether the client talks to an Enterprise instance.
// Enterprise needs custom filters and exposes user deactivation.
func (c *Client) IsEnterprise() bool {
	return c.Team == ""
}

// teamFromPath extracts TEAM from /c/TEAM[/...].
func teamFromPath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if len(parts) < 2 || parts[0] != "c" {
		return ""
	}
	return parts[1]
}

// pause holds back all requests made through the throttled transport.
func (c *Client) pause(d time.Duration) {
	if c.throttle != nil {
		c.throttle.Pause(d)
	}
}
