package so4tsdk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// reputationBatch is the maximum number of ids API v2 accepts in one vector.
const reputationBatch = 100

// GetAllUsers returns every user known to API v2. filter may be empty.
func (c *Client) GetAllUsers(ctx context.Context, filter string) ([]User, error) {
	params := url.Values{}
	params.Set("sort", "creation")
	params.Set("order", "asc")
	if filter != "" {
		params.Set("filter", filter)
	}
	return getAllV2[User](ctx, c, "/users", params)
}

// GetReputationHistory returns the reputation events of the given users,
// requesting them in batches of 100 ids.
func (c *Client) GetReputationHistory(ctx context.Context, userIDs []int64) ([]ReputationHistory, error) {
	var out []ReputationHistory
	for start := 0; start < len(userIDs); start += reputationBatch {
		end := min(start+reputationBatch, len(userIDs))

		ids := make([]string, 0, end-start)
		for _, id := range userIDs[start:end] {
			ids = append(ids, strconv.FormatInt(id, 10))
		}

		path := "/users/" + strings.Join(ids, ";") + "/reputation-history"
		page, err := getAllV2[ReputationHistory](ctx, c, path, nil)
		if err != nil {
			return nil, fmt.Errorf("reputation history batch %d: %w", start/reputationBatch, err)
		}
		out = append(out, page...)
	}
	return out, nil
}

// GetV3Users returns every active user known to API v3.
func (c *Client) GetV3Users(ctx context.Context) ([]V3User, error) {
	return getAllV3[V3User](ctx, c, "/users", nil)
}

// GetV3User returns one user by id. Deactivated users are missing from
// GetV3Users but can still be fetched here.
func (c *Client) GetV3User(ctx context.Context, id int64) (*V3User, error) {
	var user V3User
	rawURL := c.V3URL + "/users/" + strconv.FormatInt(id, 10)
	if err := c.getJSON(ctx, rawURL, c.v3Headers(), &user); err != nil {
		return nil, fmt.Errorf("GET /users/%d: %w", id, err)
	}
	return &user, nil
}
