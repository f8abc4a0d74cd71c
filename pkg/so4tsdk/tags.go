package so4tsdk

import (
	"context"
	"fmt"
	"strconv"
)

// GetAllTags returns every tag with its id and SME count. API v2 does not
// expose tag ids, which the SME lookup needs.
func (c *Client) GetAllTags(ctx context.Context) ([]Tag, error) {
	return getAllV3[Tag](ctx, c, "/tags", nil)
}

// GetTagSMEs returns the subject matter experts configured for one tag.
func (c *Client) GetTagSMEs(ctx context.Context, tagID int64) (*TagSMEs, error) {
	var smes TagSMEs
	path := "/tags/" + strconv.FormatInt(tagID, 10) + "/subject-matter-experts"
	if err := c.getJSON(ctx, c.V3URL+path, c.v3Headers(), &smes); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if smes.Users == nil {
		smes.Users = []SMEUser{}
	}
	if smes.UserGroups == nil {
		smes.UserGroups = []SMEGroup{}
	}
	return &smes, nil
}
