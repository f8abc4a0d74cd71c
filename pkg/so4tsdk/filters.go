package so4tsdk

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Fixed filters for Business teams, which cannot create their own. See
// https://api.stackexchange.com/docs/filters.
const (
	BusinessQuestionsFilter = "!X9DEEiFwy0OeSWoJzb.QMqab2wPSk.X2opZDa2L"
	BusinessArticlesFilter  = "!*Mg4Pjg9LXr9d_(v"
)

// Fields added to the default filter on Enterprise. Bodies are left out, the
// report does not need them and they dominate the payload size.
var (
	UserFilterFields = []string{
		"user.is_deactivated",
	}

	QuestionFilterFields = []string{
		"answer.comment_count",
		"answer.comments",
		"answer.down_vote_count",
		"answer.last_editor",
		"answer.link",
		"answer.share_link",
		"answer.up_vote_count",
		"comment.link",
		"question.answers",
		"question.comment_count",
		"question.comments",
		"question.down_vote_count",
		"question.favorite_count",
		"question.last_editor",
		"question.notice",
		"question.share_link",
		"question.up_vote_count",
	}

	ArticleFilterFields = []string{
		"article.comment_count",
		"article.comments",
		"article.last_editor",
		"comment.link",
	}
)

var errEmptyFilter = errors.New("so4tsdk: filter creation returned no filter")

// CreateFilter creates a custom API v2 filter including the given fields on
// top of the default set and returns its id.
func (c *Client) CreateFilter(ctx context.Context, include []string) (string, error) {
	q := c.v2Params()
	q.Set("include", strings.Join(include, ";"))
	q.Set("base", "default")
	q.Set("unsafe", "false")

	var w v2Wrapper[Filter]
	if err := c.getJSON(ctx, c.V2URL+"/filters/create?"+q.Encode(), c.v2Headers(), &w); err != nil {
		return "", fmt.Errorf("GET /filters/create: %w", err)
	}
	if len(w.Items) == 0 || w.Items[0].Filter == "" {
		return "", errEmptyFilter
	}
	return w.Items[0].Filter, nil
}

// UsersFilter returns the filter for GetAllUsers: one exposing deactivation
// on Enterprise, the default filter on Business.
func (c *Client) UsersFilter(ctx context.Context) (string, error) {
	if !c.IsEnterprise() {
		return "", nil
	}
	return c.CreateFilter(ctx, UserFilterFields)
}

// QuestionsFilter returns a filter nesting answers and comments in questions.
func (c *Client) QuestionsFilter(ctx context.Context) (string, error) {
	if !c.IsEnterprise() {
		return BusinessQuestionsFilter, nil
	}
	return c.CreateFilter(ctx, QuestionFilterFields)
}

// ArticlesFilter returns a filter nesting comments in articles.
func (c *Client) ArticlesFilter(ctx context.Context) (string, error) {
	if !c.IsEnterprise() {
		return BusinessArticlesFilter, nil
	}
	return c.CreateFilter(ctx, ArticleFilterFields)
}
