package so4tsdk

import (
	"context"
	"net/url"
)

// GetAllQuestions returns every question. Use a filter that nests answers
// and comments (see QuestionsFilter) to get the whole thread in one pass.
func (c *Client) GetAllQuestions(ctx context.Context, filter string) ([]Question, error) {
	return getAllV2[Question](ctx, c, "/questions", postParams(filter))
}

// GetAllArticles returns every article, with comments when filter asks for them.
func (c *Client) GetAllArticles(ctx context.Context, filter string) ([]Article, error) {
	return getAllV2[Article](ctx, c, "/articles", postParams(filter))
}

func postParams(filter string) url.Values {
	params := url.Values{}
	params.Set("sort", "creation")
	params.Set("order", "asc")
	if filter != "" {
		params.Set("filter", filter)
	}
	return params
}
