package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/pkg/so4tsdk"
)

// APISource fetches every collection live. Calls are made one after another
// in the order users, reputation, questions, articles, tags.
type APISource struct {
	Client *so4tsdk.Client
	Logger *slog.Logger
}

func NewAPISource(client *so4tsdk.Client, logger *slog.Logger) *APISource {
	return &APISource{Client: client, Logger: logger}
}

func (s *APISource) Load(ctx context.Context) (domain.Collections, error) {
	var (
		c   domain.Collections
		err error
	)

	if c.Users, err = s.users(ctx); err != nil {
		return domain.Collections{}, fmt.Errorf("fetch users: %w", err)
	}
	s.Logger.Info("users_fetched", "count", len(c.Users))

	ids := make([]int64, 0, len(c.Users))
	for _, u := range c.Users {
		ids = append(ids, u.UserID)
	}
	rep, err := s.Client.GetReputationHistory(ctx, ids)
	if err != nil {
		return domain.Collections{}, fmt.Errorf("fetch reputation history: %w", err)
	}
	c.ReputationHistory = mapSlice(rep, mapReputation)
	s.Logger.Info("reputation_fetched", "count", len(c.ReputationHistory))

	if c.Questions, err = s.questions(ctx); err != nil {
		return domain.Collections{}, fmt.Errorf("fetch questions: %w", err)
	}
	s.Logger.Info("questions_fetched", "count", len(c.Questions))

	if c.Articles, err = s.articles(ctx); err != nil {
		return domain.Collections{}, fmt.Errorf("fetch articles: %w", err)
	}
	s.Logger.Info("articles_fetched", "count", len(c.Articles))

	if c.Tags, err = s.tags(ctx); err != nil {
		return domain.Collections{}, fmt.Errorf("fetch tags: %w", err)
	}
	s.Logger.Info("tags_fetched", "count", len(c.Tags))

	return c, nil
}

// users merges API v2 users with the profile fields only API v3 returns.
// Ids up to 1 are the Community bot and user groups and are left out. A user
// missing from the v3 list is deactivated; its profile is fetched on its own.
func (s *APISource) users(ctx context.Context) ([]domain.User, error) {
	filter, err := s.Client.UsersFilter(ctx)
	if err != nil {
		return nil, err
	}

	v2, err := s.Client.GetAllUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	v3, err := s.Client.GetV3Users(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make(map[int64]so4tsdk.V3User, len(v3))
	for _, p := range v3 {
		profiles[p.ID] = p
	}

	out := make([]domain.User, 0, len(v2))
	for _, u := range v2 {
		if u.UserID <= 1 {
			continue
		}
		user := mapUser(u)

		if p, ok := profiles[u.UserID]; ok {
			applyProfile(&user, p)
			out = append(out, user)
			continue
		}

		p, err := s.Client.GetV3User(ctx, u.UserID)
		switch {
		case err == nil:
			applyProfile(&user, *p)
		case so4tsdk.IsNotFound(err):
			s.Logger.Warn("user_profile_missing", "user_id", u.UserID)
			applyProfile(&user, so4tsdk.V3User{})
		default:
			return nil, err
		}
		deactivated := true
		user.IsDeactivated = &deactivated
		out = append(out, user)
	}
	return out, nil
}

func (s *APISource) questions(ctx context.Context) ([]domain.Question, error) {
	filter, err := s.Client.QuestionsFilter(ctx)
	if err != nil {
		return nil, err
	}
	qs, err := s.Client.GetAllQuestions(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapSlice(qs, mapQuestion), nil
}

func (s *APISource) articles(ctx context.Context) ([]domain.Article, error) {
	filter, err := s.Client.ArticlesFilter(ctx)
	if err != nil {
		return nil, err
	}
	as, err := s.Client.GetAllArticles(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapSlice(as, mapArticle), nil
}

// tags fetches SME lists only for tags that report having SMEs; there is no
// bulk call so each one costs a request.
func (s *APISource) tags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.Client.GetAllTags(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		tag := domain.Tag{
			ID:                       t.ID,
			Name:                     t.Name,
			SubjectMatterExpertCount: t.SubjectMatterExpertCount,
			SMEs:                     domain.SMEs{Users: []domain.SMEUser{}, UserGroups: []domain.SMEGroup{}},
		}
		if t.SubjectMatterExpertCount > 0 {
			smes, err := s.Client.GetTagSMEs(ctx, t.ID)
			if err != nil {
				return nil, err
			}
			tag.SMEs = mapSMEs(*smes)
		}
		out = append(out, tag)
	}
	return out, nil
}
