package source

import (
	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/pkg/so4tsdk"
)

func mapSlice[In, Out any](in []In, f func(In) Out) []Out {
	out := make([]Out, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func mapUser(u so4tsdk.User) domain.User {
	return domain.User{
		UserID:         u.UserID,
		AccountID:      domain.FromPtr(u.AccountID),
		DisplayName:    u.DisplayName,
		CreationDate:   u.CreationDate,
		LastAccessDate: u.LastAccessDate,
		Reputation:     u.Reputation,
		Link:           u.Link,
		IsDeactivated:  u.IsDeactivated,
	}
}

// applyProfile copies the v3 profile onto u. Null profile fields are blank:
// the user has the field, it is just empty.
func applyProfile(u *domain.User, p so4tsdk.V3User) {
	u.Email = orBlank(p.Email)
	u.Title = orBlank(p.JobTitle)
	u.Department = orBlank(p.Department)
	u.ExternalID = orBlank(p.ExternalID)
	u.Moderator = domain.Some(p.Role == so4tsdk.RoleModerator)
}

func orBlank(p *string) domain.Attr[string] {
	if p == nil || *p == "" {
		return domain.Blank[string]()
	}
	return domain.Some(*p)
}

func mapOwner(o so4tsdk.ShallowUser) domain.Owner {
	return domain.Owner{
		UserID:      o.UserID,
		DisplayName: o.DisplayName,
		UserType:    o.UserType,
		Link:        o.Link,
	}
}

func mapComment(c so4tsdk.Comment) domain.Comment {
	return domain.Comment{
		ID:           c.CommentID,
		PostID:       c.PostID,
		Owner:        mapOwner(c.Owner),
		CreationDate: c.CreationDate,
		Score:        c.Score,
	}
}

func mapComments(cs []so4tsdk.Comment) []domain.Comment {
	if len(cs) == 0 {
		return nil
	}
	return mapSlice(cs, mapComment)
}

func mapAnswer(a so4tsdk.Answer) domain.Answer {
	return domain.Answer{
		ID:            a.AnswerID,
		QuestionID:    a.QuestionID,
		Owner:         mapOwner(a.Owner),
		CreationDate:  a.CreationDate,
		UpVoteCount:   a.UpVoteCount,
		DownVoteCount: a.DownVoteCount,
		IsAccepted:    a.IsAccepted,
		Score:         a.Score,
		Link:          a.Link,
		Comments:      mapComments(a.Comments),
	}
}

func mapQuestion(q so4tsdk.Question) domain.Question {
	var answers []domain.Answer
	if len(q.Answers) > 0 {
		answers = mapSlice(q.Answers, mapAnswer)
	}
	return domain.Question{
		ID:            q.QuestionID,
		Owner:         mapOwner(q.Owner),
		CreationDate:  q.CreationDate,
		UpVoteCount:   q.UpVoteCount,
		DownVoteCount: q.DownVoteCount,
		AnswerCount:   q.AnswerCount,
		Score:         q.Score,
		Title:         q.Title,
		Link:          q.Link,
		Tags:          q.Tags,
		Answers:       answers,
		Comments:      mapComments(q.Comments),
	}
}

func mapArticle(a so4tsdk.Article) domain.Article {
	return domain.Article{
		ID:           a.ArticleID,
		Owner:        mapOwner(a.Owner),
		CreationDate: a.CreationDate,
		Score:        a.Score,
		Title:        a.Title,
		Link:         a.Link,
		Tags:         a.Tags,
		Comments:     mapComments(a.Comments),
	}
}

func mapReputation(r so4tsdk.ReputationHistory) domain.ReputationEvent {
	return domain.ReputationEvent{
		UserID:                r.UserID,
		CreationDate:          r.CreationDate,
		ReputationChange:      r.ReputationChange,
		ReputationHistoryType: r.ReputationHistoryType,
		PostID:                r.PostID,
	}
}

func mapSMEUser(u so4tsdk.SMEUser) domain.SMEUser {
	return domain.SMEUser{ID: u.ID, Name: u.Name}
}

func mapSMEs(s so4tsdk.TagSMEs) domain.SMEs {
	groups := make([]domain.SMEGroup, 0, len(s.UserGroups))
	for _, g := range s.UserGroups {
		var members []domain.SMEUser
		if len(g.Users) > 0 {
			members = mapSlice(g.Users, mapSMEUser)
		}
		groups = append(groups, domain.SMEGroup{ID: g.ID, Name: g.Name, Users: members})
	}
	return domain.SMEs{
		Users:      mapSlice(s.Users, mapSMEUser),
		UserGroups: groups,
	}
}
