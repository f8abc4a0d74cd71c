package service

import (
	"log/slog"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

const secondsPerHour = 60 * 60

// Joiner attaches every activity item to its owner's aggregate. It is the
// only component that grows the index; it does no arithmetic beyond
// recording answer response latencies.
type Joiner struct {
	Index  *UserIndex
	Logger *slog.Logger
}

// Join runs every collection through the index. Tags go first so SME
// attribution only reaches accounts from the primary collection.
func (j *Joiner) Join(c domain.Collections) {
	j.JoinTags(c.Tags)
	j.JoinQuestions(c.Questions)
	j.JoinArticles(c.Articles)
	j.JoinReputation(c.ReputationHistory)
}

// JoinTags records, for each tag, the tag name on every known user listed
// as SME either individually or through a user group. A user referenced
// both ways gets the tag once.
func (j *Joiner) JoinTags(tags []domain.Tag) {
	for _, tag := range tags {
		for _, key := range smeKeys(tag) {
			u, ok := j.Index.Lookup(key)
			if !ok {
				continue
			}
			if !u.HasSMETag(tag.Name) {
				u.SMETags = append(u.SMETags, tag.Name)
			}
		}
	}
}

// smeKeys collects the referenced user keys of a tag, individuals first,
// without duplicates.
func smeKeys(tag domain.Tag) []domain.UserKey {
	seen := make(map[domain.UserKey]struct{})
	var keys []domain.UserKey

	add := func(id int64) {
		key := domain.KeyOf(id)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for _, sme := range tag.SMEs.Users {
		add(sme.ID)
	}
	for _, group := range tag.SMEs.UserGroups {
		if len(group.Users) == 0 {
			add(group.ID)
			continue
		}
		for _, member := range group.Users {
			add(member.ID)
		}
	}

	return keys
}

func (j *Joiner) JoinQuestions(questions []domain.Question) {
	for _, q := range questions {
		asker := j.owner(q.Owner)
		asker.Questions = append(asker.Questions, q)

		for _, a := range q.Answers {
			j.joinAnswer(a, q)
		}
		j.joinComments(q.Comments)
	}
}

func (j *Joiner) joinAnswer(a domain.Answer, q domain.Question) {
	answerer := j.owner(a.Owner)
	answerer.Answers = append(answerer.Answers, a)

	// Recorded even when non-positive; the aggregator filters.
	hours := float64(a.CreationDate-q.CreationDate) / secondsPerHour
	answerer.AnswerResponseTimes = append(answerer.AnswerResponseTimes, hours)

	j.joinComments(a.Comments)
}

func (j *Joiner) joinComments(comments []domain.Comment) {
	for _, c := range comments {
		commenter := j.owner(c.Owner)
		commenter.Comments = append(commenter.Comments, c)
	}
}

// JoinArticles attaches articles to their authors. Article comments are not
// propagated: the API reports them inaccurately.
func (j *Joiner) JoinArticles(articles []domain.Article) {
	for _, a := range articles {
		author := j.owner(a.Owner)
		author.Articles = append(author.Articles, a)
	}
}

// JoinReputation matches events by exact user id. Events for users missing
// from the index are dropped.
func (j *Joiner) JoinReputation(events []domain.ReputationEvent) {
	for _, e := range events {
		u, ok := j.Index.Lookup(domain.KeyOf(e.UserID))
		if !ok {
			continue
		}
		u.ReputationHistory = append(u.ReputationHistory, e)
	}
}

func (j *Joiner) owner(o domain.Owner) *domain.UserAggregate {
	key := ResolveOwner(o)
	if key.Alias != "" && j.Logger != nil {
		j.Logger.Warn("owner id unresolvable, keying by display name", "display_name", o.DisplayName)
	}
	return j.Index.GetOrCreate(key, o.DisplayName)
}
