package service

import (
	"strconv"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/montanaflynn/stats"
)

// Aggregate recomputes the metrics of every user in the index for window w.
// Counters are reset first so repeated runs over the same index give the
// same result.
func Aggregate(index *UserIndex, w domain.Window) {
	for _, u := range index.Users() {
		AggregateUser(u, w)
	}
}

func AggregateUser(u *domain.UserAggregate, w domain.Window) {
	m := domain.Metrics{}

	for _, q := range u.Questions {
		if !w.Contains(q.CreationDate) {
			continue
		}
		m.QuestionCount++
		m.QuestionUpvotes += q.UpVoteCount
		m.QuestionDownvotes += q.DownVoteCount
		if q.AnswerCount == 0 {
			m.QuestionsWithNoAnswers++
		}
	}

	for _, a := range u.Answers {
		if !w.Contains(a.CreationDate) {
			continue
		}
		m.AnswerCount++
		m.AnswerUpvotes += a.UpVoteCount
		m.AnswerDownvotes += a.DownVoteCount
		if a.IsAccepted {
			m.AnswersAccepted++
		}
	}

	for _, a := range u.Articles {
		if !w.Contains(a.CreationDate) {
			continue
		}
		m.ArticleCount++
		m.ArticleUpvotes += a.Score
	}

	for _, c := range u.Comments {
		if w.Contains(c.CreationDate) {
			m.CommentCount++
		}
	}

	for _, e := range u.ReputationHistory {
		if w.Contains(e.CreationDate) {
			m.NetReputation += e.ReputationChange
		}
	}

	m.AnswerResponseTimeMedian = MedianResponseTime(u.AnswerResponseTimes)

	// Articles carry no downvotes.
	m.TotalUpvotes = m.QuestionUpvotes + m.AnswerUpvotes + m.ArticleUpvotes
	m.TotalDownvotes = m.QuestionDownvotes + m.AnswerDownvotes

	u.Metrics = m
}

// roundHours rounds to two decimals on the exact binary value, ties to even.
// 2.675 is stored just below the tie and becomes 2.67.
func roundHours(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// MedianResponseTime returns the median of the positive latencies, rounded
// to two decimals, or nil when there are none. The input is not modified.
func MedianResponseTime(hours []float64) *float64 {
	positive := make(stats.Float64Data, 0, len(hours))
	for _, h := range hours {
		if h > 0 {
			positive = append(positive, h)
		}
	}
	if len(positive) == 0 {
		return nil
	}

	median, err := stats.Median(positive)
	if err != nil {
		return nil
	}

	rounded := roundHours(median)
	return &rounded
}
