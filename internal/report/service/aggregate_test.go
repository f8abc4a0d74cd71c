package service

import (
	"testing"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/stretchr/testify/require"
)

func TestMedianResponseTime(t *testing.T) {
	t.Parallel()

	t.Run("drops non-positive values", func(t *testing.T) {
		in := []float64{5, -1, 3, 7}
		got := MedianResponseTime(in)
		require.NotNil(t, got)
		require.Equal(t, 5.0, *got)
		require.Equal(t, []float64{5, -1, 3, 7}, in, "input must not be modified")
	})

	t.Run("even count averages the middle pair", func(t *testing.T) {
		got := MedianResponseTime([]float64{1, 2, 0, 4, 10})
		require.NotNil(t, got)
		require.Equal(t, 3.0, *got)
	})

	t.Run("rounds to two places", func(t *testing.T) {
		got := MedianResponseTime([]float64{1.0 / 3})
		require.NotNil(t, got)
		require.Equal(t, 0.33, *got)
	})

	t.Run("ties round to even on the stored value", func(t *testing.T) {
		for in, want := range map[float64]float64{0.125: 0.12, 0.375: 0.38, 2.675: 2.67, 1.005: 1.0} {
			got := MedianResponseTime([]float64{in})
			require.NotNil(t, got)
			require.Equal(t, want, *got, "median of %v", in)
		}
	})

	t.Run("no data is nil, not zero", func(t *testing.T) {
		require.Nil(t, MedianResponseTime(nil))
		require.Nil(t, MedianResponseTime([]float64{0, -2}))
	})
}

func TestAggregateAllTime(t *testing.T) {
	t.Parallel()

	idx := joined(t, sampleCollections())
	Aggregate(idx, domain.DefaultWindow())

	alice, _ := idx.Lookup(domain.KeyOf(10))
	require.Equal(t, 1, alice.QuestionCount)
	require.Equal(t, 0, alice.QuestionsWithNoAnswers)
	require.Equal(t, 3, alice.QuestionUpvotes)
	require.Equal(t, 1, alice.QuestionDownvotes)
	require.Equal(t, 1, alice.CommentCount)
	require.Equal(t, 10, alice.NetReputation)
	require.Nil(t, alice.AnswerResponseTimeMedian)

	bob, _ := idx.Lookup(domain.KeyOf(20))
	require.Equal(t, 1, bob.AnswerCount)
	require.Equal(t, 1, bob.AnswersAccepted)
	require.Equal(t, 1, bob.QuestionsWithNoAnswers)
	require.Equal(t, 23, bob.NetReputation)
	require.Equal(t, 5, bob.TotalUpvotes)
	require.Equal(t, 4, bob.TotalDownvotes)
	require.NotNil(t, bob.AnswerResponseTimeMedian)
	require.Equal(t, 2.0, *bob.AnswerResponseTimeMedian)

	carol, _ := idx.Lookup(domain.KeyOf(30))
	require.Equal(t, 1, carol.ArticleCount)
	require.Equal(t, 7, carol.ArticleUpvotes)
	require.Equal(t, 7, carol.TotalUpvotes)
	require.Equal(t, 0, carol.TotalDownvotes)
	require.Equal(t, 1, carol.CommentCount)

	ghost, _ := idx.Lookup(domain.KeyOf(4242))
	require.Equal(t, 1, ghost.TotalUpvotes)
	require.Equal(t, 2, ghost.TotalDownvotes)
}

func TestAggregateTotalsIdentity(t *testing.T) {
	t.Parallel()

	idx := joined(t, sampleCollections())
	Aggregate(idx, domain.DefaultWindow())

	for _, u := range idx.Users() {
		require.Equal(t, u.QuestionUpvotes+u.AnswerUpvotes+u.ArticleUpvotes, u.TotalUpvotes, u.Key.String())
		require.Equal(t, u.QuestionDownvotes+u.AnswerDownvotes, u.TotalDownvotes, u.Key.String())
	}
}

func TestAggregateWindowBoundsAreStrict(t *testing.T) {
	t.Parallel()

	idx := joined(t, sampleCollections())
	Aggregate(idx, domain.Window{Start: 1000, End: 8300})

	alice, _ := idx.Lookup(domain.KeyOf(10))
	require.Equal(t, 0, alice.QuestionCount, "created exactly at start")
	require.Equal(t, 0, alice.NetReputation, "event exactly at start")
	require.Equal(t, 0, alice.CommentCount, "comment after end")

	bob, _ := idx.Lookup(domain.KeyOf(20))
	require.Equal(t, 1, bob.AnswerCount)
	require.Equal(t, 25, bob.NetReputation, "event exactly at end is excluded")
}

func TestAggregateNarrowingWindowIsMonotonic(t *testing.T) {
	t.Parallel()

	windows := []domain.Window{
		domain.DefaultWindow(),
		{Start: 500, End: 9500},
		{Start: 1000, End: 8300},
		{Start: 4000, End: 7000},
		{Start: 5500, End: 5600},
	}

	counts := func(u *domain.UserAggregate) []int {
		return []int{u.QuestionCount, u.QuestionsWithNoAnswers, u.AnswerCount, u.AnswersAccepted, u.ArticleCount, u.CommentCount}
	}

	idx := joined(t, sampleCollections())
	var previous map[domain.UserKey][]int
	for _, w := range windows {
		Aggregate(idx, w)

		current := map[domain.UserKey][]int{}
		for _, u := range idx.Users() {
			current[u.Key] = counts(u)
			if previous == nil {
				continue
			}
			for i, v := range current[u.Key] {
				require.LessOrEqual(t, v, previous[u.Key][i], "user %s window %+v", u.Key, w)
			}
		}
		previous = current
	}
}

func TestAggregateResetsBetweenRuns(t *testing.T) {
	t.Parallel()

	idx := joined(t, sampleCollections())

	Aggregate(idx, domain.DefaultWindow())
	first := map[domain.UserKey]domain.Metrics{}
	for _, u := range idx.Users() {
		first[u.Key] = u.Metrics
	}

	Aggregate(idx, domain.Window{Start: 4000, End: 7000})
	Aggregate(idx, domain.DefaultWindow())

	for _, u := range idx.Users() {
		require.Equal(t, first[u.Key], u.Metrics)
	}
}
