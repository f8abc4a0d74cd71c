package service

import (
	"testing"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func withReputation(id int64, rep int) *domain.UserAggregate {
	u := domain.NewPlaceholder(domain.KeyOf(id), "u")
	u.NetReputation = rep
	return u
}

func TestSortByNetReputationIsStable(t *testing.T) {
	t.Parallel()

	users := []*domain.UserAggregate{
		withReputation(1, 10),
		withReputation(2, 50),
		withReputation(3, 50),
		withReputation(4, -5),
	}

	var order []int64
	for _, u := range SortByNetReputation(users) {
		order = append(order, u.Key.ID)
	}
	require.Equal(t, []int64{2, 3, 1, 4}, order)

	// The input order is left untouched.
	require.EqualValues(t, 1, users[0].Key.ID)
}

func TestProjectRendersColumns(t *testing.T) {
	t.Parallel()

	u := FromUser(enterpriseUser(10, "alice"), fixedNow)
	u.SMETags = []string{"python", "go"}
	u.NetReputation = 12
	u.AnswerResponseTimeMedian = ptr(2.5)
	u.Moderator = domain.Some(true)

	report := NewProjector(slogx.Discard()).Project([]*domain.UserAggregate{u})
	require.Len(t, report.Rows, 1)
	require.Len(t, report.Header, len(ReportColumns))

	row := map[string]string{}
	for i, name := range report.Header {
		row[name] = report.Rows[0][i]
	}

	require.Equal(t, "10", row["User ID"])
	require.Equal(t, "alice", row["Display Name"])
	require.Equal(t, "12", row["Net Reputation"])
	require.Equal(t, "10", row["Account Longevity (Days)"])
	require.Equal(t, "2.5", row["Median Answer Time (Hours)"])
	require.Equal(t, "python, go", row["SME Tags"])
	require.Equal(t, "Active", row["Account Status"])
	require.Equal(t, "True", row["Moderator"])
	require.Equal(t, "alice@example.com", row["Email"])
	require.Equal(t, "100", row["Account ID"])
}

func TestProjectPlaceholderRendersBlanks(t *testing.T) {
	t.Parallel()

	ghost := domain.NewPlaceholder(domain.KeyOf(4242), "user4242")
	report := NewProjector(slogx.Discard()).Project([]*domain.UserAggregate{ghost})

	require.Empty(t, report.Skipped)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	require.Equal(t, "4242", row[0])
	require.Equal(t, "user4242 (DELETED)", row[1])
	require.Equal(t, "", row[3], "longevity")
	require.Equal(t, "", row[9], "median")
	require.Equal(t, "Deleted", row[15])
	require.Equal(t, "", row[16], "moderator")
}

func TestProjectSkipsUsersWithMissingFields(t *testing.T) {
	t.Parallel()

	complete := FromUser(enterpriseUser(1, "ok"), fixedNow)
	partial := FromUser(domain.User{UserID: 2, DisplayName: "basic"}, fixedNow)
	partial.NetReputation = 100

	report := NewProjector(slogx.Discard()).Project([]*domain.UserAggregate{complete, partial})

	require.Len(t, report.Rows, 1)
	require.Equal(t, "1", report.Rows[0][0])
	require.Equal(t, []domain.SkippedUser{{Key: domain.KeyOf(2), Column: "Moderator"}}, report.Skipped)
}
