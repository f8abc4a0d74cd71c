package service

import (
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/pkg/slogx"
)

var fixedNow = time.Unix(1_700_000_000, 0).UTC()

func ptr[T any](v T) *T { return &v }

func owner(id int64, name string) domain.Owner {
	return domain.Owner{UserID: ptr(id), DisplayName: name}
}

func deletedOwner(name string) domain.Owner {
	return domain.Owner{DisplayName: name}
}

func enterpriseUser(id int64, name string) domain.User {
	return domain.User{
		UserID:         id,
		AccountID:      domain.Some(id * 10),
		DisplayName:    name,
		CreationDate:   fixedNow.Add(-10 * 24 * time.Hour).Unix(),
		LastAccessDate: fixedNow.Add(-2 * 24 * time.Hour).Unix(),
		IsDeactivated:  ptr(false),
		Email:          domain.Some(name + "@example.com"),
		Title:          domain.Some("Engineer"),
		Department:     domain.Some("Platform"),
		ExternalID:     domain.Some("ext-" + name),
		Moderator:      domain.Some(false),
	}
}

func newTestService() *ReportService {
	return &ReportService{Logger: slogx.Discard(), Now: func() time.Time { return fixedNow }}
}

// sampleCollections covers every join path: nested answers and comments,
// deleted owners, articles with comments, tags and reputation events.
func sampleCollections() domain.Collections {
	return domain.Collections{
		Users: []domain.User{
			enterpriseUser(10, "alice"),
			enterpriseUser(20, "bob"),
			enterpriseUser(30, "carol"),
		},
		Questions: []domain.Question{
			{
				ID: 1, Owner: owner(10, "alice"), CreationDate: 1000,
				UpVoteCount: 3, DownVoteCount: 1, AnswerCount: 2,
				Answers: []domain.Answer{
					{
						ID: 11, QuestionID: 1, Owner: owner(20, "bob"), CreationDate: 1000 + 7200,
						UpVoteCount: 5, DownVoteCount: 0, IsAccepted: true,
						Comments: []domain.Comment{{ID: 111, Owner: owner(10, "alice"), CreationDate: 9000}},
					},
					{
						ID: 12, QuestionID: 1, Owner: deletedOwner("user4242"), CreationDate: 1000 + 3600,
						UpVoteCount: 1, DownVoteCount: 2,
					},
				},
				Comments: []domain.Comment{{ID: 101, Owner: owner(30, "carol"), CreationDate: 1500}},
			},
			{
				ID: 2, Owner: owner(20, "bob"), CreationDate: 5000,
				UpVoteCount: 0, DownVoteCount: 4, AnswerCount: 0,
			},
		},
		Articles: []domain.Article{
			{
				ID: 50, Owner: owner(30, "carol"), CreationDate: 6000, Score: 7,
				Comments: []domain.Comment{{ID: 501, Owner: owner(10, "alice"), CreationDate: 6100}},
			},
		},
		Tags: []domain.Tag{
			{
				ID: 1, Name: "python", SubjectMatterExpertCount: 2,
				SMEs: domain.SMEs{
					Users:      []domain.SMEUser{{ID: 10}},
					UserGroups: []domain.SMEGroup{{ID: 900, Users: []domain.SMEUser{{ID: 10}, {ID: 20}}}},
				},
			},
			{ID: 2, Name: "go", SMEs: domain.SMEs{Users: []domain.SMEUser{{ID: 30}, {ID: 999}}}},
		},
		ReputationHistory: []domain.ReputationEvent{
			{UserID: 10, CreationDate: 1000, ReputationChange: 10},
			{UserID: 20, CreationDate: 8200, ReputationChange: 25},
			{UserID: 20, CreationDate: 8300, ReputationChange: -2},
			{UserID: 777, CreationDate: 8300, ReputationChange: 100},
		},
	}
}
