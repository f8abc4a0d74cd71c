package service

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

var ErrDuplicateUser = errors.New("service: duplicate user")

// UserIndex holds the user aggregates of one run in insertion order with a
// hashed lookup by key. It only ever grows.
type UserIndex struct {
	users []*domain.UserAggregate
	byKey map[domain.UserKey]int
}

func NewUserIndex() *UserIndex {
	return &UserIndex{byKey: make(map[domain.UserKey]int)}
}

// Ingest builds an index from the primary user collection. Duplicate records
// keep the first occurrence.
func Ingest(users []domain.User, now time.Time, logger *slog.Logger) *UserIndex {
	idx := NewUserIndex()
	for _, u := range users {
		if err := idx.Add(FromUser(u, now)); err != nil {
			logger.Warn("duplicate user record ignored", "user_id", u.UserID)
		}
	}
	return idx
}

// FromUser converts a primary collection record into a fresh aggregate with
// every counter zeroed.
func FromUser(u domain.User, now time.Time) *domain.UserAggregate {
	return &domain.UserAggregate{
		Key:                   domain.KeyOf(u.UserID),
		DisplayName:           u.DisplayName,
		Link:                  u.Link,
		Email:                 u.Email,
		Title:                 u.Title,
		Department:            u.Department,
		ExternalID:            u.ExternalID,
		AccountID:             u.AccountID,
		Moderator:             u.Moderator,
		AccountLongevityDays:  domain.Some(daysSince(now, u.CreationDate)),
		AccountInactivityDays: domain.Some(daysSince(now, u.LastAccessDate)),
		AccountStatus:         domain.StatusOf(u.IsDeactivated),
		Questions:             []domain.Question{},
		Answers:               []domain.Answer{},
		Articles:              []domain.Article{},
		Comments:              []domain.Comment{},
		ReputationHistory:     []domain.ReputationEvent{},
		AnswerResponseTimes:   []float64{},
		SMETags:               []string{},
	}
}

func daysSince(now time.Time, epoch int64) int {
	days := float64(now.Unix()-epoch) / (60 * 60 * 24)
	return int(math.RoundToEven(days))
}

// Add appends an aggregate. Keys are never reused.
func (x *UserIndex) Add(u *domain.UserAggregate) error {
	if _, ok := x.byKey[u.Key]; ok {
		return ErrDuplicateUser
	}
	x.byKey[u.Key] = len(x.users)
	x.users = append(x.users, u)
	return nil
}

// Find returns the position of key in insertion order.
func (x *UserIndex) Find(key domain.UserKey) (int, bool) {
	i, ok := x.byKey[key]
	return i, ok
}

func (x *UserIndex) Lookup(key domain.UserKey) (*domain.UserAggregate, bool) {
	i, ok := x.byKey[key]
	if !ok {
		return nil, false
	}
	return x.users[i], true
}

// GetOrCreate returns the aggregate for key, synthesizing a deleted-user
// placeholder on first encounter.
func (x *UserIndex) GetOrCreate(key domain.UserKey, displayName string) *domain.UserAggregate {
	if u, ok := x.Lookup(key); ok {
		return u
	}

	u := domain.NewPlaceholder(key, displayName)
	x.byKey[key] = len(x.users)
	x.users = append(x.users, u)
	return u
}

// Users returns the aggregates in insertion order. The slice is shared.
func (x *UserIndex) Users() []*domain.UserAggregate { return x.users }

func (x *UserIndex) Len() int { return len(x.users) }
