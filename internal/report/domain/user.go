package domain

import (
	"strconv"
)

// DeletedSuffix marks the display name of users synthesized for orphaned
// activity.
const DeletedSuffix = " (DELETED)"

// AccountStatus is the four-way account category reports key off.
type AccountStatus string

const (
	// StatusActive is an Enterprise account that is not deactivated.
	StatusActive AccountStatus = "Active"
	// StatusDeactivated is an Enterprise account flagged deactivated.
	StatusDeactivated AccountStatus = "Deactivated"
	// StatusRegistered is a Business/Basic account; those tiers expose no
	// deactivation signal.
	StatusRegistered AccountStatus = "Registered"
	// StatusDeleted is a synthesized placeholder for an account that no
	// longer exists.
	StatusDeleted AccountStatus = "Deleted"
)

// StatusOf derives the status of a user from the primary collection.
func StatusOf(isDeactivated *bool) AccountStatus {
	switch {
	case isDeactivated == nil:
		return StatusRegistered
	case *isDeactivated:
		return StatusDeactivated
	default:
		return StatusActive
	}
}

// UserKey is the canonical identifier of a user. Alias is only set when no
// numeric id could be recovered and the raw display name stands in.
type UserKey struct {
	ID    int64
	Alias string
}

func KeyOf(id int64) UserKey { return UserKey{ID: id} }

func (k UserKey) String() string {
	if k.Alias != "" {
		return k.Alias
	}
	return strconv.FormatInt(k.ID, 10)
}

func (k UserKey) MarshalJSON() ([]byte, error) {
	if k.Alias != "" {
		return []byte(strconv.Quote(k.Alias)), nil
	}
	return []byte(strconv.FormatInt(k.ID, 10)), nil
}

// Metrics are the windowed values derived by the aggregator. They are
// recomputed from scratch on every aggregation.
type Metrics struct {
	QuestionCount          int `json:"question_count"`
	QuestionsWithNoAnswers int `json:"questions_with_no_answers"`
	QuestionUpvotes        int `json:"question_upvotes"`
	QuestionDownvotes      int `json:"question_downvotes"`

	AnswerCount     int `json:"answer_count"`
	AnswerUpvotes   int `json:"answer_upvotes"`
	AnswerDownvotes int `json:"answer_downvotes"`
	AnswersAccepted int `json:"answers_accepted"`

	// AnswerResponseTimeMedian is nil when no positive response time exists.
	// Zero is a valid median.
	AnswerResponseTimeMedian *float64 `json:"answer_response_time_median"`

	ArticleCount   int `json:"article_count"`
	ArticleUpvotes int `json:"article_upvotes"`

	CommentCount int `json:"comment_count"`

	TotalUpvotes   int `json:"total_upvotes"`
	TotalDownvotes int `json:"total_downvotes"`
	NetReputation  int `json:"net_reputation"`
}

// UserAggregate is the unified per-user record every activity item is
// attached to.
type UserAggregate struct {
	Key         UserKey `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Link        string  `json:"link,omitempty"`

	Email      Attr[string] `json:"email"`
	Title      Attr[string] `json:"title"`
	Department Attr[string] `json:"department"`
	ExternalID Attr[string] `json:"external_id"`
	AccountID  Attr[int64]  `json:"account_id"`
	Moderator  Attr[bool]   `json:"moderator"`

	AccountLongevityDays  Attr[int]     `json:"account_longevity_days"`
	AccountInactivityDays Attr[int]     `json:"account_inactivity_days"`
	AccountStatus         AccountStatus `json:"account_status"`

	// Placeholder is set on users synthesized for orphaned activity.
	Placeholder bool `json:"placeholder"`

	Questions         []Question        `json:"questions"`
	Answers           []Answer          `json:"answers"`
	Articles          []Article         `json:"articles"`
	Comments          []Comment         `json:"comments"`
	ReputationHistory []ReputationEvent `json:"reputation_history"`

	// AnswerResponseTimes holds the latency in hours of every attached
	// answer, as recorded at join time. Non-positive values are kept here
	// and only dropped when the median is computed.
	AnswerResponseTimes []float64 `json:"answer_response_times"`
	SMETags             []string  `json:"sme_tags"`

	Metrics
}

// NewPlaceholder synthesizes the aggregate for an account missing from the
// primary user collection. Profile attributes are blank rather than absent
// so the user still projects into the report.
func NewPlaceholder(key UserKey, displayName string) *UserAggregate {
	return &UserAggregate{
		Key:                   key,
		DisplayName:           displayName + DeletedSuffix,
		Email:                 Blank[string](),
		Title:                 Blank[string](),
		Department:            Blank[string](),
		ExternalID:            Blank[string](),
		AccountID:             Blank[int64](),
		Moderator:             Blank[bool](),
		AccountLongevityDays:  Blank[int](),
		AccountInactivityDays: Blank[int](),
		AccountStatus:         StatusDeleted,
		Placeholder:           true,
		Questions:             []Question{},
		Answers:               []Answer{},
		Articles:              []Article{},
		Comments:              []Comment{},
		ReputationHistory:     []ReputationEvent{},
		AnswerResponseTimes:   []float64{},
		SMETags:               []string{},
	}
}

// HasSMETag reports whether tag is already attributed to the user.
func (u *UserAggregate) HasSMETag(tag string) bool {
	for _, t := range u.SMETags {
		if t == tag {
			return true
		}
	}
	return false
}
