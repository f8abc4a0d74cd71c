package domain

// Records in this file mirror the payloads returned by the platform API. JSON
// tags follow the wire names so cached dumps round-trip unchanged.

// Owner identifies the account that created an activity item. Deleted
// accounts come back without a user id; their display name is then the only
// handle left.
type Owner struct {
	UserID      *int64 `json:"user_id,omitempty"`
	DisplayName string `json:"display_name"`
	UserType    string `json:"user_type,omitempty"`
	Link        string `json:"link,omitempty"`
}

type Comment struct {
	ID           int64 `json:"comment_id"`
	PostID       int64 `json:"post_id,omitempty"`
	Owner        Owner `json:"owner"`
	CreationDate int64 `json:"creation_date"`
	Score        int   `json:"score"`
}

type Answer struct {
	ID            int64     `json:"answer_id"`
	QuestionID    int64     `json:"question_id"`
	Owner         Owner     `json:"owner"`
	CreationDate  int64     `json:"creation_date"`
	UpVoteCount   int       `json:"up_vote_count"`
	DownVoteCount int       `json:"down_vote_count"`
	IsAccepted    bool      `json:"is_accepted"`
	Score         int       `json:"score"`
	Link          string    `json:"link,omitempty"`
	Comments      []Comment `json:"comments,omitempty"`
}

type Question struct {
	ID            int64     `json:"question_id"`
	Owner         Owner     `json:"owner"`
	CreationDate  int64     `json:"creation_date"`
	UpVoteCount   int       `json:"up_vote_count"`
	DownVoteCount int       `json:"down_vote_count"`
	AnswerCount   int       `json:"answer_count"`
	Score         int       `json:"score"`
	Title         string    `json:"title,omitempty"`
	Link          string    `json:"link,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Answers       []Answer  `json:"answers,omitempty"`
	Comments      []Comment `json:"comments,omitempty"`
}

type Article struct {
	ID           int64     `json:"article_id"`
	Owner        Owner     `json:"owner"`
	CreationDate int64     `json:"creation_date"`
	Score        int       `json:"score"`
	Title        string    `json:"title,omitempty"`
	Link         string    `json:"link,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
}

type ReputationEvent struct {
	UserID                int64  `json:"user_id"`
	CreationDate          int64  `json:"creation_date"`
	ReputationChange      int    `json:"reputation_change"`
	ReputationHistoryType string `json:"reputation_history_type,omitempty"`
	PostID                int64  `json:"post_id,omitempty"`
}

// SMEUser is an individual subject matter expert reference.
type SMEUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// SMEGroup is a user group designated as subject matter expert. Older dumps
// carry no member list; the group entry then references the account with the
// group's own id.
type SMEGroup struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name,omitempty"`
	Users []SMEUser `json:"users,omitempty"`
}

type SMEs struct {
	Users      []SMEUser  `json:"users"`
	UserGroups []SMEGroup `json:"userGroups"`
}

type Tag struct {
	ID                       int64  `json:"id"`
	Name                     string `json:"name"`
	SubjectMatterExpertCount int    `json:"subjectMatterExpertCount"`
	SMEs                     SMEs   `json:"smes"`
}

// User is a record of the primary user collection: the API v2 user merged
// with the profile fields only API v3 exposes. A profile field is absent only
// when its key is missing; a null value decodes as blank.
type User struct {
	UserID         int64       `json:"user_id"`
	AccountID      Attr[int64] `json:"account_id,omitzero"`
	DisplayName    string      `json:"display_name"`
	CreationDate   int64       `json:"creation_date"`
	LastAccessDate int64       `json:"last_access_date"`
	Reputation     int         `json:"reputation"`
	Link           string      `json:"link,omitempty"`

	// IsDeactivated is only reported by Enterprise instances.
	IsDeactivated *bool `json:"is_deactivated,omitempty"`

	Email      Attr[string] `json:"email,omitzero"`
	Title      Attr[string] `json:"title,omitzero"`
	Department Attr[string] `json:"department,omitzero"`
	ExternalID Attr[string] `json:"external_id,omitzero"`
	Moderator  Attr[bool]   `json:"moderator,omitzero"`
}

// Collections is the complete raw input of one report run.
type Collections struct {
	Users             []User            `json:"users"`
	ReputationHistory []ReputationEvent `json:"reputation_history"`
	Questions         []Question        `json:"questions"`
	Articles          []Article         `json:"articles"`
	Tags              []Tag             `json:"tags"`
}
