package so4tsdk

// ============================================================================
// API v2 types
// ============================================================================

// ShallowUser is the owner reference embedded in posts and comments. UserID
// is nil for deleted accounts.
type ShallowUser struct {
	UserID      *int64 `json:"user_id,omitempty"`
	DisplayName string `json:"display_name"`
	UserType    string `json:"user_type,omitempty"`
	Link        string `json:"link,omitempty"`
}

type User struct {
	UserID         int64  `json:"user_id"`
	AccountID      *int64 `json:"account_id,omitempty"`
	DisplayName    string `json:"display_name"`
	CreationDate   int64  `json:"creation_date"`
	LastAccessDate int64  `json:"last_access_date"`
	Reputation     int    `json:"reputation"`
	UserType       string `json:"user_type,omitempty"`
	Link           string `json:"link,omitempty"`

	// IsDeactivated is returned by Enterprise when the filter includes it.
	IsDeactivated *bool `json:"is_deactivated,omitempty"`
}

type ReputationHistory struct {
	UserID                int64  `json:"user_id"`
	CreationDate          int64  `json:"creation_date"`
	ReputationChange      int    `json:"reputation_change"`
	ReputationHistoryType string `json:"reputation_history_type"`
	PostID                int64  `json:"post_id,omitempty"`
}

type Comment struct {
	CommentID    int64       `json:"comment_id"`
	PostID       int64       `json:"post_id"`
	Owner        ShallowUser `json:"owner"`
	CreationDate int64       `json:"creation_date"`
	Score        int         `json:"score"`
}

type Answer struct {
	AnswerID      int64       `json:"answer_id"`
	QuestionID    int64       `json:"question_id"`
	Owner         ShallowUser `json:"owner"`
	CreationDate  int64       `json:"creation_date"`
	UpVoteCount   int         `json:"up_vote_count"`
	DownVoteCount int         `json:"down_vote_count"`
	IsAccepted    bool        `json:"is_accepted"`
	Score         int         `json:"score"`
	Link          string      `json:"link,omitempty"`
	Comments      []Comment   `json:"comments,omitempty"`
}

type Question struct {
	QuestionID    int64       `json:"question_id"`
	Owner         ShallowUser `json:"owner"`
	CreationDate  int64       `json:"creation_date"`
	UpVoteCount   int         `json:"up_vote_count"`
	DownVoteCount int         `json:"down_vote_count"`
	AnswerCount   int         `json:"answer_count"`
	Score         int         `json:"score"`
	Title         string      `json:"title"`
	Link          string      `json:"link,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Answers       []Answer    `json:"answers,omitempty"`
	Comments      []Comment   `json:"comments,omitempty"`
}

type Article struct {
	ArticleID    int64       `json:"article_id"`
	Owner        ShallowUser `json:"owner"`
	CreationDate int64       `json:"creation_date"`
	Score        int         `json:"score"`
	Title        string      `json:"title"`
	Link         string      `json:"link,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	Comments     []Comment   `json:"comments,omitempty"`
}

// Filter is the result of /filters/create.
type Filter struct {
	Filter         string   `json:"filter"`
	FilterType     string   `json:"filter_type"`
	IncludedFields []string `json:"included_fields"`
}

// ============================================================================
// API v3 types
// ============================================================================

// RoleModerator is the v3 role name of moderators.
const RoleModerator = "Moderator"

// V3User is a user as returned by API v3. Profile fields are null when the
// user never filled them in.
type V3User struct {
	ID         int64   `json:"id"`
	AccountID  *int64  `json:"accountId"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	JobTitle   *string `json:"jobTitle"`
	Department *string `json:"department"`
	ExternalID *string `json:"externalId"`
	Role       string  `json:"role"`
	Reputation int     `json:"reputation"`
}

type Tag struct {
	ID                       int64  `json:"id"`
	Name                     string `json:"name"`
	Description              string `json:"description,omitempty"`
	PostCount                int    `json:"postCount"`
	SubjectMatterExpertCount int    `json:"subjectMatterExpertCount"`
}

type SMEUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SMEGroup struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Users []SMEUser `json:"users,omitempty"`
}

// TagSMEs lists the individual and group subject matter experts of a tag.
type TagSMEs struct {
	Users      []SMEUser  `json:"users"`
	UserGroups []SMEGroup `json:"userGroups"`
}
