package domain

// SkippedUser records a user left out of the report because a projected
// attribute was absent.
type SkippedUser struct {
	Key    UserKey
	Link   string
	Column string
}

// Report is the flat tabular projection: one header row, one row per
// surviving user.
type Report struct {
	Header  []string
	Rows    [][]string
	Skipped []SkippedUser
}
