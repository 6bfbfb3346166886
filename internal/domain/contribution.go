package domain

import "time"

// Contribution is a point-bearing activity record owned by a member.
// TimePeriod is a "YYYY-MM" label used for monthly grouping and is
// independent of DateAdded.
type Contribution struct {
	ID          string    `json:"id"`
	MemberRegNo string    `json:"member_reg_no"`
	ProjectName string    `json:"project_name"`
	TimePeriod  string    `json:"time_period"`
	Position    string    `json:"position"`
	Points      int       `json:"points"`
	Avenue      *string   `json:"avenue"`
	DateAdded   time.Time `json:"date_added"`
	AddedBy     *string   `json:"added_by"`
}

// LeaderboardEntry is one row of a points ranking.
type LeaderboardEntry struct {
	RegNo            string `json:"reg_no"`
	NameWithInitials string `json:"name_with_initials"`
	Points           int    `json:"points"`
}
