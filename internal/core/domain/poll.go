package domain

import "time"

// Poll is a titled question with 2-10 selectable options. Tally keys always
// mirror Options exactly; votes only ever increment an existing key.
type Poll struct {
	ID        string
	Title     string
	MediaRef  string
	Options   []string
	Tally     map[string]int
	CreatorID int64
	CreatedAt time.Time
	Active    bool
}

const (
	MaxTitleLen = 200
	MinOptions  = 2
	MaxOptions  = 10
)

type OptionCount struct {
	Option     string
	Count      int
	Percentage float64
}

type PollStats struct {
	ID         string
	Title      string
	MediaRef   string
	Active     bool
	CreatedAt  time.Time
	Options    []OptionCount
	TotalVotes int
}

type PollSummary struct {
	ID     string
	Title  string
	Active bool
	Votes  int
}

// Overview aggregates service-wide counters for the admin stats screen.
type Overview struct {
	TotalUsers  int
	TotalPolls  int
	ActivePolls int
	ClosedPolls int
	TotalVotes  int
	Polls       []PollSummary
}
