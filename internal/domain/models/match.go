package models

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	StatusScheduled       MatchStatus = "SCHEDULED"
	StatusTimed           MatchStatus = "TIMED"
	StatusInPlay          MatchStatus = "IN_PLAY"
	StatusPaused          MatchStatus = "PAUSED"
	StatusExtraTime       MatchStatus = "EXTRA_TIME"
	StatusPenaltyShootout MatchStatus = "PENALTY_SHOOTOUT"
	StatusFinished        MatchStatus = "FINISHED"
	StatusSuspended       MatchStatus = "SUSPENDED"
	StatusPostponed       MatchStatus = "POSTPONED"
	StatusCancelled       MatchStatus = "CANCELLED"
	StatusAwarded         MatchStatus = "AWARDED"
)

// InPlay reports whether the match is currently being played, half-time included.
func (s MatchStatus) InPlay() bool {
	switch s {
	case StatusInPlay, StatusPaused, StatusExtraTime, StatusPenaltyShootout:
		return true
	default:
		return false
	}
}

// Started is false only for statuses known to precede kick-off.
func (s MatchStatus) Started() bool {
	switch s {
	case StatusScheduled, StatusTimed, StatusPostponed, StatusCancelled:
		return false
	default:
		return true
	}
}

type Match struct {
	ID                 int64
	HomeTeam           string
	AwayTeam           string
	HomeScore          *int
	AwayScore          *int
	KickoffUTC         time.Time
	KickoffLocal       time.Time
	Status             MatchStatus
	Referee            string
	RefereeNationality string
}

// RowError describes a single provider match that could not be turned into a Match.
type RowError struct {
	Index   int
	Summary string
	Err     error
}

func (e RowError) Error() string {
	return fmt.Sprintf("match #%d (%s): %v", e.Index, e.Summary, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// MatchFeed is the result of one fetch for one competition.
type MatchFeed struct {
	Competition Competition
	Matches     []Match
	RowErrors   []RowError
	Raw         []byte
	Quota       Quota
}

// Quota mirrors the provider's rate limit headers. Negative values mean unknown.
type Quota struct {
	AvailableMinute int
	ResetSeconds    int
}

type FetchEntry struct {
	CompetitionID CompetitionID
	StatusCode    int
	MatchCount    int
	SkippedCount  int
	Duration      time.Duration
	Err           string
	FetchedAt     time.Time
}
