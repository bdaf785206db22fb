package mappers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
	"github.com/tojlon/Soccer-Score/internal/infrastructures/footballdata/dto"
)

const (
	refereeFallback = "N/A"
	summaryMaxLen   = 160
)

// requiredKeys must be present on every match. A JSON null still counts as present.
var requiredKeys = [][]string{
	{"homeTeam", "name"},
	{"awayTeam", "name"},
	{"score", "fullTime", "home"},
	{"score", "fullTime", "away"},
	{"utcDate"},
	{"status"},
	{"referees"},
}

var refereeKeys = []string{"name", "nationality"}

// ToDomainMatches maps every raw match independently. Broken matches are reported
// in the returned row errors and do not affect the others.
func ToDomainMatches(raw []json.RawMessage, loc *time.Location) ([]models.Match, []models.RowError) {
	matches := make([]models.Match, 0, len(raw))
	var rowErrors []models.RowError

	for i, item := range raw {
		match, err := ToDomainMatch(item, loc)
		if err != nil {
			rowErrors = append(rowErrors, models.RowError{
				Index:   i,
				Summary: summarize(item),
				Err:     err,
			})
			continue
		}
		matches = append(matches, match)
	}

	return matches, rowErrors
}

func ToDomainMatch(raw json.RawMessage, loc *time.Location) (models.Match, error) {
	if loc == nil {
		loc = time.UTC
	}

	var doc map[string]any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return models.Match{}, fmt.Errorf("decode match: %w", err)
	}
	if key, ok := findMissingKey(doc); ok {
		return models.Match{}, fmt.Errorf("%w: %s", derr.ErrMissingKey, key)
	}

	var in dto.Match
	if err := sonic.Unmarshal(raw, &in); err != nil {
		return models.Match{}, fmt.Errorf("decode match: %w", err)
	}

	kickoff, err := parseKickoff(in.UTCDate)
	if err != nil {
		return models.Match{}, fmt.Errorf("parse kickoff datetime: %w", err)
	}

	out := models.Match{
		ID:                 in.ID,
		HomeTeam:           teamName(in.HomeTeam),
		AwayTeam:           teamName(in.AwayTeam),
		KickoffUTC:         kickoff.UTC(),
		KickoffLocal:       kickoff.In(loc),
		Status:             models.MatchStatus(strings.ToUpper(strings.TrimSpace(in.Status))),
		Referee:            refereeFallback,
		RefereeNationality: refereeFallback,
	}
	if in.Score != nil {
		out.HomeScore = in.Score.FullTime.Home
		out.AwayScore = in.Score.FullTime.Away
	}
	if len(in.Referees) > 0 {
		out.Referee = derefString(in.Referees[0].Name)
		out.RefereeNationality = derefString(in.Referees[0].Nationality)
	}

	return out, nil
}

func findMissingKey(doc map[string]any) (string, bool) {
	for _, path := range requiredKeys {
		var cur any = doc
		for i, key := range path {
			obj, ok := cur.(map[string]any)
			if !ok {
				return strings.Join(path[:i+1], "."), true
			}
			v, ok := obj[key]
			if !ok {
				return strings.Join(path[:i+1], "."), true
			}
			cur = v
		}
	}

	referees, _ := doc["referees"].([]any)
	if len(referees) == 0 {
		return "", false
	}
	first, ok := referees[0].(map[string]any)
	if !ok {
		return "referees.0", true
	}
	for _, key := range refereeKeys {
		if _, ok := first[key]; !ok {
			return "referees.0." + key, true
		}
	}

	return "", false
}

func teamName(t *dto.Team) string {
	if t == nil {
		return ""
	}
	return derefString(t.Name)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseKickoff(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported datetime format: %q", value)
}

func summarize(raw json.RawMessage) string {
	var head struct {
		ID       int64 `json:"id"`
		HomeTeam *struct {
			Name *string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam *struct {
			Name *string `json:"name"`
		} `json:"awayTeam"`
	}
	if err := sonic.Unmarshal(raw, &head); err == nil && head.ID > 0 {
		var home, away string
		if head.HomeTeam != nil {
			home = derefString(head.HomeTeam.Name)
		}
		if head.AwayTeam != nil {
			away = derefString(head.AwayTeam.Name)
		}
		if home != "" || away != "" {
			return fmt.Sprintf("id %d, %s - %s", head.ID, home, away)
		}
		return fmt.Sprintf("id %d", head.ID)
	}

	s := strings.Join(strings.Fields(string(raw)), " ")
	if len(s) > summaryMaxLen {
		s = s[:summaryMaxLen] + "..."
	}
	return s
}
