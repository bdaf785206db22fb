package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

const (
	NoGamesMessage = "No game today"
	timeLayout     = "15:04:05"
)

type Table struct {
	Columns    []string `json:"columns"`
	Rows       []Row    `json:"rows"`
	NoGames    bool     `json:"no_games"`
	Error      string   `json:"error,omitempty"`
	StatusCode int      `json:"status_code,omitempty"`
}

type Row struct {
	Cells  []string           `json:"cells"`
	Live   bool               `json:"live"`
	Status models.MatchStatus `json:"status"`
}

// Columns returns the header, local kick-off time first.
func Columns(zoneLabel string) []string {
	return []string{
		fmt.Sprintf("Time (%s)", zoneLabel),
		"Home Team",
		"Away Team",
		"Home Score",
		"Away Score",
		"Status",
		"Referee",
		"Ref Nationality",
	}
}

func Render(matches []models.Match, zoneLabel string) Table {
	t := Table{
		Columns: Columns(zoneLabel),
		Rows:    make([]Row, 0, len(matches)),
	}
	if len(matches) == 0 {
		t.NoGames = true
		return t
	}

	for _, m := range matches {
		t.Rows = append(t.Rows, Row{
			Cells: []string{
				m.KickoffLocal.Format(timeLayout),
				m.HomeTeam,
				m.AwayTeam,
				scoreCell(m.Status, m.HomeScore),
				scoreCell(m.Status, m.AwayScore),
				string(m.Status),
				m.Referee,
				m.RefereeNationality,
			},
			Live:   m.Status.InPlay(),
			Status: m.Status,
		})
	}

	return t
}

// Failed is the table shown when the fetch did not produce any data.
func Failed(err error, zoneLabel string) Table {
	t := Table{
		Columns:    Columns(zoneLabel),
		Rows:       []Row{},
		StatusCode: derr.StatusCode(err),
	}

	switch {
	case t.StatusCode != 0:
		t.Error = fmt.Sprintf("Error fetching data: %d", t.StatusCode)
	case errors.Is(err, derr.ErrQuotaExceeded):
		t.Error = "Error fetching data: request quota exhausted, retry in a minute"
	case errors.Is(err, derr.ErrSourceUnavailable):
		t.Error = "Error fetching data: source unavailable"
	default:
		t.Error = "Error fetching data"
	}

	return t
}

// ZoneLabel turns "Europe/Paris" into "Paris".
func ZoneLabel(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	name := loc.String()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

func scoreCell(status models.MatchStatus, score *int) string {
	if score == nil || !status.Started() {
		return ""
	}
	return strconv.Itoa(*score)
}
