package terminal

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/tojlon/Soccer-Score/internal/api/table"
	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

func init() {
	color.NoColor = true
}

var premierLeague = models.Competition{ID: 2021, Code: "PL", Name: "Premier League"}

func intPtr(v int) *int { return &v }

func TestPrint_Rows(t *testing.T) {
	kickoff := time.Date(2024, 6, 1, 20, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	tbl := table.Render([]models.Match{
		{
			HomeTeam:           "Arsenal FC",
			AwayTeam:           "Chelsea FC",
			HomeScore:          intPtr(2),
			AwayScore:          intPtr(1),
			KickoffLocal:       kickoff,
			Status:             models.StatusInPlay,
			Referee:            "Michael Oliver",
			RefereeNationality: "England",
		},
		{
			HomeTeam:     "Everton FC",
			AwayTeam:     "Fulham FC",
			KickoffLocal: kickoff.Add(2 * time.Hour),
			Status:       models.StatusTimed,
			Referee:      "N/A",
		},
	}, "Paris")

	var out bytes.Buffer
	err := NewPrinter(&out).Print(premierLeague, tbl, []models.RowError{
		{Index: 2, Summary: "id 9", Err: derr.ErrMissingKey},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "Premier League" {
		t.Fatalf("expected competition title, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Time (Paris)") {
		t.Fatalf("expected header first, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "20:00:00") || !strings.Contains(lines[2], "Arsenal FC") {
		t.Fatalf("unexpected first row: %q", lines[2])
	}
	if strings.Index(lines[1], "Home Team") != strings.Index(lines[2], "Arsenal FC") {
		t.Fatalf("expected aligned columns:\n%s\n%s", lines[1], lines[2])
	}
	if !strings.Contains(lines[4], "match #2") {
		t.Fatalf("expected skipped row warning, got %q", lines[4])
	}
}

func TestPrint_NoGames(t *testing.T) {
	var out bytes.Buffer
	err := NewPrinter(&out).Print(premierLeague, table.Render(nil, "Paris"), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), table.NoGamesMessage) {
		t.Fatalf("expected no games message, got %q", out.String())
	}
}

func TestPrint_ErrorState(t *testing.T) {
	var out bytes.Buffer
	failed := table.Failed(&derr.StatusError{Code: http.StatusForbidden}, "Paris")

	err := NewPrinter(&out).Print(premierLeague, failed, nil)
	if err == nil {
		t.Fatal("expected error for failed table")
	}
	if !strings.Contains(out.String(), "Error fetching data: 403") {
		t.Fatalf("expected status code in output, got %q", out.String())
	}
}
