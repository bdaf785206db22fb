package table

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"

	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

func intPtr(v int) *int { return &v }

func TestRender_EmptyIsNoGames(t *testing.T) {
	got := Render(nil, "Paris")
	if !got.NoGames {
		t.Fatal("expected no games state")
	}
	if got.Error != "" {
		t.Fatalf("expected no error, got %q", got.Error)
	}
	if len(got.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(got.Rows))
	}
}

func TestRender_ColumnsAndCells(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	kickoff := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	matches := []models.Match{
		{
			HomeTeam:           "Arsenal FC",
			AwayTeam:           "Chelsea FC",
			HomeScore:          intPtr(2),
			AwayScore:          intPtr(0),
			KickoffUTC:         kickoff,
			KickoffLocal:       kickoff.In(loc),
			Status:             models.StatusInPlay,
			Referee:            "Anthony Taylor",
			RefereeNationality: "England",
		},
		{
			HomeTeam:           "Everton FC",
			AwayTeam:           "Fulham FC",
			HomeScore:          intPtr(0),
			AwayScore:          intPtr(0),
			KickoffUTC:         kickoff,
			KickoffLocal:       kickoff.In(loc),
			Status:             models.StatusTimed,
			Referee:            "N/A",
			RefereeNationality: "N/A",
		},
	}

	got := Render(matches, ZoneLabel(loc))

	wantColumns := []string{"Time (Paris)", "Home Team", "Away Team", "Home Score", "Away Score", "Status", "Referee", "Ref Nationality"}
	if fmt.Sprint(got.Columns) != fmt.Sprint(wantColumns) {
		t.Fatalf("expected columns %v, got %v", wantColumns, got.Columns)
	}
	if got.NoGames {
		t.Fatal("expected rows, got no games state")
	}

	live := got.Rows[0]
	if !live.Live {
		t.Fatal("expected in-play row to be live")
	}
	wantLive := []string{"20:00:00", "Arsenal FC", "Chelsea FC", "2", "0", "IN_PLAY", "Anthony Taylor", "England"}
	if fmt.Sprint(live.Cells) != fmt.Sprint(wantLive) {
		t.Fatalf("expected cells %v, got %v", wantLive, live.Cells)
	}

	scheduled := got.Rows[1]
	if scheduled.Live {
		t.Fatal("expected timed row not to be live")
	}
	if scheduled.Cells[3] != "" || scheduled.Cells[4] != "" {
		t.Fatalf("expected empty scores before kick-off, got %q - %q", scheduled.Cells[3], scheduled.Cells[4])
	}
}

func TestRender_AbsentScoreIsEmpty(t *testing.T) {
	got := Render([]models.Match{{Status: models.StatusFinished}}, "UTC")
	if got.Rows[0].Cells[3] != "" || got.Rows[0].Cells[4] != "" {
		t.Fatalf("expected empty score cells, got %v", got.Rows[0].Cells)
	}
}

func TestFailed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantCode int
	}{
		{
			name:     "forbidden",
			err:      fmt.Errorf("fetch: %w", &derr.StatusError{Code: http.StatusForbidden}),
			wantMsg:  "Error fetching data: 403",
			wantCode: http.StatusForbidden,
		},
		{
			name:    "quota",
			err:     derr.ErrQuotaExceeded,
			wantMsg: "Error fetching data: request quota exhausted, retry in a minute",
		},
		{
			name:    "transport",
			err:     fmt.Errorf("%w: dial tcp", derr.ErrSourceUnavailable),
			wantMsg: "Error fetching data: source unavailable",
		},
		{
			name:    "other",
			err:     errors.New("boom"),
			wantMsg: "Error fetching data",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Failed(tc.err, "Paris")
			if got.Error != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, got.Error)
			}
			if got.StatusCode != tc.wantCode {
				t.Fatalf("expected code %d, got %d", tc.wantCode, got.StatusCode)
			}
			if got.NoGames || len(got.Rows) != 0 {
				t.Fatalf("expected empty non-no-games table, got %+v", got)
			}
		})
	}
}

func TestZoneLabel(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	if got := ZoneLabel(ny); got != "New York" {
		t.Fatalf("expected New York, got %q", got)
	}
	if got := ZoneLabel(time.UTC); got != "UTC" {
		t.Fatalf("expected UTC, got %q", got)
	}
}
