package handlers

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tojlon/Soccer-Score/internal/api/table"
	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
	"go.uber.org/zap"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type MatchReader interface {
	GetMatches(ctx context.Context, id models.CompetitionID) (models.MatchFeed, error)
}

type MatchHandler struct {
	log          *zap.Logger
	matches      MatchReader
	zoneLabel    string
	debugEnabled bool
	timeout      time.Duration
}

type competitionLink struct {
	Name   string
	URL    string
	Active bool
}

type dashboardPage struct {
	Title        string
	Competitions []competitionLink
	Selected     models.Competition
	NotFound     string
	Table        table.Table
	RowErrors    []string
	DebugEnabled bool
	DebugURL     string
	RawJSON      string
}

type matchesResponse struct {
	Competition models.Competition `json:"competition"`
	Table       table.Table        `json:"table"`
	RowErrors   []string           `json:"row_errors"`
}

func NewMatchHandler(log *zap.Logger, matches MatchReader, location *time.Location, debugEnabled bool, timeout time.Duration) *MatchHandler {
	return &MatchHandler{
		log:          log,
		matches:      matches,
		zoneLabel:    table.ZoneLabel(location),
		debugEnabled: debugEnabled,
		timeout:      timeout,
	}
}

func (h *MatchHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := dashboardPage{
		Title:        "Games of the Day",
		DebugEnabled: h.debugEnabled,
	}

	competition, ok := parseLeagueQuery(r)
	if !ok {
		page.Competitions = competitionLinks(0)
		page.NotFound = "Unknown league: " + r.URL.Query().Get("league")
		h.renderPage(w, http.StatusNotFound, page)
		return
	}
	page.Selected = competition
	page.Competitions = competitionLinks(competition.ID)
	page.DebugURL = leagueURL(competition.ID, true)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	feed, err := h.matches.GetMatches(ctx, competition.ID)
	if err != nil {
		h.log.Error("get matches failed",
			zap.Error(err),
			zap.Int("competition_id", int(competition.ID)),
		)
		page.Table = table.Failed(err, h.zoneLabel)
		h.renderPage(w, http.StatusOK, page)
		return
	}

	page.Table = table.Render(feed.Matches, h.zoneLabel)
	page.RowErrors = rowErrorMessages(feed.RowErrors)
	if h.debugEnabled && parseBoolQuery(r, "debug") {
		page.RawJSON = prettyJSON(feed.Raw)
	}

	h.renderPage(w, http.StatusOK, page)
}

func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	competition, ok := parseLeagueQuery(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown league, example: /api/v1/matches?league=PL")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	feed, err := h.matches.GetMatches(ctx, competition.ID)
	if err != nil {
		h.log.Error("get matches failed",
			zap.Error(err),
			zap.Int("competition_id", int(competition.ID)),
		)
		failed := table.Failed(err, h.zoneLabel)
		status := http.StatusBadGateway
		if errors.Is(err, derr.ErrQuotaExceeded) {
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, map[string]interface{}{
			"error":       failed.Error,
			"status_code": failed.StatusCode,
		})
		return
	}

	writeJSON(w, http.StatusOK, matchesResponse{
		Competition: competition,
		Table:       table.Render(feed.Matches, h.zoneLabel),
		RowErrors:   rowErrorMessages(feed.RowErrors),
	})
}

func (h *MatchHandler) GetCompetitions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"competitions": models.Competitions(),
	})
}

func (h *MatchHandler) renderPage(w http.ResponseWriter, status int, page dashboardPage) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.log.Error("render dashboard failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func competitionLinks(active models.CompetitionID) []competitionLink {
	all := models.Competitions()
	links := make([]competitionLink, 0, len(all))
	for _, c := range all {
		links = append(links, competitionLink{
			Name:   c.Name,
			URL:    leagueURL(c.ID, false),
			Active: c.ID == active,
		})
	}
	return links
}

func leagueURL(id models.CompetitionID, debug bool) string {
	q := url.Values{}
	q.Set("league", strconv.Itoa(int(id)))
	if debug {
		q.Set("debug", "1")
	}
	return "/?" + q.Encode()
}

func rowErrorMessages(rowErrors []models.RowError) []string {
	out := make([]string, 0, len(rowErrors))
	for _, e := range rowErrors {
		out = append(out, e.Error())
	}
	return out
}

func prettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
