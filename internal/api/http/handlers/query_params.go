package handlers

import (
	"net/http"
	"strings"

	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

// parseLeagueQuery falls back to the default competition when league is absent.
func parseLeagueQuery(r *http.Request) (models.Competition, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("league"))
	if raw == "" {
		return models.DefaultCompetition(), true
	}
	return models.LookupCompetition(raw)
}

func parseBoolQuery(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
