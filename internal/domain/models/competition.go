package models

import (
	"strconv"
	"strings"
)

type CompetitionID int

type Competition struct {
	ID   CompetitionID `json:"id"`
	Code string        `json:"code"`
	Name string        `json:"name"`
}

var competitions = []Competition{
	{ID: 2015, Code: "FL1", Name: "Ligue 1 McDonald's"},
	{ID: 2021, Code: "PL", Name: "Premier League"},
	{ID: 2002, Code: "BL1", Name: "Bundesliga"},
	{ID: 2014, Code: "PD", Name: "LaLiga"},
	{ID: 2001, Code: "CL", Name: "Champions League"},
	{ID: 2148, Code: "EL", Name: "Europa League"},
}

func Competitions() []Competition {
	out := make([]Competition, len(competitions))
	copy(out, competitions)
	return out
}

func DefaultCompetition() Competition {
	return competitions[0]
}

func CompetitionByID(id CompetitionID) (Competition, bool) {
	for _, c := range competitions {
		if c.ID == id {
			return c, true
		}
	}
	return Competition{}, false
}

// LookupCompetition accepts a numeric ID, a provider code or a display name.
func LookupCompetition(key string) (Competition, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Competition{}, false
	}

	if id, err := strconv.Atoi(key); err == nil {
		return CompetitionByID(CompetitionID(id))
	}

	for _, c := range competitions {
		if strings.EqualFold(c.Code, key) || strings.EqualFold(c.Name, key) {
			return c, true
		}
	}
	return Competition{}, false
}
