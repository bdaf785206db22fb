package dto

import "encoding/json"

type MatchesResponse struct {
	ResultSet ResultSet         `json:"resultSet"`
	Matches   []json.RawMessage `json:"matches"`
}

type ResultSet struct {
	Count  int    `json:"count"`
	First  string `json:"first"`
	Last   string `json:"last"`
	Played int    `json:"played"`
}

type Match struct {
	ID       int64     `json:"id"`
	UTCDate  string    `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday *int      `json:"matchday"`
	Stage    string    `json:"stage"`
	HomeTeam *Team     `json:"homeTeam"`
	AwayTeam *Team     `json:"awayTeam"`
	Score    *Score    `json:"score"`
	Referees []Referee `json:"referees"`
}

type Team struct {
	ID        *int64  `json:"id"`
	Name      *string `json:"name"`
	ShortName *string `json:"shortName"`
	TLA       *string `json:"tla"`
	Crest     *string `json:"crest"`
}

type Score struct {
	Winner   *string   `json:"winner"`
	Duration string    `json:"duration"`
	FullTime ScorePair `json:"fullTime"`
	HalfTime ScorePair `json:"halfTime"`
}

type ScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Referee struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Type        string  `json:"type"`
	Nationality *string `json:"nationality"`
}
