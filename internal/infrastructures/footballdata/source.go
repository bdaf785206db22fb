package footballdata

import (
	"context"
	"fmt"
	"time"

	"github.com/tojlon/Soccer-Score/internal/domain/models"
	"github.com/tojlon/Soccer-Score/internal/infrastructures/footballdata/http/client"
	"github.com/tojlon/Soccer-Score/internal/infrastructures/footballdata/mappers"
)

type Source struct {
	client   *client.Client
	location *time.Location
}

func NewSource(client *client.Client, location *time.Location) *Source {
	if location == nil {
		location = time.UTC
	}
	return &Source{
		client:   client,
		location: location,
	}
}

func (s *Source) FetchByCompetition(ctx context.Context, competition models.Competition) (models.MatchFeed, error) {
	resp, err := s.client.GetMatches(ctx, competition.ID)
	if err != nil {
		return models.MatchFeed{}, fmt.Errorf("get matches for competition %d: %w", competition.ID, err)
	}

	matches, rowErrors := mappers.ToDomainMatches(resp.Body.Matches, s.location)

	return models.MatchFeed{
		Competition: competition,
		Matches:     matches,
		RowErrors:   rowErrors,
		Raw:         resp.Raw,
		Quota:       resp.Quota,
	}, nil
}
