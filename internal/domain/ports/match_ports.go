package ports

import (
	"context"

	"github.com/tojlon/Soccer-Score/internal/domain/models"
)

type MatchSource interface {
	FetchByCompetition(ctx context.Context, competition models.Competition) (models.MatchFeed, error)
}

type RequestBudget interface {
	Acquire(ctx context.Context) error
}

type FetchJournal interface {
	Record(ctx context.Context, entry models.FetchEntry) error
}
