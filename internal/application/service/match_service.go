package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	derr "github.com/tojlon/Soccer-Score/internal/domain/errors"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
	"github.com/tojlon/Soccer-Score/internal/domain/ports"
	"go.uber.org/zap"
)

type MatchService struct {
	log     *zap.Logger
	source  ports.MatchSource
	budget  ports.RequestBudget
	journal ports.FetchJournal
	now     func() time.Time
}

// NewMatchService wires the pipeline. budget and journal are optional.
func NewMatchService(log *zap.Logger, source ports.MatchSource, budget ports.RequestBudget, journal ports.FetchJournal) *MatchService {
	return &MatchService{
		log:     log,
		source:  source,
		budget:  budget,
		journal: journal,
		now:     time.Now,
	}
}

// GetMatches performs exactly one provider fetch for the competition. Nothing is
// cached between calls.
func (s *MatchService) GetMatches(ctx context.Context, id models.CompetitionID) (models.MatchFeed, error) {
	const op = "service.GetMatches"

	competition, ok := models.CompetitionByID(id)
	if !ok {
		return models.MatchFeed{}, fmt.Errorf("%s: competition %d: %w", op, id, derr.ErrCompetitionNotFound)
	}

	logger := s.log.With(
		zap.String("op", op),
		zap.Int("competition_id", int(competition.ID)),
		zap.String("competition", competition.Code),
	)

	if s.budget != nil {
		if err := s.budget.Acquire(ctx); err != nil {
			if errors.Is(err, derr.ErrQuotaExceeded) {
				logger.Warn("request budget exhausted")
				return models.MatchFeed{}, fmt.Errorf("%s: %w", op, err)
			}
			logger.Warn("request budget check failed", zap.Error(err))
		}
	}

	started := s.now()
	feed, err := s.source.FetchByCompetition(ctx, competition)
	elapsed := s.now().Sub(started)

	entry := models.FetchEntry{
		CompetitionID: competition.ID,
		Duration:      elapsed,
		FetchedAt:     started.UTC(),
	}
	if err != nil {
		entry.StatusCode = derr.StatusCode(err)
		entry.Err = err.Error()
		s.record(ctx, logger, entry)

		logger.Error("fetch matches failed", zap.Int("status_code", entry.StatusCode), zap.Error(err))
		return models.MatchFeed{}, fmt.Errorf("%s: fetch matches: %w", op, err)
	}

	entry.StatusCode = http.StatusOK
	entry.MatchCount = len(feed.Matches)
	entry.SkippedCount = len(feed.RowErrors)
	s.record(ctx, logger, entry)

	for _, rowErr := range feed.RowErrors {
		logger.Warn("match skipped",
			zap.Int("index", rowErr.Index),
			zap.String("match", rowErr.Summary),
			zap.Error(rowErr.Err),
		)
	}

	logger.Info("matches fetched",
		zap.Int("matches", len(feed.Matches)),
		zap.Int("skipped", len(feed.RowErrors)),
		zap.Int("quota_available_minute", feed.Quota.AvailableMinute),
		zap.Duration("duration", elapsed),
	)

	return feed, nil
}

func (s *MatchService) record(ctx context.Context, logger *zap.Logger, entry models.FetchEntry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		logger.Warn("fetch journal write failed", zap.Error(err))
	}
}
