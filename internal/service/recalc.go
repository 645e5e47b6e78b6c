package service

import (
	"context"
	"time"

	"github.com/amblelog/amble/backend/internal/logger"
	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/internal/observability"
)

// DeleteWalks removes the given walks and runs the recalculation cascade:
// one scoped batch delete, a per-date aggregate recompute for each distinct
// affected date, then a single full-history streak recomputation. The steps
// are strictly sequential; there is no transactional rollback, so a store
// failure mid-cascade leaves already-written state in place and the next
// cascade heals it.
func (s *walkService) DeleteWalks(ctx context.Context, userID string, walkIDs []string) error {
	log := logger.Ctx(ctx)
	observability.RecordCascadeRun()

	walks, err := s.walkRepo.GetByIDs(ctx, userID, walkIDs)
	if err != nil {
		observability.RecordCascadeFailure()
		return err
	}
	if len(walks) != len(walkIDs) {
		// Missing or foreign walks; the query is scoped to the user
		return ErrWalkNotFound
	}

	if err := s.walkRepo.DeleteByIDs(ctx, userID, walkIDs); err != nil {
		observability.RecordCascadeFailure()
		return err
	}

	// Distinct affected dates; a batch may hit several days
	seen := make(map[string]bool)
	dates := make([]time.Time, 0, len(walks))
	for _, walk := range walks {
		key := walk.Date.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, walk.Date)
		}
	}

	goal, err := s.stepGoal(ctx, userID)
	if err != nil {
		observability.RecordCascadeFailure()
		log.Error("cascade aborted before aggregate recompute; walks already deleted",
			logger.Err(err), logger.Int("walks", len(walks)))
		return err
	}

	for _, date := range dates {
		if err := s.recomputeDay(ctx, userID, date, goal); err != nil {
			observability.RecordCascadeFailure()
			log.Error("cascade aborted mid-recompute; aggregates partially updated",
				logger.Err(err), logger.Time("date", date))
			return err
		}
	}

	// Exactly one streak recomputation after all per-date updates, so the
	// streak never sees a half-updated aggregate set
	if err := s.refreshStreak(ctx, userID); err != nil {
		observability.RecordCascadeFailure()
		log.Error("cascade aborted before streak refresh; aggregates updated, streak stale",
			logger.Err(err))
		return err
	}

	observability.RecordRecalculation(time.Now())
	return nil
}

// recomputeDay re-derives the daily aggregate for one (user, date) from the
// walks that remain on that date. A zero total means the aggregate row must
// not exist at all.
func (s *walkService) recomputeDay(ctx context.Context, userID string, date time.Time, goal int) error {
	walks, err := s.walkRepo.GetByUserIDAndDate(ctx, userID, date)
	if err != nil {
		return err
	}

	total := 0
	for _, walk := range walks {
		total += walk.Steps
	}

	if total == 0 {
		return s.aggRepo.DeleteByUserIDAndDate(ctx, userID, date)
	}

	agg := &models.DailyAggregate{
		UserID:     userID,
		Date:       date,
		TotalSteps: total,
		GoalMet:    total >= goal,
	}
	_, err = s.aggRepo.Upsert(ctx, agg)
	return err
}

// refreshStreak recomputes the user's streak state over the full aggregate
// history and persists it. When no aggregates remain the update is a reset:
// current 0, last activity date null.
func (s *walkService) refreshStreak(ctx context.Context, userID string) error {
	aggs, err := s.aggRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	result := CalculateStreaks(aggs)

	state := &models.StreakState{
		UserID:           userID,
		CurrentStreak:    result.Current,
		LongestStreak:    result.Longest,
		LastActivityDate: result.LastActivityDate,
	}
	_, err = s.streakRepo.Upsert(ctx, state)
	return err
}
