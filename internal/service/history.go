package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/internal/repository"
)

type historyService struct {
	walkRepo    repository.WalkRepository
	aggRepo     repository.DailyAggregateRepository
	streakRepo  repository.StreakRepository
	profileRepo repository.ProfileRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(
	walkRepo repository.WalkRepository,
	aggRepo repository.DailyAggregateRepository,
	streakRepo repository.StreakRepository,
	profileRepo repository.ProfileRepository,
) HistoryService {
	return &historyService{
		walkRepo:    walkRepo,
		aggRepo:     aggRepo,
		streakRepo:  streakRepo,
		profileRepo: profileRepo,
	}
}

// periodWindow resolves a period label into a closed date window ending today
func periodWindow(period string, now time.Time) (start, end time.Time, err error) {
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case "week":
		start = end.AddDate(0, 0, -6)
	case "month":
		start = end.AddDate(0, -1, 0)
	case "year":
		start = end.AddDate(-1, 0, 0)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	return start, end, nil
}

func (s *historyService) GetHistory(ctx context.Context, userID, period string) (*models.HistoryResponse, error) {
	startDate, endDate, err := periodWindow(period, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	walks, err := s.walkRepo.GetByUserIDAndDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get walks: %w", err)
	}

	// Aggregates arrive most-recent-first, which the perfect-week insight
	// trigger depends on
	aggs, err := s.aggRepo.GetByUserIDAndDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily aggregates: %w", err)
	}

	streak, err := s.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return &models.HistoryResponse{
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
		Walks:      walks,
		Aggregates: aggs,
		Stats:      SummarizeWindow(aggs, walks, profile.DailyStepGoal),
		Streak:     streak,
		Insights:   GenerateInsights(walks, aggs, streak, period),
	}, nil
}

// GetStreak returns the user's streak state. A user who has never logged a
// goal-met day gets the zero state rather than an error.
func (s *historyService) GetStreak(ctx context.Context, userID string) (*models.StreakState, error) {
	streak, err := s.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if streak == nil {
		return &models.StreakState{UserID: userID}, nil
	}
	return streak, nil
}
