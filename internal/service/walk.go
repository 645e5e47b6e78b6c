package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/internal/repository"
	"github.com/google/uuid"
)

type walkService struct {
	walkRepo    repository.WalkRepository
	aggRepo     repository.DailyAggregateRepository
	streakRepo  repository.StreakRepository
	profileRepo repository.ProfileRepository
}

// NewWalkService creates a new walk service
func NewWalkService(
	walkRepo repository.WalkRepository,
	aggRepo repository.DailyAggregateRepository,
	streakRepo repository.StreakRepository,
	profileRepo repository.ProfileRepository,
) WalkService {
	return &walkService{
		walkRepo:    walkRepo,
		aggRepo:     aggRepo,
		streakRepo:  streakRepo,
		profileRepo: profileRepo,
	}
}

func (s *walkService) CreateWalk(ctx context.Context, userID string, req *models.CreateWalkRequest) (*models.Walk, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	walk := &models.Walk{
		ID:              uuid.New().String(),
		UserID:          userID,
		Date:            date,
		Steps:           req.Steps,
		DurationMinutes: req.DurationMinutes,
		DistanceMeters:  req.DistanceMeters,
		HeartRate:       req.HeartRate,
	}

	created, err := s.walkRepo.Create(ctx, walk)
	if err != nil {
		return nil, err
	}

	// Ingestion is the other mutator of derived state besides deletion;
	// both run the same per-date recompute and streak refresh
	goal, err := s.stepGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeDay(ctx, userID, date, goal); err != nil {
		return nil, err
	}
	if err := s.refreshStreak(ctx, userID); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *walkService) GetWalk(ctx context.Context, userID, walkID string) (*models.Walk, error) {
	walk, err := s.walkRepo.GetByID(ctx, walkID)
	if err != nil {
		return nil, err
	}
	if walk == nil || walk.UserID != userID {
		return nil, ErrWalkNotFound
	}
	return walk, nil
}

func (s *walkService) ListWalks(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Walk, error) {
	return s.walkRepo.GetByUserIDAndDateRange(ctx, userID, startDate, endDate)
}

func (s *walkService) DeleteWalk(ctx context.Context, userID, walkID string) error {
	return s.DeleteWalks(ctx, userID, []string{walkID})
}

// stepGoal fetches the user's daily step goal from their profile
func (s *walkService) stepGoal(ctx context.Context, userID string) (int, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrProfileNotFound
	}
	return profile.DailyStepGoal, nil
}
