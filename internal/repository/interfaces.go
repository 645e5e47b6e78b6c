package repository

import (
	"context"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
)

// WalkRepository defines the interface for walk record data access
type WalkRepository interface {
	Create(ctx context.Context, walk *models.Walk) (*models.Walk, error)
	GetByID(ctx context.Context, id string) (*models.Walk, error)
	GetByIDs(ctx context.Context, userID string, ids []string) ([]models.Walk, error)
	GetByUserIDAndDate(ctx context.Context, userID string, date time.Time) ([]models.Walk, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Walk, error)
	DeleteByIDs(ctx context.Context, userID string, ids []string) error
}

// DailyAggregateRepository defines the interface for daily aggregate data access
type DailyAggregateRepository interface {
	Upsert(ctx context.Context, agg *models.DailyAggregate) (*models.DailyAggregate, error)
	// GetByUserID returns the user's entire daily aggregate history in a
	// single unpaginated query. Streak recomputation depends on seeing the
	// full history, so this must never be limited or windowed.
	GetByUserID(ctx context.Context, userID string) ([]models.DailyAggregate, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyAggregate, error)
	DeleteByUserIDAndDate(ctx context.Context, userID string, date time.Time) error
}

// StreakRepository defines the interface for streak state data access
type StreakRepository interface {
	// GetByUserID returns the user's streak state, or nil if none exists yet
	GetByUserID(ctx context.Context, userID string) (*models.StreakState, error)
	Upsert(ctx context.Context, streak *models.StreakState) (*models.StreakState, error)
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// GetByUserID returns the user's profile, or nil if none exists
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}
