package service

import (
	"context"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
)

// WalkService defines the interface for walk business logic, including the
// recalculation cascade that keeps daily aggregates and streak state
// consistent with the walk records
type WalkService interface {
	CreateWalk(ctx context.Context, userID string, req *models.CreateWalkRequest) (*models.Walk, error)
	GetWalk(ctx context.Context, userID, walkID string) (*models.Walk, error)
	ListWalks(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Walk, error)
	DeleteWalk(ctx context.Context, userID, walkID string) error
	DeleteWalks(ctx context.Context, userID string, walkIDs []string) error
}

// HistoryService defines the interface for the read-side history view
type HistoryService interface {
	GetHistory(ctx context.Context, userID, period string) (*models.HistoryResponse, error)
	GetStreak(ctx context.Context, userID string) (*models.StreakState, error)
}
