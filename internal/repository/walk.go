package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/pkg/supabase"
)

type walkRepository struct {
	client *supabase.Client
}

// NewWalkRepository creates a new walk repository
func NewWalkRepository(client *supabase.Client) WalkRepository {
	return &walkRepository{client: client}
}

// walkRow mirrors the walks table; the date column arrives as "2006-01-02"
type walkRow struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	Date            string                   `json:"date"`
	Steps           int                      `json:"steps"`
	DurationMinutes *int                     `json:"duration_minutes"`
	DistanceMeters  *float64                 `json:"distance_meters"`
	HeartRate       *models.HeartRateSummary `json:"heart_rate"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func (r walkRow) toModel() (models.Walk, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.Walk{}, fmt.Errorf("invalid date in walk %s: %w", r.ID, err)
	}
	return models.Walk{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            date,
		Steps:           r.Steps,
		DurationMinutes: r.DurationMinutes,
		DistanceMeters:  r.DistanceMeters,
		HeartRate:       r.HeartRate,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}

func decodeWalks(body []byte) ([]models.Walk, error) {
	var rows []walkRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	walks := make([]models.Walk, 0, len(rows))
	for _, row := range rows {
		walk, err := row.toModel()
		if err != nil {
			return nil, err
		}
		walks = append(walks, walk)
	}
	return walks, nil
}

func (r *walkRepository) Create(ctx context.Context, walk *models.Walk) (*models.Walk, error) {
	data := map[string]interface{}{
		"user_id": walk.UserID,
		"date":    walk.Date.Format(dateLayout),
		"steps":   walk.Steps,
	}

	if walk.ID != "" {
		data["id"] = walk.ID
	}
	if walk.DurationMinutes != nil {
		data["duration_minutes"] = *walk.DurationMinutes
	}
	if walk.DistanceMeters != nil {
		data["distance_meters"] = *walk.DistanceMeters
	}
	if walk.HeartRate != nil {
		data["heart_rate"] = walk.HeartRate
	}

	body, err := r.client.Insert("walks", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create walk: %w", err)
	}

	walks, err := decodeWalks(body)
	if err != nil {
		return nil, err
	}
	if len(walks) == 0 {
		return nil, fmt.Errorf("no walk returned")
	}

	return &walks[0], nil
}

func (r *walkRepository) GetByID(ctx context.Context, id string) (*models.Walk, error) {
	filters := map[string]string{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("walks", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get walk: %w", err)
	}

	walks, err := decodeWalks(body)
	if err != nil {
		return nil, err
	}
	if len(walks) == 0 {
		return nil, nil
	}

	return &walks[0], nil
}

func (r *walkRepository) GetByIDs(ctx context.Context, userID string, ids []string) ([]models.Walk, error) {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"id":      fmt.Sprintf("in.(%s)", strings.Join(ids, ",")),
		"select":  "*",
	}

	body, err := r.client.Query("walks", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get walks: %w", err)
	}

	return decodeWalks(body)
}

func (r *walkRepository) GetByUserIDAndDate(ctx context.Context, userID string, date time.Time) ([]models.Walk, error) {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date.Format(dateLayout)),
		"select":  "*",
	}

	body, err := r.client.Query("walks", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get walks for date: %w", err)
	}

	return decodeWalks(body)
}

func (r *walkRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Walk, error) {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", startDate.Format(dateLayout), endDate.Format(dateLayout)),
		"select":  "*",
		"order":   "date.desc",
	}

	body, err := r.client.Query("walks", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get walks: %w", err)
	}

	return decodeWalks(body)
}

func (r *walkRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"id":      fmt.Sprintf("in.(%s)", strings.Join(ids, ",")),
	}

	if err := r.client.DeleteWhere("walks", filters); err != nil {
		return fmt.Errorf("failed to delete walks: %w", err)
	}

	return nil
}
