package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/pkg/supabase"
)

type dailyAggregateRepository struct {
	client *supabase.Client
}

// NewDailyAggregateRepository creates a new daily aggregate repository
func NewDailyAggregateRepository(client *supabase.Client) DailyAggregateRepository {
	return &dailyAggregateRepository{client: client}
}

type dailyAggregateRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	TotalSteps int       `json:"total_steps"`
	GoalMet    bool      `json:"goal_met"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r dailyAggregateRow) toModel() (models.DailyAggregate, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.DailyAggregate{}, fmt.Errorf("invalid date in daily aggregate %s: %w", r.ID, err)
	}
	return models.DailyAggregate{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       date,
		TotalSteps: r.TotalSteps,
		GoalMet:    r.GoalMet,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

func decodeDailyAggregates(body []byte) ([]models.DailyAggregate, error) {
	var rows []dailyAggregateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	aggs := make([]models.DailyAggregate, 0, len(rows))
	for _, row := range rows {
		agg, err := row.toModel()
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

func (r *dailyAggregateRepository) Upsert(ctx context.Context, agg *models.DailyAggregate) (*models.DailyAggregate, error) {
	data := map[string]interface{}{
		"user_id":     agg.UserID,
		"date":        agg.Date.Format(dateLayout),
		"total_steps": agg.TotalSteps,
		"goal_met":    agg.GoalMet,
	}

	body, err := r.client.Upsert("daily_aggregates", data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily aggregate: %w", err)
	}

	aggs, err := decodeDailyAggregates(body)
	if err != nil {
		return nil, err
	}
	if len(aggs) == 0 {
		return nil, fmt.Errorf("no daily aggregate returned")
	}

	return &aggs[0], nil
}

// GetByUserID fetches the full aggregate history. Deliberately no limit or
// range header: a windowed result here would silently corrupt streak
// recomputation.
func (r *dailyAggregateRepository) GetByUserID(ctx context.Context, userID string) ([]models.DailyAggregate, error) {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "date.desc",
	}

	body, err := r.client.Query("daily_aggregates", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily aggregates: %w", err)
	}

	return decodeDailyAggregates(body)
}

func (r *dailyAggregateRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyAggregate, error) {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", startDate.Format(dateLayout), endDate.Format(dateLayout)),
		"select":  "*",
		"order":   "date.desc",
	}

	body, err := r.client.Query("daily_aggregates", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily aggregates: %w", err)
	}

	return decodeDailyAggregates(body)
}

func (r *dailyAggregateRepository) DeleteByUserIDAndDate(ctx context.Context, userID string, date time.Time) error {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date.Format(dateLayout)),
	}

	// Deleting a row that does not exist is fine; absence is the invariant
	if err := r.client.DeleteWhere("daily_aggregates", filters); err != nil {
		return fmt.Errorf("failed to delete daily aggregate: %w", err)
	}

	return nil
}
