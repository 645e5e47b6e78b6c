package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
	"github.com/amblelog/amble/backend/pkg/supabase"
)

type streakRepository struct {
	client *supabase.Client
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(client *supabase.Client) StreakRepository {
	return &streakRepository{client: client}
}

type streakRow struct {
	UserID           string    `json:"user_id"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate *string   `json:"last_activity_date"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (r streakRow) toModel() (models.StreakState, error) {
	state := models.StreakState{
		UserID:        r.UserID,
		CurrentStreak: r.CurrentStreak,
		LongestStreak: r.LongestStreak,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.LastActivityDate != nil {
		date, err := parseDate(*r.LastActivityDate)
		if err != nil {
			return models.StreakState{}, fmt.Errorf("invalid last activity date for user %s: %w", r.UserID, err)
		}
		state.LastActivityDate = &date
	}
	return state, nil
}

func (r *streakRepository) GetByUserID(ctx context.Context, userID string) (*models.StreakState, error) {
	filters := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
	}

	body, err := r.client.Query("streaks", filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	var rows []streakRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	state, err := rows[0].toModel()
	if err != nil {
		return nil, err
	}

	return &state, nil
}

func (r *streakRepository) Upsert(ctx context.Context, streak *models.StreakState) (*models.StreakState, error) {
	data := map[string]interface{}{
		"user_id":        streak.UserID,
		"current_streak": streak.CurrentStreak,
		"longest_streak": streak.LongestStreak,
	}

	// Explicit null clears the column when the user has no activity left
	if streak.LastActivityDate != nil {
		data["last_activity_date"] = streak.LastActivityDate.Format(dateLayout)
	} else {
		data["last_activity_date"] = nil
	}

	body, err := r.client.Upsert("streaks", data, "user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert streak: %w", err)
	}

	var rows []streakRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no streak returned")
	}

	state, err := rows[0].toModel()
	if err != nil {
		return nil, err
	}

	return &state, nil
}
