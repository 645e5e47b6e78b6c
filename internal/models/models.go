package models

import "time"

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds per-user settings the engine needs, primarily the daily step goal
type Profile struct {
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	DailyStepGoal int       `json:"daily_step_goal"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HeartRateSummary holds the optional heart-rate data captured for a walk
type HeartRateSummary struct {
	Avg int `json:"avg"`
	Max int `json:"max"`
}

// Walk represents a single logged walk. Multiple walks may share a date;
// Date carries day granularity only (the time component is always midnight UTC).
type Walk struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Date            time.Time         `json:"date"`
	Steps           int               `json:"steps"`
	DurationMinutes *int              `json:"duration_minutes,omitempty"`
	DistanceMeters  *float64          `json:"distance_meters,omitempty"`
	HeartRate       *HeartRateSummary `json:"heart_rate,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// CreateWalkRequest represents the request to log a walk
type CreateWalkRequest struct {
	Date            string            `json:"date" binding:"required"`
	Steps           int               `json:"steps" binding:"min=0"`
	DurationMinutes *int              `json:"duration_minutes"`
	DistanceMeters  *float64          `json:"distance_meters"`
	HeartRate       *HeartRateSummary `json:"heart_rate"`
}

// DeleteWalksRequest represents a batch deletion of walks
type DeleteWalksRequest struct {
	WalkIDs []string `json:"walk_ids" binding:"required,min=1"`
}

// HistoryResponse is the API response for the history view
type HistoryResponse struct {
	Period     string           `json:"period"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    time.Time        `json:"end_date"`
	Walks      []Walk           `json:"walks"`
	Aggregates []DailyAggregate `json:"aggregates"`
	Stats      WindowStats      `json:"stats"`
	Streak     *StreakState     `json:"streak,omitempty"`
	Insights   []Insight        `json:"insights"`
}
