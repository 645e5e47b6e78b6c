package models

import "time"

// DailyAggregate represents the derived per-day step total for a user.
// A row exists only for days with at least one walk; a day whose walks sum
// to zero steps has no row at all.
type DailyAggregate struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Date       time.Time `json:"date"`
	TotalSteps int       `json:"total_steps"`
	GoalMet    bool      `json:"goal_met"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StreakState is the per-user singleton tracking consecutive goal-met days.
// CurrentStreak never exceeds LongestStreak.
type StreakState struct {
	UserID           string     `json:"user_id"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// StreakResult is the output of a streak calculation over a user's full
// daily aggregate history
type StreakResult struct {
	Current          int
	Longest          int
	LastActivityDate *time.Time
}

// WindowStats summarizes a user's activity over a viewing window
type WindowStats struct {
	TotalSteps     int `json:"total_steps"`
	WalkCount      int `json:"walk_count"`
	ActiveDays     int `json:"active_days"`
	AvgStepsPerDay int `json:"avg_steps_per_day"`
	DaysGoalMet    int `json:"days_goal_met"`
	GoalMetPercent int `json:"goal_met_percent"`
}

// InsightCategory represents the category of an insight
type InsightCategory string

const (
	InsightCategoryPositive  InsightCategory = "positive"
	InsightCategoryNudge     InsightCategory = "nudge"
	InsightCategoryMilestone InsightCategory = "milestone"
)

// Insight is an ephemeral, ranked entry surfaced on the history view.
// Insights are computed fresh on every request and never persisted.
type Insight struct {
	ID          string          `json:"id"`
	Category    InsightCategory `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    int             `json:"priority"`
}
