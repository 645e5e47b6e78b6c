package service

import (
	"fmt"
	"sort"

	"github.com/amblelog/amble/backend/internal/models"
)

// Insight priorities. Ties are broken by emission order, so the pass
// structure below matters as much as the numbers.
const (
	priorityActiveDays    = 70
	priorityCurrentStreak = 90
	priorityRecordStreak  = 60
	priorityWindowSteps   = 65
	prioritySuccessRate   = 75
	priorityStreakNudge   = 85
	priorityRecordNudge   = 80
	priorityMilestone     = 100
	priorityPerfectWeek   = 95
)

// maxInsights caps how many ranked insights a view receives
const maxInsights = 3

// streakNudgeMilestones is the fixed ladder used for "almost there" nudges
var streakNudgeMilestones = []int{7, 14, 21, 30, 60, 90, 100}

// walkCountMilestones trigger on exact walk counts
var walkCountMilestones = []int{10, 25, 50, 100, 250, 500, 1000}

// streakMilestones trigger on exact current streak lengths
var streakMilestones = []int{7, 14, 21, 30, 60, 90, 100, 365}

// stepMilestones trigger when window steps land within [M, M+10000)
var stepMilestones = []int{100000, 250000, 500000, 1000000}

// GenerateInsights produces the ranked, capped insight list for a history
// view. Three passes append candidates independently (positive
// reinforcement, nudges, milestones); no pass suppresses another, ranking
// alone decides what survives the cap. Streak state may be nil for users
// with no streak row yet. Pure function, computed fresh per view.
func GenerateInsights(walks []models.Walk, aggs []models.DailyAggregate, streak *models.StreakState, period string) []models.Insight {
	candidates := make([]models.Insight, 0, 8)

	stats := SummarizeWindow(aggs, walks, 0)
	activeDays := stats.ActiveDays
	goalMetDays := 0
	for _, agg := range aggs {
		if agg.GoalMet {
			goalMetDays++
		}
	}

	// Pass A: positive reinforcement
	if activeDays > 0 {
		candidates = append(candidates, models.Insight{
			ID:          "active_days",
			Category:    models.InsightCategoryPositive,
			Title:       "Out and About",
			Description: fmt.Sprintf("%d %s active this %s", activeDays, pluralDays(activeDays), period),
			Priority:    priorityActiveDays,
		})
	}
	if streak != nil && streak.CurrentStreak > 0 {
		candidates = append(candidates, models.Insight{
			ID:          "current_streak",
			Category:    models.InsightCategoryPositive,
			Title:       "Streak Going",
			Description: fmt.Sprintf("You're on a %d-day goal streak", streak.CurrentStreak),
			Priority:    priorityCurrentStreak,
		})
	}
	if streak != nil && streak.LongestStreak > 3 {
		candidates = append(candidates, models.Insight{
			ID:          "record_streak",
			Category:    models.InsightCategoryPositive,
			Title:       "Personal Record",
			Description: fmt.Sprintf("Your longest streak is %d days", streak.LongestStreak),
			Priority:    priorityRecordStreak,
		})
	}
	if stats.TotalSteps > 10000 {
		candidates = append(candidates, models.Insight{
			ID:          "window_steps",
			Category:    models.InsightCategoryPositive,
			Title:       "Step Count",
			Description: fmt.Sprintf("%d steps this %s", stats.TotalSteps, period),
			Priority:    priorityWindowSteps,
		})
	}
	if activeDays >= 3 && goalMetDays*10 >= activeDays*7 {
		candidates = append(candidates, models.Insight{
			ID:          "success_rate",
			Category:    models.InsightCategoryPositive,
			Title:       "Hitting Your Goal",
			Description: fmt.Sprintf("Goal met on %d of %d active days", goalMetDays, activeDays),
			Priority:    prioritySuccessRate,
		})
	}

	// Pass B: nudges, only while a streak is live
	if streak != nil && streak.CurrentStreak > 0 {
		if next, ok := nextStreakMilestone(streak.CurrentStreak); ok {
			distance := next - streak.CurrentStreak
			if distance <= 3 {
				candidates = append(candidates, models.Insight{
					ID:          "streak_milestone_nudge",
					Category:    models.InsightCategoryNudge,
					Title:       "Almost There",
					Description: fmt.Sprintf("%d %s to a %d-day streak", distance, pluralDays(distance), next),
					Priority:    priorityStreakNudge,
				})
			}
		}
		if gap := streak.LongestStreak - streak.CurrentStreak; gap >= 1 && gap <= 5 {
			candidates = append(candidates, models.Insight{
				ID:          "record_nudge",
				Category:    models.InsightCategoryNudge,
				Title:       "Record in Reach",
				Description: fmt.Sprintf("%d %s to beat your record", gap, pluralDays(gap)),
				Priority:    priorityRecordNudge,
			})
		}
	}

	// Pass C: milestones, exact-value triggers only
	if containsInt(walkCountMilestones, len(walks)) {
		candidates = append(candidates, models.Insight{
			ID:          "walk_count_milestone",
			Category:    models.InsightCategoryMilestone,
			Title:       fmt.Sprintf("%d Walks Logged", len(walks)),
			Description: fmt.Sprintf("You've logged %d walks. Keep it up!", len(walks)),
			Priority:    priorityMilestone,
		})
	}
	if streak != nil && containsInt(streakMilestones, streak.CurrentStreak) {
		candidates = append(candidates, models.Insight{
			ID:          "streak_milestone",
			Category:    models.InsightCategoryMilestone,
			Title:       fmt.Sprintf("%d-Day Streak", streak.CurrentStreak),
			Description: fmt.Sprintf("A full %d days of hitting your goal", streak.CurrentStreak),
			Priority:    priorityMilestone,
		})
	}
	for _, m := range stepMilestones {
		if stats.TotalSteps >= m && stats.TotalSteps < m+10000 {
			candidates = append(candidates, models.Insight{
				ID:          "steps_milestone",
				Category:    models.InsightCategoryMilestone,
				Title:       "Step Milestone",
				Description: fmt.Sprintf("You've passed %d steps this %s", m, period),
				Priority:    priorityMilestone,
			})
			break
		}
	}
	if perfectWeek(aggs) {
		candidates = append(candidates, models.Insight{
			ID:          "perfect_week",
			Category:    models.InsightCategoryMilestone,
			Title:       "Perfect Week",
			Description: "Goal met on each of the last 7 active days",
			Priority:    priorityPerfectWeek,
		})
	}

	// Stable sort keeps emission order within equal priorities
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	if len(candidates) > maxInsights {
		candidates = candidates[:maxInsights]
	}

	return candidates
}

// nextStreakMilestone returns the first nudge milestone above the current
// streak, or false when the ladder is exhausted
func nextStreakMilestone(current int) (int, bool) {
	for _, m := range streakNudgeMilestones {
		if m > current {
			return m, true
		}
	}
	return 0, false
}

// perfectWeek reports whether the 7 most recent aggregates all met the goal.
// Callers supply aggregates most-recent-first.
func perfectWeek(aggs []models.DailyAggregate) bool {
	if len(aggs) < 7 {
		return false
	}
	for _, agg := range aggs[:7] {
		if !agg.GoalMet {
			return false
		}
	}
	return true
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
