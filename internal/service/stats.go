package service

import (
	"math"

	"github.com/amblelog/amble/backend/internal/models"
)

// SummarizeWindow derives summary statistics for a viewing window from the
// window's daily aggregates and walks. Total steps come from the aggregates
// rather than the walks so a day with partial walk data is never counted
// twice. Pure function; empty input yields the zero value.
func SummarizeWindow(aggs []models.DailyAggregate, walks []models.Walk, goal int) models.WindowStats {
	stats := models.WindowStats{
		WalkCount: len(walks),
	}

	for _, agg := range aggs {
		stats.TotalSteps += agg.TotalSteps
		if agg.TotalSteps > 0 {
			stats.ActiveDays++
		}
		if goal > 0 && agg.TotalSteps >= goal {
			stats.DaysGoalMet++
		}
	}

	if stats.ActiveDays > 0 {
		stats.AvgStepsPerDay = int(math.Round(float64(stats.TotalSteps) / float64(stats.ActiveDays)))
		stats.GoalMetPercent = int(math.Round(float64(stats.DaysGoalMet) / float64(stats.ActiveDays) * 100))
	}

	return stats
}
