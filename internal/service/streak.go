package service

import (
	"sort"

	"github.com/amblelog/amble/backend/internal/models"
)

// CalculateStreaks computes the current and longest goal-met streaks from a
// user's full daily aggregate history. The input may arrive in any order;
// the function sorts explicitly rather than trusting the caller.
//
// The current streak considers existing aggregate rows only: it walks
// backward from the most recent row and stops at the first goal-not-met row
// or the end of the collection. A day with no row never appears here (the
// ingestion path and cascade guarantee absence for zero-step days), so
// callers must pass the unpaginated full history.
//
// Pure function; empty input yields all zeroes and a nil last activity date.
func CalculateStreaks(aggs []models.DailyAggregate) models.StreakResult {
	if len(aggs) == 0 {
		return models.StreakResult{}
	}

	sorted := make([]models.DailyAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// Current streak: scan backward from the most recent day
	current := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if !sorted[i].GoalMet {
			break
		}
		current++
	}

	// Longest streak: linear scan forward, resetting on goal-not-met days
	longest := 0
	run := 0
	for _, agg := range sorted {
		if agg.GoalMet {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	// Guarantee current <= longest
	if current > longest {
		longest = current
	}

	lastActivity := sorted[len(sorted)-1].Date

	return models.StreakResult{
		Current:          current,
		Longest:          longest,
		LastActivityDate: &lastActivity,
	}
}
