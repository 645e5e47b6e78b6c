package service

import (
	"context"
	"errors"
	"testing"

	"github.com/amblelog/amble/backend/internal/models"
)

func TestDeleteWalkRemovesEmptyAggregate(t *testing.T) {
	svc, walkRepo, aggRepo, streakRepo, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 7000)

	walkRepo.add(models.Walk{ID: "w1", UserID: "user-1", Date: day("2025-03-01"), Steps: 8000})
	aggRepo.add(models.DailyAggregate{UserID: "user-1", Date: day("2025-03-01"), TotalSteps: 8000, GoalMet: true})
	last := day("2025-03-01")
	streakRepo.states["user-1"] = &models.StreakState{UserID: "user-1", CurrentStreak: 1, LongestStreak: 1, LastActivityDate: &last}

	if err := svc.DeleteWalk(context.Background(), "user-1", "w1"); err != nil {
		t.Fatalf("DeleteWalk failed: %v", err)
	}

	// Zero remaining steps means the aggregate row must not exist
	if aggRepo.get("user-1", day("2025-03-01")) != nil {
		t.Error("expected aggregate row to be removed for a zero-step day")
	}

	state := streakRepo.states["user-1"]
	if state == nil {
		t.Fatal("expected streak state to be rewritten")
	}
	if state.CurrentStreak != 0 || state.LongestStreak != 0 {
		t.Errorf("expected streak reset, got current=%d longest=%d", state.CurrentStreak, state.LongestStreak)
	}
	if state.LastActivityDate != nil {
		t.Errorf("expected nil last activity date after reset, got %v", state.LastActivityDate)
	}
}

func TestDeleteWalkRecomputesAggregate(t *testing.T) {
	svc, walkRepo, aggRepo, _, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 7000)

	walkRepo.add(models.Walk{ID: "w1", UserID: "user-1", Date: day("2025-03-01"), Steps: 8000})
	walkRepo.add(models.Walk{ID: "w2", UserID: "user-1", Date: day("2025-03-01"), Steps: 3000})
	aggRepo.add(models.DailyAggregate{UserID: "user-1", Date: day("2025-03-01"), TotalSteps: 11000, GoalMet: true})

	if err := svc.DeleteWalk(context.Background(), "user-1", "w1"); err != nil {
		t.Fatalf("DeleteWalk failed: %v", err)
	}

	agg := aggRepo.get("user-1", day("2025-03-01"))
	if agg == nil {
		t.Fatal("expected aggregate row to survive with a remaining walk")
	}
	if agg.TotalSteps != 3000 {
		t.Errorf("expected recomputed total 3000, got %d", agg.TotalSteps)
	}
	if agg.GoalMet {
		t.Error("expected goal_met false after dropping below the goal")
	}
}

func TestBatchDeleteAcrossDates(t *testing.T) {
	svc, walkRepo, aggRepo, streakRepo, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 5000)

	walkRepo.add(models.Walk{ID: "w1", UserID: "user-1", Date: day("2025-03-01"), Steps: 6000})
	walkRepo.add(models.Walk{ID: "w2", UserID: "user-1", Date: day("2025-03-02"), Steps: 7000})
	walkRepo.add(models.Walk{ID: "w3", UserID: "user-1", Date: day("2025-03-02"), Steps: 2000})
	walkRepo.add(models.Walk{ID: "w4", UserID: "user-1", Date: day("2025-03-03"), Steps: 6000})
	aggRepo.add(models.DailyAggregate{UserID: "user-1", Date: day("2025-03-01"), TotalSteps: 6000, GoalMet: true})
	aggRepo.add(models.DailyAggregate{UserID: "user-1", Date: day("2025-03-02"), TotalSteps: 9000, GoalMet: true})
	aggRepo.add(models.DailyAggregate{UserID: "user-1", Date: day("2025-03-03"), TotalSteps: 6000, GoalMet: true})

	if err := svc.DeleteWalks(context.Background(), "user-1", []string{"w1", "w2"}); err != nil {
		t.Fatalf("DeleteWalks failed: %v", err)
	}

	if walkRepo.deleteCalls != 1 {
		t.Errorf("expected one batch delete, got %d", walkRepo.deleteCalls)
	}
	if streakRepo.upsertCalls != 1 {
		t.Errorf("expected exactly one streak recomputation, got %d", streakRepo.upsertCalls)
	}

	if aggRepo.get("user-1", day("2025-03-01")) != nil {
		t.Error("expected 2025-03-01 aggregate removed")
	}
	agg := aggRepo.get("user-1", day("2025-03-02"))
	if agg == nil || agg.TotalSteps != 2000 || agg.GoalMet {
		t.Errorf("expected 2025-03-02 recomputed to 2000 steps, goal not met, got %+v", agg)
	}
	agg = aggRepo.get("user-1", day("2025-03-03"))
	if agg == nil || agg.TotalSteps != 6000 || !agg.GoalMet {
		t.Errorf("expected 2025-03-03 untouched at 6000 steps, got %+v", agg)
	}

	// Remaining rows: 03-02 (not met), 03-03 (met)
	state := streakRepo.states["user-1"]
	if state == nil {
		t.Fatal("expected streak state to be rewritten")
	}
	if state.CurrentStreak != 1 || state.LongestStreak != 1 {
		t.Errorf("expected current=1 longest=1, got current=%d longest=%d", state.CurrentStreak, state.LongestStreak)
	}
	if state.LastActivityDate == nil || !state.LastActivityDate.Equal(day("2025-03-03")) {
		t.Errorf("expected last activity 2025-03-03, got %v", state.LastActivityDate)
	}
}

func TestDeleteWalksNotFound(t *testing.T) {
	svc, walkRepo, _, _, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 5000)

	walkRepo.add(models.Walk{ID: "w1", UserID: "user-1", Date: day("2025-03-01"), Steps: 6000})
	walkRepo.add(models.Walk{ID: "theirs", UserID: "user-2", Date: day("2025-03-01"), Steps: 6000})

	err := svc.DeleteWalks(context.Background(), "user-1", []string{"w1", "missing"})
	if !errors.Is(err, ErrWalkNotFound) {
		t.Errorf("expected ErrWalkNotFound for a missing walk, got %v", err)
	}

	// Another user's walk is indistinguishable from a missing one
	err = svc.DeleteWalks(context.Background(), "user-1", []string{"theirs"})
	if !errors.Is(err, ErrWalkNotFound) {
		t.Errorf("expected ErrWalkNotFound for a foreign walk, got %v", err)
	}

	if walkRepo.deleteCalls != 0 {
		t.Errorf("no delete should run when the batch fails validation, got %d calls", walkRepo.deleteCalls)
	}
	if _, ok := walkRepo.walks["w1"]; !ok {
		t.Error("owned walk should survive a rejected batch")
	}
}

func TestDeleteWalksPartialStateOnFailure(t *testing.T) {
	svc, walkRepo, aggRepo, streakRepo, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 5000)

	walkRepo.add(models.Walk{ID: "w1", UserID: "user-1", Date: day("2025-03-01"), Steps: 6000})
	aggRepo.add(models.DailyAggregate{UserID: "user-1", Date: day("2025-03-01"), TotalSteps: 6000, GoalMet: true})
	aggRepo.fetchErr = errors.New("store unavailable")

	err := svc.DeleteWalks(context.Background(), "user-1", []string{"w1"})
	if err == nil || !errors.Is(err, aggRepo.fetchErr) {
		t.Fatalf("expected streak fetch error to propagate, got %v", err)
	}

	// No rollback: the walk delete and aggregate recompute stand, only the
	// streak is stale until the next cascade
	if _, ok := walkRepo.walks["w1"]; ok {
		t.Error("walk should stay deleted despite the later failure")
	}
	if aggRepo.get("user-1", day("2025-03-01")) != nil {
		t.Error("aggregate removal should stand despite the later failure")
	}
	if streakRepo.upsertCalls != 0 {
		t.Errorf("streak must not be written after a fetch failure, got %d upserts", streakRepo.upsertCalls)
	}
}

func TestCascadeIdempotent(t *testing.T) {
	svc, walkRepo, aggRepo, streakRepo, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 5000)

	walkRepo.add(models.Walk{ID: "w1", UserID: "user-1", Date: day("2025-03-01"), Steps: 6000})
	walkRepo.add(models.Walk{ID: "w2", UserID: "user-1", Date: day("2025-03-02"), Steps: 4000})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := svc.recomputeDay(ctx, "user-1", day("2025-03-01"), 5000); err != nil {
			t.Fatalf("recomputeDay failed: %v", err)
		}
		if err := svc.recomputeDay(ctx, "user-1", day("2025-03-02"), 5000); err != nil {
			t.Fatalf("recomputeDay failed: %v", err)
		}
		if err := svc.refreshStreak(ctx, "user-1"); err != nil {
			t.Fatalf("refreshStreak failed: %v", err)
		}
	}

	agg := aggRepo.get("user-1", day("2025-03-01"))
	if agg == nil || agg.TotalSteps != 6000 || !agg.GoalMet {
		t.Errorf("expected 2025-03-01 at 6000 steps, goal met, got %+v", agg)
	}
	agg = aggRepo.get("user-1", day("2025-03-02"))
	if agg == nil || agg.TotalSteps != 4000 || agg.GoalMet {
		t.Errorf("expected 2025-03-02 at 4000 steps, goal not met, got %+v", agg)
	}

	state := streakRepo.states["user-1"]
	if state == nil || state.CurrentStreak != 0 || state.LongestStreak != 1 {
		t.Errorf("expected current=0 longest=1 after repeated recompute, got %+v", state)
	}
}

func TestCreateWalkUpdatesDerivedState(t *testing.T) {
	svc, _, aggRepo, streakRepo, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 7000)

	created, err := svc.CreateWalk(context.Background(), "user-1", &models.CreateWalkRequest{
		Date:  "2025-03-01",
		Steps: 8000,
	})
	if err != nil {
		t.Fatalf("CreateWalk failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated walk ID")
	}
	if !created.Date.Equal(day("2025-03-01")) {
		t.Errorf("unexpected walk date %v", created.Date)
	}

	agg := aggRepo.get("user-1", day("2025-03-01"))
	if agg == nil || agg.TotalSteps != 8000 || !agg.GoalMet {
		t.Errorf("expected aggregate at 8000 steps, goal met, got %+v", agg)
	}

	state := streakRepo.states["user-1"]
	if state == nil || state.CurrentStreak != 1 || state.LongestStreak != 1 {
		t.Errorf("expected a 1-day streak after the first walk, got %+v", state)
	}
}

func TestCreateWalkInvalidDate(t *testing.T) {
	svc, _, _, _, profileRepo := newTestWalkService()
	profileRepo.setGoal("user-1", 7000)

	_, err := svc.CreateWalk(context.Background(), "user-1", &models.CreateWalkRequest{
		Date:  "03/01/2025",
		Steps: 8000,
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCreateWalkMissingProfile(t *testing.T) {
	svc, _, _, _, _ := newTestWalkService()

	_, err := svc.CreateWalk(context.Background(), "user-1", &models.CreateWalkRequest{
		Date:  "2025-03-01",
		Steps: 8000,
	})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetWalkOwnership(t *testing.T) {
	svc, walkRepo, _, _, _ := newTestWalkService()
	walkRepo.add(models.Walk{ID: "w1", UserID: "user-2", Date: day("2025-03-01"), Steps: 6000})

	_, err := svc.GetWalk(context.Background(), "user-1", "w1")
	if !errors.Is(err, ErrWalkNotFound) {
		t.Errorf("expected ErrWalkNotFound for another user's walk, got %v", err)
	}

	_, err = svc.GetWalk(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrWalkNotFound) {
		t.Errorf("expected ErrWalkNotFound for a missing walk, got %v", err)
	}
}
