package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amblelog/amble/backend/internal/models"
)

// day parses a YYYY-MM-DD test date
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", s, err))
	}
	return t
}

// mockWalkRepository is an in-memory WalkRepository for testing
type mockWalkRepository struct {
	walks       map[string]*models.Walk // id -> walk
	deleteCalls int
	deleteErr   error
}

func newMockWalkRepository() *mockWalkRepository {
	return &mockWalkRepository{walks: make(map[string]*models.Walk)}
}

func (m *mockWalkRepository) add(walk models.Walk) {
	w := walk
	m.walks[w.ID] = &w
}

func (m *mockWalkRepository) Create(ctx context.Context, walk *models.Walk) (*models.Walk, error) {
	created := *walk
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	m.walks[created.ID] = &created
	return &created, nil
}

func (m *mockWalkRepository) GetByID(ctx context.Context, id string) (*models.Walk, error) {
	if walk, ok := m.walks[id]; ok {
		return walk, nil
	}
	return nil, nil
}

func (m *mockWalkRepository) GetByIDs(ctx context.Context, userID string, ids []string) ([]models.Walk, error) {
	var result []models.Walk
	for _, id := range ids {
		if walk, ok := m.walks[id]; ok && walk.UserID == userID {
			result = append(result, *walk)
		}
	}
	return result, nil
}

func (m *mockWalkRepository) GetByUserIDAndDate(ctx context.Context, userID string, date time.Time) ([]models.Walk, error) {
	var result []models.Walk
	for _, walk := range m.walks {
		if walk.UserID == userID && walk.Date.Equal(date) {
			result = append(result, *walk)
		}
	}
	return result, nil
}

func (m *mockWalkRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Walk, error) {
	var result []models.Walk
	for _, walk := range m.walks {
		if walk.UserID == userID && !walk.Date.Before(startDate) && !walk.Date.After(endDate) {
			result = append(result, *walk)
		}
	}
	return result, nil
}

func (m *mockWalkRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for _, id := range ids {
		if walk, ok := m.walks[id]; ok && walk.UserID == userID {
			delete(m.walks, id)
		}
	}
	return nil
}

// mockDailyAggregateRepository is an in-memory DailyAggregateRepository
type mockDailyAggregateRepository struct {
	aggs        map[string]*models.DailyAggregate // "userID|date" -> aggregate
	upsertCalls int
	fetchErr    error
}

func newMockDailyAggregateRepository() *mockDailyAggregateRepository {
	return &mockDailyAggregateRepository{aggs: make(map[string]*models.DailyAggregate)}
}

func aggKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *mockDailyAggregateRepository) add(agg models.DailyAggregate) {
	a := agg
	m.aggs[aggKey(a.UserID, a.Date)] = &a
}

func (m *mockDailyAggregateRepository) get(userID string, date time.Time) *models.DailyAggregate {
	return m.aggs[aggKey(userID, date)]
}

func (m *mockDailyAggregateRepository) Upsert(ctx context.Context, agg *models.DailyAggregate) (*models.DailyAggregate, error) {
	m.upsertCalls++
	stored := *agg
	stored.UpdatedAt = time.Now()
	m.aggs[aggKey(agg.UserID, agg.Date)] = &stored
	return &stored, nil
}

func (m *mockDailyAggregateRepository) GetByUserID(ctx context.Context, userID string) ([]models.DailyAggregate, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var result []models.DailyAggregate
	for _, agg := range m.aggs {
		if agg.UserID == userID {
			result = append(result, *agg)
		}
	}
	return result, nil
}

func (m *mockDailyAggregateRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyAggregate, error) {
	var result []models.DailyAggregate
	for _, agg := range m.aggs {
		if agg.UserID == userID && !agg.Date.Before(startDate) && !agg.Date.After(endDate) {
			result = append(result, *agg)
		}
	}
	return result, nil
}

func (m *mockDailyAggregateRepository) DeleteByUserIDAndDate(ctx context.Context, userID string, date time.Time) error {
	delete(m.aggs, aggKey(userID, date))
	return nil
}

// mockStreakRepository is an in-memory StreakRepository
type mockStreakRepository struct {
	states      map[string]*models.StreakState // userID -> state
	upsertCalls int
}

func newMockStreakRepository() *mockStreakRepository {
	return &mockStreakRepository{states: make(map[string]*models.StreakState)}
}

func (m *mockStreakRepository) GetByUserID(ctx context.Context, userID string) (*models.StreakState, error) {
	if state, ok := m.states[userID]; ok {
		return state, nil
	}
	return nil, nil
}

func (m *mockStreakRepository) Upsert(ctx context.Context, streak *models.StreakState) (*models.StreakState, error) {
	m.upsertCalls++
	stored := *streak
	stored.UpdatedAt = time.Now()
	m.states[streak.UserID] = &stored
	return &stored, nil
}

// mockProfileRepository is an in-memory ProfileRepository
type mockProfileRepository struct {
	profiles map[string]*models.Profile
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[string]*models.Profile)}
}

func (m *mockProfileRepository) setGoal(userID string, goal int) {
	m.profiles[userID] = &models.Profile{UserID: userID, DailyStepGoal: goal}
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if profile, ok := m.profiles[userID]; ok {
		return profile, nil
	}
	return nil, nil
}

// newTestWalkService wires a walk service over fresh mocks
func newTestWalkService() (*walkService, *mockWalkRepository, *mockDailyAggregateRepository, *mockStreakRepository, *mockProfileRepository) {
	walkRepo := newMockWalkRepository()
	aggRepo := newMockDailyAggregateRepository()
	streakRepo := newMockStreakRepository()
	profileRepo := newMockProfileRepository()
	svc := NewWalkService(walkRepo, aggRepo, streakRepo, profileRepo).(*walkService)
	return svc, walkRepo, aggRepo, streakRepo, profileRepo
}
