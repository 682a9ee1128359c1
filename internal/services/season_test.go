package services

import (
	"context"
	"errors"
	"testing"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// IN-MEMORY SEASON STORE
// ============================================================================

type mockSeasonStore struct {
	seasons map[int]*models.Season
	nextID  int
}

func newMockSeasonStore() *mockSeasonStore {
	return &mockSeasonStore{seasons: make(map[int]*models.Season), nextID: 1}
}

func (m *mockSeasonStore) WithTx(ctx context.Context, fn func(context.Context, repositories.SeasonTx) error) error {
	return fn(ctx, &mockSeasonTx{store: m})
}

func (m *mockSeasonStore) Get(ctx context.Context, id int) (*models.Season, error) {
	s, ok := m.seasons[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	copied := *s
	return &copied, nil
}

func (m *mockSeasonStore) GetActive(ctx context.Context) (*models.Season, error) {
	for _, s := range m.seasons {
		if s.IsActive {
			copied := *s
			return &copied, nil
		}
	}
	return nil, errors.New("no rows in result set")
}

func (m *mockSeasonStore) List(ctx context.Context) ([]*models.Season, error) {
	var out []*models.Season
	for _, s := range m.seasons {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockSeasonStore) Update(ctx context.Context, s *models.Season) error {
	if _, ok := m.seasons[s.ID]; !ok {
		return errors.New("no rows in result set")
	}
	copied := *s
	m.seasons[s.ID] = &copied
	return nil
}

func (m *mockSeasonStore) Delete(ctx context.Context, id int) error {
	delete(m.seasons, id)
	return nil
}

func (m *mockSeasonStore) activeCount() int {
	count := 0
	for _, s := range m.seasons {
		if s.IsActive {
			count++
		}
	}
	return count
}

type mockSeasonTx struct {
	store *mockSeasonStore
}

func (t *mockSeasonTx) DeactivateAll(ctx context.Context) error {
	for _, s := range t.store.seasons {
		s.IsActive = false
	}
	return nil
}

func (t *mockSeasonTx) InsertSeason(ctx context.Context, s *models.Season) error {
	s.ID = t.store.nextID
	t.store.nextID++
	copied := *s
	t.store.seasons[s.ID] = &copied
	return nil
}

func (t *mockSeasonTx) ActivateSeason(ctx context.Context, id int) error {
	s, ok := t.store.seasons[id]
	if !ok {
		return errors.New("no rows in result set")
	}
	s.IsActive = true
	return nil
}

// ============================================================================
// TESTS
// ============================================================================

func startSeason(t *testing.T, svc *SeasonService, name, start, end string) *models.Season {
	t.Helper()
	season, err := svc.StartSeason(context.Background(), &models.CreateSeasonRequest{
		Name:      name,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return season
}

func TestStartSeasonActivatesExclusively(t *testing.T) {
	store := newMockSeasonStore()
	svc := NewSeasonService(store)

	first := startSeason(t, svc, "Season 2026", "2026-03-01", "2026-06-30")
	assert.True(t, first.IsActive)
	assert.Equal(t, 1, store.activeCount())

	second := startSeason(t, svc, "Season 2027", "2027-03-01", "2027-06-30")
	assert.True(t, second.IsActive)

	assert.Equal(t, 1, store.activeCount(), "starting a season must leave exactly one active")
	assert.False(t, store.seasons[first.ID].IsActive)
	assert.True(t, store.seasons[second.ID].IsActive)
}

func TestActivateSeasonIsExclusive(t *testing.T) {
	store := newMockSeasonStore()
	svc := NewSeasonService(store)

	first := startSeason(t, svc, "Season 2026", "2026-03-01", "2026-06-30")
	second := startSeason(t, svc, "Season 2027", "2027-03-01", "2027-06-30")

	activated, err := svc.ActivateSeason(context.Background(), first.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
	assert.Equal(t, 1, store.activeCount(), "activation must leave exactly one active")
	assert.False(t, store.seasons[second.ID].IsActive)

	active, err := svc.ActiveSeason(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestActivateSeasonUnknown(t *testing.T) {
	store := newMockSeasonStore()
	svc := NewSeasonService(store)

	_, err := svc.ActivateSeason(context.Background(), 99)
	assert.EqualError(t, err, "season not found")
	assert.Equal(t, 0, store.activeCount())
}

func TestStartSeasonRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateSeasonRequest
	}{
		{"empty name", models.CreateSeasonRequest{StartDate: "2026-03-01", EndDate: "2026-06-30"}},
		{"bad start date", models.CreateSeasonRequest{Name: "S", StartDate: "01-03-2026", EndDate: "2026-06-30"}},
		{"bad end date", models.CreateSeasonRequest{Name: "S", StartDate: "2026-03-01", EndDate: "soon"}},
		{"end before start", models.CreateSeasonRequest{Name: "S", StartDate: "2026-06-30", EndDate: "2026-03-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockSeasonStore()
			svc := NewSeasonService(store)
			_, err := svc.StartSeason(context.Background(), &tt.req)
			assert.Error(t, err)
			assert.Empty(t, store.seasons)
		})
	}
}

func TestDeleteSeasonRefusesActive(t *testing.T) {
	store := newMockSeasonStore()
	svc := NewSeasonService(store)

	first := startSeason(t, svc, "Season 2026", "2026-03-01", "2026-06-30")
	second := startSeason(t, svc, "Season 2027", "2027-03-01", "2027-06-30")

	err := svc.DeleteSeason(context.Background(), second.ID)
	assert.EqualError(t, err, "cannot delete the active season")

	require.NoError(t, svc.DeleteSeason(context.Background(), first.ID))
	_, err = store.Get(context.Background(), first.ID)
	assert.Error(t, err)
}
