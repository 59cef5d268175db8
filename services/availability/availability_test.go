package availability

import (
	"context"
	"testing"
	"time"

	"clinixsphere/models"
	"clinixsphere/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	records map[string]models.WeeklyAvailability
	gets    int
}

func (m *memoryRepo) Get(_ context.Context, doctorID string) (*models.WeeklyAvailability, error) {
	m.gets++
	r, ok := m.records[doctorID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memoryRepo) Put(_ context.Context, a *models.WeeklyAvailability) error {
	m.records[a.DoctorID] = *a
	return nil
}

func newService(t *testing.T) (*DefaultAvailabilityService, *memoryRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &memoryRepo{records: map[string]models.WeeklyAvailability{}}
	return NewAvailabilityService(repo, client, time.Minute), repo, mr
}

func validRequest() models.SetAvailabilityRequest {
	return models.SetAvailabilityRequest{
		Week: models.Week{
			Mon: []models.Slot{{Start: "13:00", End: "17:00"}, {Start: "09:00", End: "12:00"}},
			Fri: []models.Slot{{Start: "20:00", End: "24:00"}},
		},
		ClosedDates: []string{"2025-12-25", "2025-01-01", "2025-12-25"},
		Timezone:    "Europe/Berlin",
	}
}

func TestSetAvailability_Normalizes(t *testing.T) {
	svc, repo, _ := newService(t)

	got, err := svc.SetAvailability(context.Background(), "doc-1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-01", "2025-12-25"}, got.ClosedDates)
	assert.Equal(t, "09:00", got.Week.Mon[0].Start)
	assert.NotNil(t, got.Week.Tue)
	assert.Len(t, got.Week.Tue, 0)
	assert.Contains(t, repo.records, "doc-1")
}

func TestSetAvailability_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	cases := map[string]models.SetAvailabilityRequest{
		"bad clock":       {Week: models.Week{Mon: []models.Slot{{Start: "9am", End: "12:00"}}}},
		"start after end": {Week: models.Week{Tue: []models.Slot{{Start: "12:00", End: "09:00"}}}},
		"empty slot":      {Week: models.Week{Wed: []models.Slot{{Start: "10:00", End: "10:00"}}}},
		"start at 24:00":  {Week: models.Week{Thu: []models.Slot{{Start: "24:00", End: "24:00"}}}},
		"bad minute":      {Week: models.Week{Sun: []models.Slot{{Start: "10:60", End: "11:00"}}}},
		"signed hour":     {Week: models.Week{Sat: []models.Slot{{Start: "+9:00", End: "12:00"}}}},
		"bad date":        {ClosedDates: []string{"25-12-2025"}},
		"impossible date": {ClosedDates: []string{"2025-02-30"}},
		"bad timezone":    {Timezone: "Mars/Olympus"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SetAvailability(context.Background(), "doc-1", req)
			assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
		})
	}
}

func TestGetAvailability_CacheAside(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()

	missing, err := svc.GetAvailability(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.False(t, mr.Exists(utils.AvailabilityCachePrefix+"nobody"), "absent records are not cached")

	_, err = svc.SetAvailability(ctx, "doc-1", validRequest())
	require.NoError(t, err)

	repo.gets = 0
	first, err := svc.GetAvailability(ctx, "doc-1")
	require.NoError(t, err)
	second, err := svc.GetAvailability(ctx, "doc-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, first.Week, second.Week)
	assert.True(t, mr.Exists(utils.AvailabilityCachePrefix+"doc-1"))
	assert.Equal(t, time.Minute, mr.TTL(utils.AvailabilityCachePrefix+"doc-1"))

	// replacing the record drops the cached copy
	req := validRequest()
	req.ClosedDates = []string{"2026-01-01"}
	_, err = svc.SetAvailability(ctx, "doc-1", req)
	require.NoError(t, err)
	assert.False(t, mr.Exists(utils.AvailabilityCachePrefix+"doc-1"))

	fresh, err := svc.GetAvailability(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01"}, fresh.ClosedDates)
}

func TestGetAvailability_WithoutCache(t *testing.T) {
	repo := &memoryRepo{records: map[string]models.WeeklyAvailability{
		"doc-1": {DoctorID: "doc-1"},
	}}
	svc := NewAvailabilityService(repo, nil, 0)

	got, err := svc.GetAvailability(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.DoctorID)
	assert.Equal(t, utils.DefaultAvailabilityCacheTTL, svc.TTL)
}

func TestGetAvailability_CorruptEntryFallsBack(t *testing.T) {
	svc, repo, mr := newService(t)
	repo.records["doc-1"] = models.WeeklyAvailability{DoctorID: "doc-1"}
	require.NoError(t, mr.Set(utils.AvailabilityCachePrefix+"doc-1", "{not json"))

	got, err := svc.GetAvailability(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.DoctorID)
	assert.Equal(t, 1, repo.gets)
}
