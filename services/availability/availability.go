package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	availabilityRepo "clinixsphere/database/repository/availability"
	"clinixsphere/models"
	"clinixsphere/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService manages doctors' weekly schedules.
type AvailabilityService interface {
	SetAvailability(ctx context.Context, doctorID string, req models.SetAvailabilityRequest) (*models.WeeklyAvailability, error)
	GetAvailability(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error)
}

// DefaultAvailabilityService reads through a Redis cache when one is configured.
type DefaultAvailabilityService struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache *redis.Client
	TTL   time.Duration
}

func NewAvailabilityService(repo availabilityRepo.AvailabilityRepository, cache *redis.Client, ttl time.Duration) *DefaultAvailabilityService {
	if ttl <= 0 {
		ttl = utils.DefaultAvailabilityCacheTTL
	}
	return &DefaultAvailabilityService{Repo: repo, Cache: cache, TTL: ttl}
}

// SetAvailability validates req and fully replaces the doctor's record.
func (s *DefaultAvailabilityService) SetAvailability(ctx context.Context, doctorID string, req models.SetAvailabilityRequest) (*models.WeeklyAvailability, error) {
	closed, err := validate(req)
	if err != nil {
		return nil, err
	}

	record := &models.WeeklyAvailability{
		DoctorID:    doctorID,
		Week:        normalizeWeek(req.Week),
		ClosedDates: closed,
		Timezone:    req.Timezone,
	}
	if err := s.Repo.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}
	s.invalidate(ctx, doctorID)
	return record, nil
}

// GetAvailability returns the doctor's record, or nil when none is set.
func (s *DefaultAvailabilityService) GetAvailability(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error) {
	if cached, ok := s.fromCache(ctx, doctorID); ok {
		return cached, nil
	}

	record, err := s.Repo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		s.store(ctx, record)
	}
	return record, nil
}

func cacheKey(doctorID string) string {
	return utils.AvailabilityCachePrefix + doctorID
}

func (s *DefaultAvailabilityService) fromCache(ctx context.Context, doctorID string) (*models.WeeklyAvailability, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, cacheKey(doctorID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("availability cache read failed", zap.String("doctorId", doctorID), zap.Error(err))
		}
		return nil, false
	}
	var record models.WeeklyAvailability
	if err := json.Unmarshal(data, &record); err != nil {
		utils.GetLogger().Warn("discarding corrupt availability cache entry", zap.String("doctorId", doctorID), zap.Error(err))
		s.invalidate(ctx, doctorID)
		return nil, false
	}
	return &record, true
}

func (s *DefaultAvailabilityService) store(ctx context.Context, record *models.WeeklyAvailability) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(record.DoctorID), data, s.TTL).Err(); err != nil {
		utils.GetLogger().Warn("availability cache write failed", zap.String("doctorId", record.DoctorID), zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) invalidate(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(doctorID)).Err(); err != nil {
		utils.GetLogger().Warn("availability cache invalidation failed", zap.String("doctorId", doctorID), zap.Error(err))
	}
}

// validate checks every slot and closed date. It returns the closed dates
// de-duplicated and sorted.
func validate(req models.SetAvailabilityRequest) ([]string, error) {
	for day, slots := range req.Week.Days() {
		for _, slot := range slots {
			start, err := utils.ParseClock(slot.Start)
			if err != nil || start == 24*60 {
				return nil, utils.NewAppError(utils.KindInvalidInput, fmt.Sprintf("invalid start time %q on %s", slot.Start, day))
			}
			end, err := utils.ParseClock(slot.End)
			if err != nil {
				return nil, utils.NewAppError(utils.KindInvalidInput, fmt.Sprintf("invalid end time %q on %s", slot.End, day))
			}
			if start >= end {
				return nil, utils.NewAppError(utils.KindInvalidInput, fmt.Sprintf("slot %s-%s on %s must start before it ends", slot.Start, slot.End, day))
			}
		}
	}

	seen := make(map[string]struct{}, len(req.ClosedDates))
	closed := make([]string, 0, len(req.ClosedDates))
	for _, d := range req.ClosedDates {
		if _, err := utils.ParseDate(d, time.UTC); err != nil {
			return nil, utils.NewAppError(utils.KindInvalidInput, err.Error())
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		closed = append(closed, d)
	}
	sort.Strings(closed)

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, utils.NewAppError(utils.KindInvalidInput, fmt.Sprintf("unknown timezone %q", req.Timezone))
		}
	}
	return closed, nil
}

// normalizeWeek replaces nil days with empty lists and orders slots by start.
func normalizeWeek(w models.Week) models.Week {
	for _, day := range []*[]models.Slot{&w.Mon, &w.Tue, &w.Wed, &w.Thu, &w.Fri, &w.Sat, &w.Sun} {
		if *day == nil {
			*day = []models.Slot{}
		}
		sort.SliceStable(*day, func(i, j int) bool { return (*day)[i].Start < (*day)[j].Start })
	}
	return w
}
