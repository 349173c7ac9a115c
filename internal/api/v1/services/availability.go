package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/internal/db/repos"
	"github.com/kribhq/krib/internal/logger"
	"github.com/kribhq/krib/internal/scheduling"
)

// availabilityCacheTTL bounds staleness of the cached week view; writes also
// invalidate eagerly via a per-technician version counter.
const availabilityCacheTTL = 10 * time.Minute

// DayAvailability is one day of a technician's week view.
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityService answers technician availability questions and owns the
// technician time-off lifecycle. The Redis cache is optional; a nil client
// disables caching.
type AvailabilityService struct {
	timeOff *repos.TimeOffRepository
	cache   *redis.Client
}

// NewAvailabilityService creates a new availability service instance
func NewAvailabilityService(timeOff *repos.TimeOffRepository, cache *redis.Client) *AvailabilityService {
	return &AvailabilityService{timeOff: timeOff, cache: cache}
}

// TechAvailability answers "is technician T available on date D?".
func (s *AvailabilityService) TechAvailability(ctx context.Context, techID uint, date string) (scheduling.Availability, error) {
	d, err := scheduling.ParseCalendarDate(date)
	if err != nil {
		return scheduling.Availability{}, fmt.Errorf("invalid date: %w", err)
	}
	entries, err := s.timeOff.ListByTech(ctx, techID)
	if err != nil {
		return scheduling.Availability{}, err
	}
	return scheduling.IsTechAvailableOnDate(models.Windows(entries), d), nil
}

// WeekAvailability returns seven days of availability starting at start.
// Results are cached per technician with a short TTL.
func (s *AvailabilityService) WeekAvailability(ctx context.Context, techID uint, start string) ([]DayAvailability, error) {
	d, err := scheduling.ParseCalendarDate(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	key := s.weekCacheKey(ctx, techID, d)
	if cached := s.cacheGet(ctx, key); cached != nil {
		return cached, nil
	}

	entries, err := s.timeOff.ListByTech(ctx, techID)
	if err != nil {
		return nil, err
	}

	// Pre-filter to the queried week before the per-day checks.
	end := d.AddDays(6)
	windows := scheduling.TimeOffInRange(models.Windows(entries), d, end)

	week := make([]DayAvailability, 0, 7)
	for day := d; day <= end; day = day.AddDays(1) {
		avail := scheduling.IsTechAvailableOnDate(windows, day)
		week = append(week, DayAvailability{
			Date:      day.String(),
			Available: avail.Available,
			Reason:    avail.Reason,
		})
	}

	s.cacheSet(ctx, key, week)
	return week, nil
}

// BlockedDates reports which assigned technicians are unavailable on a
// date. Used by the offer negotiator before proposing a window.
func (s *AvailabilityService) BlockedDates(ctx context.Context, techIDs []uint, date scheduling.CalendarDate) (map[uint]scheduling.BlockResult, error) {
	blocked := make(map[uint]scheduling.BlockResult)
	for _, techID := range techIDs {
		entries, err := s.timeOff.ListByTech(ctx, techID)
		if err != nil {
			return nil, err
		}
		res := scheduling.IsDateBlockedByTimeOff(date, models.Windows(entries))
		if res.Blocked {
			blocked[techID] = res
		}
	}
	return blocked, nil
}

// ListTimeOff returns one technician's time-off entries.
func (s *AvailabilityService) ListTimeOff(ctx context.Context, techID uint) ([]models.TimeOffEntry, error) {
	return s.timeOff.ListByTech(ctx, techID)
}

// CreateTimeOff records a new blocked date range for a technician.
func (s *AvailabilityService) CreateTimeOff(ctx context.Context, entry *models.TimeOffEntry) error {
	if err := s.timeOff.Create(ctx, entry); err != nil {
		return err
	}
	s.invalidate(ctx, entry.TechID)
	return nil
}

// RemoveTimeOff deletes a technician's time-off entry.
func (s *AvailabilityService) RemoveTimeOff(ctx context.Context, techID uint, id string) error {
	if err := s.timeOff.Delete(ctx, techID, id); err != nil {
		return err
	}
	s.invalidate(ctx, techID)
	return nil
}

// ReplaceTimeOff swaps an entry for a corrected one. Time off has no
// in-place update primitive.
func (s *AvailabilityService) ReplaceTimeOff(ctx context.Context, techID uint, oldID string, entry *models.TimeOffEntry) error {
	if err := s.timeOff.Replace(ctx, techID, oldID, entry); err != nil {
		return err
	}
	s.invalidate(ctx, techID)
	return nil
}

// Cache plumbing. Keys embed a per-technician version counter so a time-off
// write invalidates every cached week for that technician at once.

func (s *AvailabilityService) weekCacheKey(ctx context.Context, techID uint, start scheduling.CalendarDate) string {
	version := int64(0)
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, s.versionKey(techID)).Int64(); err == nil {
			version = v
		}
	}
	return fmt.Sprintf("availability:week:%d:%d:%s", techID, version, start)
}

func (s *AvailabilityService) versionKey(techID uint) string {
	return fmt.Sprintf("availability:ver:%d", techID)
}

func (s *AvailabilityService) cacheGet(ctx context.Context, key string) []DayAvailability {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var week []DayAvailability
	if err := json.Unmarshal(raw, &week); err != nil {
		return nil
	}
	return week
}

func (s *AvailabilityService) cacheSet(ctx context.Context, key string, week []DayAvailability) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(week)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, availabilityCacheTTL).Err(); err != nil {
		logger.Warnf("availability cache set failed: %v", err)
	}
}

func (s *AvailabilityService) invalidate(ctx context.Context, techID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, s.versionKey(techID)).Err(); err != nil {
		logger.Warnf("availability cache invalidation failed for tech %d: %v", techID, err)
	}
}
