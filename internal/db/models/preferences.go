package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/scheduling"
)

// WorkingDays marks which weekdays are working days, indexed by time.Weekday,
// stored as a JSONB column.
type WorkingDays [7]bool

// Value implements the driver.Valuer interface
func (w WorkingDays) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements the sql.Scanner interface
func (w *WorkingDays) Scan(value interface{}) error {
	return scanJSON(value, w)
}

// DefaultOfferTTLHours is how long an offer batch stays open for a customer
// response before the expiry sweep retires it.
const DefaultOfferTTLHours = 72

// SchedulingPreferences carries a contractor's workweek overrides. Absent a
// row, the service falls back to the default Monday-to-Friday policy.
type SchedulingPreferences struct {
	gorm.Model
	ContractorID         uint        `json:"contractor_id" gorm:"not null;uniqueIndex"`
	DayStartMinutes      int         `json:"day_start_minutes"`
	DailyCapacityMinutes int         `json:"daily_capacity_minutes"`
	WorkingDays          WorkingDays `json:"working_days" gorm:"type:jsonb"`
	OfferTTLHours        int         `json:"offer_ttl_hours"`
}

// BeforeCreate is a GORM hook that fills unset fields from the defaults
func (p *SchedulingPreferences) BeforeCreate(_ *gorm.DB) error {
	def := scheduling.DefaultPolicy()
	if p.DayStartMinutes == 0 {
		p.DayStartMinutes = def.DayStartMinutes
	}
	if p.DailyCapacityMinutes == 0 {
		p.DailyCapacityMinutes = def.DailyCapacityMinutes
	}
	if p.WorkingDays == (WorkingDays{}) {
		p.WorkingDays = WorkingDays(def.WorkingDays)
	}
	if p.OfferTTLHours == 0 {
		p.OfferTTLHours = DefaultOfferTTLHours
	}
	return nil
}

// Policy converts the stored preferences into the scheduling core's policy.
func (p *SchedulingPreferences) Policy() scheduling.SchedulePolicy {
	return scheduling.SchedulePolicy{
		DayStartMinutes:      p.DayStartMinutes,
		DailyCapacityMinutes: p.DailyCapacityMinutes,
		WorkingDays:          [7]bool(p.WorkingDays),
	}
}

// OfferTTL returns the offer response deadline as a duration.
func (p *SchedulingPreferences) OfferTTL() time.Duration {
	return time.Duration(p.OfferTTLHours) * time.Hour
}
