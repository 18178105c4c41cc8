// package plan implements the weekly plan model and its lifecycle state
// machine. All functions operate on plain domain values and perform no I/O;
// loading and persisting plans is the service layer's job.
package plan

import (
	"fmt"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
)

// NewEmpty returns a fresh draft plan for a rep: all seven day slots empty.
// The storage layer uses it as the get-or-default value for reps with no
// persisted plan row, so mutation functions never see an absent plan.
func NewEmpty(repID string) *domain.WeeklyPlan {
	return &domain.WeeklyPlan{
		RepID:  repID,
		Status: domain.PlanDraft,
	}
}

func checkDayIndex(day int) error {
	if day < 0 || day >= domain.PlanDays {
		return fmt.Errorf("%w: day index %d out of range", apperrors.ErrInvalidOperation, day)
	}

	return nil
}

// SetDayRegion assigns a region to a weekday slot. An empty regionID clears
// the slot entirely (rest day). Setting a different region resets the day's
// doctor set, since the assigned doctors belong to the old region;
// reselecting the same region preserves it.
func SetDayRegion(p *domain.WeeklyPlan, day int, regionID string) error {
	if err := checkDayIndex(day); err != nil {
		return err
	}

	if regionID == "" {
		p.Days[day] = nil
		return nil
	}

	entry := p.Days[day]
	if entry != nil && entry.RegionID == regionID {
		return nil
	}

	p.Days[day] = &domain.DayPlanEntry{RegionID: regionID}

	return nil
}

// AddDoctorToDay appends a doctor to a weekday slot. A doctor already
// assigned to any day of the plan is silently left where it is. When the day
// has no region yet, the entry is created with the doctor's home region.
func AddDoctorToDay(p *domain.WeeklyPlan, day int, doctorID, homeRegionID string) error {
	if err := checkDayIndex(day); err != nil {
		return err
	}

	if doctorID == "" {
		return fmt.Errorf("%w: empty doctor id", apperrors.ErrInvalidOperation)
	}

	if IsDoctorAssigned(p, doctorID) {
		return nil
	}

	entry := p.Days[day]
	if entry == nil {
		entry = &domain.DayPlanEntry{RegionID: homeRegionID}
		p.Days[day] = entry
	}

	entry.DoctorIDs = append(entry.DoctorIDs, doctorID)

	return nil
}

// RemoveDoctorFromDay removes a doctor from a weekday slot if present.
func RemoveDoctorFromDay(p *domain.WeeklyPlan, day int, doctorID string) error {
	if err := checkDayIndex(day); err != nil {
		return err
	}

	entry := p.Days[day]
	if entry == nil {
		return nil
	}

	for i, id := range entry.DoctorIDs {
		if id == doctorID {
			entry.DoctorIDs = append(entry.DoctorIDs[:i], entry.DoctorIDs[i+1:]...)
			return nil
		}
	}

	return nil
}

// IsDoctorAssigned reports whether the doctor appears in any day's set.
func IsDoctorAssigned(p *domain.WeeklyPlan, doctorID string) bool {
	for _, entry := range p.Days {
		if entry == nil {
			continue
		}

		for _, id := range entry.DoctorIDs {
			if id == doctorID {
				return true
			}
		}
	}

	return false
}

// Normalize prepares a plan for persistence: entries with no region collapse
// to nil slots and doctor sets are deduplicated, first occurrence winning.
// After Normalize every one of the seven slots is explicitly nil or populated,
// so downstream consumers never distinguish "absent" from "empty".
func Normalize(p *domain.WeeklyPlan) {
	seen := make(map[string]bool)

	for day, entry := range p.Days {
		if entry == nil {
			continue
		}

		if entry.RegionID == "" {
			p.Days[day] = nil
			continue
		}

		deduped := entry.DoctorIDs[:0]
		for _, id := range entry.DoctorIDs {
			if id == "" || seen[id] {
				continue
			}

			seen[id] = true
			deduped = append(deduped, id)
		}

		entry.DoctorIDs = deduped
	}
}

// Editable reports whether a rep may still modify the plan at the given
// moment. An approved plan is read-only outside the planning window;
// every other status is always editable, including pending, where a further
// edit simply supersedes the review in progress.
func Editable(p *domain.WeeklyPlan, now time.Time) bool {
	if p.Status != domain.PlanApproved {
		return true
	}

	return calendar.InPlanningWindow(now)
}
