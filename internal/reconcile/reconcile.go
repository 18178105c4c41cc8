// package reconcile implements the month-by-month attendance engine, the
// visit-frequency classifier and the overdue-visit detector. Every function
// is a pure computation over snapshot inputs: identical arguments always
// yield identical results, and nothing here reads a clock or touches storage.
package reconcile

import (
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
)

// AutoInferredReason marks an absence detail produced by the engine itself,
// for a working day with no approved absence and no visit evidence.
const AutoInferredReason = "auto-inferred"

// Reconcile walks every calendar day of the month from day 1 to
// min(last of month, today) and classifies it as worked, absent or skipped.
//
// Precedence per day, in order:
//  1. An APPROVED absence always counts the day as absent, even when the day
//     is also a weekend or holiday.
//  2. Otherwise a weekend or holiday is skipped entirely: it contributes to
//     no counter.
//  3. Otherwise the day is a working day; visit evidence of any client kind
//     makes it worked, its absence records an auto-inferred detail entry.
//
// Absent settings behave as empty sets, so every day becomes a working day.
func Reconcile(
	repID string,
	year int,
	month time.Month,
	visits []domain.VisitEvent,
	absences []domain.Absence,
	settings domain.SystemSettings,
	today time.Time,
) domain.ReconciliationResult {
	result := domain.ReconciliationResult{
		RepID:    repID,
		Year:     year,
		Month:    month,
		Absences: []domain.AbsenceDetail{},
	}

	visitedDays := make(map[string]bool)
	for _, v := range visits {
		if v.RepID == repID {
			visitedDays[calendar.DateKey(v.VisitedAt)] = true
		}
	}

	approvedByDay := make(map[string]domain.Absence)
	for _, a := range absences {
		if a.RepID != repID || a.Status != domain.AbsenceApproved {
			continue
		}

		key := calendar.DateKey(a.Date)
		if _, exists := approvedByDay[key]; !exists {
			approvedByDay[key] = a
		}
	}

	weekends := settings.WeekendSet()
	holidays := settings.HolidaySet()

	first, last := calendar.MonthBounds(year, month, today.Location())

	end := calendar.Midnight(today)
	if last.Before(end) {
		end = last
	}

	for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := calendar.DateKey(day)

		if absence, ok := approvedByDay[key]; ok {
			result.Absences = append(result.Absences, domain.AbsenceDetail{
				DateKey:   key,
				Reason:    absence.Reason,
				Manual:    true,
				AbsenceID: absence.ID,
			})
			continue
		}

		if weekends[day.Weekday()] || holidays[key] {
			continue
		}

		result.WorkingDaysElapsed++

		if visitedDays[key] {
			result.DaysWorked++
			continue
		}

		result.Absences = append(result.Absences, domain.AbsenceDetail{
			DateKey: key,
			Reason:  AutoInferredReason,
			Manual:  false,
		})
	}

	result.AbsentDays = len(result.Absences)

	return result
}
