package reconcile

import (
	"testing"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repID = "rep-1"

func visitOn(t time.Time) domain.VisitEvent {
	return domain.VisitEvent{
		ID:         "v-" + calendar.DateKey(t),
		RepID:      repID,
		ClientID:   "c-1",
		ClientKind: domain.ClientDoctor,
		VisitedAt:  t,
	}
}

func approvedAbsence(id string, date time.Time, reason string) domain.Absence {
	return domain.Absence{
		ID:          id,
		RepID:       repID,
		Date:        date,
		Reason:      reason,
		Status:      domain.AbsenceApproved,
		ManualEntry: true,
	}
}

func TestReconcile_FullMonthWithWeekends(t *testing.T) {
	// March 2024: 31 days, 5 Fridays and 5 Saturdays.
	settings := domain.SystemSettings{
		Weekends: []time.Weekday{time.Friday, time.Saturday},
	}

	var visits []domain.VisitEvent
	added := 0
	for day := 1; day <= 31 && added < 10; day++ {
		d := time.Date(2024, time.March, day, 14, 0, 0, 0, time.Local)
		if d.Weekday() == time.Friday || d.Weekday() == time.Saturday {
			continue
		}

		visits = append(visits, visitOn(d))
		added++
	}
	require.Equal(t, 10, added)

	today := time.Date(2024, time.April, 15, 9, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, visits, nil, settings, today)

	assert.Equal(t, 21, result.WorkingDaysElapsed, "31 days minus 10 weekend days")
	assert.Equal(t, 10, result.DaysWorked)
	assert.Equal(t, 11, result.AbsentDays)
	assert.Len(t, result.Absences, result.AbsentDays)

	for _, detail := range result.Absences {
		assert.False(t, detail.Manual)
		assert.Equal(t, AutoInferredReason, detail.Reason)
		assert.Empty(t, detail.AbsenceID)
	}
}

func TestReconcile_AbsenceTakesPriorityOverHoliday(t *testing.T) {
	holiday := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.Local)

	settings := domain.SystemSettings{
		Holidays: []string{calendar.DateKey(holiday)},
	}

	absences := []domain.Absence{
		approvedAbsence("abs-1", holiday, "sick leave"),
	}

	today := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, nil, absences, settings, today)

	// The holiday with an approved absence is absent, not skipped,
	// and contributes nothing to working days elapsed.
	assert.Equal(t, 9, result.WorkingDaysElapsed, "10 elapsed days minus the absence day")
	assert.Equal(t, 0, result.DaysWorked)

	var holidayDetail *domain.AbsenceDetail
	for i := range result.Absences {
		if result.Absences[i].DateKey == calendar.DateKey(holiday) {
			holidayDetail = &result.Absences[i]
		}
	}

	require.NotNil(t, holidayDetail, "the absence day must appear in the detail list")
	assert.True(t, holidayDetail.Manual)
	assert.Equal(t, "sick leave", holidayDetail.Reason)
	assert.Equal(t, "abs-1", holidayDetail.AbsenceID)
}

func TestReconcile_AbsenceOnWeekendStillCounts(t *testing.T) {
	// 2024-03-02 is a Saturday.
	saturday := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local)

	settings := domain.SystemSettings{
		Weekends: []time.Weekday{time.Saturday},
	}

	absences := []domain.Absence{
		approvedAbsence("abs-sat", saturday, "family leave"),
	}

	today := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, nil, absences, settings, today)

	// March 1 (Friday) and March 3 (Sunday) are working days with no
	// evidence; the Saturday absence is counted instead of skipped.
	assert.Equal(t, 2, result.WorkingDaysElapsed)
	assert.Equal(t, 3, result.AbsentDays)

	var manual []domain.AbsenceDetail
	for _, detail := range result.Absences {
		if detail.Manual {
			manual = append(manual, detail)
		}
	}

	require.Len(t, manual, 1)
	assert.Equal(t, calendar.DateKey(saturday), manual[0].DateKey)
	assert.Equal(t, "abs-sat", manual[0].AbsenceID)
}

func TestReconcile_PendingAndRejectedAbsencesAreIgnored(t *testing.T) {
	date := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.Local)

	absences := []domain.Absence{
		{ID: "a-p", RepID: repID, Date: date, Reason: "pending leave", Status: domain.AbsencePending},
		{ID: "a-r", RepID: repID, Date: date, Reason: "rejected leave", Status: domain.AbsenceRejected},
	}

	today := time.Date(2024, time.March, 4, 18, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, nil, absences, domain.SystemSettings{}, today)

	for _, detail := range result.Absences {
		assert.Equal(t, AutoInferredReason, detail.Reason)
		assert.False(t, detail.Manual)
	}
}

func TestReconcile_TruncatesAtToday(t *testing.T) {
	today := time.Date(2024, time.March, 10, 8, 30, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, nil, nil, domain.SystemSettings{}, today)

	// Empty settings: every elapsed day is a working day, today inclusive.
	assert.Equal(t, 10, result.WorkingDaysElapsed)
	assert.Equal(t, 10, result.AbsentDays)
}

func TestReconcile_EmptySettingsDefaultToAllWorkingDays(t *testing.T) {
	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.April, nil, nil, domain.SystemSettings{}, today)

	assert.Equal(t, 30, result.WorkingDaysElapsed)
	assert.Equal(t, 0, result.DaysWorked)
	assert.Equal(t, 30, result.AbsentDays)
}

func TestReconcile_VisitAtAnyTimeOfDayCounts(t *testing.T) {
	lateVisit := time.Date(2024, time.March, 4, 23, 55, 0, 0, time.Local)
	today := time.Date(2024, time.March, 4, 23, 59, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, []domain.VisitEvent{visitOn(lateVisit)}, nil, domain.SystemSettings{}, today)

	assert.Equal(t, 1, result.DaysWorked)
}

func TestReconcile_OtherRepsEvidenceIsIgnored(t *testing.T) {
	foreign := domain.VisitEvent{
		ID:        "v-x",
		RepID:     "rep-2",
		ClientID:  "c-9",
		VisitedAt: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.Local),
	}

	today := time.Date(2024, time.March, 4, 18, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, []domain.VisitEvent{foreign}, nil, domain.SystemSettings{}, today)

	assert.Equal(t, 0, result.DaysWorked)
	assert.Equal(t, 4, result.AbsentDays)
}

func TestReconcile_Idempotence(t *testing.T) {
	settings := domain.SystemSettings{
		Weekends: []time.Weekday{time.Friday, time.Saturday},
		Holidays: []string{"2024-03-21"},
	}

	visits := []domain.VisitEvent{
		visitOn(time.Date(2024, time.March, 3, 10, 0, 0, 0, time.Local)),
		visitOn(time.Date(2024, time.March, 12, 16, 30, 0, 0, time.Local)),
	}

	absences := []domain.Absence{
		approvedAbsence("abs-1", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local), "sick leave"),
	}

	today := time.Date(2024, time.March, 25, 13, 0, 0, 0, time.Local)

	first := Reconcile(repID, 2024, time.March, visits, absences, settings, today)
	second := Reconcile(repID, 2024, time.March, visits, absences, settings, today)

	assert.Equal(t, first, second)
}

func TestReconcile_CoverageCompleteness(t *testing.T) {
	// Every calendar day up to today is classified exactly once:
	// worked + absent + skipped == elapsed days.
	settings := domain.SystemSettings{
		Weekends: []time.Weekday{time.Friday, time.Saturday},
		Holidays: []string{"2024-03-11", "2024-03-12"},
	}

	visits := []domain.VisitEvent{
		visitOn(time.Date(2024, time.March, 3, 9, 0, 0, 0, time.Local)),
		visitOn(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)),
		visitOn(time.Date(2024, time.March, 18, 9, 0, 0, 0, time.Local)),
	}

	absences := []domain.Absence{
		approvedAbsence("abs-1", time.Date(2024, time.March, 6, 0, 0, 0, 0, time.Local), "sick leave"),
		// absence on a skipped weekend day
		approvedAbsence("abs-2", time.Date(2024, time.March, 8, 0, 0, 0, 0, time.Local), "vacation"),
	}

	today := time.Date(2024, time.March, 20, 17, 0, 0, 0, time.Local)

	result := Reconcile(repID, 2024, time.March, visits, absences, settings, today)

	// working days split exactly into worked and auto-inferred absent
	assert.Equal(t, result.WorkingDaysElapsed, result.DaysWorked+countAutoInferred(result))

	// every classified day is unique
	seen := make(map[string]bool)
	for _, detail := range result.Absences {
		assert.False(t, seen[detail.DateKey], "day %s classified twice", detail.DateKey)
		seen[detail.DateKey] = true
	}

	assert.Equal(t, len(result.Absences), result.AbsentDays)
}

func countAutoInferred(r domain.ReconciliationResult) int {
	n := 0
	for _, detail := range r.Absences {
		if !detail.Manual {
			n++
		}
	}
	return n
}
