package reconcile

import (
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
)

// ClassifyFrequency buckets every doctor currently assigned to the rep by
// visit count within the month: exactly 0, 1, 2, or 3 and more.
//
// The iteration runs over the roster, not over the visit list, so doctors
// without a single visit still land in F0 and the buckets always partition
// the roster: F0+F1+F2+F3 == number of assigned doctors. A doctor reassigned
// mid-month is classified under the current owner only; callers pass the
// roster as it stands now.
func ClassifyFrequency(
	repID string,
	doctors []domain.Client,
	visits []domain.VisitEvent,
	year int,
	month time.Month,
) domain.FrequencyBuckets {
	first, last := calendar.MonthBounds(year, month, time.Local)
	// end of the last calendar day, exclusive
	monthEnd := last.AddDate(0, 0, 1)

	countsByDoctor := make(map[string]int)
	for _, v := range visits {
		if v.RepID != repID || v.ClientKind != domain.ClientDoctor {
			continue
		}

		if v.VisitedAt.Before(first) || !v.VisitedAt.Before(monthEnd) {
			continue
		}

		countsByDoctor[v.ClientID]++
	}

	var buckets domain.FrequencyBuckets

	for _, doctor := range doctors {
		if doctor.Kind != domain.ClientDoctor || doctor.RepID != repID {
			continue
		}

		switch countsByDoctor[doctor.ID] {
		case 0:
			buckets.F0++
		case 1:
			buckets.F1++
		case 2:
			buckets.F2++
		default:
			buckets.F3++
		}
	}

	return buckets
}
