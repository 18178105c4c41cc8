package reconcile

import (
	"sort"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
)

// DefaultOverdueThresholdDays is the number of days a client may go without
// a visit before being flagged.
const DefaultOverdueThresholdDays = 10

// DetectOverdue flags every client whose last visit is strictly more than
// thresholdDays ago, and every client never visited at all. The last visit
// is the maximum-dated event for the client across all time, not just the
// current month. A non-positive threshold falls back to the default.
//
// Alerts are ordered worst first: never-visited clients, then by descending
// days since the last visit.
func DetectOverdue(
	clients []domain.Client,
	visits []domain.VisitEvent,
	now time.Time,
	thresholdDays int,
) []domain.OverdueAlert {
	if thresholdDays <= 0 {
		thresholdDays = DefaultOverdueThresholdDays
	}

	lastVisit := make(map[string]time.Time)
	for _, v := range visits {
		if prev, ok := lastVisit[v.ClientID]; !ok || v.VisitedAt.After(prev) {
			lastVisit[v.ClientID] = v.VisitedAt
		}
	}

	alerts := []domain.OverdueAlert{}

	for _, client := range clients {
		last, visited := lastVisit[client.ID]

		if !visited {
			alerts = append(alerts, domain.OverdueAlert{
				ClientID:   client.ID,
				ClientName: client.Name,
				Kind:       client.Kind,
				RepID:      client.RepID,
			})
			continue
		}

		days := calendar.DaysBetween(last, now)
		if days <= thresholdDays {
			continue
		}

		lastAt := last
		alerts = append(alerts, domain.OverdueAlert{
			ClientID:           client.ID,
			ClientName:         client.Name,
			Kind:               client.Kind,
			RepID:              client.RepID,
			DaysSinceLastVisit: &days,
			LastVisitAt:        &lastAt,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i].DaysSinceLastVisit, alerts[j].DaysSinceLastVisit
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return *a > *b
		}
	})

	return alerts
}
