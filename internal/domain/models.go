package domain

import (
	"time"
)

type Role string

const (
	RoleRep        Role = "rep"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

type ClientKind string

const (
	ClientDoctor   ClientKind = "doctor"
	ClientPharmacy ClientKind = "pharmacy"
)

type PlanStatus string

const (
	PlanDraft    PlanStatus = "draft"
	PlanPending  PlanStatus = "pending"
	PlanApproved PlanStatus = "approved"
	PlanRejected PlanStatus = "rejected"
)

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "PENDING"
	AbsenceApproved AbsenceStatus = "APPROVED"
	AbsenceRejected AbsenceStatus = "REJECTED"
)

type Rep struct {
	ID        string   `db:"id"`
	Name      string   `db:"name"`
	RegionIDs []string `db:"region_ids"`
}

type Region struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// Client is a doctor or pharmacy owned by exactly one rep.
// Specialization is set for doctors only.
type Client struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Kind           ClientKind `db:"kind" json:"kind"`
	RegionID       string     `db:"region_id" json:"region_id"`
	RepID          string     `db:"rep_id" json:"rep_id"`
	Specialization string     `db:"specialization" json:"specialization,omitempty"`
}

// VisitEvent is the immutable evidence that a rep worked on a calendar day.
// A visit at any time of day counts for that local date.
type VisitEvent struct {
	ID         string     `db:"id" json:"id"`
	RepID      string     `db:"rep_id" json:"rep_id"`
	ClientID   string     `db:"client_id" json:"client_id"`
	ClientKind ClientKind `db:"client_kind" json:"client_kind"`
	RegionID   string     `db:"region_id" json:"region_id"`
	VisitedAt  time.Time  `db:"visited_at" json:"visited_at"`
}

// SystemSettings is the manager-editable working calendar. The zero value
// (no weekends, no holidays) is valid: every day is a working day.
type SystemSettings struct {
	Weekends []time.Weekday
	Holidays []string // date keys, YYYY-MM-DD
}

// WeekendSet returns the weekend days as a membership set.
func (s SystemSettings) WeekendSet() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(s.Weekends))
	for _, wd := range s.Weekends {
		set[wd] = true
	}
	return set
}

// HolidaySet returns the holiday date keys as a membership set.
func (s SystemSettings) HolidaySet() map[string]bool {
	set := make(map[string]bool, len(s.Holidays))
	for _, key := range s.Holidays {
		set[key] = true
	}
	return set
}

// DayPlanEntry is one planned day of a weekly plan: a region and the doctors
// to visit there. A region with no doctors yet is valid.
type DayPlanEntry struct {
	RegionID  string   `json:"region_id"`
	DoctorIDs []string `json:"doctor_ids"`
}

// PlanDays is the number of weekday slots in a weekly plan.
// Slot 0 is Saturday, the first day of the business week.
const PlanDays = 7

// WeeklyPlan is a rep's declared schedule for one business week.
// A nil day slot is a rest day.
type WeeklyPlan struct {
	RepID  string                  `json:"rep_id"`
	Status PlanStatus              `json:"status"`
	Days   [PlanDays]*DayPlanEntry `json:"days"`
}

type Absence struct {
	ID          string        `db:"id" json:"id"`
	RepID       string        `db:"rep_id" json:"rep_id"`
	Date        time.Time     `db:"date" json:"date"`
	Reason      string        `db:"reason" json:"reason"`
	Status      AbsenceStatus `db:"status" json:"status"`
	ManualEntry bool          `db:"manual_entry" json:"manual_entry"`
}

// AbsenceDetail is one classified non-worked day in a reconciliation result.
// Manual entries point back at the approved absence that explains the day;
// auto-inferred entries have no source.
type AbsenceDetail struct {
	DateKey   string `json:"date"`
	Reason    string `json:"reason"`
	Manual    bool   `json:"is_manual"`
	AbsenceID string `json:"source_absence_id,omitempty"`
}

// ReconciliationResult is the derived month view for one rep. It is computed
// on demand and never stored.
type ReconciliationResult struct {
	RepID              string          `json:"rep_id"`
	Year               int             `json:"year"`
	Month              time.Month      `json:"month"`
	WorkingDaysElapsed int             `json:"working_days_elapsed"`
	DaysWorked         int             `json:"days_worked"`
	AbsentDays         int             `json:"absent_days"`
	Absences           []AbsenceDetail `json:"absence_detail"`
}

// FrequencyBuckets counts a rep's assigned doctors by monthly visit count:
// exactly 0, 1, 2, or 3 and more.
type FrequencyBuckets struct {
	F0 int `json:"f0"`
	F1 int `json:"f1"`
	F2 int `json:"f2"`
	F3 int `json:"f3"`
}

// OverdueAlert flags a client whose last visit is too long ago, or who was
// never visited at all. DaysSinceLastVisit is nil for never-visited clients.
type OverdueAlert struct {
	ClientID           string     `json:"client_id"`
	ClientName         string     `json:"client_name"`
	Kind               ClientKind `json:"client_kind"`
	RepID              string     `json:"rep_id"`
	DaysSinceLastVisit *int       `json:"days_since_last_visit"`
	LastVisitAt        *time.Time `json:"last_visit_at,omitempty"`
}
