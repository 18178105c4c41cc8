// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the
// service layer; the core engines never see them, they receive snapshots.
package repository

import (
	"context"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/jmoiron/sqlx"
)

// RepRepository defines the contract for representative lookups.
type RepRepository interface {
	// GetByID retrieves a representative.
	// It returns apperrors.ErrNotFound if the rep does not exist.
	GetByID(ctx context.Context, repID string) (*domain.Rep, error)
}

// ClientRepository defines read access to the doctor/pharmacy roster.
// Client CRUD itself belongs to an external collaborator; the engine only
// reads ownership, kind and region.
type ClientRepository interface {
	// GetByID retrieves a single client.
	// It returns apperrors.ErrNotFound if the client does not exist.
	GetByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListByRep retrieves every client currently owned by the rep.
	ListByRep(ctx context.Context, repID string) ([]domain.Client, error)

	// ListDoctorsByRep retrieves the rep's assigned doctors only.
	ListDoctorsByRep(ctx context.Context, repID string) ([]domain.Client, error)

	// ListAll retrieves the full roster across reps.
	ListAll(ctx context.Context) ([]domain.Client, error)
}

// VisitRepository is the append-only visit evidence feed. Events are never
// updated or deleted here.
type VisitRepository interface {
	// Record appends a visit event.
	Record(ctx context.Context, visit *domain.VisitEvent) error

	// ListByRepBetween retrieves the rep's visits with from <= visited_at < to.
	ListByRepBetween(ctx context.Context, repID string, from, to time.Time) ([]domain.VisitEvent, error)

	// ListByRep retrieves the rep's visits across all time.
	ListByRep(ctx context.Context, repID string) ([]domain.VisitEvent, error)

	// ListAll retrieves every visit event across reps.
	ListAll(ctx context.Context) ([]domain.VisitEvent, error)
}

// PlanRepository persists weekly plans.
type PlanRepository interface {
	// GetByRep retrieves the rep's plan with its day entries.
	// It returns apperrors.ErrNotFound when no plan row exists; read and
	// edit paths in the service layer default that to a fresh empty draft,
	// while review paths propagate it.
	GetByRep(ctx context.Context, repID string) (*domain.WeeklyPlan, error)

	// Save upserts the plan header and replaces its day entries.
	// This operation is expected to be transactional.
	Save(ctx context.Context, tx *sqlx.Tx, p *domain.WeeklyPlan) error

	// UpdateStatus stamps a new lifecycle status on the rep's plan.
	// It returns apperrors.ErrNotFound if no plan row exists.
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, repID string, status domain.PlanStatus) error
}

// AbsenceRepository persists leave requests and manager-entered absences.
type AbsenceRepository interface {
	// Create inserts an absence record.
	// It returns apperrors.ErrAbsenceDuplicated when an APPROVED absence
	// already exists for the same rep and date.
	Create(ctx context.Context, absence *domain.Absence) error

	// GetByID retrieves a single absence record.
	// It returns apperrors.ErrNotFound if the absence does not exist.
	GetByID(ctx context.Context, absenceID string) (*domain.Absence, error)

	// UpdateStatus sets the review status of an absence.
	// It returns apperrors.ErrNotFound if the absence does not exist and
	// apperrors.ErrAbsenceDuplicated when approving would create a second
	// APPROVED absence for the same rep and date.
	UpdateStatus(ctx context.Context, absenceID string, status domain.AbsenceStatus) error

	// ListByRep retrieves all of the rep's absences, any status.
	ListByRep(ctx context.Context, repID string) ([]domain.Absence, error)

	// ListApprovedByRepBetween retrieves APPROVED absences with
	// from <= date <= to.
	ListApprovedByRepBetween(ctx context.Context, repID string, from, to time.Time) ([]domain.Absence, error)
}

// SettingsRepository persists the singleton working-calendar settings.
type SettingsRepository interface {
	// Get retrieves the current settings. A missing row yields zero-value
	// settings (no weekends, no holidays), never an error.
	Get(ctx context.Context) (domain.SystemSettings, error)

	// Save upserts the singleton settings row.
	Save(ctx context.Context, settings domain.SystemSettings) error
}
