package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/reconcile"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/repository"
	"github.com/google/uuid"
)

type AttendanceService interface {
	RecordVisit(ctx context.Context, repID, clientID string, visitedAt time.Time) (*domain.VisitEvent, error)
	ListVisits(ctx context.Context, repID string) ([]domain.VisitEvent, error)
	Roster(ctx context.Context, repID string) ([]domain.Client, error)
	Reconcile(ctx context.Context, repID string, year int, month time.Month) (*domain.ReconciliationResult, error)
	MonthlyFrequency(ctx context.Context, repID string, year int, month time.Month) (*domain.FrequencyBuckets, error)
	OverdueAlerts(ctx context.Context, thresholdDays int) ([]domain.OverdueAlert, error)
}

type AttendanceServiceImpl struct {
	BaseService
	reps     repository.RepRepository
	clients  repository.ClientRepository
	visits   repository.VisitRepository
	absences repository.AbsenceRepository
	settings repository.SettingsRepository
}

func NewAttendanceService(
	base BaseService,
	reps repository.RepRepository,
	clients repository.ClientRepository,
	visits repository.VisitRepository,
	absences repository.AbsenceRepository,
	settings repository.SettingsRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		BaseService: base,
		reps:        reps,
		clients:     clients,
		visits:      visits,
		absences:    absences,
		settings:    settings,
	}
}

// RecordVisit appends one visit event. Kind and region are copied from the
// client at record time, so the event stays truthful even if the client is
// later reassigned.
func (s *AttendanceServiceImpl) RecordVisit(ctx context.Context, repID, clientID string, visitedAt time.Time) (*domain.VisitEvent, error) {
	const op = "internal.service.attendance.RecordVisit"
	log := s.log.With(slog.String("op", op), slog.String("rep_id", repID))

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get client: %w", op, err)
	}

	if visitedAt.IsZero() {
		visitedAt = s.now()
	}

	visit := &domain.VisitEvent{
		ID:         uuid.NewString(),
		RepID:      repID,
		ClientID:   client.ID,
		ClientKind: client.Kind,
		RegionID:   client.RegionID,
		VisitedAt:  visitedAt,
	}

	if err := s.visits.Record(ctx, visit); err != nil {
		return nil, fmt.Errorf("%s: failed to record visit: %w", op, err)
	}

	log.Info("visit recorded", slog.String("client_id", client.ID))

	return visit, nil
}

// ListVisits returns the rep's full visit history, newest first as stored.
func (s *AttendanceServiceImpl) ListVisits(ctx context.Context, repID string) ([]domain.VisitEvent, error) {
	const op = "internal.service.attendance.ListVisits"

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	visits, err := s.visits.ListByRep(ctx, repID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list visits: %w", op, err)
	}

	return visits, nil
}

// Roster returns every client currently assigned to the rep, doctors and
// pharmacies alike.
func (s *AttendanceServiceImpl) Roster(ctx context.Context, repID string) ([]domain.Client, error) {
	const op = "internal.service.attendance.Roster"

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	clients, err := s.clients.ListByRep(ctx, repID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list clients: %w", op, err)
	}

	return clients, nil
}

// Reconcile computes the rep's month attendance view from current evidence.
// Nothing is persisted; two calls may disagree when evidence changed in
// between.
func (s *AttendanceServiceImpl) Reconcile(ctx context.Context, repID string, year int, month time.Month) (*domain.ReconciliationResult, error) {
	const op = "internal.service.attendance.Reconcile"

	if err := validateMonth(op, year, month); err != nil {
		return nil, err
	}

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	first, last := calendar.MonthBounds(year, month, time.Local)

	visits, err := s.visits.ListByRepBetween(ctx, repID, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list visits: %w", op, err)
	}

	absences, err := s.absences.ListApprovedByRepBetween(ctx, repID, first, last)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list absences: %w", op, err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get settings: %w", op, err)
	}

	result := reconcile.Reconcile(repID, year, month, visits, absences, settings, s.now())

	return &result, nil
}

// MonthlyFrequency buckets the rep's assigned doctors by visit count within
// the month.
func (s *AttendanceServiceImpl) MonthlyFrequency(ctx context.Context, repID string, year int, month time.Month) (*domain.FrequencyBuckets, error) {
	const op = "internal.service.attendance.MonthlyFrequency"

	if err := validateMonth(op, year, month); err != nil {
		return nil, err
	}

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	doctors, err := s.clients.ListDoctorsByRep(ctx, repID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list doctors: %w", op, err)
	}

	first, last := calendar.MonthBounds(year, month, time.Local)

	visits, err := s.visits.ListByRepBetween(ctx, repID, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list visits: %w", op, err)
	}

	buckets := reconcile.ClassifyFrequency(repID, doctors, visits, year, month)

	return &buckets, nil
}

// OverdueAlerts scans the full roster across reps and flags clients whose
// last visit is older than the threshold, plus clients never visited at all.
func (s *AttendanceServiceImpl) OverdueAlerts(ctx context.Context, thresholdDays int) ([]domain.OverdueAlert, error) {
	const op = "internal.service.attendance.OverdueAlerts"

	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list clients: %w", op, err)
	}

	visits, err := s.visits.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list visits: %w", op, err)
	}

	return reconcile.DetectOverdue(clients, visits, s.now(), thresholdDays), nil
}

var _ AttendanceService = (*AttendanceServiceImpl)(nil)

func validateMonth(op string, year int, month time.Month) error {
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%s: %w: year out of range", op, apperrors.ErrInvalidRequest)
	}

	if month < time.January || month > time.December {
		return fmt.Errorf("%s: %w: month out of range", op, apperrors.ErrInvalidRequest)
	}

	return nil
}
