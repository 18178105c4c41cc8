package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/repository"
	"github.com/google/uuid"
)

type AbsenceService interface {
	RequestLeave(ctx context.Context, repID, dateKey, reason string) (*domain.Absence, error)
	AddManual(ctx context.Context, repID, dateKey, reason string, actor domain.Role) (*domain.Absence, error)
	Review(ctx context.Context, absenceID string, approve bool, actor domain.Role) (*domain.Absence, error)
	ListForRep(ctx context.Context, repID string) ([]domain.Absence, error)
}

type AbsenceServiceImpl struct {
	BaseService
	reps     repository.RepRepository
	absences repository.AbsenceRepository
}

func NewAbsenceService(
	base BaseService,
	reps repository.RepRepository,
	absences repository.AbsenceRepository,
) *AbsenceServiceImpl {
	return &AbsenceServiceImpl{
		BaseService: base,
		reps:        reps,
		absences:    absences,
	}
}

// RequestLeave files a rep's own leave request. It starts PENDING and has no
// effect on reconciliation until a manager approves it.
func (s *AbsenceServiceImpl) RequestLeave(ctx context.Context, repID, dateKey, reason string) (*domain.Absence, error) {
	const op = "internal.service.absence.RequestLeave"

	return s.create(ctx, op, repID, dateKey, reason, domain.AbsencePending, false)
}

// AddManual records a manager-entered absence on a rep's behalf. It is
// APPROVED immediately, skipping review.
func (s *AbsenceServiceImpl) AddManual(ctx context.Context, repID, dateKey, reason string, actor domain.Role) (*domain.Absence, error) {
	const op = "internal.service.absence.AddManual"

	if actor != domain.RoleManager {
		return nil, fmt.Errorf("%s: %w: only a manager can enter absences manually", op, apperrors.ErrPermissionDenied)
	}

	return s.create(ctx, op, repID, dateKey, reason, domain.AbsenceApproved, true)
}

func (s *AbsenceServiceImpl) create(ctx context.Context, op, repID, dateKey, reason string, status domain.AbsenceStatus, manual bool) (*domain.Absence, error) {
	log := s.log.With(slog.String("op", op), slog.String("rep_id", repID), slog.String("date", dateKey))

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	date, err := calendar.ParseDateKey(dateKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrInvalidRequest, err)
	}

	absence := &domain.Absence{
		ID:          uuid.NewString(),
		RepID:       repID,
		Date:        date,
		Reason:      reason,
		Status:      status,
		ManualEntry: manual,
	}

	if err := s.absences.Create(ctx, absence); err != nil {
		return nil, fmt.Errorf("%s: failed to create absence: %w", op, err)
	}

	log.Info("absence created", slog.String("status", string(status)))

	return absence, nil
}

// Review settles a pending leave request. Only PENDING absences can be
// reviewed; a settled one stays settled.
func (s *AbsenceServiceImpl) Review(ctx context.Context, absenceID string, approve bool, actor domain.Role) (*domain.Absence, error) {
	const op = "internal.service.absence.Review"
	log := s.log.With(slog.String("op", op), slog.String("absence_id", absenceID))

	if actor != domain.RoleManager {
		return nil, fmt.Errorf("%s: %w: only a manager can review absences", op, apperrors.ErrPermissionDenied)
	}

	absence, err := s.absences.GetByID(ctx, absenceID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get absence: %w", op, err)
	}

	if absence.Status != domain.AbsencePending {
		return nil, fmt.Errorf("%s: %w: absence is already %s", op, apperrors.ErrInvalidOperation, absence.Status)
	}

	status := domain.AbsenceRejected
	if approve {
		status = domain.AbsenceApproved
	}

	if err := s.absences.UpdateStatus(ctx, absenceID, status); err != nil {
		return nil, fmt.Errorf("%s: failed to update absence: %w", op, err)
	}

	absence.Status = status

	log.Info("absence reviewed", slog.String("status", string(status)))

	return absence, nil
}

func (s *AbsenceServiceImpl) ListForRep(ctx context.Context, repID string) ([]domain.Absence, error) {
	const op = "internal.service.absence.ListForRep"

	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	absences, err := s.absences.ListByRep(ctx, repID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list absences: %w", op, err)
	}

	return absences, nil
}

var _ AbsenceService = (*AbsenceServiceImpl)(nil)
