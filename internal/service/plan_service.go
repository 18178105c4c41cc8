package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/plan"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/repository"
	"github.com/jmoiron/sqlx"
)

// PlanView is the weekly plan together with its current editability,
// which depends on the plan status and the planning window.
type PlanView struct {
	Plan     *domain.WeeklyPlan `json:"plan"`
	Editable bool               `json:"editable"`
}

type PlanService interface {
	GetPlan(ctx context.Context, repID string) (*PlanView, error)
	SetDayRegion(ctx context.Context, repID string, day int, regionID string) (*domain.WeeklyPlan, error)
	AddDoctor(ctx context.Context, repID string, day int, doctorID string) (*domain.WeeklyPlan, error)
	RemoveDoctor(ctx context.Context, repID string, day int, doctorID string) (*domain.WeeklyPlan, error)
	Submit(ctx context.Context, repID string, actor domain.Role) (*domain.WeeklyPlan, error)
	Review(ctx context.Context, repID string, action plan.Action, actor domain.Role) (*domain.WeeklyPlan, error)
	Revoke(ctx context.Context, repID string, actor domain.Role) (*domain.WeeklyPlan, error)
}

type PlanServiceImpl struct {
	BaseService
	reps    repository.RepRepository
	clients repository.ClientRepository
	plans   repository.PlanRepository
}

func NewPlanService(
	base BaseService,
	reps repository.RepRepository,
	clients repository.ClientRepository,
	plans repository.PlanRepository,
) *PlanServiceImpl {
	return &PlanServiceImpl{
		BaseService: base,
		reps:        reps,
		clients:     clients,
		plans:       plans,
	}
}

// loadOrDefault implements the get-or-default factory at the storage
// boundary: a rep with no plan row gets a fresh empty draft, so every plan
// mutation below operates on a real value.
func (s *PlanServiceImpl) loadOrDefault(ctx context.Context, op, repID string) (*domain.WeeklyPlan, error) {
	if _, err := s.reps.GetByID(ctx, repID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	p, err := s.plans.GetByRep(ctx, repID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return plan.NewEmpty(repID), nil
		}

		return nil, fmt.Errorf("%s: failed to get plan: %w", op, err)
	}

	return p, nil
}

func (s *PlanServiceImpl) GetPlan(ctx context.Context, repID string) (*PlanView, error) {
	const op = "internal.service.plan.GetPlan"

	p, err := s.loadOrDefault(ctx, op, repID)
	if err != nil {
		return nil, err
	}

	return &PlanView{
		Plan:     p,
		Editable: plan.Editable(p, s.now()),
	}, nil
}

// mutate runs a single plan edit end to end: load-or-default, window check,
// the edit itself, normalization and a transactional save.
func (s *PlanServiceImpl) mutate(ctx context.Context, op, repID string, edit func(p *domain.WeeklyPlan) error) (*domain.WeeklyPlan, error) {
	p, err := s.loadOrDefault(ctx, op, repID)
	if err != nil {
		return nil, err
	}

	if !plan.Editable(p, s.now()) {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrPlanLocked)
	}

	if err := edit(p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plan.Normalize(p)

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.plans.Save(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (s *PlanServiceImpl) SetDayRegion(ctx context.Context, repID string, day int, regionID string) (*domain.WeeklyPlan, error) {
	const op = "internal.service.plan.SetDayRegion"

	return s.mutate(ctx, op, repID, func(p *domain.WeeklyPlan) error {
		return plan.SetDayRegion(p, day, regionID)
	})
}

// AddDoctor resolves the doctor's home region by id join and appends it to
// the requested day. Assigning a doctor already booked on another day is a
// silent no-op inside the plan model.
func (s *PlanServiceImpl) AddDoctor(ctx context.Context, repID string, day int, doctorID string) (*domain.WeeklyPlan, error) {
	const op = "internal.service.plan.AddDoctor"

	client, err := s.clients.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get doctor: %w", op, err)
	}

	if client.Kind != domain.ClientDoctor {
		return nil, fmt.Errorf("%s: %w: client '%s' is not a doctor", op, apperrors.ErrInvalidOperation, doctorID)
	}

	return s.mutate(ctx, op, repID, func(p *domain.WeeklyPlan) error {
		return plan.AddDoctorToDay(p, day, doctorID, client.RegionID)
	})
}

func (s *PlanServiceImpl) RemoveDoctor(ctx context.Context, repID string, day int, doctorID string) (*domain.WeeklyPlan, error) {
	const op = "internal.service.plan.RemoveDoctor"

	return s.mutate(ctx, op, repID, func(p *domain.WeeklyPlan) error {
		return plan.RemoveDoctorFromDay(p, day, doctorID)
	})
}

// Submit stamps the plan pending and persists the full content: a
// resubmission overwrites whatever review was in flight, last write wins.
func (s *PlanServiceImpl) Submit(ctx context.Context, repID string, actor domain.Role) (*domain.WeeklyPlan, error) {
	const op = "internal.service.plan.Submit"
	log := s.log.With(slog.String("op", op), slog.String("rep_id", repID))

	p, err := s.loadOrDefault(ctx, op, repID)
	if err != nil {
		return nil, err
	}

	if err := plan.Transition(p, plan.ActionSubmit, actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plan.Normalize(p)

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.plans.Save(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	log.Info("plan submitted for review")

	return p, nil
}

// Review applies a manager or supervisor decision to a pending plan.
// A rep with no plan row at all surfaces ErrNotFound; the engine does not
// invent a default for the target of a review.
func (s *PlanServiceImpl) Review(ctx context.Context, repID string, action plan.Action, actor domain.Role) (*domain.WeeklyPlan, error) {
	const op = "internal.service.plan.Review"
	log := s.log.With(slog.String("op", op), slog.String("rep_id", repID), slog.String("action", string(action)))

	if action != plan.ActionApprove && action != plan.ActionReject {
		return nil, fmt.Errorf("%s: %w: review action must be approve or reject", op, apperrors.ErrInvalidOperation)
	}

	return s.changeStatus(ctx, op, log, repID, action, actor)
}

// Revoke returns an approved plan to draft. Manager only.
func (s *PlanServiceImpl) Revoke(ctx context.Context, repID string, actor domain.Role) (*domain.WeeklyPlan, error) {
	const op = "internal.service.plan.Revoke"
	log := s.log.With(slog.String("op", op), slog.String("rep_id", repID))

	return s.changeStatus(ctx, op, log, repID, plan.ActionRevoke, actor)
}

func (s *PlanServiceImpl) changeStatus(ctx context.Context, op string, log *slog.Logger, repID string, action plan.Action, actor domain.Role) (*domain.WeeklyPlan, error) {
	p, err := s.plans.GetByRep(ctx, repID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get plan: %w", op, err)
	}

	if err := plan.Transition(p, action, actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.plans.UpdateStatus(ctx, tx, repID, p.Status)
	})
	if err != nil {
		return nil, err
	}

	log.Info("plan status changed", slog.String("status", string(p.Status)))

	return p, nil
}

var _ PlanService = (*PlanServiceImpl)(nil)
