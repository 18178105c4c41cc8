package http

import (
	"context"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/plan"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/service"
	"github.com/stretchr/testify/mock"
)

type PlanServiceMock struct {
	mock.Mock
}

func (m *PlanServiceMock) GetPlan(ctx context.Context, repID string) (*service.PlanView, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PlanView), args.Error(1)
}

func (m *PlanServiceMock) SetDayRegion(ctx context.Context, repID string, day int, regionID string) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID, day, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

func (m *PlanServiceMock) AddDoctor(ctx context.Context, repID string, day int, doctorID string) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID, day, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

func (m *PlanServiceMock) RemoveDoctor(ctx context.Context, repID string, day int, doctorID string) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID, day, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

func (m *PlanServiceMock) Submit(ctx context.Context, repID string, actor domain.Role) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

func (m *PlanServiceMock) Review(ctx context.Context, repID string, action plan.Action, actor domain.Role) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID, action, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

func (m *PlanServiceMock) Revoke(ctx context.Context, repID string, actor domain.Role) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

type AttendanceServiceMock struct {
	mock.Mock
}

func (m *AttendanceServiceMock) RecordVisit(ctx context.Context, repID, clientID string, visitedAt time.Time) (*domain.VisitEvent, error) {
	args := m.Called(ctx, repID, clientID, visitedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.VisitEvent), args.Error(1)
}

func (m *AttendanceServiceMock) ListVisits(ctx context.Context, repID string) ([]domain.VisitEvent, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.VisitEvent), args.Error(1)
}

func (m *AttendanceServiceMock) Roster(ctx context.Context, repID string) ([]domain.Client, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *AttendanceServiceMock) Reconcile(ctx context.Context, repID string, year int, month time.Month) (*domain.ReconciliationResult, error) {
	args := m.Called(ctx, repID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

func (m *AttendanceServiceMock) MonthlyFrequency(ctx context.Context, repID string, year int, month time.Month) (*domain.FrequencyBuckets, error) {
	args := m.Called(ctx, repID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.FrequencyBuckets), args.Error(1)
}

func (m *AttendanceServiceMock) OverdueAlerts(ctx context.Context, thresholdDays int) ([]domain.OverdueAlert, error) {
	args := m.Called(ctx, thresholdDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.OverdueAlert), args.Error(1)
}

type AbsenceServiceMock struct {
	mock.Mock
}

func (m *AbsenceServiceMock) RequestLeave(ctx context.Context, repID, dateKey, reason string) (*domain.Absence, error) {
	args := m.Called(ctx, repID, dateKey, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Absence), args.Error(1)
}

func (m *AbsenceServiceMock) AddManual(ctx context.Context, repID, dateKey, reason string, actor domain.Role) (*domain.Absence, error) {
	args := m.Called(ctx, repID, dateKey, reason, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Absence), args.Error(1)
}

func (m *AbsenceServiceMock) Review(ctx context.Context, absenceID string, approve bool, actor domain.Role) (*domain.Absence, error) {
	args := m.Called(ctx, absenceID, approve, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Absence), args.Error(1)
}

func (m *AbsenceServiceMock) ListForRep(ctx context.Context, repID string) ([]domain.Absence, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Absence), args.Error(1)
}

type SettingsServiceMock struct {
	mock.Mock
}

func (m *SettingsServiceMock) Get(ctx context.Context) (domain.SystemSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SystemSettings), args.Error(1)
}

func (m *SettingsServiceMock) Save(ctx context.Context, settings domain.SystemSettings, actor domain.Role) (domain.SystemSettings, error) {
	args := m.Called(ctx, settings, actor)
	return args.Get(0).(domain.SystemSettings), args.Error(1)
}
