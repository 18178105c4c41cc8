package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type RepRepositoryMock struct {
	mock.Mock
}

var _ repository.RepRepository = (*RepRepositoryMock)(nil)

func (m *RepRepositoryMock) GetByID(ctx context.Context, repID string) (*domain.Rep, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Rep), args.Error(1)
}

type ClientRepositoryMock struct {
	mock.Mock
}

var _ repository.ClientRepository = (*ClientRepositoryMock)(nil)

func (m *ClientRepositoryMock) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *ClientRepositoryMock) ListByRep(ctx context.Context, repID string) ([]domain.Client, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *ClientRepositoryMock) ListDoctorsByRep(ctx context.Context, repID string) ([]domain.Client, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *ClientRepositoryMock) ListAll(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Client), args.Error(1)
}

type VisitRepositoryMock struct {
	mock.Mock
}

var _ repository.VisitRepository = (*VisitRepositoryMock)(nil)

func (m *VisitRepositoryMock) Record(ctx context.Context, visit *domain.VisitEvent) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *VisitRepositoryMock) ListByRepBetween(ctx context.Context, repID string, from, to time.Time) ([]domain.VisitEvent, error) {
	args := m.Called(ctx, repID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.VisitEvent), args.Error(1)
}

func (m *VisitRepositoryMock) ListByRep(ctx context.Context, repID string) ([]domain.VisitEvent, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.VisitEvent), args.Error(1)
}

func (m *VisitRepositoryMock) ListAll(ctx context.Context) ([]domain.VisitEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.VisitEvent), args.Error(1)
}

type PlanRepositoryMock struct {
	mock.Mock
}

var _ repository.PlanRepository = (*PlanRepositoryMock)(nil)

func (m *PlanRepositoryMock) GetByRep(ctx context.Context, repID string) (*domain.WeeklyPlan, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WeeklyPlan), args.Error(1)
}

func (m *PlanRepositoryMock) Save(ctx context.Context, tx *sqlx.Tx, p *domain.WeeklyPlan) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *PlanRepositoryMock) UpdateStatus(ctx context.Context, tx *sqlx.Tx, repID string, status domain.PlanStatus) error {
	args := m.Called(ctx, tx, repID, status)
	return args.Error(0)
}

type AbsenceRepositoryMock struct {
	mock.Mock
}

var _ repository.AbsenceRepository = (*AbsenceRepositoryMock)(nil)

func (m *AbsenceRepositoryMock) Create(ctx context.Context, absence *domain.Absence) error {
	args := m.Called(ctx, absence)
	return args.Error(0)
}

func (m *AbsenceRepositoryMock) GetByID(ctx context.Context, absenceID string) (*domain.Absence, error) {
	args := m.Called(ctx, absenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Absence), args.Error(1)
}

func (m *AbsenceRepositoryMock) UpdateStatus(ctx context.Context, absenceID string, status domain.AbsenceStatus) error {
	args := m.Called(ctx, absenceID, status)
	return args.Error(0)
}

func (m *AbsenceRepositoryMock) ListByRep(ctx context.Context, repID string) ([]domain.Absence, error) {
	args := m.Called(ctx, repID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Absence), args.Error(1)
}

func (m *AbsenceRepositoryMock) ListApprovedByRepBetween(ctx context.Context, repID string, from, to time.Time) ([]domain.Absence, error) {
	args := m.Called(ctx, repID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Absence), args.Error(1)
}

type SettingsRepositoryMock struct {
	mock.Mock
}

var _ repository.SettingsRepository = (*SettingsRepositoryMock)(nil)

func (m *SettingsRepositoryMock) Get(ctx context.Context) (domain.SystemSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SystemSettings), args.Error(1)
}

func (m *SettingsRepositoryMock) Save(ctx context.Context, settings domain.SystemSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
