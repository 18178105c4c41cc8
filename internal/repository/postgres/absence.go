package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type AbsenceRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAbsenceRepository(db *sqlx.DB, log *slog.Logger) *AbsenceRepository {
	return &AbsenceRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts an absence. A partial unique index on (rep_id, date) where
// status = 'APPROVED' backs the at-most-one-approved-absence-per-day
// invariant; a violation maps to ErrAbsenceDuplicated.
func (r *AbsenceRepository) Create(ctx context.Context, absence *domain.Absence) error {
	const op = "internal.repository.postgres.absence.Create"

	query, args, err := r.sq.Insert("absences").
		Columns("id", "rep_id", "date", "reason", "status", "manual_entry").
		Values(absence.ID, absence.RepID, absence.Date, absence.Reason, absence.Status, absence.ManualEntry).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return &apperrors.AbsenceExistsError{
					RepID:   absence.RepID,
					DateKey: calendar.DateKey(absence.Date),
				}
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: rep with id '%s'", op, apperrors.ErrNotFound, absence.RepID)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *AbsenceRepository) GetByID(ctx context.Context, absenceID string) (*domain.Absence, error) {
	const op = "internal.repository.postgres.absence.GetByID"

	query, args, err := r.sq.Select("id", "rep_id", "date", "reason", "status", "manual_entry").
		From("absences").
		Where(sq.Eq{"id": absenceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var absence domain.Absence
	if err := r.db.GetContext(ctx, &absence, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: absence with id '%s'", op, apperrors.ErrNotFound, absenceID)
		}

		return nil, fmt.Errorf("%s: failed to get absence: %w", op, err)
	}

	return &absence, nil
}

func (r *AbsenceRepository) UpdateStatus(ctx context.Context, absenceID string, status domain.AbsenceStatus) error {
	const op = "internal.repository.postgres.absence.UpdateStatus"

	query, args, err := r.sq.Update("absences").
		Set("status", status).
		Where(sq.Eq{"id": absenceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAbsenceDuplicated)
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: absence with id '%s'", op, apperrors.ErrNotFound, absenceID)
	}

	return nil
}

func (r *AbsenceRepository) ListByRep(ctx context.Context, repID string) ([]domain.Absence, error) {
	const op = "internal.repository.postgres.absence.ListByRep"

	query, args, err := r.sq.Select("id", "rep_id", "date", "reason", "status", "manual_entry").
		From("absences").
		Where(sq.Eq{"rep_id": repID}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var absences []domain.Absence
	if err := r.db.SelectContext(ctx, &absences, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return absences, nil
}

func (r *AbsenceRepository) ListApprovedByRepBetween(ctx context.Context, repID string, from, to time.Time) ([]domain.Absence, error) {
	const op = "internal.repository.postgres.absence.ListApprovedByRepBetween"

	query, args, err := r.sq.Select("id", "rep_id", "date", "reason", "status", "manual_entry").
		From("absences").
		Where(sq.Eq{"rep_id": repID, "status": domain.AbsenceApproved}).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var absences []domain.Absence
	if err := r.db.SelectContext(ctx, &absences, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return absences, nil
}
