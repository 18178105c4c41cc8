package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PlanRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewPlanRepository(db *sqlx.DB, log *slog.Logger) *PlanRepository {
	return &PlanRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type planEntryRow struct {
	Weekday   int            `db:"weekday"`
	RegionID  string         `db:"region_id"`
	DoctorIDs pq.StringArray `db:"doctor_ids"`
}

// GetByRep loads the rep's plan with its day entries.
func (r *PlanRepository) GetByRep(ctx context.Context, repID string) (*domain.WeeklyPlan, error) {
	const op = "internal.repository.postgres.plan.GetByRep"

	query, args, err := r.sq.Select("status").
		From("weekly_plans").
		Where(sq.Eq{"rep_id": repID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var status domain.PlanStatus
	if err := r.db.GetContext(ctx, &status, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: plan for rep '%s'", op, apperrors.ErrNotFound, repID)
		}

		return nil, fmt.Errorf("%s: failed to get plan: %w", op, err)
	}

	entriesQuery, args, err := r.sq.Select("weekday", "region_id", "doctor_ids").
		From("plan_entries").
		Where(sq.Eq{"rep_id": repID}).
		OrderBy("weekday").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build entries query: %w", op, err)
	}

	var rows []planEntryRow
	if err := r.db.SelectContext(ctx, &rows, entriesQuery, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select entries: %w", op, err)
	}

	p := &domain.WeeklyPlan{RepID: repID, Status: status}

	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday >= domain.PlanDays {
			r.log.Warn("skipping plan entry with invalid weekday",
				slog.String("rep_id", repID), slog.Int("weekday", row.Weekday))
			continue
		}

		p.Days[row.Weekday] = &domain.DayPlanEntry{
			RegionID:  row.RegionID,
			DoctorIDs: row.DoctorIDs,
		}
	}

	return p, nil
}

// Save upserts the plan header and replaces all day entries inside the
// caller's transaction. The plan is expected to be normalized already.
func (r *PlanRepository) Save(ctx context.Context, tx *sqlx.Tx, p *domain.WeeklyPlan) error {
	const op = "internal.repository.postgres.plan.Save"

	headerQuery, args, err := r.sq.Insert("weekly_plans").
		Columns("rep_id", "status").
		Values(p.RepID, p.Status).
		Suffix("ON CONFLICT (rep_id) DO UPDATE SET status = EXCLUDED.status, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, headerQuery, args...); err != nil {
		return fmt.Errorf("%s: failed to upsert plan header: %w", op, err)
	}

	deleteQuery, args, err := r.sq.Delete("plan_entries").
		Where(sq.Eq{"rep_id": p.RepID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		return fmt.Errorf("%s: failed to delete old entries: %w", op, err)
	}

	insertBuilder := r.sq.Insert("plan_entries").
		Columns("rep_id", "weekday", "region_id", "doctor_ids")

	hasEntries := false
	for weekday, entry := range p.Days {
		if entry == nil {
			continue
		}

		insertBuilder = insertBuilder.Values(p.RepID, weekday, entry.RegionID, pq.StringArray(entry.DoctorIDs))
		hasEntries = true
	}

	if !hasEntries {
		return nil
	}

	insertQuery, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
		return fmt.Errorf("%s: failed to insert entries: %w", op, err)
	}

	return nil
}

// UpdateStatus stamps a new lifecycle status on an existing plan row.
func (r *PlanRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, repID string, status domain.PlanStatus) error {
	const op = "internal.repository.postgres.plan.UpdateStatus"

	query, args, err := r.sq.Update("weekly_plans").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"rep_id": repID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: plan for rep '%s'", op, apperrors.ErrNotFound, repID)
	}

	return nil
}
