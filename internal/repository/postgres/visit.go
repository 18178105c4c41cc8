package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// VisitRepository is the append-only evidence store. Rows are inserted and
// read; nothing here ever updates or deletes them.
type VisitRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewVisitRepository(db *sqlx.DB, log *slog.Logger) *VisitRepository {
	return &VisitRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *VisitRepository) Record(ctx context.Context, visit *domain.VisitEvent) error {
	const op = "internal.repository.postgres.visit.Record"

	query, args, err := r.sq.Insert("visit_events").
		Columns("id", "rep_id", "client_id", "client_kind", "region_id", "visited_at").
		Values(visit.ID, visit.RepID, visit.ClientID, visit.ClientKind, visit.RegionID, visit.VisitedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("%s: %w: visit '%s'", op, apperrors.ErrAlreadyExists, visit.ID)
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: rep or client reference", op, apperrors.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *VisitRepository) ListByRepBetween(ctx context.Context, repID string, from, to time.Time) ([]domain.VisitEvent, error) {
	const op = "internal.repository.postgres.visit.ListByRepBetween"

	query, args, err := r.sq.Select("id", "rep_id", "client_id", "client_kind", "region_id", "visited_at").
		From("visit_events").
		Where(sq.Eq{"rep_id": repID}).
		Where(sq.GtOrEq{"visited_at": from}).
		Where(sq.Lt{"visited_at": to}).
		OrderBy("visited_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var visits []domain.VisitEvent
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return visits, nil
}

func (r *VisitRepository) ListByRep(ctx context.Context, repID string) ([]domain.VisitEvent, error) {
	const op = "internal.repository.postgres.visit.ListByRep"

	query, args, err := r.sq.Select("id", "rep_id", "client_id", "client_kind", "region_id", "visited_at").
		From("visit_events").
		Where(sq.Eq{"rep_id": repID}).
		OrderBy("visited_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var visits []domain.VisitEvent
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return visits, nil
}

func (r *VisitRepository) ListAll(ctx context.Context) ([]domain.VisitEvent, error) {
	const op = "internal.repository.postgres.visit.ListAll"

	query, args, err := r.sq.Select("id", "rep_id", "client_id", "client_kind", "region_id", "visited_at").
		From("visit_events").
		OrderBy("visited_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var visits []domain.VisitEvent
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return visits, nil
}
