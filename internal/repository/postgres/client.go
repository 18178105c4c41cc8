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

type ClientRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewClientRepository(db *sqlx.DB, log *slog.Logger) *ClientRepository {
	return &ClientRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func clientSelectColumns() []string {
	return []string{"id", "name", "kind", "region_id", "rep_id", "specialization"}
}

func (r *ClientRepository) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	const op = "internal.repository.postgres.client.GetByID"

	query, args, err := r.sq.Select(clientSelectColumns()...).
		From("clients").
		Where(sq.Eq{"id": clientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var client domain.Client
	if err := r.db.GetContext(ctx, &client, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: client with id '%s'", op, apperrors.ErrNotFound, clientID)
		}

		return nil, fmt.Errorf("%s: failed to get client: %w", op, err)
	}

	return &client, nil
}

func (r *ClientRepository) ListByRep(ctx context.Context, repID string) ([]domain.Client, error) {
	const op = "internal.repository.postgres.client.ListByRep"

	return r.list(ctx, op, sq.Eq{"rep_id": repID})
}

func (r *ClientRepository) ListDoctorsByRep(ctx context.Context, repID string) ([]domain.Client, error) {
	const op = "internal.repository.postgres.client.ListDoctorsByRep"

	return r.list(ctx, op, sq.Eq{"rep_id": repID, "kind": domain.ClientDoctor})
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]domain.Client, error) {
	const op = "internal.repository.postgres.client.ListAll"

	return r.list(ctx, op, nil)
}

func (r *ClientRepository) list(ctx context.Context, op string, where interface{}) ([]domain.Client, error) {
	builder := r.sq.Select(clientSelectColumns()...).
		From("clients").
		OrderBy("name")

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var clients []domain.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return clients, nil
}

type RepRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewRepRepository(db *sqlx.DB, log *slog.Logger) *RepRepository {
	return &RepRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RepRepository) GetByID(ctx context.Context, repID string) (*domain.Rep, error) {
	const op = "internal.repository.postgres.rep.GetByID"

	query, args, err := r.sq.Select("id", "name", "region_ids").
		From("reps").
		Where(sq.Eq{"id": repID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row struct {
		ID        string         `db:"id"`
		Name      string         `db:"name"`
		RegionIDs pq.StringArray `db:"region_ids"`
	}

	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: rep with id '%s'", op, apperrors.ErrNotFound, repID)
		}

		return nil, fmt.Errorf("%s: failed to get rep: %w", op, err)
	}

	return &domain.Rep{ID: row.ID, Name: row.Name, RegionIDs: row.RegionIDs}, nil
}
