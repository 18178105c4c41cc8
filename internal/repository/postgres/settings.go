package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// settingsRowID pins the singleton settings row.
const settingsRowID = 1

type SettingsRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewSettingsRepository(db *sqlx.DB, log *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get loads the working-calendar settings. A missing row is not an error:
// reconciliation treats it as empty weekend and holiday sets.
func (r *SettingsRepository) Get(ctx context.Context) (domain.SystemSettings, error) {
	const op = "internal.repository.postgres.settings.Get"

	query, args, err := r.sq.Select("weekends", "holidays").
		From("system_settings").
		Where(sq.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return domain.SystemSettings{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row struct {
		Weekends pq.Int64Array  `db:"weekends"`
		Holidays pq.StringArray `db:"holidays"`
	}

	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SystemSettings{}, nil
		}

		return domain.SystemSettings{}, fmt.Errorf("%s: failed to get settings: %w", op, err)
	}

	settings := domain.SystemSettings{Holidays: row.Holidays}
	for _, wd := range row.Weekends {
		settings.Weekends = append(settings.Weekends, time.Weekday(wd))
	}

	return settings, nil
}

// Save upserts the singleton settings row.
func (r *SettingsRepository) Save(ctx context.Context, settings domain.SystemSettings) error {
	const op = "internal.repository.postgres.settings.Save"

	weekends := make(pq.Int64Array, len(settings.Weekends))
	for i, wd := range settings.Weekends {
		weekends[i] = int64(wd)
	}

	query, args, err := r.sq.Insert("system_settings").
		Columns("id", "weekends", "holidays").
		Values(settingsRowID, weekends, pq.StringArray(settings.Holidays)).
		Suffix("ON CONFLICT (id) DO UPDATE SET weekends = EXCLUDED.weekends, holidays = EXCLUDED.holidays, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute upsert: %w", op, err)
	}

	return nil
}
