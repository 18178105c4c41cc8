package postgres

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The upsert runs through ON CONFLICT DO UPDATE, and Postgres resolves the
// SET targets at parse time, so a column missing from the table breaks the
// very first insert too. This test pins the exact statement and checks each
// touched column against the migration, without needing a live database.
func TestSettingsRepository_SaveUpsertMatchesSchema(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	repo := NewSettingsRepository(
		sqlx.NewDb(db, "sqlmock"),
		slog.New(slog.NewTextHandler(os.Stdout, nil)),
	)

	const upsert = "INSERT INTO system_settings (id,weekends,holidays) VALUES ($1,$2,$3) " +
		"ON CONFLICT (id) DO UPDATE SET weekends = EXCLUDED.weekends, holidays = EXCLUDED.holidays, updated_at = now()"

	mock.ExpectExec(upsert).
		WithArgs(settingsRowID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(context.Background(), domain.SystemSettings{
		Weekends: []time.Weekday{time.Friday, time.Saturday},
		Holidays: []string{"2024-04-10"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)

	table := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS system_settings \((.*?)\);`).FindSubmatch(schema)
	require.Len(t, table, 2, "system_settings table definition not found in migration")

	for _, column := range []string{"id", "weekends", "holidays", "updated_at"} {
		assert.Contains(t, string(table[1]), column)
	}
}
