package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/calendar"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/repository"
)

type SettingsService interface {
	Get(ctx context.Context) (domain.SystemSettings, error)
	Save(ctx context.Context, settings domain.SystemSettings, actor domain.Role) (domain.SystemSettings, error)
}

type SettingsServiceImpl struct {
	BaseService
	settings repository.SettingsRepository
}

func NewSettingsService(base BaseService, settings repository.SettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		BaseService: base,
		settings:    settings,
	}
}

func (s *SettingsServiceImpl) Get(ctx context.Context) (domain.SystemSettings, error) {
	const op = "internal.service.settings.Get"

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.SystemSettings{}, fmt.Errorf("%s: failed to get settings: %w", op, err)
	}

	return settings, nil
}

// Save replaces the working calendar. Manager only; reconciliation picks the
// new calendar up on its next run, results are never recomputed in place.
func (s *SettingsServiceImpl) Save(ctx context.Context, settings domain.SystemSettings, actor domain.Role) (domain.SystemSettings, error) {
	const op = "internal.service.settings.Save"
	log := s.log.With(slog.String("op", op))

	if actor != domain.RoleManager {
		return domain.SystemSettings{}, fmt.Errorf("%s: %w: only a manager can change settings", op, apperrors.ErrPermissionDenied)
	}

	for _, wd := range settings.Weekends {
		if wd < time.Sunday || wd > time.Saturday {
			return domain.SystemSettings{}, fmt.Errorf("%s: %w: invalid weekday %d", op, apperrors.ErrInvalidRequest, wd)
		}
	}

	for _, key := range settings.Holidays {
		if _, err := calendar.ParseDateKey(key); err != nil {
			return domain.SystemSettings{}, fmt.Errorf("%s: %w: invalid holiday '%s'", op, apperrors.ErrInvalidRequest, key)
		}
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return domain.SystemSettings{}, fmt.Errorf("%s: failed to save settings: %w", op, err)
	}

	log.Info("settings updated",
		slog.Int("weekends", len(settings.Weekends)),
		slog.Int("holidays", len(settings.Holidays)),
	)

	return settings, nil
}

var _ SettingsService = (*SettingsServiceImpl)(nil)
