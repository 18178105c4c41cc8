package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/config"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/repository/postgres"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/service"
	myhttp "github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/transport/http"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting sanivita-crm", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", slog.String("error", err.Error()))
		}
	}()

	repRepo := postgres.NewRepRepository(db.DB(), log)
	clientRepo := postgres.NewClientRepository(db.DB(), log)
	visitRepo := postgres.NewVisitRepository(db.DB(), log)
	planRepo := postgres.NewPlanRepository(db.DB(), log)
	absenceRepo := postgres.NewAbsenceRepository(db.DB(), log)
	settingsRepo := postgres.NewSettingsRepository(db.DB(), log)

	base := service.NewBaseService(db.DB(), log, nil)

	srv := myhttp.NewServer(
		log,
		service.NewPlanService(base, repRepo, clientRepo, planRepo),
		service.NewAttendanceService(base, repRepo, clientRepo, visitRepo, absenceRepo, settingsRepo),
		service.NewAbsenceService(base, repRepo, absenceRepo),
		service.NewSettingsService(base, settingsRepo),
	)

	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
