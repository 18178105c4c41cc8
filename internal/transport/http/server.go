// package http implements the HTTP transport layer for the service.
// It decodes incoming requests, calls the appropriate service methods and
// encodes the responses. Authentication lives in front of this service; the
// caller's role arrives in the X-Actor-Role header.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/apperrors"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/domain"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/plan"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/reconcile"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/service"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/internal/validation"
	"github.com/MoAlsharqawy/Sanivita-CRM-sub000/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const actorRoleHeader = "X-Actor-Role"

// Server holds the dependencies for the HTTP server.
type Server struct {
	log               *slog.Logger
	planService       service.PlanService
	attendanceService service.AttendanceService
	absenceService    service.AbsenceService
	settingsService   service.SettingsService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	ps service.PlanService,
	as service.AttendanceService,
	abs service.AbsenceService,
	ss service.SettingsService,
) *Server {
	return &Server{
		log:               log,
		planService:       ps,
		attendanceService: as,
		absenceService:    abs,
		settingsService:   ss,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/plans/{repID}", func(r chi.Router) {
		r.Get("/", s.getPlan)
		r.Post("/region", s.setDayRegion)
		r.Post("/doctors/add", s.addDoctor)
		r.Post("/doctors/remove", s.removeDoctor)
		r.Post("/submit", s.submitPlan)
		r.Post("/review", s.reviewPlan)
		r.Post("/revoke", s.revokePlan)
	})

	mux.Route("/reps/{repID}", func(r chi.Router) {
		r.Get("/attendance", s.getAttendance)
		r.Get("/frequency", s.getFrequency)
		r.Get("/absences", s.listAbsences)
		r.Get("/visits", s.listVisits)
		r.Get("/clients", s.getRoster)
	})

	mux.Get("/alerts/overdue", s.getOverdueAlerts)
	mux.Post("/visits", s.recordVisit)

	mux.Route("/absences", func(r chi.Router) {
		r.Post("/", s.addManualAbsence)
		r.Post("/request", s.requestLeave)
		r.Post("/{absenceID}/review", s.reviewAbsence)
	})

	mux.Get("/settings", s.getSettings)
	mux.Put("/settings", s.saveSettings)

	return mux
}

func actorRole(r *http.Request) domain.Role {
	return domain.Role(r.Header.Get(actorRoleHeader))
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getPlan"

	view, err := s.planService.GetPlan(r.Context(), chi.URLParam(r, "repID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, view)
}

func (s *Server) setDayRegion(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.setDayRegion"

	var req setDayRegionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	p, err := s.planService.SetDayRegion(r.Context(), chi.URLParam(r, "repID"), req.Day, req.RegionID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.WeeklyPlan{"plan": p})
}

func (s *Server) addDoctor(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.addDoctor"

	var req dayDoctorRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	p, err := s.planService.AddDoctor(r.Context(), chi.URLParam(r, "repID"), req.Day, req.DoctorID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.WeeklyPlan{"plan": p})
}

func (s *Server) removeDoctor(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.removeDoctor"

	var req dayDoctorRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	p, err := s.planService.RemoveDoctor(r.Context(), chi.URLParam(r, "repID"), req.Day, req.DoctorID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.WeeklyPlan{"plan": p})
}

func (s *Server) submitPlan(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitPlan"

	p, err := s.planService.Submit(r.Context(), chi.URLParam(r, "repID"), actorRole(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.WeeklyPlan{"plan": p})
}

func (s *Server) reviewPlan(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.reviewPlan"

	var req reviewPlanRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	p, err := s.planService.Review(r.Context(), chi.URLParam(r, "repID"), plan.Action(req.Action), actorRole(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.WeeklyPlan{"plan": p})
}

func (s *Server) revokePlan(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.revokePlan"

	p, err := s.planService.Revoke(r.Context(), chi.URLParam(r, "repID"), actorRole(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.WeeklyPlan{"plan": p})
}

func (s *Server) recordVisit(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.recordVisit"

	var req recordVisitRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var visitedAt time.Time
	if req.VisitedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.VisitedAt)
		if err != nil {
			s.handleServiceError(w, r, op, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
			return
		}
		visitedAt = parsed
	}

	visit, err := s.attendanceService.RecordVisit(r.Context(), req.RepID, req.ClientID, visitedAt)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.VisitEvent{"visit": visit})
}

func (s *Server) getAttendance(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getAttendance"

	year, month, err := yearMonthParams(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.attendanceService.Reconcile(r.Context(), chi.URLParam(r, "repID"), year, month)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) getFrequency(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getFrequency"

	year, month, err := yearMonthParams(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	buckets, err := s.attendanceService.MonthlyFrequency(r.Context(), chi.URLParam(r, "repID"), year, month)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, buckets)
}

func (s *Server) getOverdueAlerts(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getOverdueAlerts"

	threshold := reconcile.DefaultOverdueThresholdDays
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.handleServiceError(w, r, op, fmt.Errorf("%w: threshold must be a positive integer", apperrors.ErrInvalidRequest))
			return
		}
		threshold = parsed
	}

	alerts, err := s.attendanceService.OverdueAlerts(r.Context(), threshold)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.OverdueAlert{"alerts": alerts})
}

func (s *Server) requestLeave(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.requestLeave"

	var req absenceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	absence, err := s.absenceService.RequestLeave(r.Context(), req.RepID, req.Date, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Absence{"absence": absence})
}

func (s *Server) addManualAbsence(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.addManualAbsence"

	var req absenceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	absence, err := s.absenceService.AddManual(r.Context(), req.RepID, req.Date, req.Reason, actorRole(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Absence{"absence": absence})
}

func (s *Server) reviewAbsence(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.reviewAbsence"

	var req reviewAbsenceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	absence, err := s.absenceService.Review(r.Context(), chi.URLParam(r, "absenceID"), req.Approve, actorRole(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Absence{"absence": absence})
}

func (s *Server) listAbsences(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listAbsences"

	absences, err := s.absenceService.ListForRep(r.Context(), chi.URLParam(r, "repID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Absence{"absences": absences})
}

func (s *Server) listVisits(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listVisits"

	visits, err := s.attendanceService.ListVisits(r.Context(), chi.URLParam(r, "repID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.VisitEvent{"visits": visits})
}

func (s *Server) getRoster(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getRoster"

	clients, err := s.attendanceService.Roster(r.Context(), chi.URLParam(r, "repID"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Client{"clients": clients})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSettings"

	settings, err := s.settingsService.Get(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, settingsResponse(settings))
}

func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.saveSettings"

	var req saveSettingsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	weekends := make([]time.Weekday, len(req.Weekends))
	for i, wd := range req.Weekends {
		weekends[i] = time.Weekday(wd)
	}

	saved, err := s.settingsService.Save(r.Context(), domain.SystemSettings{
		Weekends: weekends,
		Holidays: req.Holidays,
	}, actorRole(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, settingsResponse(saved))
}

func settingsResponse(settings domain.SystemSettings) map[string]interface{} {
	weekends := make([]int, len(settings.Weekends))
	for i, wd := range settings.Weekends {
		weekends[i] = int(wd)
	}

	holidays := settings.Holidays
	if holidays == nil {
		holidays = []string{}
	}

	return map[string]interface{}{
		"weekends": weekends,
		"holidays": holidays,
	}
}

func yearMonthParams(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year must be an integer", apperrors.ErrInvalidRequest)
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must be an integer", apperrors.ErrInvalidRequest)
	}

	return year, time.Month(month), nil
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, _ *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		s.respondError(w, http.StatusForbidden, "operation not allowed for this role")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrAbsenceDuplicated):
		s.respondError(w, http.StatusConflict, "an approved absence already exists for this date")
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, apperrors.ErrPlanLocked):
		s.respondError(w, http.StatusLocked, "plan is approved and the planning window is closed")
	case errors.Is(err, apperrors.ErrInvalidOperation):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
