package widget

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flugbuch/igcfetch/internal/catalog"
	"github.com/flugbuch/igcfetch/internal/scoring"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// savedPilotCookie remembers the pilot ID between visits.
const savedPilotCookie = "saved_pilot_id"

// cookieMaxAge keeps the remembered pilot ID for one year.
const cookieMaxAge = 365 * 24 * 60 * 60

// Service serves the rank widget: a configuration form and the rank
// display page it links to.
type Service struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// New creates a widget service on top of the given catalog.
func New(cat *catalog.Service, logger *slog.Logger) *Service {
	return &Service{catalog: cat, logger: logger}
}

// RegisterHTTP registers the widget endpoints on the Chi router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Get("/", s.handleLanding)
	r.Get("/get_rank", s.handleRank)
}

// landingData feeds the configuration form template.
type landingData struct {
	SavedPilotID string
	Competitions []scoring.Competition
}

// handleLanding serves the configuration form, pre-filling the pilot
// ID from the cookie when one is saved.
func (s *Service) handleLanding(w http.ResponseWriter, r *http.Request) {
	data := landingData{}

	if cookie, err := r.Cookie(savedPilotCookie); err == nil {
		data.SavedPilotID = cookie.Value
	}

	comps, err := s.catalog.Competitions(r.Context())
	if err != nil {
		s.logger.Error("competition list unavailable", "error", err)
	}
	data.Competitions = comps

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "landing.html", data); err != nil {
		s.logger.Error("render landing page", "error", err)
	}
}

// rankData feeds the rank display template. Rank and Error are
// mutually exclusive.
type rankData struct {
	Title string
	Rank  string
	Error string
}

// handleRank looks up the pilot's rank and renders the display page.
//
// The page is meant to be embedded as a streaming overlay, so errors
// render as HTML too, with the status code carrying the kind: 400 for
// missing parameters, 404 when the task page or the pilot cannot be
// found, 500 for everything else.
func (s *Service) handleRank(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	comp := query.Get("competition")
	task := query.Get("task")
	pilotID := query.Get("pilot_id")
	remember := query.Get("remember") == "yes"

	if comp == "" || task == "" || pilotID == "" {
		s.renderError(w, http.StatusBadRequest, "Missing required parameters: 'competition', 'task', 'pilot_id'")
		return
	}

	s.logger.Info("rank request", "competition", comp, "task", task, "pilot_id", pilotID, "remember", remember)

	rank, err := s.catalog.PilotRank(r.Context(), comp, task, pilotID)
	if err != nil {
		s.logger.Warn("rank lookup failed", "competition", comp, "task", task, "pilot_id", pilotID, "error", err)

		switch {
		case errors.Is(err, catalog.ErrTaskNotFound):
			s.renderError(w, http.StatusNotFound, fmt.Sprintf("Task %s page not found for competition '%s'.", task, comp))
		case errors.Is(err, scoring.ErrPilotNotFound):
			s.renderError(w, http.StatusNotFound, "Pilot ID not found in results.")
		case errors.Is(err, scoring.ErrUnexpectedTableShape):
			s.renderError(w, http.StatusInternalServerError, "Results table structure not as expected on page.")
		default:
			s.renderError(w, http.StatusInternalServerError, "Could not fetch results data.")
		}
		return
	}

	if remember {
		http.SetCookie(w, &http.Cookie{
			Name:     savedPilotCookie,
			Value:    pilotID,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.render(w, http.StatusOK, rankData{Title: "Rank: " + rank, Rank: rank})
}

func (s *Service) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, rankData{Title: "Error", Error: message})
}

func (s *Service) render(w http.ResponseWriter, status int, data rankData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "rank.html", data); err != nil {
		s.logger.Error("render rank page", "error", err)
	}
}
