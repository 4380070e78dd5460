package adapthttp

import (
	"net/http"

	"healthmetrics/internal/app"
	"healthmetrics/internal/domain"

	"go.uber.org/zap"
)

// Services bundles the application services the adapter drives.
type Services struct {
	Sessions  *app.SessionService
	Reports   *app.ReportService
	History   *app.HistoryService
	Water     *app.WaterService
	Reminders *app.ReminderService
}

// Shell is the presentation state exposed at /api/shell and used to
// pre-fill compute requests.
type Shell struct {
	Theme           string            `json:"theme"`
	Tabs            []string          `json:"tabs"`
	Onboarding      string            `json:"onboarding"`
	DefaultActivity string            `json:"defaultActivity"`
	DefaultMacros   domain.MacroGoals `json:"defaultMacros"`
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	sessions  *app.SessionService
	reports   *app.ReportService
	history   *app.HistoryService
	water     *app.WaterService
	reminders *app.ReminderService
	shell     Shell
	log       *zap.Logger

	metricsPath    string
	metricsHandler http.Handler
}

// New creates a Server wired to the given application services. log may be
// nil.
func New(svc Services, shell Shell, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		sessions:  svc.Sessions,
		reports:   svc.Reports,
		history:   svc.History,
		water:     svc.Water,
		reminders: svc.Reminders,
		shell:     shell,
		log:       log,
	}
}

// WithMetrics mounts h at path, outside the /api prefix.
func (s *Server) WithMetrics(path string, h http.Handler) *Server {
	s.metricsPath = path
	s.metricsHandler = h
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/shell", s.handleShell)
	api.HandleFunc("/categories", s.handleCategories)
	api.HandleFunc("/activity-levels", s.handleActivityLevels)

	api.HandleFunc("/report/preview", s.handleReportPreview)
	api.HandleFunc("/report", s.handleReport)

	api.HandleFunc("/history", s.handleHistory)
	api.HandleFunc("/history/undo-last", s.handleHistoryUndoLast)
	api.HandleFunc("/history/export.xlsx", s.handleHistoryExport)
	api.HandleFunc("/achievements", s.handleAchievements)

	api.HandleFunc("/water/today", s.handleWaterToday)
	api.HandleFunc("/water/event", s.handleWaterEvent)
	api.HandleFunc("/water/recent", s.handleWaterRecent)
	api.HandleFunc("/water/undo-last", s.handleWaterUndoLast)

	api.HandleFunc("/reminders", s.handleReminders)
	api.HandleFunc("/reminders/toggle", s.handleReminderToggle)

	api.HandleFunc("/quiz", s.handleQuiz)
	api.HandleFunc("/quiz/score", s.handleQuizScore)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.sessionMiddleware(api)))
	if s.metricsHandler != nil {
		root.Handle(s.metricsPath, s.metricsHandler)
	}

	return s.loggingMiddleware(withNoCache(root))
}
