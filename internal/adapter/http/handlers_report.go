package adapthttp

import (
	"net/http"

	"healthmetrics/internal/app"

	"go.uber.org/zap"
)

// parseReportRequest decodes the raw form and fills the configured defaults.
func (s *Server) parseReportRequest(w http.ResponseWriter, r *http.Request) (app.Request, bool) {
	var in app.RawInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return app.Request{}, false
	}
	if in.Activity == "" {
		in.Activity = s.shell.DefaultActivity
	}
	req, err := in.Parse(s.shell.DefaultMacros)
	if err != nil {
		s.reports.RejectInput(err)
		writeError(w, http.StatusBadRequest, err)
		return app.Request{}, false
	}
	return req, true
}

func (s *Server) handleReportPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	req, ok := s.parseReportRequest(w, r)
	if !ok {
		return
	}
	report, err := s.reports.Preview(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"report":         report,
		"recommendation": report.BMICategory.Recommendation(),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	req, ok := s.parseReportRequest(w, r)
	if !ok {
		return
	}
	res, err := s.reports.Record(r.Context(), sessionID(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	for _, a := range res.Unlocked {
		s.log.Info("achievement unlocked", zap.String("session", sessionID(r)), zap.String("achievement", a.Name))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := s.reports.Achievements(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
