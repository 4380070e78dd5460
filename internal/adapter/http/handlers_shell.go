package adapthttp

import (
	"math"
	"net/http"

	"healthmetrics/internal/domain"
)

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.shell)
}

// bandDTO mirrors domain.Band with open ends encoded as null, since JSON
// has no infinity.
type bandDTO struct {
	Category       domain.BMICategory `json:"category"`
	Min            *float64           `json:"min"`
	Max            *float64           `json:"max"`
	MinExclusive   bool               `json:"minExclusive"`
	MaxInclusive   bool               `json:"maxInclusive"`
	Recommendation string             `json:"recommendation"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	bands := domain.Bands()
	items := make([]bandDTO, 0, len(bands))
	for _, b := range bands {
		items = append(items, bandDTO{
			Category:       b.Category,
			Min:            finite(b.Min),
			Max:            finite(b.Max),
			MinExclusive:   b.MinExclusive,
			MaxInclusive:   b.MaxInclusive,
			Recommendation: b.Recommendation,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleActivityLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": domain.ActivityOptions()})
}
