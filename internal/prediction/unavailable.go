// AngelaMos | 2026
// unavailable.go

package prediction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/core"
)

func ModelUnavailableError() *core.AppError {
	return core.NewAppError(
		classifier.ErrModelNotLoaded,
		"skin analysis is temporarily unavailable",
		http.StatusServiceUnavailable,
		"MODEL_UNAVAILABLE",
	)
}

// RegisterUnavailableRoutes answers every prediction route with 503. It
// stands in for the real handler when no model could be loaded, leaving
// the rest of the API untouched.
func RegisterUnavailableRoutes(r chi.Router) {
	r.Route("/predictions", func(r chi.Router) {
		r.HandleFunc("/*", unavailable)
		r.HandleFunc("/", unavailable)
	})
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	core.JSONError(w, ModelUnavailableError())
}
