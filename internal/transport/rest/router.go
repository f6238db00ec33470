package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Registrar mounts a group of endpoints on a router.
type Registrar interface {
	Register(r *mux.Router)
}

// NewRouter builds the HTTP routes: health checks, metrics, and every
// resource handler.
func NewRouter(health *HealthHandler, metrics http.Handler, alerts Alerts, resources ...Registrar) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/live", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	for _, res := range resources {
		res.Register(r)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeProblem(w, alerts, "", http.StatusNotFound, keyNotFound, "Not Found", nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeProblem(w, alerts, "", http.StatusMethodNotAllowed, keyBadRequest, "Method Not Allowed", nil)
	})
	return r
}
