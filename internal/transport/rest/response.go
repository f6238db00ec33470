package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wafflemkr/points/internal/domain"
)

// Error keys reported in problem bodies and X-<app>-error headers.
const (
	keyIDExists   = "idexists"
	keyValidation = "validation"
	keyNotFound   = "notfound"
	keyConflict   = "conflict"
	keyBadRequest = "badrequest"
	keyInternal   = "internal"
)

// Problem is the machine-readable error body.
type Problem struct {
	EntityName  string         `json:"entityName,omitempty"`
	ErrorKey    string         `json:"errorKey"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Status      int            `json:"status"`
	FieldErrors []FieldProblem `json:"fieldErrors,omitempty"`
}

// FieldProblem describes one rejected field.
type FieldProblem struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// Alerts writes the X-<app>-alert, X-<app>-error and X-<app>-params headers
// that clients use to display notifications.
type Alerts struct {
	app string
}

// NewAlerts creates Alerts for the given application name.
func NewAlerts(app string) Alerts {
	return Alerts{app: app}
}

func (a Alerts) alertHeader() string  { return "X-" + a.app + "-alert" }
func (a Alerts) errorHeader() string  { return "X-" + a.app + "-error" }
func (a Alerts) paramsHeader() string { return "X-" + a.app + "-params" }

// Created sets the alert for a created entity.
func (a Alerts) Created(w http.ResponseWriter, entity string, id int64) {
	a.entity(w, entity, "created", id)
}

// Updated sets the alert for an updated entity.
func (a Alerts) Updated(w http.ResponseWriter, entity string, id int64) {
	a.entity(w, entity, "updated", id)
}

// Deleted sets the alert for a deleted entity.
func (a Alerts) Deleted(w http.ResponseWriter, entity string, id int64) {
	a.entity(w, entity, "deleted", id)
}

func (a Alerts) entity(w http.ResponseWriter, entity, action string, id int64) {
	w.Header().Set(a.alertHeader(), fmt.Sprintf("%s.%s.%s", a.app, entity, action))
	w.Header().Set(a.paramsHeader(), strconv.FormatInt(id, 10))
}

// Failure sets the error alert for a rejected request.
func (a Alerts) Failure(w http.ResponseWriter, entity, key string) {
	w.Header().Set(a.errorHeader(), "error."+key)
	if entity != "" {
		w.Header().Set(a.paramsHeader(), entity)
	}
}

// ExposedHeaders lists the alert headers browsers must be allowed to read.
func (a Alerts) ExposedHeaders() []string {
	return []string{a.alertHeader(), a.errorHeader(), a.paramsHeader()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeProblem(w http.ResponseWriter, a Alerts, entity string, status int, key, title string, fields []FieldProblem) {
	a.Failure(w, entity, key)
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Problem{ //nolint:errcheck
		EntityName:  entity,
		ErrorKey:    key,
		Title:       title,
		Message:     "error." + key,
		Status:      status,
		FieldErrors: fields,
	})
}

// handleError maps service errors to problem responses.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, a Alerts, entity string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrIDExists):
		writeProblem(w, a, entity, http.StatusBadRequest, keyIDExists, "A new "+entity+" cannot already have an ID", nil)
	case errors.As(err, &ve):
		fields := make([]FieldProblem, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			fields = append(fields, FieldProblem{ObjectName: entity, Field: fe.Field, Message: fe.Message})
		}
		writeProblem(w, a, entity, http.StatusBadRequest, keyValidation, "Method argument not valid", fields)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, a, entity, http.StatusNotFound, keyNotFound, "Not Found", nil)
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeProblem(w, a, entity, http.StatusConflict, keyConflict, "Conflict", nil)
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeProblem(w, a, entity, http.StatusInternalServerError, keyInternal, "Internal Server Error", nil)
	}
}

func badRequest(w http.ResponseWriter, a Alerts, entity, title string) {
	writeProblem(w, a, entity, http.StatusBadRequest, keyBadRequest, title, nil)
}
