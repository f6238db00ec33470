package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/wafflemkr/points/internal/domain"
)

// Transfer is a request or response body carrying an optional id.
type Transfer interface {
	Identity() *int64
}

type resourceService[D Transfer] interface {
	Kind() domain.Kind
	Create(ctx context.Context, d *D) (*D, error)
	Update(ctx context.Context, d *D) (*D, domain.WriteMode, error)
	Get(ctx context.Context, id int64) (*D, error)
	List(ctx context.Context, page domain.PageRequest) (domain.Page[D], error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[D], error)
}

// ResourceOptions configures a ResourceHandler.
type ResourceOptions struct {
	Alerts       Alerts
	Page         PageConfig
	MaxBodyBytes int64
}

// ResourceHandler serves the REST endpoints of one kind:
//
//	POST   /api/<path>
//	PUT    /api/<path>
//	GET    /api/<path>
//	GET    /api/<path>/{id}
//	DELETE /api/<path>/{id}
//	GET    /api/_search/<path>?query=
type ResourceHandler[D Transfer] struct {
	svc      resourceService[D]
	kind     domain.Kind
	validate *validator.Validate
	opts     ResourceOptions
	log      *slog.Logger
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler[D Transfer](svc resourceService[D], opts ResourceOptions, logger *slog.Logger) *ResourceHandler[D] {
	kind := svc.Kind()
	return &ResourceHandler[D]{
		svc:      svc,
		kind:     kind,
		validate: newValidator(),
		opts:     opts,
		log:      logger.With("handler", kind.Name),
	}
}

// Register mounts the endpoints on r.
func (h *ResourceHandler[D]) Register(r *mux.Router) {
	base := "/api/" + h.kind.Path
	r.HandleFunc(base, h.Create).Methods(http.MethodPost)
	r.HandleFunc(base, h.Update).Methods(http.MethodPut)
	r.HandleFunc(base, h.List).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/api/_search/"+h.kind.Path, h.Search).Methods(http.MethodGet)
}

// Create handles POST /api/<path>.
func (h *ResourceHandler[D]) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}

	out, err := h.svc.Create(r.Context(), body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.created(w, out)
}

// Update handles PUT /api/<path>. A body without id is created.
func (h *ResourceHandler[D]) Update(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}

	out, mode, err := h.svc.Update(r.Context(), body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if mode == domain.WriteInsert {
		h.created(w, out)
		return
	}

	h.opts.Alerts.Updated(w, h.kind.Name, idOf(out))
	writeJSON(w, http.StatusOK, out)
}

// List handles GET /api/<path>.
func (h *ResourceHandler[D]) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query(), h.kind, h.opts.Page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.List(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePage(w, r, p)
}

// Get handles GET /api/<path>/{id}.
func (h *ResourceHandler[D]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	out, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /api/<path>/{id}.
func (h *ResourceHandler[D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.opts.Alerts.Deleted(w, h.kind.Name, id)
	w.WriteHeader(http.StatusOK)
}

// Search handles GET /api/_search/<path>?query=.
func (h *ResourceHandler[D]) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("query") {
		h.fail(w, r, domain.NewValidationError("query", "required"))
		return
	}
	page, err := parsePage(q, h.kind, h.opts.Page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.Search(r.Context(), q.Get("query"), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePage(w, r, p)
}

func (h *ResourceHandler[D]) writePage(w http.ResponseWriter, r *http.Request, p domain.Page[D]) {
	if h.kind.Paginated {
		setPageHeaders(w, r.URL, p)
	}
	items := p.Items
	if items == nil {
		items = []D{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[D]) created(w http.ResponseWriter, out *D) {
	id := idOf(out)
	w.Header().Set("Location", fmt.Sprintf("/api/%s/%d", h.kind.Path, id))
	h.opts.Alerts.Created(w, h.kind.Name, id)
	writeJSON(w, http.StatusCreated, out)
}

// decode reads and validates the request body. It writes the error
// response itself and reports whether the handler should continue.
func (h *ResourceHandler[D]) decode(w http.ResponseWriter, r *http.Request) (*D, bool) {
	if h.opts.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	}

	var body D
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, h.opts.Alerts, h.kind.Name, http.StatusRequestEntityTooLarge, keyBadRequest, "Request body too large", nil)
			return nil, false
		}
		badRequest(w, h.opts.Alerts, h.kind.Name, "Invalid request body")
		return nil, false
	}

	if err := validateBody(h.validate, &body); err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return &body, true
}

func (h *ResourceHandler[D]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		badRequest(w, h.opts.Alerts, h.kind.Name, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *ResourceHandler[D]) fail(w http.ResponseWriter, r *http.Request, err error) {
	handleError(w, r, h.log, h.opts.Alerts, h.kind.Name, err)
}

func idOf[D Transfer](d *D) int64 {
	if d == nil {
		return 0
	}
	if id := (*d).Identity(); id != nil {
		return *id
	}
	return 0
}
