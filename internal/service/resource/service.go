// Package resource implements the create, update, read, delete and search
// operations shared by every kind. The entity store is the system of
// record; the search index is a mirror written after the store commits.
package resource

import (
	"context"
	"log/slog"

	"github.com/wafflemkr/points/internal/domain"
)

// Transfer is the constraint on transfer forms: they expose an optional id.
type Transfer interface {
	Identity() *int64
}

type store[E any] interface {
	Insert(ctx context.Context, e *E) (*E, error)
	Replace(ctx context.Context, e *E) (*E, error)
	FindByID(ctx context.Context, id int64) (*E, error)
	FindPage(ctx context.Context, page domain.PageRequest) (domain.Page[E], error)
	Delete(ctx context.Context, id int64) error
}

type index[E any] interface {
	Save(ctx context.Context, e *E) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[E], error)
}

type translator[E, D any] interface {
	ToDTO(e *E) *D
	ToEntity(d *D) *E
	ToDTOs(es []E) []D
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	Operation(kind, op string, err error)
	IndexSyncFailed(kind, op string)
}

// Operation names used in logs and metrics.
const (
	opCreate = "create"
	opUpdate = "update"
	opGet    = "get"
	opList   = "list"
	opDelete = "delete"
	opSearch = "search"

	opIndexSave   = "save"
	opIndexDelete = "delete"
)

// Service handles one kind.
type Service[E domain.Entity, D Transfer] struct {
	kind    domain.Kind
	store   store[E]
	index   index[E]
	mapper  translator[E, D]
	tx      txManager
	metrics recorder
	log     *slog.Logger
}

// NewService creates a Service for kind.
func NewService[E domain.Entity, D Transfer](
	log *slog.Logger,
	kind domain.Kind,
	records store[E],
	mirror index[E],
	mapper translator[E, D],
	tx txManager,
	metrics recorder,
) *Service[E, D] {
	return &Service[E, D]{
		kind:    kind,
		store:   records,
		index:   mirror,
		mapper:  mapper,
		tx:      tx,
		metrics: metrics,
		log:     log.With("service", "resource", "kind", kind.Name),
	}
}

// Kind returns the metadata of the handled kind.
func (s *Service[E, D]) Kind() domain.Kind { return s.kind }
