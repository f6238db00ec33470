package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/wafflemkr/points/internal/adapter/search"
	"github.com/wafflemkr/points/internal/adapter/search/fulltext"
	"github.com/wafflemkr/points/internal/adapter/search/sqlite"
	"github.com/wafflemkr/points/internal/config"
	"github.com/wafflemkr/points/internal/domain"
)

type searchIndex[E search.Document] interface {
	Save(ctx context.Context, e *E) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[E], error)
	Ping(ctx context.Context) error
}

// indexes holds one search index per kind on the configured backend.
type indexes struct {
	points        searchIndex[domain.Points]
	weight        searchIndex[domain.Weight]
	bloodPressure searchIndex[domain.BloodPressure]
	preferences   searchIndex[domain.Preferences]

	db      *sql.DB
	closers []io.Closer
}

func openIndexes(ctx context.Context, cfg config.SearchConfig) (*indexes, error) {
	switch cfg.Backend {
	case config.SearchBackendMemory, config.SearchBackendBleve:
		x := &indexes{}
		var err error
		if x.points, err = bleveIndex[domain.Points](x, domain.KindPoints, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		if x.weight, err = bleveIndex[domain.Weight](x, domain.KindWeight, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		if x.bloodPressure, err = bleveIndex[domain.BloodPressure](x, domain.KindBloodPressure, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		if x.preferences, err = bleveIndex[domain.Preferences](x, domain.KindPreferences, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		return x, nil

	case config.SearchBackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		x := &indexes{db: db}
		if x.points, err = sqliteIndex[domain.Points](ctx, db, domain.KindPoints, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		if x.weight, err = sqliteIndex[domain.Weight](ctx, db, domain.KindWeight, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		if x.bloodPressure, err = sqliteIndex[domain.BloodPressure](ctx, db, domain.KindBloodPressure, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		if x.preferences, err = sqliteIndex[domain.Preferences](ctx, db, domain.KindPreferences, cfg); err != nil {
			return nil, x.closeWith(err)
		}
		return x, nil

	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Backend)
	}
}

// bleveIndex opens the bleve index of one kind: in memory for the memory
// backend, otherwise in its own directory under cfg.Path.
func bleveIndex[E search.Document](x *indexes, k domain.Kind, cfg config.SearchConfig) (searchIndex[E], error) {
	var (
		idx *fulltext.Index[E]
		err error
	)
	if cfg.Backend == config.SearchBackendMemory {
		idx, err = fulltext.NewMemOnly[E](mapping(k, cfg))
	} else {
		idx, err = fulltext.Open[E](filepath.Join(cfg.Path, k.Index), mapping(k, cfg))
	}
	if err != nil {
		return nil, err
	}
	x.closers = append(x.closers, idx)
	return idx, nil
}

func sqliteIndex[E search.Document](ctx context.Context, db *sql.DB, k domain.Kind, cfg config.SearchConfig) (searchIndex[E], error) {
	x, err := sqlite.New[E](ctx, db, mapping(k, cfg))
	if err != nil {
		return nil, err
	}
	return x, nil
}

func mapping(k domain.Kind, cfg config.SearchConfig) search.Mapping {
	m := search.MappingFor(k)
	m.MaxResults = cfg.MaxResults
	return m
}

// Ping checks the shared backend through one of the indexes.
func (x *indexes) Ping(ctx context.Context) error {
	return x.points.Ping(ctx)
}

func (x *indexes) Close() error {
	var errs []error
	for _, c := range x.closers {
		errs = append(errs, c.Close())
	}
	if x.db != nil {
		errs = append(errs, x.db.Close())
	}
	return errors.Join(errs...)
}

func (x *indexes) closeWith(err error) error {
	_ = x.Close()
	return err
}
