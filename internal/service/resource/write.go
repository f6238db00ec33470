package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wafflemkr/points/internal/domain"
)

type validatable interface {
	Validate() error
}

// Create persists a new record and mirrors it into the index. A transfer
// form that already carries an id is rejected before the store is touched.
func (s *Service[E, D]) Create(ctx context.Context, d *D) (out *D, err error) {
	defer func() { s.metrics.Operation(s.kind.Name, opCreate, err) }()

	if d == nil {
		return nil, domain.NewValidationError("body", "required")
	}
	if (*d).Identity() != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind.Name, domain.ErrIDExists)
	}
	return s.insert(ctx, d)
}

// Update replaces the record addressed by the id of d. Without an id the
// request is a create, and the returned mode tells the caller so.
func (s *Service[E, D]) Update(ctx context.Context, d *D) (out *D, mode domain.WriteMode, err error) {
	defer func() { s.metrics.Operation(s.kind.Name, opUpdate, err) }()

	if d == nil {
		return nil, 0, domain.NewValidationError("body", "required")
	}

	mode = domain.DecideWrite((*d).Identity())
	switch mode {
	case domain.WriteInsert:
		out, err = s.insert(ctx, d)
	case domain.WriteReplace:
		out, err = s.replace(ctx, d)
	}
	return out, mode, err
}

func (s *Service[E, D]) insert(ctx context.Context, d *D) (*D, error) {
	e := s.mapper.ToEntity(d)
	if err := validate(e); err != nil {
		return nil, err
	}

	var saved *E
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var insertErr error
		saved, insertErr = s.store.Insert(txCtx, e)
		if insertErr != nil {
			return fmt.Errorf("insert %s: %w", s.kind.Name, insertErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mirror(ctx, saved)

	s.log.InfoContext(ctx, "record created", slog.Int64("id", (*saved).Identity()))
	return s.mapper.ToDTO(saved), nil
}

func (s *Service[E, D]) replace(ctx context.Context, d *D) (*D, error) {
	e := s.mapper.ToEntity(d)
	if err := validate(e); err != nil {
		return nil, err
	}

	var saved *E
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var replaceErr error
		saved, replaceErr = s.store.Replace(txCtx, e)
		if replaceErr != nil {
			return fmt.Errorf("replace %s: %w", s.kind.Name, replaceErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mirror(ctx, saved)

	s.log.InfoContext(ctx, "record updated", slog.Int64("id", (*saved).Identity()))
	return s.mapper.ToDTO(saved), nil
}

// Delete removes the record from the store and from the index. Deleting a
// record that does not exist succeeds.
func (s *Service[E, D]) Delete(ctx context.Context, id int64) (err error) {
	defer func() { s.metrics.Operation(s.kind.Name, opDelete, err) }()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.store.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("delete %s: %w", s.kind.Name, deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if indexErr := s.index.Delete(ctx, id); indexErr != nil {
		s.indexFailed(ctx, opIndexDelete, id, indexErr)
	}

	s.log.InfoContext(ctx, "record deleted", slog.Int64("id", id))
	return nil
}

// mirror writes the persisted state into the index. The store has already
// committed, so a failure leaves the index stale until the next write of
// the same id.
func (s *Service[E, D]) mirror(ctx context.Context, e *E) {
	if err := s.index.Save(ctx, e); err != nil {
		s.indexFailed(ctx, opIndexSave, (*e).Identity(), err)
	}
}

func (s *Service[E, D]) indexFailed(ctx context.Context, op string, id int64, err error) {
	s.metrics.IndexSyncFailed(s.kind.Name, op)
	s.log.WarnContext(ctx, "search index out of sync",
		slog.String("op", op),
		slog.Int64("id", id),
		slog.String("error", err.Error()),
	)
}

func validate(e any) error {
	if v, ok := e.(validatable); ok {
		return v.Validate()
	}
	return nil
}
