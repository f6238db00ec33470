package resource

import (
	"context"
	"fmt"

	"github.com/wafflemkr/points/internal/domain"
)

// Get returns the record with the given id from the store.
func (s *Service[E, D]) Get(ctx context.Context, id int64) (out *D, err error) {
	defer func() { s.metrics.Operation(s.kind.Name, opGet, err) }()

	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.kind.Name, err)
	}
	return s.mapper.ToDTO(e), nil
}

// List returns one page of records from the store. Kinds that are not
// paginated always return the whole set.
func (s *Service[E, D]) List(ctx context.Context, page domain.PageRequest) (out domain.Page[D], err error) {
	defer func() { s.metrics.Operation(s.kind.Name, opList, err) }()

	p, err := s.store.FindPage(ctx, s.pageFor(page))
	if err != nil {
		return domain.Page[D]{}, fmt.Errorf("list %s: %w", s.kind.Name, err)
	}
	return domain.MapPage(p, s.mapper.ToDTOs), nil
}

// Search answers a query string from the index only.
func (s *Service[E, D]) Search(ctx context.Context, query string, page domain.PageRequest) (out domain.Page[D], err error) {
	defer func() { s.metrics.Operation(s.kind.Name, opSearch, err) }()

	p, err := s.index.Search(ctx, query, s.pageFor(page))
	if err != nil {
		return domain.Page[D]{}, fmt.Errorf("search %s: %w", s.kind.Name, err)
	}
	return domain.MapPage(p, s.mapper.ToDTOs), nil
}

func (s *Service[E, D]) pageFor(page domain.PageRequest) domain.PageRequest {
	if !s.kind.Paginated {
		return domain.PageRequest{Unpaged: true, Sort: page.Sort}
	}
	return page
}
