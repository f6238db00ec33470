package rest

import (
	"context"
	"sync"

	"github.com/wafflemkr/points/internal/domain"
	"github.com/wafflemkr/points/internal/dto"
)

var _ resourceService[dto.Points] = &resourceServiceMock[dto.Points]{}

type resourceServiceMock[D Transfer] struct {
	KindFunc   func() domain.Kind
	CreateFunc func(ctx context.Context, d *D) (*D, error)
	UpdateFunc func(ctx context.Context, d *D) (*D, domain.WriteMode, error)
	GetFunc    func(ctx context.Context, id int64) (*D, error)
	ListFunc   func(ctx context.Context, page domain.PageRequest) (domain.Page[D], error)
	DeleteFunc func(ctx context.Context, id int64) error
	SearchFunc func(ctx context.Context, query string, page domain.PageRequest) (domain.Page[D], error)

	calls struct {
		Create []struct{ D *D }
		Update []struct{ D *D }
		Get    []struct{ ID int64 }
		List   []struct{ Page domain.PageRequest }
		Delete []struct{ ID int64 }
		Search []struct {
			Query string
			Page  domain.PageRequest
		}
	}
	lock sync.RWMutex
}

func (mock *resourceServiceMock[D]) Kind() domain.Kind {
	if mock.KindFunc == nil {
		panic("resourceServiceMock.KindFunc: method is nil but resourceService.Kind was just called")
	}
	return mock.KindFunc()
}

func (mock *resourceServiceMock[D]) Create(ctx context.Context, d *D) (*D, error) {
	if mock.CreateFunc == nil {
		panic("resourceServiceMock.CreateFunc: method is nil but resourceService.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ D *D }{D: d})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *resourceServiceMock[D]) CreateCalls() []struct{ D *D } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *resourceServiceMock[D]) Update(ctx context.Context, d *D) (*D, domain.WriteMode, error) {
	if mock.UpdateFunc == nil {
		panic("resourceServiceMock.UpdateFunc: method is nil but resourceService.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ D *D }{D: d})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, d)
}

func (mock *resourceServiceMock[D]) Get(ctx context.Context, id int64) (*D, error) {
	if mock.GetFunc == nil {
		panic("resourceServiceMock.GetFunc: method is nil but resourceService.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, struct{ ID int64 }{ID: id})
	mock.lock.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *resourceServiceMock[D]) List(ctx context.Context, page domain.PageRequest) (domain.Page[D], error) {
	if mock.ListFunc == nil {
		panic("resourceServiceMock.ListFunc: method is nil but resourceService.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Page domain.PageRequest }{Page: page})
	mock.lock.Unlock()
	return mock.ListFunc(ctx, page)
}

func (mock *resourceServiceMock[D]) ListCalls() []struct{ Page domain.PageRequest } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *resourceServiceMock[D]) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("resourceServiceMock.DeleteFunc: method is nil but resourceService.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID int64 }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *resourceServiceMock[D]) DeleteCalls() []struct{ ID int64 } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *resourceServiceMock[D]) Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[D], error) {
	if mock.SearchFunc == nil {
		panic("resourceServiceMock.SearchFunc: method is nil but resourceService.Search was just called")
	}
	mock.lock.Lock()
	mock.calls.Search = append(mock.calls.Search, struct {
		Query string
		Page  domain.PageRequest
	}{Query: query, Page: page})
	mock.lock.Unlock()
	return mock.SearchFunc(ctx, query, page)
}

func (mock *resourceServiceMock[D]) SearchCalls() []struct {
	Query string
	Page  domain.PageRequest
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Search
}
