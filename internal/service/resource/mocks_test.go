package resource

import (
	"context"
	"sync"

	"github.com/wafflemkr/points/internal/domain"
)

var (
	_ store[domain.Points] = &storeMock{}
	_ index[domain.Points] = &indexMock{}
	_ txManager            = &txManagerMock{}
	_ recorder             = &recorderMock{}
)

type storeMock struct {
	InsertFunc   func(ctx context.Context, e *domain.Points) (*domain.Points, error)
	ReplaceFunc  func(ctx context.Context, e *domain.Points) (*domain.Points, error)
	FindByIDFunc func(ctx context.Context, id int64) (*domain.Points, error)
	FindPageFunc func(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Points], error)
	DeleteFunc   func(ctx context.Context, id int64) error

	calls struct {
		Insert   []struct{ E *domain.Points }
		Replace  []struct{ E *domain.Points }
		FindByID []struct{ ID int64 }
		FindPage []struct{ Page domain.PageRequest }
		Delete   []struct{ ID int64 }
	}
	lock sync.RWMutex
}

func (mock *storeMock) Insert(ctx context.Context, e *domain.Points) (*domain.Points, error) {
	if mock.InsertFunc == nil {
		panic("storeMock.InsertFunc: method is nil but store.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ E *domain.Points }{E: e})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, e)
}

func (mock *storeMock) InsertCalls() []struct{ E *domain.Points } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Insert
}

func (mock *storeMock) Replace(ctx context.Context, e *domain.Points) (*domain.Points, error) {
	if mock.ReplaceFunc == nil {
		panic("storeMock.ReplaceFunc: method is nil but store.Replace was just called")
	}
	mock.lock.Lock()
	mock.calls.Replace = append(mock.calls.Replace, struct{ E *domain.Points }{E: e})
	mock.lock.Unlock()
	return mock.ReplaceFunc(ctx, e)
}

func (mock *storeMock) ReplaceCalls() []struct{ E *domain.Points } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Replace
}

func (mock *storeMock) FindByID(ctx context.Context, id int64) (*domain.Points, error) {
	if mock.FindByIDFunc == nil {
		panic("storeMock.FindByIDFunc: method is nil but store.FindByID was just called")
	}
	mock.lock.Lock()
	mock.calls.FindByID = append(mock.calls.FindByID, struct{ ID int64 }{ID: id})
	mock.lock.Unlock()
	return mock.FindByIDFunc(ctx, id)
}

func (mock *storeMock) FindPage(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Points], error) {
	if mock.FindPageFunc == nil {
		panic("storeMock.FindPageFunc: method is nil but store.FindPage was just called")
	}
	mock.lock.Lock()
	mock.calls.FindPage = append(mock.calls.FindPage, struct{ Page domain.PageRequest }{Page: page})
	mock.lock.Unlock()
	return mock.FindPageFunc(ctx, page)
}

func (mock *storeMock) FindPageCalls() []struct{ Page domain.PageRequest } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FindPage
}

func (mock *storeMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("storeMock.DeleteFunc: method is nil but store.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID int64 }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *storeMock) DeleteCalls() []struct{ ID int64 } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

type indexMock struct {
	SaveFunc   func(ctx context.Context, e *domain.Points) error
	DeleteFunc func(ctx context.Context, id int64) error
	SearchFunc func(ctx context.Context, query string, page domain.PageRequest) (domain.Page[domain.Points], error)

	calls struct {
		Save   []struct{ E *domain.Points }
		Delete []struct{ ID int64 }
		Search []struct {
			Query string
			Page  domain.PageRequest
		}
	}
	lock sync.RWMutex
}

func (mock *indexMock) Save(ctx context.Context, e *domain.Points) error {
	if mock.SaveFunc == nil {
		panic("indexMock.SaveFunc: method is nil but index.Save was just called")
	}
	mock.lock.Lock()
	mock.calls.Save = append(mock.calls.Save, struct{ E *domain.Points }{E: e})
	mock.lock.Unlock()
	return mock.SaveFunc(ctx, e)
}

func (mock *indexMock) SaveCalls() []struct{ E *domain.Points } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Save
}

func (mock *indexMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("indexMock.DeleteFunc: method is nil but index.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID int64 }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *indexMock) DeleteCalls() []struct{ ID int64 } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *indexMock) Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[domain.Points], error) {
	if mock.SearchFunc == nil {
		panic("indexMock.SearchFunc: method is nil but index.Search was just called")
	}
	mock.lock.Lock()
	mock.calls.Search = append(mock.calls.Search, struct {
		Query string
		Page  domain.PageRequest
	}{Query: query, Page: page})
	mock.lock.Unlock()
	return mock.SearchFunc(ctx, query, page)
}

func (mock *indexMock) SearchCalls() []struct {
	Query string
	Page  domain.PageRequest
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Search
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}

type recorderMock struct {
	calls struct {
		Operation []struct {
			Kind string
			Op   string
			Err  error
		}
		IndexSyncFailed []struct {
			Kind string
			Op   string
		}
	}
	lock sync.RWMutex
}

func (mock *recorderMock) Operation(kind, op string, err error) {
	mock.lock.Lock()
	mock.calls.Operation = append(mock.calls.Operation, struct {
		Kind string
		Op   string
		Err  error
	}{Kind: kind, Op: op, Err: err})
	mock.lock.Unlock()
}

func (mock *recorderMock) OperationCalls() []struct {
	Kind string
	Op   string
	Err  error
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Operation
}

func (mock *recorderMock) IndexSyncFailed(kind, op string) {
	mock.lock.Lock()
	mock.calls.IndexSyncFailed = append(mock.calls.IndexSyncFailed, struct {
		Kind string
		Op   string
	}{Kind: kind, Op: op})
	mock.lock.Unlock()
}

func (mock *recorderMock) IndexSyncFailedCalls() []struct {
	Kind string
	Op   string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.IndexSyncFailed
}
