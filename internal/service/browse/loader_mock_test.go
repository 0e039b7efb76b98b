package browse

import (
	"context"
	"sync"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
)

var _ catalogLoader = &catalogLoaderMock{}

type catalogLoaderMock struct {
	LoadFunc func(ctx context.Context) (*catalog.Catalog, error)

	calls struct {
		Load []struct {
			Ctx context.Context
		}
	}
	lockLoad sync.RWMutex
}

func (mock *catalogLoaderMock) Load(ctx context.Context) (*catalog.Catalog, error) {
	if mock.LoadFunc == nil {
		panic("catalogLoaderMock.LoadFunc: method is nil but catalogLoader.Load was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx)
}

func (mock *catalogLoaderMock) LoadCalls() []struct {
	Ctx context.Context
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}
