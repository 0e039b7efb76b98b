package loader

import (
	"context"
	"sync"
)

var _ Fetcher = &fetcherMock{}

type fetcherMock struct {
	FetchFunc func(ctx context.Context, name string) ([]byte, error)

	calls struct {
		Fetch []struct {
			Ctx  context.Context
			Name string
		}
	}
	lockFetch sync.RWMutex
}

func (mock *fetcherMock) Fetch(ctx context.Context, name string) ([]byte, error) {
	if mock.FetchFunc == nil {
		panic("fetcherMock.FetchFunc: method is nil but Fetcher.Fetch was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockFetch.Lock()
	mock.calls.Fetch = append(mock.calls.Fetch, callInfo)
	mock.lockFetch.Unlock()
	return mock.FetchFunc(ctx, name)
}

func (mock *fetcherMock) FetchCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockFetch.RLock()
	calls := mock.calls.Fetch
	mock.lockFetch.RUnlock()
	return calls
}
