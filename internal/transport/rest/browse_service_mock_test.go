package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
)

// Ensure, that browseServiceMock does implement browseService.
// If this is not the case, regenerate this file with moq.
var _ browseService = &browseServiceMock{}

type browseServiceMock struct {
	// SearchFunc mocks the Search method.
	SearchFunc func(ctx context.Context, query string, opts browse.SearchOptions) ([]browse.SearchResult, error)

	// RootFunc mocks the Root method.
	RootFunc func(ctx context.Context, label string) (*browse.RootView, error)

	// ClassFunc mocks the Class method.
	ClassFunc func(ctx context.Context, name string) (*browse.ClassView, error)

	// EntryFunc mocks the Entry method.
	EntryFunc func(ctx context.Context, entryNo string) (*browse.EntryView, error)

	// RowFunc mocks the Row method.
	RowFunc func(ctx context.Context, entryIndex string) (*browse.RowView, error)

	// SentencesFunc mocks the Sentences method.
	SentencesFunc func(ctx context.Context, entryID string) ([]domain.SentenceExample, error)

	// RootsFunc mocks the Roots method.
	RootsFunc func(ctx context.Context, prefix string) ([]catalog.RootSummary, error)

	// ClassesFunc mocks the Classes method.
	ClassesFunc func(ctx context.Context) ([]catalog.ClassSummary, error)

	// calls tracks calls to the methods.
	calls struct {
		// Search holds details about calls to the Search method.
		Search []struct {
			Ctx   context.Context
			Query string
			Opts  browse.SearchOptions
		}
		// Root holds details about calls to the Root method.
		Root []struct {
			Ctx   context.Context
			Label string
		}
		// Class holds details about calls to the Class method.
		Class []struct {
			Ctx  context.Context
			Name string
		}
		// Entry holds details about calls to the Entry method.
		Entry []struct {
			Ctx     context.Context
			EntryNo string
		}
		// Row holds details about calls to the Row method.
		Row []struct {
			Ctx        context.Context
			EntryIndex string
		}
		// Sentences holds details about calls to the Sentences method.
		Sentences []struct {
			Ctx     context.Context
			EntryID string
		}
		// Roots holds details about calls to the Roots method.
		Roots []struct {
			Ctx    context.Context
			Prefix string
		}
		// Classes holds details about calls to the Classes method.
		Classes []struct {
			Ctx context.Context
		}
	}
	lockSearch    sync.RWMutex
	lockRoot      sync.RWMutex
	lockClass     sync.RWMutex
	lockEntry     sync.RWMutex
	lockRow       sync.RWMutex
	lockSentences sync.RWMutex
	lockRoots     sync.RWMutex
	lockClasses   sync.RWMutex
}

// Search calls SearchFunc.
func (mock *browseServiceMock) Search(ctx context.Context, query string, opts browse.SearchOptions) ([]browse.SearchResult, error) {
	if mock.SearchFunc == nil {
		panic("browseServiceMock.SearchFunc: method is nil but browseService.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
		Opts  browse.SearchOptions
	}{
		Ctx:   ctx,
		Query: query,
		Opts:  opts,
	}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, query, opts)
}

// SearchCalls gets all the calls that were made to Search.
func (mock *browseServiceMock) SearchCalls() []struct {
	Ctx   context.Context
	Query string
	Opts  browse.SearchOptions
} {
	var calls []struct {
		Ctx   context.Context
		Query string
		Opts  browse.SearchOptions
	}
	mock.lockSearch.RLock()
	calls = mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

// Root calls RootFunc.
func (mock *browseServiceMock) Root(ctx context.Context, label string) (*browse.RootView, error) {
	if mock.RootFunc == nil {
		panic("browseServiceMock.RootFunc: method is nil but browseService.Root was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Label string
	}{
		Ctx:   ctx,
		Label: label,
	}
	mock.lockRoot.Lock()
	mock.calls.Root = append(mock.calls.Root, callInfo)
	mock.lockRoot.Unlock()
	return mock.RootFunc(ctx, label)
}

// RootCalls gets all the calls that were made to Root.
func (mock *browseServiceMock) RootCalls() []struct {
	Ctx   context.Context
	Label string
} {
	var calls []struct {
		Ctx   context.Context
		Label string
	}
	mock.lockRoot.RLock()
	calls = mock.calls.Root
	mock.lockRoot.RUnlock()
	return calls
}

// Class calls ClassFunc.
func (mock *browseServiceMock) Class(ctx context.Context, name string) (*browse.ClassView, error) {
	if mock.ClassFunc == nil {
		panic("browseServiceMock.ClassFunc: method is nil but browseService.Class was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{
		Ctx:  ctx,
		Name: name,
	}
	mock.lockClass.Lock()
	mock.calls.Class = append(mock.calls.Class, callInfo)
	mock.lockClass.Unlock()
	return mock.ClassFunc(ctx, name)
}

// ClassCalls gets all the calls that were made to Class.
func (mock *browseServiceMock) ClassCalls() []struct {
	Ctx  context.Context
	Name string
} {
	var calls []struct {
		Ctx  context.Context
		Name string
	}
	mock.lockClass.RLock()
	calls = mock.calls.Class
	mock.lockClass.RUnlock()
	return calls
}

// Entry calls EntryFunc.
func (mock *browseServiceMock) Entry(ctx context.Context, entryNo string) (*browse.EntryView, error) {
	if mock.EntryFunc == nil {
		panic("browseServiceMock.EntryFunc: method is nil but browseService.Entry was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryNo string
	}{
		Ctx:     ctx,
		EntryNo: entryNo,
	}
	mock.lockEntry.Lock()
	mock.calls.Entry = append(mock.calls.Entry, callInfo)
	mock.lockEntry.Unlock()
	return mock.EntryFunc(ctx, entryNo)
}

// EntryCalls gets all the calls that were made to Entry.
func (mock *browseServiceMock) EntryCalls() []struct {
	Ctx     context.Context
	EntryNo string
} {
	var calls []struct {
		Ctx     context.Context
		EntryNo string
	}
	mock.lockEntry.RLock()
	calls = mock.calls.Entry
	mock.lockEntry.RUnlock()
	return calls
}

// Row calls RowFunc.
func (mock *browseServiceMock) Row(ctx context.Context, entryIndex string) (*browse.RowView, error) {
	if mock.RowFunc == nil {
		panic("browseServiceMock.RowFunc: method is nil but browseService.Row was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		EntryIndex string
	}{
		Ctx:        ctx,
		EntryIndex: entryIndex,
	}
	mock.lockRow.Lock()
	mock.calls.Row = append(mock.calls.Row, callInfo)
	mock.lockRow.Unlock()
	return mock.RowFunc(ctx, entryIndex)
}

// RowCalls gets all the calls that were made to Row.
func (mock *browseServiceMock) RowCalls() []struct {
	Ctx        context.Context
	EntryIndex string
} {
	var calls []struct {
		Ctx        context.Context
		EntryIndex string
	}
	mock.lockRow.RLock()
	calls = mock.calls.Row
	mock.lockRow.RUnlock()
	return calls
}

// Sentences calls SentencesFunc.
func (mock *browseServiceMock) Sentences(ctx context.Context, entryID string) ([]domain.SentenceExample, error) {
	if mock.SentencesFunc == nil {
		panic("browseServiceMock.SentencesFunc: method is nil but browseService.Sentences was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID string
	}{
		Ctx:     ctx,
		EntryID: entryID,
	}
	mock.lockSentences.Lock()
	mock.calls.Sentences = append(mock.calls.Sentences, callInfo)
	mock.lockSentences.Unlock()
	return mock.SentencesFunc(ctx, entryID)
}

// SentencesCalls gets all the calls that were made to Sentences.
func (mock *browseServiceMock) SentencesCalls() []struct {
	Ctx     context.Context
	EntryID string
} {
	var calls []struct {
		Ctx     context.Context
		EntryID string
	}
	mock.lockSentences.RLock()
	calls = mock.calls.Sentences
	mock.lockSentences.RUnlock()
	return calls
}

// Roots calls RootsFunc.
func (mock *browseServiceMock) Roots(ctx context.Context, prefix string) ([]catalog.RootSummary, error) {
	if mock.RootsFunc == nil {
		panic("browseServiceMock.RootsFunc: method is nil but browseService.Roots was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prefix string
	}{
		Ctx:    ctx,
		Prefix: prefix,
	}
	mock.lockRoots.Lock()
	mock.calls.Roots = append(mock.calls.Roots, callInfo)
	mock.lockRoots.Unlock()
	return mock.RootsFunc(ctx, prefix)
}

// RootsCalls gets all the calls that were made to Roots.
func (mock *browseServiceMock) RootsCalls() []struct {
	Ctx    context.Context
	Prefix string
} {
	var calls []struct {
		Ctx    context.Context
		Prefix string
	}
	mock.lockRoots.RLock()
	calls = mock.calls.Roots
	mock.lockRoots.RUnlock()
	return calls
}

// Classes calls ClassesFunc.
func (mock *browseServiceMock) Classes(ctx context.Context) ([]catalog.ClassSummary, error) {
	if mock.ClassesFunc == nil {
		panic("browseServiceMock.ClassesFunc: method is nil but browseService.Classes was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockClasses.Lock()
	mock.calls.Classes = append(mock.calls.Classes, callInfo)
	mock.lockClasses.Unlock()
	return mock.ClassesFunc(ctx)
}

// ClassesCalls gets all the calls that were made to Classes.
func (mock *browseServiceMock) ClassesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockClasses.RLock()
	calls = mock.calls.Classes
	mock.lockClasses.RUnlock()
	return calls
}
