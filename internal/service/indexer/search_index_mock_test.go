package indexer

import (
	"github.com/streletskiy/archimap-sub000/internal/adapter/search/meili"
	"sync"
)

var _ searchIndex = &searchIndexMock{}

type searchIndexMock struct {
	UpsertFunc func(docs []meili.Document) error
	DeleteFunc func(id string) error

	calls struct {
		Upsert []struct {
			Docs []meili.Document
		}
		Delete []struct {
			ID string
		}
	}
	lockUpsert sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *searchIndexMock) Upsert(docs []meili.Document) error {
	if mock.UpsertFunc == nil {
		panic("searchIndexMock.UpsertFunc: method is nil but searchIndex.Upsert was just called")
	}
	callInfo := struct {
		Docs []meili.Document
	}{Docs: docs}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(docs)
}

func (mock *searchIndexMock) UpsertCalls() []struct {
	Docs []meili.Document
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *searchIndexMock) Delete(id string) error {
	if mock.DeleteFunc == nil {
		panic("searchIndexMock.DeleteFunc: method is nil but searchIndex.Delete was just called")
	}
	callInfo := struct {
		ID string
	}{ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(id)
}

func (mock *searchIndexMock) DeleteCalls() []struct {
	ID string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
