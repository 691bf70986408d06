package indexer

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
)

var _ attributesRepo = &attributesRepoMock{}

type attributesRepoMock struct {
	GetTagsManyFunc func(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]map[string]string, error)

	calls struct {
		GetTagsMany []struct {
			Ctx      context.Context
			Entities []domain.EntityID
		}
	}
	lockGetTagsMany sync.RWMutex
}

func (mock *attributesRepoMock) GetTagsMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]map[string]string, error) {
	if mock.GetTagsManyFunc == nil {
		panic("attributesRepoMock.GetTagsManyFunc: method is nil but attributesRepo.GetTagsMany was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Entities []domain.EntityID
	}{Ctx: ctx, Entities: entities}
	mock.lockGetTagsMany.Lock()
	mock.calls.GetTagsMany = append(mock.calls.GetTagsMany, callInfo)
	mock.lockGetTagsMany.Unlock()
	return mock.GetTagsManyFunc(ctx, entities)
}

func (mock *attributesRepoMock) GetTagsManyCalls() []struct {
	Ctx      context.Context
	Entities []domain.EntityID
} {
	mock.lockGetTagsMany.RLock()
	calls := mock.calls.GetTagsMany
	mock.lockGetTagsMany.RUnlock()
	return calls
}
