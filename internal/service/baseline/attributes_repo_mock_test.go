package baseline

import (
	"context"
	"sync"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

var _ attributesRepo = &attributesRepoMock{}

type attributesRepoMock struct {
	GetTagsFunc     func(ctx context.Context, entity domain.EntityID) (map[string]string, error)
	GetTagsManyFunc func(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]map[string]string, error)

	calls struct {
		GetTags []struct {
			Ctx    context.Context
			Entity domain.EntityID
		}
		GetTagsMany []struct {
			Ctx      context.Context
			Entities []domain.EntityID
		}
	}
	lockGetTags     sync.RWMutex
	lockGetTagsMany sync.RWMutex
}

func (mock *attributesRepoMock) GetTags(ctx context.Context, entity domain.EntityID) (map[string]string, error) {
	if mock.GetTagsFunc == nil {
		panic("attributesRepoMock.GetTagsFunc: method is nil but attributesRepo.GetTags was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Entity domain.EntityID
	}{Ctx: ctx, Entity: entity}
	mock.lockGetTags.Lock()
	mock.calls.GetTags = append(mock.calls.GetTags, callInfo)
	mock.lockGetTags.Unlock()
	return mock.GetTagsFunc(ctx, entity)
}

func (mock *attributesRepoMock) GetTagsCalls() []struct {
	Ctx    context.Context
	Entity domain.EntityID
} {
	mock.lockGetTags.RLock()
	calls := mock.calls.GetTags
	mock.lockGetTags.RUnlock()
	return calls
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
