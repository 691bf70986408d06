package baseline

import (
	"context"
	"sync"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

var _ canonicalRepo = &canonicalRepoMock{}

type canonicalRepoMock struct {
	GetFunc          func(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error)
	GetForUpdateFunc func(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error)
	GetManyFunc      func(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.CanonicalRecord, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			Entity domain.EntityID
		}
		GetForUpdate []struct {
			Ctx    context.Context
			Entity domain.EntityID
		}
		GetMany []struct {
			Ctx      context.Context
			Entities []domain.EntityID
		}
	}
	lockGet          sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockGetMany      sync.RWMutex
}

func (mock *canonicalRepoMock) Get(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error) {
	if mock.GetFunc == nil {
		panic("canonicalRepoMock.GetFunc: method is nil but canonicalRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Entity domain.EntityID
	}{Ctx: ctx, Entity: entity}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, entity)
}

func (mock *canonicalRepoMock) GetCalls() []struct {
	Ctx    context.Context
	Entity domain.EntityID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *canonicalRepoMock) GetForUpdate(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error) {
	if mock.GetForUpdateFunc == nil {
		panic("canonicalRepoMock.GetForUpdateFunc: method is nil but canonicalRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Entity domain.EntityID
	}{Ctx: ctx, Entity: entity}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, entity)
}

func (mock *canonicalRepoMock) GetForUpdateCalls() []struct {
	Ctx    context.Context
	Entity domain.EntityID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *canonicalRepoMock) GetMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.CanonicalRecord, error) {
	if mock.GetManyFunc == nil {
		panic("canonicalRepoMock.GetManyFunc: method is nil but canonicalRepo.GetMany was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Entities []domain.EntityID
	}{Ctx: ctx, Entities: entities}
	mock.lockGetMany.Lock()
	mock.calls.GetMany = append(mock.calls.GetMany, callInfo)
	mock.lockGetMany.Unlock()
	return mock.GetManyFunc(ctx, entities)
}

func (mock *canonicalRepoMock) GetManyCalls() []struct {
	Ctx      context.Context
	Entities []domain.EntityID
} {
	mock.lockGetMany.RLock()
	calls := mock.calls.GetMany
	mock.lockGetMany.RUnlock()
	return calls
}
