package indexer

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
)

var _ refreshQueue = &refreshQueueMock{}

type refreshQueueMock struct {
	PopFunc     func(ctx context.Context, n int) ([]domain.EntityID, error)
	EnqueueFunc func(ctx context.Context, entities ...domain.EntityID) error

	calls struct {
		Pop []struct {
			Ctx context.Context
			N   int
		}
		Enqueue []struct {
			Ctx      context.Context
			Entities []domain.EntityID
		}
	}
	lockPop     sync.RWMutex
	lockEnqueue sync.RWMutex
}

func (mock *refreshQueueMock) Pop(ctx context.Context, n int) ([]domain.EntityID, error) {
	if mock.PopFunc == nil {
		panic("refreshQueueMock.PopFunc: method is nil but refreshQueue.Pop was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   int
	}{Ctx: ctx, N: n}
	mock.lockPop.Lock()
	mock.calls.Pop = append(mock.calls.Pop, callInfo)
	mock.lockPop.Unlock()
	return mock.PopFunc(ctx, n)
}

func (mock *refreshQueueMock) PopCalls() []struct {
	Ctx context.Context
	N   int
} {
	mock.lockPop.RLock()
	calls := mock.calls.Pop
	mock.lockPop.RUnlock()
	return calls
}

func (mock *refreshQueueMock) Enqueue(ctx context.Context, entities ...domain.EntityID) error {
	if mock.EnqueueFunc == nil {
		panic("refreshQueueMock.EnqueueFunc: method is nil but refreshQueue.Enqueue was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Entities []domain.EntityID
	}{Ctx: ctx, Entities: entities}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, entities...)
}

func (mock *refreshQueueMock) EnqueueCalls() []struct {
	Ctx      context.Context
	Entities []domain.EntityID
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
