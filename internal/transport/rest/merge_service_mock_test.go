package rest

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/service/merge"
	"sync"
)

var _ mergeService = &mergeServiceMock{}

type mergeServiceMock struct {
	MergeFunc func(ctx context.Context, actor domain.Actor, input merge.MergeInput) (*merge.Result, error)

	calls struct {
		Merge []struct {
			Ctx   context.Context
			Actor domain.Actor
			Input merge.MergeInput
		}
	}
	lockMerge sync.RWMutex
}

func (mock *mergeServiceMock) Merge(ctx context.Context, actor domain.Actor, input merge.MergeInput) (*merge.Result, error) {
	if mock.MergeFunc == nil {
		panic("mergeServiceMock.MergeFunc: method is nil but mergeService.Merge was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Actor domain.Actor
		Input merge.MergeInput
	}{Ctx: ctx, Actor: actor, Input: input}
	mock.lockMerge.Lock()
	mock.calls.Merge = append(mock.calls.Merge, callInfo)
	mock.lockMerge.Unlock()
	return mock.MergeFunc(ctx, actor, input)
}

func (mock *mergeServiceMock) MergeCalls() []struct {
	Ctx   context.Context
	Actor domain.Actor
	Input merge.MergeInput
} {
	mock.lockMerge.RLock()
	calls := mock.calls.Merge
	mock.lockMerge.RUnlock()
	return calls
}
