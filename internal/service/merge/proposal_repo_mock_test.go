package merge

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
)

var _ proposalRepo = &proposalRepoMock{}

type proposalRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Proposal, error)
	MarkMergedFunc func(ctx context.Context, id int64, status domain.ProposalStatus, reviewer string, comment *string, fields []domain.Field) (bool, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		MarkMerged []struct {
			Ctx      context.Context
			ID       int64
			Status   domain.ProposalStatus
			Reviewer string
			Comment  *string
			Fields   []domain.Field
		}
	}
	lockGetByID    sync.RWMutex
	lockMarkMerged sync.RWMutex
}

func (mock *proposalRepoMock) GetByID(ctx context.Context, id int64) (*domain.Proposal, error) {
	if mock.GetByIDFunc == nil {
		panic("proposalRepoMock.GetByIDFunc: method is nil but proposalRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *proposalRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *proposalRepoMock) MarkMerged(ctx context.Context, id int64, status domain.ProposalStatus, reviewer string, comment *string, fields []domain.Field) (bool, error) {
	if mock.MarkMergedFunc == nil {
		panic("proposalRepoMock.MarkMergedFunc: method is nil but proposalRepo.MarkMerged was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       int64
		Status   domain.ProposalStatus
		Reviewer string
		Comment  *string
		Fields   []domain.Field
	}{Ctx: ctx, ID: id, Status: status, Reviewer: reviewer, Comment: comment, Fields: fields}
	mock.lockMarkMerged.Lock()
	mock.calls.MarkMerged = append(mock.calls.MarkMerged, callInfo)
	mock.lockMarkMerged.Unlock()
	return mock.MarkMergedFunc(ctx, id, status, reviewer, comment, fields)
}

func (mock *proposalRepoMock) MarkMergedCalls() []struct {
	Ctx      context.Context
	ID       int64
	Status   domain.ProposalStatus
	Reviewer string
	Comment  *string
	Fields   []domain.Field
} {
	mock.lockMarkMerged.RLock()
	calls := mock.calls.MarkMerged
	mock.lockMarkMerged.RUnlock()
	return calls
}
