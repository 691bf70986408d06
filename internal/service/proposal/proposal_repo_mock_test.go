package proposal

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
)

var _ proposalRepo = &proposalRepoMock{}

type proposalRepoMock struct {
	CreateFunc           func(ctx context.Context, p domain.Proposal) (*domain.Proposal, error)
	SupersedePendingFunc func(ctx context.Context, entity domain.EntityID, author string) (int64, error)
	RejectFunc           func(ctx context.Context, id int64, reviewer string, comment *string) (bool, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Proposal, error)
	ListFunc             func(ctx context.Context, f domain.ProposalFilter) ([]domain.Proposal, error)
	LatestForAuthorFunc  func(ctx context.Context, entity domain.EntityID, author string, statuses ...domain.ProposalStatus) (*domain.Proposal, error)
	StatsByAuthorFunc    func(ctx context.Context, author string) (*domain.AuthorStats, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   domain.Proposal
		}
		SupersedePending []struct {
			Ctx    context.Context
			Entity domain.EntityID
			Author string
		}
		Reject []struct {
			Ctx      context.Context
			ID       int64
			Reviewer string
			Comment  *string
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx context.Context
			F   domain.ProposalFilter
		}
		LatestForAuthor []struct {
			Ctx      context.Context
			Entity   domain.EntityID
			Author   string
			Statuses []domain.ProposalStatus
		}
		StatsByAuthor []struct {
			Ctx    context.Context
			Author string
		}
	}
	lockCreate           sync.RWMutex
	lockSupersedePending sync.RWMutex
	lockReject           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockList             sync.RWMutex
	lockLatestForAuthor  sync.RWMutex
	lockStatsByAuthor    sync.RWMutex
}

func (mock *proposalRepoMock) Create(ctx context.Context, p domain.Proposal) (*domain.Proposal, error) {
	if mock.CreateFunc == nil {
		panic("proposalRepoMock.CreateFunc: method is nil but proposalRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Proposal
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *proposalRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   domain.Proposal
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *proposalRepoMock) SupersedePending(ctx context.Context, entity domain.EntityID, author string) (int64, error) {
	if mock.SupersedePendingFunc == nil {
		panic("proposalRepoMock.SupersedePendingFunc: method is nil but proposalRepo.SupersedePending was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Entity domain.EntityID
		Author string
	}{Ctx: ctx, Entity: entity, Author: author}
	mock.lockSupersedePending.Lock()
	mock.calls.SupersedePending = append(mock.calls.SupersedePending, callInfo)
	mock.lockSupersedePending.Unlock()
	return mock.SupersedePendingFunc(ctx, entity, author)
}

func (mock *proposalRepoMock) SupersedePendingCalls() []struct {
	Ctx    context.Context
	Entity domain.EntityID
	Author string
} {
	mock.lockSupersedePending.RLock()
	calls := mock.calls.SupersedePending
	mock.lockSupersedePending.RUnlock()
	return calls
}

func (mock *proposalRepoMock) Reject(ctx context.Context, id int64, reviewer string, comment *string) (bool, error) {
	if mock.RejectFunc == nil {
		panic("proposalRepoMock.RejectFunc: method is nil but proposalRepo.Reject was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       int64
		Reviewer string
		Comment  *string
	}{Ctx: ctx, ID: id, Reviewer: reviewer, Comment: comment}
	mock.lockReject.Lock()
	mock.calls.Reject = append(mock.calls.Reject, callInfo)
	mock.lockReject.Unlock()
	return mock.RejectFunc(ctx, id, reviewer, comment)
}

func (mock *proposalRepoMock) RejectCalls() []struct {
	Ctx      context.Context
	ID       int64
	Reviewer string
	Comment  *string
} {
	mock.lockReject.RLock()
	calls := mock.calls.Reject
	mock.lockReject.RUnlock()
	return calls
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

func (mock *proposalRepoMock) List(ctx context.Context, f domain.ProposalFilter) ([]domain.Proposal, error) {
	if mock.ListFunc == nil {
		panic("proposalRepoMock.ListFunc: method is nil but proposalRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ProposalFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *proposalRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ProposalFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *proposalRepoMock) LatestForAuthor(ctx context.Context, entity domain.EntityID, author string, statuses ...domain.ProposalStatus) (*domain.Proposal, error) {
	if mock.LatestForAuthorFunc == nil {
		panic("proposalRepoMock.LatestForAuthorFunc: method is nil but proposalRepo.LatestForAuthor was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Entity   domain.EntityID
		Author   string
		Statuses []domain.ProposalStatus
	}{Ctx: ctx, Entity: entity, Author: author, Statuses: statuses}
	mock.lockLatestForAuthor.Lock()
	mock.calls.LatestForAuthor = append(mock.calls.LatestForAuthor, callInfo)
	mock.lockLatestForAuthor.Unlock()
	return mock.LatestForAuthorFunc(ctx, entity, author, statuses...)
}

func (mock *proposalRepoMock) LatestForAuthorCalls() []struct {
	Ctx      context.Context
	Entity   domain.EntityID
	Author   string
	Statuses []domain.ProposalStatus
} {
	mock.lockLatestForAuthor.RLock()
	calls := mock.calls.LatestForAuthor
	mock.lockLatestForAuthor.RUnlock()
	return calls
}

func (mock *proposalRepoMock) StatsByAuthor(ctx context.Context, author string) (*domain.AuthorStats, error) {
	if mock.StatsByAuthorFunc == nil {
		panic("proposalRepoMock.StatsByAuthorFunc: method is nil but proposalRepo.StatsByAuthor was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Author string
	}{Ctx: ctx, Author: author}
	mock.lockStatsByAuthor.Lock()
	mock.calls.StatsByAuthor = append(mock.calls.StatsByAuthor, callInfo)
	mock.lockStatsByAuthor.Unlock()
	return mock.StatsByAuthorFunc(ctx, author)
}

func (mock *proposalRepoMock) StatsByAuthorCalls() []struct {
	Ctx    context.Context
	Author string
} {
	mock.lockStatsByAuthor.RLock()
	calls := mock.calls.StatsByAuthor
	mock.lockStatsByAuthor.RUnlock()
	return calls
}
