package merge

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
	"time"
)

var _ canonicalRepo = &canonicalRepoMock{}

type canonicalRepoMock struct {
	UpsertFunc func(ctx context.Context, rec domain.CanonicalRecord, expected *time.Time) (*domain.CanonicalRecord, error)

	calls struct {
		Upsert []struct {
			Ctx      context.Context
			Rec      domain.CanonicalRecord
			Expected *time.Time
		}
	}
	lockUpsert sync.RWMutex
}

func (mock *canonicalRepoMock) Upsert(ctx context.Context, rec domain.CanonicalRecord, expected *time.Time) (*domain.CanonicalRecord, error) {
	if mock.UpsertFunc == nil {
		panic("canonicalRepoMock.UpsertFunc: method is nil but canonicalRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Rec      domain.CanonicalRecord
		Expected *time.Time
	}{Ctx: ctx, Rec: rec, Expected: expected}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, rec, expected)
}

func (mock *canonicalRepoMock) UpsertCalls() []struct {
	Ctx      context.Context
	Rec      domain.CanonicalRecord
	Expected *time.Time
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
