package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/yungbote/orderbridge-backend/internal/data/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// errInjectedRollback forces the wrapped gorm transaction to roll back.
var errInjectedRollback = errors.New("injected rollback")

// InjectedTxRunner is a test helper for aggregate integration tests.
// With DB set the body runs inside a real transaction that is rolled back on
// any body error or injected failure; without it no database is touched.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	db := r.DB
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if failBeforeBody != nil {
		r.count(&r.RollbackCalls)
		return failBeforeBody
	}
	if fn == nil {
		r.count(&r.CommitCalls)
		return nil
	}

	var bodyErr error
	run := func(dbc dbctx.Context) error {
		if bodyErr = fn(dbc); bodyErr != nil {
			return bodyErr
		}
		if failCommit != nil {
			return errInjectedRollback
		}
		return nil
	}

	var err error
	if db != nil {
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return run(dbctx.Context{Ctx: ctx, Tx: tx})
		})
	} else {
		err = run(dbctx.Context{Ctx: ctx})
	}

	switch {
	case bodyErr != nil:
		r.count(&r.RollbackCalls)
		return bodyErr
	case errors.Is(err, errInjectedRollback):
		r.count(&r.RollbackCalls)
		return failCommit
	case err != nil:
		r.count(&r.RollbackCalls)
		return err
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) count(c *int) {
	r.mu.Lock()
	*c++
	r.mu.Unlock()
}
