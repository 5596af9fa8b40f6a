// Package balance derives account balances from posting history.
//
// An account's stored balance is a cache: it must equal the signed sum of
// qualifying postings dated at or before "now", as of the last sync. The
// reconciler recomputes that sum in full and overwrites the stored value, so
// every sync is idempotent and safe to repeat on any suspicion of drift. No
// per-account locking is attempted; concurrent syncs converge because the
// write is always a complete recomputation, never an increment.
package balance

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/walletwise/backend/internal/cache"
	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/pkg/logger"
)

const defaultSyncWorkers = 4

type postingBRStore interface {
	ListByAccount(ctx context.Context, uid, accountID, cursor string) (*dto.PostingPage, error)
}

type accountBRStore interface {
	Get(ctx context.Context, uid, accountID string) (*models.Account, error)
	ListByUser(ctx context.Context, uid, cursor string) (*dto.AccountPage, error)
	UpdateBalance(ctx context.Context, uid, accountID string, balance float64) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type Reconciler struct {
	postings postingBRStore
	accounts accountBRStore
	cache    cacheInvalidator
	now      func() time.Time
	workers  int
}

// NewReconciler wires the reconciler to its stores. cache may be nil when no
// read-through caching is in play.
func NewReconciler(postings postingBRStore, accounts accountBRStore, cache cacheInvalidator, workers int) *Reconciler {
	if workers <= 0 {
		workers = defaultSyncWorkers
	}
	return &Reconciler{
		postings: postings,
		accounts: accounts,
		cache:    cache,
		now:      time.Now,
		workers:  workers,
	}
}

// SyncAccountBalance recomputes one account's balance from scratch and
// persists it. The whole posting history is paged through and summed in
// memory before the single write, so a failed sync never leaves a partial
// balance behind. Store errors propagate unchanged; there are no internal
// retries.
func (r *Reconciler) SyncAccountBalance(ctx context.Context, uid, accountID string) (float64, error) {
	if _, err := r.accounts.Get(ctx, uid, accountID); err != nil {
		return 0, err
	}

	now := r.now()
	var total float64
	cursor := ""
	for {
		page, err := r.postings.ListByAccount(ctx, uid, accountID, cursor)
		if err != nil {
			return 0, err
		}
		for _, p := range page.Items {
			if !qualifies(p, now) {
				continue
			}
			total += signedAmount(p)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	if err := r.accounts.UpdateBalance(ctx, uid, accountID, total); err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, cache.AccountKey(uid, accountID)); err != nil {
			log := logger.FromContext(ctx)
			log.Warn("failed to invalidate account cache", "account_id", accountID, "error", err)
		}
	}

	return total, nil
}

// RecalculateAllBalances resyncs every account the user owns, fanning out
// with bounded concurrency. One failing account never aborts the others; the
// result reports each account's outcome so callers can surface partial
// failure. This is the brute-force remedy for drift.
func (r *Reconciler) RecalculateAllBalances(ctx context.Context, uid string) (dto.RecalculateResult, error) {
	result := dto.RecalculateResult{
		Succeeded: []string{},
		Failed:    []dto.AccountFailure{},
	}

	var accountIDs []string
	cursor := ""
	for {
		page, err := r.accounts.ListByUser(ctx, uid, cursor)
		if err != nil {
			return result, err
		}
		for _, a := range page.Items {
			accountIDs = append(accountIDs, a.AccountID)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for _, accountID := range accountIDs {
		g.Go(func() error {
			if _, err := r.SyncAccountBalance(ctx, uid, accountID); err != nil {
				mu.Lock()
				result.Failed = append(result.Failed, dto.AccountFailure{
					AccountID: accountID,
					Reason:    err.Error(),
				})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Succeeded = append(result.Succeeded, accountID)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	log := logger.FromContext(ctx)
	log.Info("recalculated balances",
		"accounts", len(accountIDs),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed))

	return result, nil
}
