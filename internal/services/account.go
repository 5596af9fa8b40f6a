package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/walletwise/backend/internal/cache"
	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/pkg/helpers"
	"github.com/walletwise/backend/pkg/logger"
)

type accountASStore interface {
	Create(ctx context.Context, uid string, account *models.Account) error
	Get(ctx context.Context, uid, accountID string) (*models.Account, error)
	ListByUser(ctx context.Context, uid, cursor string) (*dto.AccountPage, error)
	Update(ctx context.Context, uid string, account *models.Account) error
	Delete(ctx context.Context, uid, accountID string) error
}

type postingASStore interface {
	DeleteByAccount(ctx context.Context, uid, accountID string) error
}

type accountCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type accountService struct {
	accounts accountASStore
	postings postingASStore
	cache    accountCache
}

func NewAccountService(accounts accountASStore, postings postingASStore, cache accountCache) *accountService {
	return &accountService{
		accounts: accounts,
		postings: postings,
		cache:    cache,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, uid string, req dto.CreateAccountRequest) (*models.Account, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	account := &models.Account{
		AccountID: uuid.NewString(),
		Name:      req.Name,
		Color:     req.Color,
	}
	if err := s.accounts.Create(ctx, uid, account); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("account created", "account_id", account.AccountID)
	return account, nil
}

// GetAccount reads through the cache. A cache failure is logged and the
// store is consulted instead.
func (s *accountService) GetAccount(ctx context.Context, uid, accountID string) (*models.Account, error) {
	key := cache.AccountKey(uid, accountID)
	log := logger.FromContext(ctx)

	if s.cache != nil {
		var cached models.Account
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("account cache read failed", "account_id", accountID, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	account, err := s.accounts.Get(ctx, uid, accountID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, account); err != nil {
			log.Warn("account cache write failed", "account_id", accountID, "error", err)
		}
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, uid string) ([]*models.Account, error) {
	var all []*models.Account
	cursor := ""
	for {
		page, err := s.accounts.ListByUser(ctx, uid, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	if all == nil {
		all = []*models.Account{}
	}
	return all, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, uid, accountID string, req dto.UpdateAccountRequest) (*models.Account, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	account, err := s.accounts.Get(ctx, uid, accountID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		account.Name = helpers.Value(req.Name)
	}
	if req.Color != nil {
		account.Color = helpers.Value(req.Color)
	}
	if err := s.accounts.Update(ctx, uid, account); err != nil {
		return nil, err
	}
	s.invalidate(ctx, uid, accountID)
	return account, nil
}

// DeleteAccount removes the account's postings first so no orphans survive a
// partial failure, then the account itself.
func (s *accountService) DeleteAccount(ctx context.Context, uid, accountID string) error {
	if _, err := s.accounts.Get(ctx, uid, accountID); err != nil {
		return err
	}
	if err := s.postings.DeleteByAccount(ctx, uid, accountID); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, uid, accountID); err != nil {
		return err
	}
	s.invalidate(ctx, uid, accountID)

	log := logger.FromContext(ctx)
	log.Info("account deleted", "account_id", accountID)
	return nil
}

func (s *accountService) invalidate(ctx context.Context, uid, accountID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.AccountKey(uid, accountID)); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("account cache invalidation failed", "account_id", accountID, "error", err)
	}
}
