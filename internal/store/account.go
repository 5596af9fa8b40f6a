package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/errs"
	"github.com/walletwise/backend/internal/models"
)

const accountPageSize = 100

type accountStore struct {
	client *firestore.Client
}

func NewAccountStore(client *firestore.Client) *accountStore {
	return &accountStore{client: client}
}

func (s *accountStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("accounts")
}

func (s *accountStore) Create(ctx context.Context, uid string, account *models.Account) error {
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	_, err := s.collection(uid).Doc(account.AccountID).Set(ctx, account)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create account", err)
	}
	return nil
}

func (s *accountStore) Get(ctx context.Context, uid, accountID string) (*models.Account, error) {
	doc, err := s.collection(uid).Doc(accountID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("account not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get account", err)
	}
	var a models.Account
	if err := doc.DataTo(&a); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
	}
	return &a, nil
}

// ListByUser returns one page of the user's accounts ordered by document id.
// Pass the previous page's NextCursor to continue; an empty NextCursor marks
// the end.
func (s *accountStore) ListByUser(ctx context.Context, uid, cursor string) (*dto.AccountPage, error) {
	query := s.collection(uid).Query.
		OrderBy("accountId", firestore.Asc).
		Limit(accountPageSize)
	if cursor != "" {
		query = query.StartAfter(cursor)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list accounts", err)
	}

	page := &dto.AccountPage{Items: make([]*models.Account, 0, len(docs))}
	for _, d := range docs {
		var a models.Account
		if err := d.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
		}
		page.Items = append(page.Items, &a)
	}
	if len(docs) == accountPageSize {
		page.NextCursor = page.Items[len(page.Items)-1].AccountID
	}
	return page, nil
}

func (s *accountStore) Update(ctx context.Context, uid string, account *models.Account) error {
	account.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(account.AccountID).Set(ctx, account)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update account", err)
	}
	return nil
}

// UpdateBalance overwrites only the derived balance field. A full overwrite
// rather than an increment keeps concurrent and duplicate syncs idempotent.
func (s *accountStore) UpdateBalance(ctx context.Context, uid, accountID string, balance float64) error {
	_, err := s.collection(uid).Doc(accountID).Update(ctx, []firestore.Update{
		{Path: "balance", Value: balance},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("account not found")
		}
		return errs.NewDatabaseError("update", "failed to update account balance", err)
	}
	return nil
}

func (s *accountStore) Delete(ctx context.Context, uid, accountID string) error {
	_, err := s.collection(uid).Doc(accountID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete account", err)
	}
	return nil
}
