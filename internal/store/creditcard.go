package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/walletwise/backend/internal/errs"
	"github.com/walletwise/backend/internal/models"
)

type creditCardStore struct {
	client *firestore.Client
}

func NewCreditCardStore(client *firestore.Client) *creditCardStore {
	return &creditCardStore{client: client}
}

func (s *creditCardStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("credit_cards")
}

func (s *creditCardStore) Create(ctx context.Context, uid string, card *models.CreditCard) error {
	now := time.Now()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now
	_, err := s.collection(uid).Doc(card.CardID).Set(ctx, card)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create credit card", err)
	}
	return nil
}

func (s *creditCardStore) Get(ctx context.Context, uid, cardID string) (*models.CreditCard, error) {
	doc, err := s.collection(uid).Doc(cardID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("credit card not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get credit card", err)
	}
	var c models.CreditCard
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse credit card data", err)
	}
	return &c, nil
}

func (s *creditCardStore) List(ctx context.Context, uid string) ([]*models.CreditCard, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list credit cards", err)
	}
	cards := make([]*models.CreditCard, 0, len(docs))
	for _, d := range docs {
		var c models.CreditCard
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse credit card data", err)
		}
		cards = append(cards, &c)
	}
	return cards, nil
}

func (s *creditCardStore) Delete(ctx context.Context, uid, cardID string) error {
	_, err := s.collection(uid).Doc(cardID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete credit card", err)
	}
	return nil
}
