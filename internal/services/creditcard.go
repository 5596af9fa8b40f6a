package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/pkg/logger"
)

type cardCCStore interface {
	Create(ctx context.Context, uid string, card *models.CreditCard) error
	Get(ctx context.Context, uid, cardID string) (*models.CreditCard, error)
	List(ctx context.Context, uid string) ([]*models.CreditCard, error)
	Delete(ctx context.Context, uid, cardID string) error
}

type postingCCStore interface {
	Create(ctx context.Context, uid string, posting *models.Posting) error
}

type accountCCStore interface {
	Get(ctx context.Context, uid, accountID string) (*models.Account, error)
}

type creditCardService struct {
	cards      cardCCStore
	postings   postingCCStore
	accounts   accountCCStore
	reconciler balanceSyncer
}

func NewCreditCardService(cards cardCCStore, postings postingCCStore, accounts accountCCStore, reconciler balanceSyncer) *creditCardService {
	return &creditCardService{
		cards:      cards,
		postings:   postings,
		accounts:   accounts,
		reconciler: reconciler,
	}
}

func (s *creditCardService) CreateCard(ctx context.Context, uid string, req dto.CreateCreditCardRequest) (*models.CreditCard, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	card := &models.CreditCard{
		CardID:     uuid.NewString(),
		Name:       req.Name,
		Limit:      req.Limit,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}
	if err := s.cards.Create(ctx, uid, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *creditCardService) ListCards(ctx context.Context, uid string) ([]*models.CreditCard, error) {
	return s.cards.List(ctx, uid)
}

func (s *creditCardService) DeleteCard(ctx context.Context, uid, cardID string) error {
	if _, err := s.cards.Get(ctx, uid, cardID); err != nil {
		return err
	}
	return s.cards.Delete(ctx, uid, cardID)
}

// PayBill settles part of a card's statement from an account. The payment is
// an ordinary expense posting with no card link, which is exactly the moment
// card spending starts affecting the account balance.
func (s *creditCardService) PayBill(ctx context.Context, uid, cardID string, req dto.PayBillRequest) (*models.Posting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	card, err := s.cards.Get(ctx, uid, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.Get(ctx, uid, req.AccountID); err != nil {
		return nil, err
	}

	payment := &models.Posting{
		PostingID: uuid.NewString(),
		AccountID: req.AccountID,
		Name:      "Payment: " + card.Name,
		Type:      models.PostingTypeExpense,
		Direction: models.DirectionOut,
		Amount:    req.Amount,
		Date:      date,
	}
	if err := s.postings.Create(ctx, uid, payment); err != nil {
		return nil, err
	}
	if _, err := s.reconciler.SyncAccountBalance(ctx, uid, req.AccountID); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("card bill paid", "card_id", cardID, "account_id", req.AccountID, "amount", req.Amount)
	return payment, nil
}
