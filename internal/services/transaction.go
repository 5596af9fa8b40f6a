package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/errs"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/pkg/helpers"
	"github.com/walletwise/backend/pkg/logger"
)

type postingTSStore interface {
	Create(ctx context.Context, uid string, posting *models.Posting) error
	Get(ctx context.Context, uid, postingID string) (*models.Posting, error)
	Update(ctx context.Context, uid string, posting *models.Posting) error
	Delete(ctx context.Context, uid, postingID string) error
	List(ctx context.Context, uid, cursor string) (*dto.PostingPage, error)
	ListByAccount(ctx context.Context, uid, accountID, cursor string) (*dto.PostingPage, error)
}

type accountTSStore interface {
	Get(ctx context.Context, uid, accountID string) (*models.Account, error)
}

type cardTSStore interface {
	Get(ctx context.Context, uid, cardID string) (*models.CreditCard, error)
}

// balanceSyncer is the reconciler seen from the mutation path: after any
// posting change the affected account gets a full resync.
type balanceSyncer interface {
	SyncAccountBalance(ctx context.Context, uid, accountID string) (float64, error)
}

type transactionService struct {
	postings   postingTSStore
	accounts   accountTSStore
	cards      cardTSStore
	reconciler balanceSyncer
}

func NewTransactionService(postings postingTSStore, accounts accountTSStore, cards cardTSStore, reconciler balanceSyncer) *transactionService {
	return &transactionService{
		postings:   postings,
		accounts:   accounts,
		cards:      cards,
		reconciler: reconciler,
	}
}

func directionForType(postingType string) string {
	if postingType == models.PostingTypeExpense {
		return models.DirectionOut
	}
	return models.DirectionIn
}

func (s *transactionService) CreatePosting(ctx context.Context, uid string, req dto.CreatePostingRequest) (*models.Posting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.AccountID != "" {
		if _, err := s.accounts.Get(ctx, uid, req.AccountID); err != nil {
			return nil, err
		}
	}
	if req.CreditCardID != "" {
		if _, err := s.cards.Get(ctx, uid, req.CreditCardID); err != nil {
			return nil, err
		}
	}

	posting := &models.Posting{
		PostingID:    uuid.NewString(),
		AccountID:    req.AccountID,
		CreditCardID: req.CreditCardID,
		Name:         req.Name,
		Type:         req.Type,
		Direction:    directionForType(req.Type),
		Amount:       req.Amount,
		Date:         date,
		Notes:        req.Notes,
	}
	if err := s.postings.Create(ctx, uid, posting); err != nil {
		return nil, err
	}

	if err := s.resync(ctx, uid, posting); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("posting created", "posting_id", posting.PostingID, "type", posting.Type)
	return posting, nil
}

func (s *transactionService) UpdatePosting(ctx context.Context, uid, postingID string, req dto.UpdatePostingRequest) (*models.Posting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	posting, err := s.postings.Get(ctx, uid, postingID)
	if err != nil {
		return nil, err
	}
	if posting.Type == models.PostingTypeTransfer {
		return nil, errs.NewValidationError("transfer legs cannot be edited directly")
	}

	previousAccountID := posting.AccountID

	if req.AccountID != nil {
		newAccountID := helpers.Value(req.AccountID)
		if newAccountID != "" {
			if _, err := s.accounts.Get(ctx, uid, newAccountID); err != nil {
				return nil, err
			}
		}
		posting.AccountID = newAccountID
	}
	if req.Name != nil {
		posting.Name = helpers.Value(req.Name)
	}
	if req.Type != nil {
		posting.Type = helpers.Value(req.Type)
		posting.Direction = directionForType(posting.Type)
	}
	if req.Amount != nil {
		posting.Amount = helpers.Value(req.Amount)
	}
	if req.Date != nil {
		date, err := parseDate(helpers.Value(req.Date))
		if err != nil {
			return nil, err
		}
		posting.Date = date
	}
	if req.Notes != nil {
		posting.Notes = helpers.Value(req.Notes)
	}

	if err := s.postings.Update(ctx, uid, posting); err != nil {
		return nil, err
	}

	// Both sides of an account move need a resync.
	if previousAccountID != "" && previousAccountID != posting.AccountID {
		if _, err := s.reconciler.SyncAccountBalance(ctx, uid, previousAccountID); err != nil {
			return nil, err
		}
	}
	if err := s.resync(ctx, uid, posting); err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *transactionService) DeletePosting(ctx context.Context, uid, postingID string) error {
	posting, err := s.postings.Get(ctx, uid, postingID)
	if err != nil {
		return err
	}
	if err := s.postings.Delete(ctx, uid, postingID); err != nil {
		return err
	}
	return s.resync(ctx, uid, posting)
}

// ListPostings returns one page; accountID narrows to a single account.
func (s *transactionService) ListPostings(ctx context.Context, uid, accountID, cursor string) (*dto.PostingPage, error) {
	if accountID != "" {
		return s.postings.ListByAccount(ctx, uid, accountID, cursor)
	}
	return s.postings.List(ctx, uid, cursor)
}

// CreateTransfer writes the two legs of a transfer and resyncs both
// accounts. The legs share a TransferID so they can be correlated later.
func (s *transactionService) CreateTransfer(ctx context.Context, uid string, req dto.CreateTransferRequest) ([]*models.Posting, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.Get(ctx, uid, req.FromAccountID); err != nil {
		return nil, err
	}
	if _, err := s.accounts.Get(ctx, uid, req.ToAccountID); err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = "Transfer"
	}
	transferID := uuid.NewString()
	outLeg := &models.Posting{
		PostingID:  uuid.NewString(),
		AccountID:  req.FromAccountID,
		TransferID: transferID,
		Name:       name,
		Type:       models.PostingTypeTransfer,
		Direction:  models.DirectionOut,
		Amount:     req.Amount,
		Date:       date,
	}
	inLeg := &models.Posting{
		PostingID:  uuid.NewString(),
		AccountID:  req.ToAccountID,
		TransferID: transferID,
		Name:       name,
		Type:       models.PostingTypeTransfer,
		Direction:  models.DirectionIn,
		Amount:     req.Amount,
		Date:       date,
	}

	// TODO: write both legs inside a Firestore transaction so a failed
	// second write cannot leave a dangling out leg.
	if err := s.postings.Create(ctx, uid, outLeg); err != nil {
		return nil, err
	}
	if err := s.postings.Create(ctx, uid, inLeg); err != nil {
		log := logger.FromContext(ctx)
		log.Error("transfer second leg failed", "transfer_id", transferID, "error", err)
		return nil, err
	}

	if _, err := s.reconciler.SyncAccountBalance(ctx, uid, req.FromAccountID); err != nil {
		return nil, err
	}
	if _, err := s.reconciler.SyncAccountBalance(ctx, uid, req.ToAccountID); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("transfer created", "transfer_id", transferID, "amount", req.Amount)
	return []*models.Posting{outLeg, inLeg}, nil
}

// resync recomputes the balance of the posting's account. Credit-card
// postings never touch an account balance, so they skip the resync.
func (s *transactionService) resync(ctx context.Context, uid string, posting *models.Posting) error {
	if posting.AccountID == "" || posting.CreditCardID != "" {
		return nil
	}
	_, err := s.reconciler.SyncAccountBalance(ctx, uid, posting.AccountID)
	return err
}
