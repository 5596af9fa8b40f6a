package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/errs"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/pkg/helpers"
)

type stubPostingStore struct {
	byID             map[string]*models.Posting
	created          []*models.Posting
	updated          []*models.Posting
	deleted          []string
	deletedByAccount []string
	createErr        error
	secondCreateErr  error
}

func newStubPostingStore() *stubPostingStore {
	return &stubPostingStore{byID: map[string]*models.Posting{}}
}

func (s *stubPostingStore) Create(_ context.Context, _ string, p *models.Posting) error {
	if s.createErr != nil {
		return s.createErr
	}
	if len(s.created) == 1 && s.secondCreateErr != nil {
		return s.secondCreateErr
	}
	s.created = append(s.created, p)
	s.byID[p.PostingID] = p
	return nil
}

func (s *stubPostingStore) Get(_ context.Context, _, postingID string) (*models.Posting, error) {
	p, ok := s.byID[postingID]
	if !ok {
		return nil, errs.NewNotFoundError("posting not found")
	}
	copied := *p
	return &copied, nil
}

func (s *stubPostingStore) Update(_ context.Context, _ string, p *models.Posting) error {
	s.updated = append(s.updated, p)
	s.byID[p.PostingID] = p
	return nil
}

func (s *stubPostingStore) Delete(_ context.Context, _, postingID string) error {
	s.deleted = append(s.deleted, postingID)
	delete(s.byID, postingID)
	return nil
}

func (s *stubPostingStore) List(_ context.Context, _, _ string) (*dto.PostingPage, error) {
	page := &dto.PostingPage{}
	for _, p := range s.byID {
		page.Items = append(page.Items, p)
	}
	return page, nil
}

func (s *stubPostingStore) ListByAccount(_ context.Context, _, accountID, _ string) (*dto.PostingPage, error) {
	page := &dto.PostingPage{}
	for _, p := range s.byID {
		if p.AccountID == accountID {
			page.Items = append(page.Items, p)
		}
	}
	return page, nil
}

func (s *stubPostingStore) DeleteByAccount(_ context.Context, _, accountID string) error {
	s.deletedByAccount = append(s.deletedByAccount, accountID)
	return nil
}

type stubAccountStore struct {
	accounts map[string]*models.Account
	created  []*models.Account
	updated  []*models.Account
	deleted  []string
}

func newStubAccountStore(ids ...string) *stubAccountStore {
	s := &stubAccountStore{accounts: map[string]*models.Account{}}
	for _, id := range ids {
		s.accounts[id] = &models.Account{AccountID: id, Name: id}
	}
	return s
}

func (s *stubAccountStore) Create(_ context.Context, _ string, a *models.Account) error {
	s.created = append(s.created, a)
	s.accounts[a.AccountID] = a
	return nil
}

func (s *stubAccountStore) Get(_ context.Context, _, accountID string) (*models.Account, error) {
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, errs.NewNotFoundError("account not found")
	}
	return a, nil
}

func (s *stubAccountStore) ListByUser(_ context.Context, _, _ string) (*dto.AccountPage, error) {
	page := &dto.AccountPage{}
	for _, a := range s.accounts {
		page.Items = append(page.Items, a)
	}
	return page, nil
}

func (s *stubAccountStore) Update(_ context.Context, _ string, a *models.Account) error {
	s.updated = append(s.updated, a)
	s.accounts[a.AccountID] = a
	return nil
}

func (s *stubAccountStore) Delete(_ context.Context, _, accountID string) error {
	s.deleted = append(s.deleted, accountID)
	delete(s.accounts, accountID)
	return nil
}

type stubCardStore struct {
	cards map[string]*models.CreditCard
}

func newStubCardStore(ids ...string) *stubCardStore {
	s := &stubCardStore{cards: map[string]*models.CreditCard{}}
	for _, id := range ids {
		s.cards[id] = &models.CreditCard{CardID: id, Name: "Card " + id}
	}
	return s
}

func (s *stubCardStore) Create(_ context.Context, _ string, c *models.CreditCard) error {
	s.cards[c.CardID] = c
	return nil
}

func (s *stubCardStore) Get(_ context.Context, _, cardID string) (*models.CreditCard, error) {
	c, ok := s.cards[cardID]
	if !ok {
		return nil, errs.NewNotFoundError("credit card not found")
	}
	return c, nil
}

func (s *stubCardStore) List(_ context.Context, _ string) ([]*models.CreditCard, error) {
	out := make([]*models.CreditCard, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubCardStore) Delete(_ context.Context, _, cardID string) error {
	delete(s.cards, cardID)
	return nil
}

type stubSyncer struct {
	synced []string
	err    error
}

func (s *stubSyncer) SyncAccountBalance(_ context.Context, _, accountID string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.synced = append(s.synced, accountID)
	return 0, nil
}

func TestCreatePostingTriggersResync(t *testing.T) {
	postings := newStubPostingStore()
	accounts := newStubAccountStore("acc-1")
	syncer := &stubSyncer{}
	svc := NewTransactionService(postings, accounts, newStubCardStore(), syncer)

	p, err := svc.CreatePosting(helpers.TestCtx(), "uid-1", dto.CreatePostingRequest{
		AccountID: "acc-1",
		Name:      "Groceries",
		Type:      models.PostingTypeExpense,
		Amount:    42.5,
		Date:      "2025-06-10",
	})
	if err != nil {
		t.Fatalf("CreatePosting returned error: %v", err)
	}
	if p.PostingID == "" {
		t.Fatalf("posting id was not assigned")
	}
	if p.Direction != models.DirectionOut {
		t.Fatalf("expense direction = %q, want out", p.Direction)
	}
	if len(postings.created) != 1 {
		t.Fatalf("expected 1 created posting, got %d", len(postings.created))
	}
	if len(syncer.synced) != 1 || syncer.synced[0] != "acc-1" {
		t.Fatalf("unexpected resyncs: %#v", syncer.synced)
	}
}

func TestCreatePostingCreditCardSkipsResync(t *testing.T) {
	postings := newStubPostingStore()
	accounts := newStubAccountStore("acc-1")
	syncer := &stubSyncer{}
	svc := NewTransactionService(postings, accounts, newStubCardStore("cc1"), syncer)

	p, err := svc.CreatePosting(helpers.TestCtx(), "uid-1", dto.CreatePostingRequest{
		CreditCardID: "cc1",
		Name:         "Online order",
		Type:         models.PostingTypeExpense,
		Amount:       99,
		Date:         "2025-06-10",
	})
	if err != nil {
		t.Fatalf("CreatePosting returned error: %v", err)
	}
	if p.CreditCardID != "cc1" {
		t.Fatalf("credit card link lost: %+v", p)
	}
	if len(syncer.synced) != 0 {
		t.Fatalf("card posting must not trigger a resync: %#v", syncer.synced)
	}
}

func TestCreatePostingUnknownAccount(t *testing.T) {
	svc := NewTransactionService(newStubPostingStore(), newStubAccountStore(), newStubCardStore(), &stubSyncer{})

	_, err := svc.CreatePosting(helpers.TestCtx(), "uid-1", dto.CreatePostingRequest{
		AccountID: "missing",
		Name:      "Groceries",
		Type:      models.PostingTypeExpense,
		Amount:    10,
		Date:      "2025-06-10",
	})
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestCreatePostingValidation(t *testing.T) {
	syncer := &stubSyncer{}
	svc := NewTransactionService(newStubPostingStore(), newStubAccountStore("acc-1"), newStubCardStore(), syncer)

	cases := []struct {
		name string
		req  dto.CreatePostingRequest
	}{
		{"missing name", dto.CreatePostingRequest{AccountID: "acc-1", Type: "income", Amount: 1, Date: "2025-06-10"}},
		{"bad type", dto.CreatePostingRequest{AccountID: "acc-1", Name: "x", Type: "transfer", Amount: 1, Date: "2025-06-10"}},
		{"zero amount", dto.CreatePostingRequest{AccountID: "acc-1", Name: "x", Type: "income", Date: "2025-06-10"}},
		{"no target", dto.CreatePostingRequest{Name: "x", Type: "income", Amount: 1, Date: "2025-06-10"}},
		{"bad date", dto.CreatePostingRequest{AccountID: "acc-1", Name: "x", Type: "income", Amount: 1, Date: "June 10"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePosting(helpers.TestCtx(), "uid-1", tc.req)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
		})
	}
	if len(syncer.synced) != 0 {
		t.Fatalf("invalid requests must not trigger resyncs: %#v", syncer.synced)
	}
}

func TestUpdatePostingAccountMoveResyncsBoth(t *testing.T) {
	postings := newStubPostingStore()
	postings.byID["p1"] = &models.Posting{
		PostingID: "p1",
		AccountID: "acc-1",
		Name:      "Groceries",
		Type:      models.PostingTypeExpense,
		Direction: models.DirectionOut,
		Amount:    10,
		Date:      time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
	accounts := newStubAccountStore("acc-1", "acc-2")
	syncer := &stubSyncer{}
	svc := NewTransactionService(postings, accounts, newStubCardStore(), syncer)

	updated, err := svc.UpdatePosting(helpers.TestCtx(), "uid-1", "p1", dto.UpdatePostingRequest{
		AccountID: helpers.Ptr("acc-2"),
	})
	if err != nil {
		t.Fatalf("UpdatePosting returned error: %v", err)
	}
	if updated.AccountID != "acc-2" {
		t.Fatalf("account not moved: %+v", updated)
	}
	if len(syncer.synced) != 2 || syncer.synced[0] != "acc-1" || syncer.synced[1] != "acc-2" {
		t.Fatalf("expected both accounts resynced in order, got %#v", syncer.synced)
	}
}

func TestUpdatePostingRejectsTransferLeg(t *testing.T) {
	postings := newStubPostingStore()
	postings.byID["p1"] = &models.Posting{
		PostingID: "p1",
		AccountID: "acc-1",
		Type:      models.PostingTypeTransfer,
		Direction: models.DirectionOut,
		Amount:    10,
	}
	svc := NewTransactionService(postings, newStubAccountStore("acc-1"), newStubCardStore(), &stubSyncer{})

	_, err := svc.UpdatePosting(helpers.TestCtx(), "uid-1", "p1", dto.UpdatePostingRequest{
		Amount: helpers.Ptr(20.0),
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestDeletePostingResyncsAccount(t *testing.T) {
	postings := newStubPostingStore()
	postings.byID["p1"] = &models.Posting{
		PostingID: "p1",
		AccountID: "acc-1",
		Type:      models.PostingTypeIncome,
		Direction: models.DirectionIn,
		Amount:    10,
	}
	syncer := &stubSyncer{}
	svc := NewTransactionService(postings, newStubAccountStore("acc-1"), newStubCardStore(), syncer)

	if err := svc.DeletePosting(helpers.TestCtx(), "uid-1", "p1"); err != nil {
		t.Fatalf("DeletePosting returned error: %v", err)
	}
	if len(postings.deleted) != 1 || postings.deleted[0] != "p1" {
		t.Fatalf("unexpected deletions: %#v", postings.deleted)
	}
	if len(syncer.synced) != 1 || syncer.synced[0] != "acc-1" {
		t.Fatalf("unexpected resyncs: %#v", syncer.synced)
	}
}

func TestCreateTransferWritesBothLegs(t *testing.T) {
	postings := newStubPostingStore()
	accounts := newStubAccountStore("acc-1", "acc-2")
	syncer := &stubSyncer{}
	svc := NewTransactionService(postings, accounts, newStubCardStore(), syncer)

	legs, err := svc.CreateTransfer(helpers.TestCtx(), "uid-1", dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        300,
		Date:          "2025-06-10",
	})
	if err != nil {
		t.Fatalf("CreateTransfer returned error: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
	if legs[0].Direction != models.DirectionOut || legs[0].AccountID != "acc-1" {
		t.Fatalf("bad out leg: %+v", legs[0])
	}
	if legs[1].Direction != models.DirectionIn || legs[1].AccountID != "acc-2" {
		t.Fatalf("bad in leg: %+v", legs[1])
	}
	if legs[0].TransferID == "" || legs[0].TransferID != legs[1].TransferID {
		t.Fatalf("legs do not share a transfer id: %q vs %q", legs[0].TransferID, legs[1].TransferID)
	}
	if len(syncer.synced) != 2 {
		t.Fatalf("expected both accounts resynced, got %#v", syncer.synced)
	}
}

func TestCreateTransferSameAccountRejected(t *testing.T) {
	svc := NewTransactionService(newStubPostingStore(), newStubAccountStore("acc-1"), newStubCardStore(), &stubSyncer{})

	_, err := svc.CreateTransfer(helpers.TestCtx(), "uid-1", dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-1",
		Amount:        10,
		Date:          "2025-06-10",
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestCreateTransferSecondLegFailure(t *testing.T) {
	postings := newStubPostingStore()
	postings.secondCreateErr = errors.New("write failed")
	syncer := &stubSyncer{}
	svc := NewTransactionService(postings, newStubAccountStore("acc-1", "acc-2"), newStubCardStore(), syncer)

	_, err := svc.CreateTransfer(helpers.TestCtx(), "uid-1", dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        10,
		Date:          "2025-06-10",
	})
	if !errors.Is(err, postings.secondCreateErr) {
		t.Fatalf("error = %v, want the propagated create error", err)
	}
	if len(syncer.synced) != 0 {
		t.Fatalf("no resync should run after a failed transfer: %#v", syncer.synced)
	}
}
