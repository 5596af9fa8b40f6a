package services

import (
	"errors"
	"testing"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/errs"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/pkg/helpers"
)

func TestCreditCardServicePayBill(t *testing.T) {
	cards := newStubCardStore("cc1")
	postings := newStubPostingStore()
	syncer := &stubSyncer{}
	svc := NewCreditCardService(cards, postings, newStubAccountStore("acc-1"), syncer)

	payment, err := svc.PayBill(helpers.TestCtx(), "uid-1", "cc1", dto.PayBillRequest{
		AccountID: "acc-1",
		Amount:    820.5,
		Date:      "2025-06-10",
	})
	if err != nil {
		t.Fatalf("PayBill returned error: %v", err)
	}
	// The payment hits the account as a plain expense: no card link, so the
	// reconciler includes it in the balance.
	if payment.CreditCardID != "" {
		t.Fatalf("payment posting must not carry a card link: %+v", payment)
	}
	if payment.Type != models.PostingTypeExpense || payment.Direction != models.DirectionOut {
		t.Fatalf("payment must be an outgoing expense: %+v", payment)
	}
	if payment.AccountID != "acc-1" {
		t.Fatalf("payment account = %q, want acc-1", payment.AccountID)
	}
	if len(syncer.synced) != 1 || syncer.synced[0] != "acc-1" {
		t.Fatalf("unexpected resyncs: %#v", syncer.synced)
	}
}

func TestCreditCardServicePayBillUnknownCard(t *testing.T) {
	svc := NewCreditCardService(newStubCardStore(), newStubPostingStore(), newStubAccountStore("acc-1"), &stubSyncer{})

	_, err := svc.PayBill(helpers.TestCtx(), "uid-1", "missing", dto.PayBillRequest{
		AccountID: "acc-1",
		Amount:    10,
		Date:      "2025-06-10",
	})
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestCreditCardServiceCreateCard(t *testing.T) {
	cards := newStubCardStore()
	svc := NewCreditCardService(cards, newStubPostingStore(), newStubAccountStore(), &stubSyncer{})

	card, err := svc.CreateCard(helpers.TestCtx(), "uid-1", dto.CreateCreditCardRequest{
		Name:       "Platinum",
		ClosingDay: 2,
		DueDay:     10,
	})
	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}
	if card.CardID == "" {
		t.Fatalf("card id was not assigned")
	}
	if _, ok := cards.cards[card.CardID]; !ok {
		t.Fatalf("card was not stored")
	}
}

func TestCreditCardServiceDeleteCardNotFound(t *testing.T) {
	svc := NewCreditCardService(newStubCardStore(), newStubPostingStore(), newStubAccountStore(), &stubSyncer{})

	err := svc.DeleteCard(helpers.TestCtx(), "uid-1", "missing")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}
