package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/errs"
	"github.com/walletwise/backend/internal/models"
)

const postingPageSize = 200

type postingStore struct {
	client *firestore.Client
}

func NewPostingStore(client *firestore.Client) *postingStore {
	return &postingStore{client: client}
}

func (s *postingStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("postings")
}

func (s *postingStore) Create(ctx context.Context, uid string, posting *models.Posting) error {
	now := time.Now()
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = now
	}
	posting.UpdatedAt = now
	_, err := s.collection(uid).Doc(posting.PostingID).Set(ctx, posting)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create posting", err)
	}
	return nil
}

func (s *postingStore) Get(ctx context.Context, uid, postingID string) (*models.Posting, error) {
	doc, err := s.collection(uid).Doc(postingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("posting not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get posting", err)
	}
	var p models.Posting
	if err := doc.DataTo(&p); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse posting data", err)
	}
	return &p, nil
}

func (s *postingStore) Update(ctx context.Context, uid string, posting *models.Posting) error {
	posting.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(posting.PostingID).Set(ctx, posting)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update posting", err)
	}
	return nil
}

func (s *postingStore) Delete(ctx context.Context, uid, postingID string) error {
	_, err := s.collection(uid).Doc(postingID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete posting", err)
	}
	return nil
}

// ListByAccount returns one page of the account's postings ordered by
// document id. Deleted postings never appear; the caller loops until
// NextCursor is empty.
func (s *postingStore) ListByAccount(ctx context.Context, uid, accountID, cursor string) (*dto.PostingPage, error) {
	query := s.collection(uid).Query.
		Where("accountId", "==", accountID).
		OrderBy("postingId", firestore.Asc).
		Limit(postingPageSize)
	if cursor != "" {
		query = query.StartAfter(cursor)
	}
	return s.listPage(ctx, query)
}

// List returns one page of all the user's postings.
func (s *postingStore) List(ctx context.Context, uid, cursor string) (*dto.PostingPage, error) {
	query := s.collection(uid).Query.
		OrderBy("postingId", firestore.Asc).
		Limit(postingPageSize)
	if cursor != "" {
		query = query.StartAfter(cursor)
	}
	return s.listPage(ctx, query)
}

func (s *postingStore) listPage(ctx context.Context, query firestore.Query) (*dto.PostingPage, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list postings", err)
	}

	page := &dto.PostingPage{Items: make([]*models.Posting, 0, len(docs))}
	for _, d := range docs {
		var p models.Posting
		if err := d.DataTo(&p); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse posting data", err)
		}
		page.Items = append(page.Items, &p)
	}
	if len(docs) == postingPageSize {
		page.NextCursor = page.Items[len(page.Items)-1].PostingID
	}
	return page, nil
}

// DeleteByAccount removes every posting referencing the account. Used when an
// account is destroyed so its history does not linger as orphans.
func (s *postingStore) DeleteByAccount(ctx context.Context, uid, accountID string) error {
	iter := s.collection(uid).Where("accountId", "==", accountID).Documents(ctx)
	defer iter.Stop()

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("read", "failed to list postings for deletion", err)
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("delete", "failed to schedule posting deletion", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("delete", "failed to delete posting", err)
		}
	}
	return nil
}
