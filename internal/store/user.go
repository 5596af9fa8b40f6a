package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/walletwise/backend/internal/models"
)

const userPageSize = 500

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection("users"),
	}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := us.Collection.Doc(user.UID).Create(ctx, user)
	return err
}

func (us *userStore) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := us.Collection.Doc(user.UID).Set(ctx, user, firestore.MergeAll)
	return err
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User

	doc, err := us.Collection.Doc(uid).Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListUIDs returns one page of user ids, for batch jobs that sweep every
// user. An empty next cursor marks the end.
func (us *userStore) ListUIDs(ctx context.Context, cursor string) ([]string, string, error) {
	query := us.Collection.Query.
		OrderBy(firestore.DocumentID, firestore.Asc).
		Limit(userPageSize)
	if cursor != "" {
		query = query.StartAfter(cursor)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", err
	}

	uids := make([]string, 0, len(docs))
	for _, d := range docs {
		uids = append(uids, d.Ref.ID)
	}
	next := ""
	if len(docs) == userPageSize {
		next = uids[len(uids)-1]
	}
	return uids, next, nil
}
