package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/giftcard-services/internal/db"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// adminDocID pins the admin document to one _id so the database itself
// rejects a second registration.
const adminDocID = "admin"

type adminDoc struct {
	ID           string `bson:"_id"`
	models.Admin `bson:",inline"`
}

type MongoAdminStore struct {
	db DatabaseProvider
}

func NewMongoAdminStore(db DatabaseProvider) *MongoAdminStore {
	return &MongoAdminStore{db: db}
}

func (s *MongoAdminStore) collection(ctx context.Context) (*mongo.Collection, error) {
	database, err := s.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return database.Collection(db.AdminCollection), nil
}

func (s *MongoAdminStore) FindAdmin(ctx context.Context) (*models.Admin, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{}
	err = coll.FindOne(ctx, bson.D{}).Decode(admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return admin, nil
}

func (s *MongoAdminStore) InsertAdmin(ctx context.Context, admin *models.Admin) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	_, err = coll.InsertOne(ctx, adminDoc{ID: adminDocID, Admin: *admin})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
