package store

import (
	"context"
	"fmt"

	"github.com/avvvet/giftcard-services/internal/db"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseProvider is satisfied by db.Gateway.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type MongoRecordStore struct {
	db DatabaseProvider
}

func NewMongoRecordStore(db DatabaseProvider) *MongoRecordStore {
	return &MongoRecordStore{db: db}
}

func (s *MongoRecordStore) collection(ctx context.Context) (*mongo.Collection, error) {
	database, err := s.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return database.Collection(db.RecordsCollection), nil
}

func (s *MongoRecordStore) InsertRecord(ctx context.Context, rec *models.GiftCardRecord) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *MongoRecordStore) ListRecords(ctx context.Context) ([]models.GiftCardRecord, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "check_date", Value: -1}})
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.GiftCardRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func (s *MongoRecordStore) DeleteRecord(ctx context.Context, id int64) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRecordStore) CountRecords(ctx context.Context) (int64, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
