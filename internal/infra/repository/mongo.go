package repository

import (
	"context"

	"ai-receptionist/internal/domain/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const callRecordCollection = "call_records"

// MongoRecordStore persists call records in a MongoDB collection keyed
// by call_sid.
type MongoRecordStore struct {
	db *mongo.Database
}

func NewMongoRecordStore(db *mongo.Database) *MongoRecordStore {
	return &MongoRecordStore{db: db}
}

// Save upserts the record by call_sid, so re-saving the same call
// overwrites the prior document instead of duplicating it.
func (r *MongoRecordStore) Save(ctx context.Context, record entities.CallRecord) error {
	collection := r.db.Collection(callRecordCollection)
	filter := bson.M{"call_sid": record.CallSID}
	update := bson.M{"$set": record}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoRecordStore) FindByCallSID(ctx context.Context, callSID string) (entities.CallRecord, error) {
	var record entities.CallRecord
	collection := r.db.Collection(callRecordCollection)
	filter := bson.M{"call_sid": callSID}
	err := collection.FindOne(ctx, filter).Decode(&record)
	return record, err
}

func (r *MongoRecordStore) FindAll(ctx context.Context) ([]entities.CallRecord, error) {
	collection := r.db.Collection(callRecordCollection)
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entities.CallRecord
	for cursor.Next(ctx) {
		var record entities.CallRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, cursor.Err()
}
