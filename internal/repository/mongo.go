package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/daybook-app/daybook-backend/internal/models"
)

const entriesCollection = "entries"

// MongoEntries implements Entries against a MongoDB collection.
type MongoEntries struct {
	col *mongo.Collection
}

func NewMongoEntries(db *mongo.Database) *MongoEntries {
	return &MongoEntries{col: db.Collection(entriesCollection)}
}

// EnsureIndexes configures indexes for the entries collection.
// Called on startup from main after Mongo has connected.
func (r *MongoEntries) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		// Unique compound index on (owner, entry_id): the primary key of an entry.
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "entry_id", Value: 1},
			},
			Options: options.Index().SetName("idx_owner_entry").SetUnique(true),
		},
		// Compound index on (owner, created_at) to support day-range queries.
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_owner_created"),
		},
	}

	for _, m := range indexModels {
		if _, err := r.col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoEntries) Insert(ctx context.Context, owner, title, content string) (*models.JournalEntry, error) {
	now := time.Now().UTC()
	entry := models.JournalEntry{
		Owner:     owner,
		EntryID:   uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *MongoEntries) QueryByDay(ctx context.Context, owner string, day time.Time) ([]models.JournalEntry, error) {
	start, end := dayRange(day)

	filter := bson.M{
		"owner":      owner,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})

	cursor, err := r.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoEntries) Update(ctx context.Context, owner, entryID string, patch Patch) (*models.JournalEntry, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}

	// FindOneAndUpdate only matches an existing (owner, entry_id) record, so a
	// wrong owner or a deleted entry can never be written or resurrected.
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.JournalEntry
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"owner": owner, "entry_id": entryID},
		bson.M{"$set": set},
		updateOptions,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoEntries) Remove(ctx context.Context, owner, entryID string) error {
	// Idempotent: deleting an absent entry is a no-op, not a failure.
	_, err := r.col.DeleteOne(ctx, bson.M{"owner": owner, "entry_id": entryID})
	return err
}
