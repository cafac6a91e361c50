package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

// BookRepository implements bookvault.BookRepository on a MongoDB collection
type BookRepository struct {
	collection *mongo.Collection
}

func (r *BookRepository) CreateBook(ctx context.Context, book *bookvault.BookRecord) error {
	if book.ID == "" {
		book.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, book)
	return err
}

func (r *BookRepository) GetBook(ctx context.Context, id string) (*bookvault.BookRecord, error) {
	var book bookvault.BookRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookvault.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) UpdateBook(ctx context.Context, id string, patch bookvault.BookPatch) (*bookvault.BookRecord, error) {
	set := bson.M{
		"cover_image": patch.CoverImageURL,
		"file":        patch.FileURL,
		"updated_at":  time.Now().UTC(),
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Genre != nil {
		set["genre"] = *patch.Genre
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated bookvault.BookRecord
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookvault.ErrBookNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return bookvault.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) ListBooks(ctx context.Context, q bookvault.BookQuery) ([]*bookvault.BookRecord, error) {
	opts := options.Find().SetSkip(q.Skip).SetLimit(q.Limit)
	if q.NewestFirst {
		opts = opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filterFor(q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var books []*bookvault.BookRecord
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepository) CountBooks(ctx context.Context, q bookvault.BookQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, filterFor(q))
}

func filterFor(q bookvault.BookQuery) bson.M {
	filter := bson.M{}
	if q.AuthorID != "" {
		filter["author_id"] = q.AuthorID
	}
	return filter
}
