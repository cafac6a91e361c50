// Package mongo implements the metadata-store repositories on MongoDB.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	booksCollection = "books"
	usersCollection = "users"

	connectTimeout = 10 * time.Second
)

// DB wraps a connected MongoDB database and hands out repositories.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect dials MongoDB, verifies the connection and ensures indexes.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := &DB{
		client:   client,
		database: client.Database(database),
	}
	if err := db.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	// Owner-scoped listings are sorted newest first
	_, err := db.database.Collection(booksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.database.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Books returns the book repository backed by this database.
func (db *DB) Books() *BookRepository {
	return &BookRepository{collection: db.database.Collection(booksCollection)}
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserRepository {
	return &UserRepository{collection: db.database.Collection(usersCollection)}
}

// Close disconnects from MongoDB.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
