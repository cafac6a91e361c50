package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

// UserRepository implements bookvault.UserRepository on a MongoDB collection
type UserRepository struct {
	collection *mongo.Collection
}

func (r *UserRepository) CreateUser(ctx context.Context, user *bookvault.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return bookvault.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*bookvault.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*bookvault.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*bookvault.User, error) {
	var user bookvault.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookvault.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
