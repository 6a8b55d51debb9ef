package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhwcare/ncdtrack/internal/platform/db"
)

type repoMongo struct {
	col *mongo.Collection
}

func NewRepo(database *mongo.Database) Repository {
	return &repoMongo{col: database.Collection(db.UsersCollection)}
}

func (r *repoMongo) FindByCredentials(ctx context.Context, username, password string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username, "password": password})
}

func (r *repoMongo) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *repoMongo) findOne(ctx context.Context, filter bson.M) (*User, error) {
	u := &User{}
	err := r.col.FindOne(ctx, filter).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repoMongo) List(ctx context.Context) ([]User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repoMongo) Insert(ctx context.Context, u *User) error {
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *repoMongo) Delete(ctx context.Context, username string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"username": username})
	return err
}

func (r *repoMongo) UpdatePassword(ctx context.Context, username, password string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password": password}},
	)
	return err
}
