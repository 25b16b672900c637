package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"users-api/internal/domain"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, CreatedAt: d.CreatedAt.UTC()}
}

// MongoUserRepo stores users as documents of a single collection.
type MongoUserRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoUserRepo(coll *mongo.Collection) *MongoUserRepo {
	return &MongoUserRepo{client: coll.Database().Client(), coll: coll}
}

func (r *MongoUserRepo) Create(ctx context.Context, u *domain.User) error {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	// BSON dates hold milliseconds
	doc.CreatedAt = doc.CreatedAt.UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*u = doc.toDomain()
	return nil
}

func (r *MongoUserRepo) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoUserRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *MongoUserRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
