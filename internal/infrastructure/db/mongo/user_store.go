package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alexdiasritter/softex-curso/internal/core/domain"
	"github.com/alexdiasritter/softex-curso/internal/core/ports"
)

const (
	userCollection    = "usuarios"
	counterCollection = "counters"
)

// MongoUserStore persists user records in MongoDB. It owns id generation
// (a counter document incremented per insert) and email uniqueness (unique
// index, see EnsureIndexes).
type MongoUserStore struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{
		coll:     db.Collection(userCollection),
		counters: db.Collection(counterCollection),
	}
}

type mongoUser struct {
	ID             int64  `bson:"_id"`
	Email          string `bson:"email"`
	FullName       string `bson:"full_name"`
	AccessProfile  string `bson:"access_profile"`
	CredentialHash string `bson:"credential_hash"`
	CreatedAt      int64  `bson:"created_at"`
	UpdatedAt      int64  `bson:"updated_at"`
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// nextID atomically increments and returns the user id sequence.
func (r *MongoUserStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": userCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next user id: %w", err)
	}
	return counter.Seq, nil
}

func (r *MongoUserStore) Create(ctx context.Context, credentialHash, email, fullName, profile string) (string, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC().Unix()
	doc := mongoUser{
		ID:             id,
		Email:          email,
		FullName:       fullName,
		AccessProfile:  profile,
		CredentialHash: credentialHash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return domain.MsgUserCreated, nil
}

func (r *MongoUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserStore) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

func (r *MongoUserStore) UpdateByID(ctx context.Context, id int64, update ports.UserUpdate) (string, error) {
	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.CredentialHash != nil {
		set["credential_hash"] = *update.CredentialHash
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return "", domain.ErrUserNotFound
	}
	return domain.MsgUserUpdated, nil
}

func (r *MongoUserStore) DeleteByID(ctx context.Context, id int64) (string, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return "", domain.ErrUserNotFound
	}
	return domain.MsgUserDeleted, nil
}

func (r *MongoUserStore) ListAll(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, toDomain(&mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func toDomain(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:             mu.ID,
		Email:          mu.Email,
		FullName:       mu.FullName,
		AccessProfile:  mu.AccessProfile,
		CredentialHash: mu.CredentialHash,
		CreatedAt:      unixToTime(mu.CreatedAt),
		UpdatedAt:      unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
