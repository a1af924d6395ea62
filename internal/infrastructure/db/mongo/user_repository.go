package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/propamit/propamit-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the MongoDB implementation of ports.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	Phone             string             `bson:"phone,omitempty"`
	IsVerified        bool               `bson:"isVerified"`
	VerificationToken string             `bson:"verificationToken,omitempty"`
	ResetToken        string             `bson:"resetToken,omitempty"`
	ResetTokenExpiry  *time.Time         `bson:"resetTokenExpiry,omitempty"`
	Profile           domain.Profile     `bson:"profile,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	LastLogin         *time.Time         `bson:"lastLogin,omitempty"`
	EmailVerifiedAt   *time.Time         `bson:"emailVerifiedAt,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                mu.ID.Hex(),
		Name:              mu.Name,
		Email:             mu.Email,
		PasswordHash:      mu.Password,
		Phone:             mu.Phone,
		IsVerified:        mu.IsVerified,
		VerificationToken: mu.VerificationToken,
		ResetToken:        mu.ResetToken,
		ResetTokenExpiry:  mu.ResetTokenExpiry,
		Profile:           mu.Profile,
		CreatedAt:         mu.CreatedAt,
		LastLogin:         mu.LastLogin,
	}
}

// Insert persists a new user. The unique index on email turns a concurrent
// duplicate into a driver duplicate-key error, surfaced as ErrEmailTaken.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Name:              user.Name,
		Email:             user.Email,
		Password:          user.PasswordHash,
		Phone:             user.Phone,
		IsVerified:        user.IsVerified,
		VerificationToken: user.VerificationToken,
		Profile:           user.Profile,
		CreatedAt:         user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLogin": at}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkVerified is the single-use consumption point for verification tokens:
// the filter requires the stored token to still match, and the update clears
// it, so only one call can ever succeed per token.
func (r *UserRepository) MarkVerified(ctx context.Context, email, token string) (*domain.User, error) {
	now := time.Now().UTC()
	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email": email, "verificationToken": token},
		bson.M{
			"$set":   bson.M{"isVerified": true, "emailVerifiedAt": now},
			"$unset": bson.M{"verificationToken": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var mu mongoUser
	if err := res.Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenConsumed
		}
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"resetToken": token, "resetTokenExpiry": expiry}},
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CompleteReset swaps in the new hash only while the stored token matches and
// its stored expiry is still in the future; the token is cleared in the same
// update.
func (r *UserRepository) CompleteReset(ctx context.Context, email, token, passwordHash string, now time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"email":            email,
			"resetToken":       token,
			"resetTokenExpiry": bson.M{"$gt": now},
		},
		bson.M{
			"$set":   bson.M{"password": passwordHash},
			"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("complete reset: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTokenConsumed
	}
	return nil
}

// List returns all users with credential and token fields excluded by
// projection, so they cannot leak however the result is serialized.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{
		"password":          0,
		"verificationToken": 0,
		"resetToken":        0,
		"resetTokenExpiry":  0,
	}))
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
		users = append(users, mu.toDomain())
	}
	return users, cursor.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	return res.DeletedCount, nil
}
