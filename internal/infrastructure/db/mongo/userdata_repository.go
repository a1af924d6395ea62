package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/propamit/propamit-api/internal/core/domain"
)

const (
	vehiclesCollection      = "vehicles"
	activitiesCollection    = "activities"
	notificationsCollection = "notifications"
)

// UserDataRepository reads the dashboard feed collections. These are written
// by back-office tooling, so this repository is read-only.
type UserDataRepository struct {
	db *mongo.Database
}

func NewUserDataRepository(db *mongo.Database) *UserDataRepository {
	return &UserDataRepository{db: db}
}

func (r *UserDataRepository) FindVehicles(ctx context.Context, userID string) ([]*domain.Vehicle, error) {
	cursor, err := r.db.Collection(vehiclesCollection).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*domain.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *UserDataRepository) FindActivities(ctx context.Context, userID string) ([]*domain.Activity, error) {
	cursor, err := r.db.Collection(activitiesCollection).Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*domain.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return activities, nil
}

func (r *UserDataRepository) FindNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	cursor, err := r.db.Collection(notificationsCollection).Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []*domain.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifications, nil
}

// RecentActivities returns the newest activity entries across all users, for
// the admin overview.
func (r *UserDataRepository) RecentActivities(ctx context.Context, limit int64) ([]*domain.Activity, error) {
	cursor, err := r.db.Collection(activitiesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find recent activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*domain.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("decode recent activities: %w", err)
	}
	return activities, nil
}
