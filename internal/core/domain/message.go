package domain

import (
	"errors"
	"time"
)

const (
	MessageTypeSystem       = "system"
	MessageTypeSupport      = "support"
	MessageTypeNotification = "notification"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is an inbox entry for a user: system notices, support tickets and
// admin replies all share this shape.
type Message struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	IsRead    bool      `json:"is_read" bson:"is_read"`
	Type      string    `json:"type" bson:"type"`
	From      string    `json:"from" bson:"from"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
