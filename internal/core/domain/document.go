package domain

import "time"

// Document is the metadata record for an uploaded file. The file body lives in
// object storage; FileName is the storage key and FileURL the public location.
type Document struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	FileName     string    `json:"file_name" bson:"file_name"`
	OriginalName string    `json:"original_name" bson:"original_name"`
	FileURL      string    `json:"file_url" bson:"file_url"`
	FileType     string    `json:"file_type" bson:"file_type"`
	FileSize     int64     `json:"file_size" bson:"file_size"`
	Category     string    `json:"category" bson:"category"`
	UploadedAt   time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Vehicle is a registered vehicle shown on the user dashboard.
type Vehicle struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	Make         string    `json:"make" bson:"make"`
	Model        string    `json:"model" bson:"model"`
	Year         int       `json:"year" bson:"year"`
	Plate        string    `json:"plate" bson:"plate"`
	RegisteredAt time.Time `json:"registered_at" bson:"registered_at"`
}

// Activity is an audit-style feed entry for the user dashboard.
type Activity struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Description string    `json:"description" bson:"description"`
	Date        time.Time `json:"date" bson:"date"`
}

// Notification is a lightweight alert surfaced on the user dashboard.
type Notification struct {
	ID     string    `json:"id" bson:"_id,omitempty"`
	UserID string    `json:"user_id" bson:"user_id"`
	Title  string    `json:"title" bson:"title"`
	Body   string    `json:"body" bson:"body"`
	Date   time.Time `json:"date" bson:"date"`
	IsRead bool      `json:"is_read" bson:"is_read"`
}
