package domain

import (
	"errors"
	"time"
)

// ApplicationStatus represents the review state of a vehicle-document application.
type ApplicationStatus string

const (
	ApplicationPending    ApplicationStatus = "pending"
	ApplicationProcessing ApplicationStatus = "processing"
	ApplicationApproved   ApplicationStatus = "approved"
	ApplicationRejected   ApplicationStatus = "rejected"
)

var ErrApplicationNotFound = errors.New("application not found")

// VehicleInfo describes the vehicle an application concerns.
type VehicleInfo struct {
	Make  string `json:"make" bson:"make"`
	Model string `json:"model" bson:"model"`
	Year  int    `json:"year" bson:"year"`
	VIN   string `json:"vin" bson:"vin"`
	Color string `json:"color" bson:"color"`
}

// ApplicationData is the free-form payload attached to an application.
type ApplicationData struct {
	VehicleInfo VehicleInfo `json:"vehicle_info" bson:"vehicle_info"`
	Documents   []string    `json:"documents" bson:"documents"`
	Notes       string      `json:"notes" bson:"notes"`
}

// TimelineEntry records a single status change on an application.
type TimelineEntry struct {
	Status    ApplicationStatus `json:"status" bson:"status"`
	Message   string            `json:"message" bson:"message"`
	Date      time.Time         `json:"date" bson:"date"`
	UpdatedBy string            `json:"updated_by" bson:"updated_by"`
}

// Application is a user-submitted request such as a vehicle registration or a
// document renewal. ApplicationID is the human-facing reference (APP-…),
// distinct from the storage id.
type Application struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	UserID        string            `json:"user_id" bson:"user_id"`
	ApplicationID string            `json:"application_id" bson:"application_id"`
	Type          string            `json:"type" bson:"type"`
	Status        ApplicationStatus `json:"status" bson:"status"`
	SubmittedAt   time.Time         `json:"submitted_at" bson:"submitted_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
	Data          ApplicationData   `json:"data" bson:"data"`
	Timeline      []TimelineEntry   `json:"timeline" bson:"timeline"`
}
