package handler

import "github.com/propamit/propamit-api/internal/core/domain"

// Dashboard action discriminators. The frontend posts one endpoint with an
// action field; each value routes to its own sub-operation.
const (
	actionGetDashboardData  = "getDashboardData"
	actionGetApplications   = "getApplications"
	actionCreateApplication = "createApplication"
	actionTrackApplication  = "trackApplication"
	actionGetMessages       = "getMessages"
	actionMarkMessageRead   = "markMessageRead"
	actionGetDocuments      = "getDocuments"
	actionSubmitSupport     = "submitSupport"
)

// dashboardRequest is the union payload for POST /dashboard. Only Action is
// always required; the remaining fields belong to specific actions.
type dashboardRequest struct {
	Action string `json:"action" validate:"required"`

	// createApplication
	Type        string             `json:"type,omitempty"`
	VehicleInfo domain.VehicleInfo `json:"vehicleInfo,omitempty"`
	Documents   []string           `json:"documents,omitempty"`

	// trackApplication
	ApplicationID string `json:"applicationId,omitempty"`

	// markMessageRead
	MessageID string `json:"messageId,omitempty"`

	// submitSupport
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}
