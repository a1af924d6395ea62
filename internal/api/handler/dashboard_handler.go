package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propamit/propamit-api/internal/core/ports"
)

// DashboardHandler serves the action-discriminated dashboard endpoint and the
// account data endpoint. Every operation is scoped to the authenticated user.
type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dispatch routes POST /dashboard by its action field.
//
// @Summary      Dashboard operations
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dashboardRequest  true  "Action and payload"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /dashboard [post]
func (h *DashboardHandler) Dispatch(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req dashboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	switch req.Action {
	case actionGetDashboardData:
		overview, err := h.dashboardService.Overview(ctx, uid)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "", overview)

	case actionGetApplications:
		apps, err := h.dashboardService.Applications(ctx, uid)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "", apps)

	case actionCreateApplication:
		if req.Type == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "type is required")
		}
		app, err := h.dashboardService.CreateApplication(ctx, ports.CreateApplicationInput{
			UserID:      uid,
			Type:        req.Type,
			VehicleInfo: req.VehicleInfo,
			Documents:   req.Documents,
		})
		if err != nil {
			return err
		}
		return respond(c, http.StatusCreated, "Application submitted successfully", app)

	case actionTrackApplication:
		if req.ApplicationID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "applicationId is required")
		}
		app, err := h.dashboardService.TrackApplication(ctx, uid, req.ApplicationID)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "", app)

	case actionGetMessages:
		messages, err := h.dashboardService.Messages(ctx, uid)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "", messages)

	case actionMarkMessageRead:
		if req.MessageID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "messageId is required")
		}
		if err := h.dashboardService.MarkMessageRead(ctx, uid, req.MessageID); err != nil {
			return err
		}
		return respond(c, http.StatusOK, "Message marked as read", nil)

	case actionGetDocuments:
		documents, err := h.dashboardService.Documents(ctx, uid)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "", documents)

	case actionSubmitSupport:
		if req.Subject == "" || req.Message == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "subject and message are required")
		}
		if err := h.dashboardService.SubmitSupport(ctx, ports.SupportRequestInput{
			UserID:  uid,
			Subject: req.Subject,
			Message: req.Message,
		}); err != nil {
			return err
		}
		return respond(c, http.StatusOK, "Support request submitted successfully", nil)

	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid action")
	}
}

// UserData serves GET /user/data: profile plus vehicle, activity and
// notification feeds.
//
// @Summary      Account data
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /user/data [get]
func (h *DashboardHandler) UserData(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	data, err := h.dashboardService.UserData(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", data)
}
