package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propamit/propamit-api/internal/core/ports"
)

// AdminHandler serves the back-office panel. The admin middleware has already
// authenticated and authorized the caller before any of these run.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns all users without credential fields.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", users)
}

// DeleteUser removes a user record by id.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

// Stats returns the back-office dashboard counters.
//
// @Summary      Service statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", stats)
}

// RecentActivity returns the latest activity feed entries across all users.
//
// @Summary      Recent activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /admin/recent-activity [get]
func (h *AdminHandler) RecentActivity(c echo.Context) error {
	activities, err := h.adminService.RecentActivity(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", activities)
}

// ResetDatabase wipes the primary collections.
//
// @Summary      Reset the database
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /admin/reset-database [post]
func (h *AdminHandler) ResetDatabase(c echo.Context) error {
	counts, err := h.adminService.ResetDatabase(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Database reset successfully", counts)
}
