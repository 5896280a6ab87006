package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"daytrack/internal/service"
)

// AdminHandler handles admin-only endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// All godoc
// @Summary All users joined with their activities
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.UserWithActivities
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/all [get]
func (h *AdminHandler) All(c echo.Context) error {
	overview, err := h.adminService.Overview(c.Request().Context())
	if err != nil {
		return translateError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

// UserDetail godoc
// @Summary One user's activities by username
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/user/{username} [get]
func (h *AdminHandler) UserDetail(c echo.Context) error {
	activities, err := h.adminService.UserActivities(c.Request().Context(), c.Param("username"))
	if err != nil {
		return translateError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}
