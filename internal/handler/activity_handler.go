package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"daytrack/internal/service"
)

// ActivityHandler handles activity CRUD endpoints.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CreateActivityRequest represents an add-activity request.
type CreateActivityRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// EditActivityRequest represents an edit-activity request.
type EditActivityRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// TodayCountResponse reports how many activities were created today.
type TodayCountResponse struct {
	Count int `json:"count"`
}

// EditActivityResponse reports the edit count after an accepted edit.
type EditActivityResponse struct {
	Message   string `json:"message"`
	EditCount int    `json:"edit_count"`
}

// TodayCount godoc
// @Summary Number of activities created today by the current user
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TodayCountResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities/today-count [get]
func (h *ActivityHandler) TodayCount(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	count, err := h.activityService.TodayCount(c.Request().Context(), ownerID)
	if err != nil {
		return translateError(c, err)
	}

	return c.JSON(http.StatusOK, TodayCountResponse{Count: count})
}

// Create godoc
// @Summary Add an activity (max 2 per calendar day)
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateActivityRequest true "Activity fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.activityService.Create(c.Request().Context(), ownerID, req.Title, req.Description); err != nil {
		return translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "activity added successfully",
	})
}

// List godoc
// @Summary List the current user's activities
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Activity
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	activities, err := h.activityService.List(c.Request().Context(), ownerID)
	if err != nil {
		return translateError(c, err)
	}

	return c.JSON(http.StatusOK, activities)
}

// ListByDate godoc
// @Summary List the current user's activities for a display date
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param date path string true "Display date (YYYY-MM-DD)"
// @Success 200 {array} model.Activity
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /activities/{date} [get]
func (h *ActivityHandler) ListByDate(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	activities, err := h.activityService.ListByDate(c.Request().Context(), ownerID, c.Param("date"))
	if err != nil {
		return translateError(c, err)
	}

	return c.JSON(http.StatusOK, activities)
}

// Edit godoc
// @Summary Edit an activity inside its 1-hour / 2-edit window
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param request body EditActivityRequest true "Updated fields"
// @Success 200 {object} EditActivityResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /activities/{id} [put]
func (h *ActivityHandler) Edit(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid activity id")
	}

	var req EditActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	editCount, err := h.activityService.Edit(c.Request().Context(), ownerID, activityID, req.Title, req.Description, req.Date)
	if err != nil {
		return translateError(c, err)
	}

	return c.JSON(http.StatusOK, EditActivityResponse{
		Message:   "activity updated successfully",
		EditCount: editCount,
	})
}

// Delete godoc
// @Summary Delete an activity (ownership-checked only)
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid activity id")
	}

	if err := h.activityService.Delete(c.Request().Context(), ownerID, activityID); err != nil {
		return translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "activity deleted successfully",
	})
}
