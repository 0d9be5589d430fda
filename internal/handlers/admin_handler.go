package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/career-orientation-service/internal/auth"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	BaseHandler
	userService   services.UserService
	adminService  services.AdminService
	exportService services.ExportService
}

func NewAdminHandler(
	userService services.UserService,
	adminService services.AdminService,
	exportService services.ExportService,
	logger utils.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		adminService:  adminService,
		exportService: exportService,
	}
}

// ListUsers lists users with optional email search
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{
		Email:     c.Query("email"),
		Limit:     parseIntQuery(c, "limit", repositories.DefaultLimit),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filters.Role = &r
	}
	if state := c.Query("access_state"); state != "" {
		s := models.AccessState(state)
		filters.AccessState = &s
	}

	resp, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Users retrieved successfully", resp)
}

// UpdateAccess sets a user's access state
// PUT /api/v1/admin/users/:id/access
func (h *AdminHandler) UpdateAccess(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}
	userID := parseIDParam(c, "id")
	if userID == 0 {
		return
	}

	var req services.UpdateAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	user, err := h.userService.UpdateAccess(c.Request.Context(), userID, &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Access updated successfully", user)
}

// GetUserTest returns a user's raw answers and score record
// GET /api/v1/admin/users/:id/tests/:test_id
func (h *AdminHandler) GetUserTest(c *gin.Context) {
	userID := parseIDParam(c, "id")
	if userID == 0 {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	details, err := h.adminService.GetUserTest(c.Request.Context(), userID, testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempt retrieved successfully", details)
}

// ResetUserTest deletes a user's attempt so the test can be retaken
// DELETE /api/v1/admin/users/:id/tests/:test_id
func (h *AdminHandler) ResetUserTest(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}
	userID := parseIDParam(c, "id")
	if userID == 0 {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	if err := h.adminService.ResetUserTest(c.Request.Context(), userID, testID, adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Test results reset successfully", nil)
}

// RescoreUserTest recomputes the record from stored answers
// POST /api/v1/admin/users/:id/tests/:test_id/rescore
func (h *AdminHandler) RescoreUserTest(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}
	userID := parseIDParam(c, "id")
	if userID == 0 {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	results, err := h.adminService.Rescore(c.Request.Context(), userID, testID, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Test rescored successfully", results)
}

// ListTestAttempts lists attempts for one test
// GET /api/v1/admin/tests/:test_id/attempts
func (h *AdminHandler) ListTestAttempts(c *gin.Context) {
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	filters := repositories.AttemptFilters{
		Limit:     parseIntQuery(c, "limit", repositories.DefaultLimit),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		s := models.AttemptStatus(status)
		if s != models.AttemptInProgress && s != models.AttemptCompleted {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid status", nil, status)
			return
		}
		filters.Status = &s
	}

	resp, err := h.adminService.ListTestAttempts(c.Request.Context(), testID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempts retrieved successfully", resp)
}

// ExportTestResults streams an xlsx workbook of completed attempts
// GET /api/v1/admin/tests/:test_id/export
func (h *AdminHandler) ExportTestResults(c *gin.Context) {
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}
	adminID, _, _ := auth.CurrentUser(c)

	data, err := h.exportService.ExportTestResults(c.Request.Context(), testID, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("test_%d_results.xlsx", testID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
