package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	BaseHandler
	testService services.TestService
}

func NewTestHandler(testService services.TestService, logger utils.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler: NewBaseHandler(logger),
		testService: testService,
	}
}

// SaveAnswers merges one module's answers into the caller's attempt
// POST /api/v1/tests/:test_id/modules/:module/answers
func (h *TestHandler) SaveAnswers(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}
	module, ok := parseModuleParam(c)
	if !ok {
		return
	}

	var req services.SaveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	progress, err := h.testService.SaveAnswers(c.Request.Context(), userID, testID, module, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answers saved successfully", progress)
}

// Progress reports which modules have answers
// GET /api/v1/tests/:test_id/progress
func (h *TestHandler) Progress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	progress, err := h.testService.GetProgress(c.Request.Context(), userID, testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Progress retrieved successfully", progress)
}

// Complete scores the attempt and starts recommendation generation
// POST /api/v1/tests/:test_id/complete
func (h *TestHandler) Complete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	results, err := h.testService.Complete(c.Request.Context(), userID, testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Test completed", "test_id", testID, "dominant_code", results.DominantCode)
	h.RespondWithSuccess(c, http.StatusOK, "Test completed successfully", results)
}

// Results returns the score record and recommendation state
// GET /api/v1/tests/:test_id/results
func (h *TestHandler) Results(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	testID := parseIDParam(c, "test_id")
	if testID == 0 {
		return
	}

	results, err := h.testService.GetResults(c.Request.Context(), userID, testID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Results retrieved successfully", results)
}
