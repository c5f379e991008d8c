package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

// ParticipantHandler serves the participant API. Authentication is the
// participant code itself; there is no session state.
type ParticipantHandler struct {
	BaseHandler
	participantService services.ParticipantService
}

func NewParticipantHandler(participantService services.ParticipantService, logger utils.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		BaseHandler:        NewBaseHandler(logger),
		participantService: participantService,
	}
}

func (h *ParticipantHandler) participantCode(c *gin.Context) (string, bool) {
	code := c.Query("participant_code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "participant_code query parameter is required",
		})
		return "", false
	}
	return code, true
}

// GetQuestionnaires returns the participant's active assignments with their
// resolved questionnaire definitions
func (h *ParticipantHandler) GetQuestionnaires(c *gin.Context) {
	code, ok := h.participantCode(c)
	if !ok {
		return
	}

	resp, err := h.participantService.Assignments(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTasks returns the participant's open tasks; reminders are auto-completed
// on first fetch
func (h *ParticipantHandler) GetTasks(c *gin.Context) {
	code, ok := h.participantCode(c)
	if !ok {
		return
	}

	resp, err := h.participantService.Tasks(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitEntry stores a completed diary entry and closes the matching
// fill_form tasks
func (h *ParticipantHandler) SubmitEntry(c *gin.Context) {
	var req services.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting diary entry", "questionnaire_id", req.QuestionnaireID)

	resp, err := h.participantService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
