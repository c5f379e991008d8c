package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

type QuestionnaireHandler struct {
	BaseHandler
	questionnaireService services.QuestionnaireService
}

func NewQuestionnaireHandler(questionnaireService services.QuestionnaireService, logger utils.Logger) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		BaseHandler:          NewBaseHandler(logger),
		questionnaireService: questionnaireService,
	}
}

// CreateQuestionnaire creates a questionnaire, optionally with its full
// questions array in one request
func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	h.LogRequest(c, "Creating questionnaire")

	var req services.CreateQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	questionnaire, err := h.questionnaireService.Create(c.Request.Context(), h.projectScope(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, questionnaire)
}

// GetQuestionnaire retrieves a questionnaire with questions and choices
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	questionnaire, err := h.questionnaireService.Get(c.Request.Context(), h.projectScope(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionnaire)
}

// UpdateQuestionnaire updates questionnaire metadata
func (h *QuestionnaireHandler) UpdateQuestionnaire(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	questionnaire, err := h.questionnaireService.Update(c.Request.Context(), h.projectScope(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionnaire)
}

// DeleteQuestionnaire removes a questionnaire with its questions and choices
func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.questionnaireService.Delete(c.Request.Context(), h.projectScope(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Questionnaire deleted"})
}

// ListQuestionnaires lists questionnaires visible to the caller's scope
func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	questionnaires, err := h.questionnaireService.List(c.Request.Context(), h.projectScope(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionnaires)
}

// AddQuestion appends a question to a questionnaire
func (h *QuestionnaireHandler) AddQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionnaireService.AddQuestion(c.Request.Context(), h.projectScope(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion updates a question; a choices array replaces the full list
func (h *QuestionnaireHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionnaireService.UpdateQuestion(c.Request.Context(), h.projectScope(c), id, questionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question from a questionnaire
func (h *QuestionnaireHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	if err := h.questionnaireService.DeleteQuestion(c.Request.Context(), h.projectScope(c), id, questionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Question deleted"})
}
