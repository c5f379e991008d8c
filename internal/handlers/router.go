package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

type HandlerManager struct {
	auth                 services.AuthService
	logger               utils.Logger
	projectHandler       *ProjectHandler
	userHandler          *UserHandler
	questionnaireHandler *QuestionnaireHandler
	assignmentHandler    *AssignmentHandler
	taskHandler          *TaskHandler
	entryHandler         *EntryHandler
	participantHandler   *ParticipantHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		auth:                 serviceManager.Auth(),
		logger:               logger,
		projectHandler:       NewProjectHandler(serviceManager.Project(), logger),
		userHandler:          NewUserHandler(serviceManager.User(), logger),
		questionnaireHandler: NewQuestionnaireHandler(serviceManager.Questionnaire(), logger),
		assignmentHandler:    NewAssignmentHandler(serviceManager.Assignment(), logger),
		taskHandler:          NewTaskHandler(serviceManager.Task(), logger),
		entryHandler:         NewEntryHandler(serviceManager.Entry(), logger),
		participantHandler:   NewParticipantHandler(serviceManager.Participant(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "ediary-service",
		})
	})

	admin := router.Group("/api/admin")
	admin.Use(AdminKeyMiddleware(hm.auth, hm.logger))
	{
		projects := admin.Group("/projects")
		{
			projects.POST("", hm.projectHandler.CreateProject)
			projects.GET("", hm.projectHandler.ListProjects)
			projects.GET("/:id", hm.projectHandler.GetProject)
		}

		users := admin.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		questionnaires := admin.Group("/questionnaires")
		{
			questionnaires.POST("", hm.questionnaireHandler.CreateQuestionnaire)
			questionnaires.GET("", hm.questionnaireHandler.ListQuestionnaires)
			questionnaires.GET("/:id", hm.questionnaireHandler.GetQuestionnaire)
			questionnaires.PUT("/:id", hm.questionnaireHandler.UpdateQuestionnaire)
			questionnaires.DELETE("/:id", hm.questionnaireHandler.DeleteQuestionnaire)

			questionnaires.POST("/:id/questions", hm.questionnaireHandler.AddQuestion)
			questionnaires.PUT("/:id/questions/:question_id", hm.questionnaireHandler.UpdateQuestion)
			questionnaires.DELETE("/:id/questions/:question_id", hm.questionnaireHandler.DeleteQuestion)
		}

		assignments := admin.Group("/assignments")
		{
			assignments.POST("", hm.assignmentHandler.CreateAssignment)
			assignments.GET("", hm.assignmentHandler.ListAssignments)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)
		}

		tasks := admin.Group("/tasks")
		{
			tasks.POST("", hm.taskHandler.CreateTask)
			tasks.GET("", hm.taskHandler.ListTasks)
			tasks.PUT("/:id", hm.taskHandler.UpdateTask)
			tasks.DELETE("/:id", hm.taskHandler.DeleteTask)
		}

		entries := admin.Group("/entries")
		{
			entries.GET("", hm.entryHandler.ListEntries)
			entries.GET("/export", hm.entryHandler.ExportEntries)
		}
	}

	user := router.Group("/api/user")
	{
		user.GET("/questionnaires", hm.participantHandler.GetQuestionnaires)
		user.GET("/tasks", hm.participantHandler.GetTasks)
		user.POST("/submit", hm.participantHandler.SubmitEntry)
	}
}
