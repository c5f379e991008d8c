package services

import (
	"log/slog"

	"github.com/trialworks/ediary-service/internal/cache"
	"github.com/trialworks/ediary-service/internal/events"
	"github.com/trialworks/ediary-service/internal/repositories"
	"github.com/trialworks/ediary-service/internal/validator"
)

// ServiceManager hands the handler layer one constructor-injected bundle of
// services.
type ServiceManager interface {
	Project() ProjectService
	Auth() AuthService
	User() UserService
	Questionnaire() QuestionnaireService
	Assignment() AssignmentService
	Task() TaskService
	Participant() ParticipantService
	Entry() EntryService
	Seed() SeedService
}

type serviceManager struct {
	project interface {
		ProjectService
		AuthService
	}
	user          UserService
	questionnaire QuestionnaireService
	assignment    AssignmentService
	task          TaskService
	participant   ParticipantService
	entry         EntryService
	seed          SeedService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	superAPIKey string,
	logger *slog.Logger,
) ServiceManager {
	return &serviceManager{
		project:       NewProjectService(repo, v, superAPIKey, logger),
		user:          NewUserService(repo, v, logger),
		questionnaire: NewQuestionnaireService(repo, cacheService, v, logger),
		assignment:    NewAssignmentService(repo, v, logger),
		task:          NewTaskService(repo, v, logger),
		participant:   NewParticipantService(repo, cacheService, publisher, logger),
		entry:         NewEntryService(repo, logger),
		seed:          NewSeedService(repo, logger),
	}
}

func (m *serviceManager) Project() ProjectService             { return m.project }
func (m *serviceManager) Auth() AuthService                   { return m.project }
func (m *serviceManager) User() UserService                   { return m.user }
func (m *serviceManager) Questionnaire() QuestionnaireService { return m.questionnaire }
func (m *serviceManager) Assignment() AssignmentService       { return m.assignment }
func (m *serviceManager) Task() TaskService                   { return m.task }
func (m *serviceManager) Participant() ParticipantService     { return m.participant }
func (m *serviceManager) Entry() EntryService                 { return m.entry }
func (m *serviceManager) Seed() SeedService                   { return m.seed }
