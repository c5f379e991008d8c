package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/trialworks/ediary-service/internal/cache"
	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByAdminKey(ctx context.Context, key string) (*models.Project, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Project), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByParticipantCode(ctx context.Context, code string) (*models.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, projectID *uint) ([]*models.User, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockQuestionnaireRepository is a mock implementation of QuestionnaireRepository
type MockQuestionnaireRepository struct {
	mock.Mock
}

func (m *MockQuestionnaireRepository) Create(ctx context.Context, questionnaire *models.Questionnaire) error {
	args := m.Called(ctx, questionnaire)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) GetByID(ctx context.Context, id uint) (*models.Questionnaire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Questionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) Update(ctx context.Context, questionnaire *models.Questionnaire) error {
	args := m.Called(ctx, questionnaire)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) List(ctx context.Context, projectID *uint) ([]*models.Questionnaire, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.Questionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) AddQuestion(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionnaireRepository) UpdateQuestion(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) DeleteQuestion(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionnaireRepository) ReplaceChoices(ctx context.Context, questionID uint, choices []models.Choice) error {
	args := m.Called(ctx, questionID, choices)
	return args.Error(0)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) List(ctx context.Context, projectID *uint) ([]*models.Assignment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Assignment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Assignment), args.Error(1)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, projectID *uint) ([]*models.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListOpenByUser(ctx context.Context, userID uint) ([]*models.Task, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListOpenFillForm(ctx context.Context, userID, questionnaireID uint) ([]*models.Task, error) {
	args := m.Called(ctx, userID, questionnaireID)
	return args.Get(0).([]*models.Task), args.Error(1)
}

// MockEntryRepository is a mock implementation of EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *models.DiaryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) List(ctx context.Context, projectID *uint) ([]*models.DiaryEntry, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.DiaryEntry), args.Error(1)
}

// mockRepository bundles the mocks behind the Repository interface.
type mockRepository struct {
	project       *MockProjectRepository
	user          *MockUserRepository
	questionnaire *MockQuestionnaireRepository
	assignment    *MockAssignmentRepository
	task          *MockTaskRepository
	entry         *MockEntryRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		project:       new(MockProjectRepository),
		user:          new(MockUserRepository),
		questionnaire: new(MockQuestionnaireRepository),
		assignment:    new(MockAssignmentRepository),
		task:          new(MockTaskRepository),
		entry:         new(MockEntryRepository),
	}
}

func (r *mockRepository) Project() repositories.ProjectRepository             { return r.project }
func (r *mockRepository) User() repositories.UserRepository                   { return r.user }
func (r *mockRepository) Questionnaire() repositories.QuestionnaireRepository { return r.questionnaire }
func (r *mockRepository) Assignment() repositories.AssignmentRepository       { return r.assignment }
func (r *mockRepository) Task() repositories.TaskRepository                   { return r.task }
func (r *mockRepository) Entry() repositories.EntryRepository                 { return r.entry }

// memoryCache is an in-process CacheService for tests.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]byte)
	return nil
}
