package services

import (
	"context"
	"io"
	"time"

	"coachcrm/internal/models"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, q repositories.Querier, client *models.Client) error {
	args := m.Called(ctx, q, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, q repositories.Querier, client *models.Client) error {
	args := m.Called(ctx, q, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, q repositories.Querier, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID, search string) ([]*models.Client, error) {
	args := m.Called(ctx, trainerID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Client), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, q repositories.Querier, sub *models.Subscription) error {
	args := m.Called(ctx, q, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, q repositories.Querier, sub *models.Subscription) error {
	args := m.Called(ctx, q, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, q repositories.Querier, id uuid.UUID) (*models.Subscription, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Subscription, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) DeleteByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) Create(ctx context.Context, q repositories.Querier, inst *models.Installment) error {
	args := m.Called(ctx, q, inst)
	return args.Error(0)
}

func (m *MockInstallmentRepository) Update(ctx context.Context, q repositories.Querier, inst *models.Installment) error {
	args := m.Called(ctx, q, inst)
	return args.Error(0)
}

func (m *MockInstallmentRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*models.Installment, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) DeleteByIDs(ctx context.Context, q repositories.Querier, subscriptionID uuid.UUID, ids []uuid.UUID) error {
	args := m.Called(ctx, q, subscriptionID, ids)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteBySubscriptions(ctx context.Context, q repositories.Querier, subscriptionIDs []uuid.UUID) error {
	args := m.Called(ctx, q, subscriptionIDs)
	return args.Error(0)
}

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, q repositories.Querier, note *models.Note) error {
	args := m.Called(ctx, q, note)
	return args.Error(0)
}

func (m *MockNoteRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Note, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteRepository) DeleteByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) Create(ctx context.Context, q repositories.Querier, sub *models.CheckInSubmission) error {
	args := m.Called(ctx, q, sub)
	return args.Error(0)
}

func (m *MockCheckInRepository) UpdateAnswers(ctx context.Context, q repositories.Querier, sub *models.CheckInSubmission) error {
	args := m.Called(ctx, q, sub)
	return args.Error(0)
}

func (m *MockCheckInRepository) LatestByClientAndForm(ctx context.Context, q repositories.Querier, clientID, formID uuid.UUID) (*models.CheckInSubmission, error) {
	args := m.Called(ctx, q, clientID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckInSubmission), args.Error(1)
}

func (m *MockCheckInRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.CheckInSubmission, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CheckInSubmission), args.Error(1)
}

func (m *MockCheckInRepository) DeleteByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

type MockTeamAssignmentRepository struct {
	mock.Mock
}

func (m *MockTeamAssignmentRepository) Create(ctx context.Context, q repositories.Querier, assignment *models.TeamAssignment) error {
	args := m.Called(ctx, q, assignment)
	return args.Error(0)
}

func (m *MockTeamAssignmentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.TeamAssignment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TeamAssignment), args.Error(1)
}

func (m *MockTeamAssignmentRepository) DeleteByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Label, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Label), args.Error(1)
}

func (m *MockLabelRepository) ReplaceClientLabels(ctx context.Context, q repositories.Querier, clientID uuid.UUID, labelIDs []uuid.UUID) error {
	args := m.Called(ctx, q, clientID, labelIDs)
	return args.Error(0)
}

func (m *MockLabelRepository) DeleteLinksByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreateAutomatic(ctx context.Context, q repositories.Querier, task *models.Task) error {
	args := m.Called(ctx, q, task)
	return args.Error(0)
}

func (m *MockTaskRepository) OpenTaskExists(ctx context.Context, q repositories.Querier, trainerID, clientID uuid.UUID, category, taskType string) (bool, error) {
	args := m.Called(ctx, q, trainerID, clientID, category, taskType)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, trainerID, id uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, trainerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID, status string) ([]*models.Task, error) {
	args := m.Called(ctx, trainerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, q repositories.Querier, trainerID, id uuid.UUID) error {
	args := m.Called(ctx, q, trainerID, id)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

func (m *MockTaskRepository) MarkOverdue(ctx context.Context, trainerID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, trainerID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountOpenByTrainer(ctx context.Context, trainerID uuid.UUID) (int, error) {
	args := m.Called(ctx, trainerID)
	return args.Int(0), args.Error(1)
}

type MockDeletedTaskMarkerRepository struct {
	mock.Mock
}

func (m *MockDeletedTaskMarkerRepository) Create(ctx context.Context, q repositories.Querier, marker *models.DeletedTaskMarker) error {
	args := m.Called(ctx, q, marker)
	return args.Error(0)
}

func (m *MockDeletedTaskMarkerRepository) Exists(ctx context.Context, q repositories.Querier, trainerID, clientID uuid.UUID, category, taskType string) (bool, error) {
	args := m.Called(ctx, q, trainerID, clientID, category, taskType)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeletedTaskMarkerRepository) DeleteByClient(ctx context.Context, q repositories.Querier, clientID uuid.UUID) error {
	args := m.Called(ctx, q, clientID)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) CreateTransactionImage(ctx context.Context, q repositories.Querier, img *models.TransactionImage) error {
	args := m.Called(ctx, q, img)
	return args.Error(0)
}

func (m *MockImageRepository) CreateSubscriptionImage(ctx context.Context, q repositories.Querier, img *models.SubscriptionImage) error {
	args := m.Called(ctx, q, img)
	return args.Error(0)
}

func (m *MockImageRepository) DeleteTransactionImages(ctx context.Context, q repositories.Querier, ids []uuid.UUID) ([]string, error) {
	args := m.Called(ctx, q, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImageRepository) DeleteSubscriptionImages(ctx context.Context, q repositories.Querier, ids []uuid.UUID) ([]string, error) {
	args := m.Called(ctx, q, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImageRepository) DeleteBySubscriptions(ctx context.Context, q repositories.Querier, subscriptionIDs []uuid.UUID) ([]string, error) {
	args := m.Called(ctx, q, subscriptionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImageRepository) GetTransactionImage(ctx context.Context, id uuid.UUID) (*models.TransactionImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionImage), args.Error(1)
}

type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) GetForm(ctx context.Context, trainerID, formID uuid.UUID) (*models.Form, error) {
	args := m.Called(ctx, trainerID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormService) GetForms(ctx context.Context, formIDs []uuid.UUID) (map[uuid.UUID]*models.Form, error) {
	args := m.Called(ctx, formIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*models.Form), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadImage(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMediaService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMediaService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMediaService) DeleteImages(ctx context.Context, bucketName string, objectNames []string) {
	m.Called(ctx, bucketName, objectNames)
}

func (m *MockMediaService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GenerateInstallmentTask(ctx context.Context, q repositories.Querier, input InstallmentTaskInput) error {
	args := m.Called(ctx, q, input)
	return args.Error(0)
}

func (m *MockTaskService) ListTasks(ctx context.Context, trainerID uuid.UUID, status string) ([]*models.Task, error) {
	args := m.Called(ctx, trainerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, trainerID, taskID uuid.UUID) error {
	args := m.Called(ctx, trainerID, taskID)
	return args.Error(0)
}
