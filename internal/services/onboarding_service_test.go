package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"coachcrm/internal/models"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OnboardingServiceTestSuite struct {
	suite.Suite
	pool             pgxmock.PgxPoolIface
	clientRepo       *MockClientRepository
	subscriptionRepo *MockSubscriptionRepository
	installmentRepo  *MockInstallmentRepository
	noteRepo         *MockNoteRepository
	checkInRepo      *MockCheckInRepository
	teamRepo         *MockTeamAssignmentRepository
	labelRepo        *MockLabelRepository
	imageRepo        *MockImageRepository
	formService      *MockFormService
	taskService      *MockTaskService
	media            *MockMediaService
	service          OnboardingService
	trainerID        uuid.UUID
}

func (suite *OnboardingServiceTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.pool = pool
	suite.clientRepo = &MockClientRepository{}
	suite.subscriptionRepo = &MockSubscriptionRepository{}
	suite.installmentRepo = &MockInstallmentRepository{}
	suite.noteRepo = &MockNoteRepository{}
	suite.checkInRepo = &MockCheckInRepository{}
	suite.teamRepo = &MockTeamAssignmentRepository{}
	suite.labelRepo = &MockLabelRepository{}
	suite.imageRepo = &MockImageRepository{}
	suite.formService = &MockFormService{}
	suite.taskService = &MockTaskService{}
	suite.media = &MockMediaService{}
	suite.service = NewOnboardingService(
		pool, suite.clientRepo, suite.subscriptionRepo, suite.installmentRepo,
		suite.noteRepo, suite.checkInRepo, suite.teamRepo, suite.labelRepo,
		suite.imageRepo, suite.formService, suite.taskService, suite.media, "media")
	suite.trainerID = uuid.New()
}

func (suite *OnboardingServiceTestSuite) TearDownTest() {
	suite.clientRepo.AssertExpectations(suite.T())
	suite.subscriptionRepo.AssertExpectations(suite.T())
	suite.installmentRepo.AssertExpectations(suite.T())
	suite.noteRepo.AssertExpectations(suite.T())
	suite.checkInRepo.AssertExpectations(suite.T())
	suite.teamRepo.AssertExpectations(suite.T())
	suite.labelRepo.AssertExpectations(suite.T())
	suite.imageRepo.AssertExpectations(suite.T())
	suite.formService.AssertExpectations(suite.T())
	suite.taskService.AssertExpectations(suite.T())
	suite.media.AssertExpectations(suite.T())
	suite.NoError(suite.pool.ExpectationsWereMet())
	suite.pool.Close()
}

func TestOnboardingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OnboardingServiceTestSuite))
}

func (suite *OnboardingServiceTestSuite) baseRequest() *OnboardingRequest {
	return &OnboardingRequest{
		Client: &ClientPayload{
			FullName: "Jane",
			Email:    "jane@x.com",
			Gender:   "Female",
			Age:      "29",
			Source:   "Referral",
		},
		Subscription: &SubscriptionPayload{
			PackageID:       int64Ptr(1),
			StartDate:       "2024-01-01",
			EndDate:         "2024-02-01",
			DurationValue:   intPtr(1),
			DurationUnit:    "month",
			PaymentStatus:   models.PaymentStatusPaid,
			PaymentMethod:   "fawry",
			PriceBeforeDisc: floatPtr(1000),
		},
	}
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_NoDiscountLeavesPriceNil() {
	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.Client) bool {
		return c.TrainerID == suite.trainerID && c.FullName == "Jane" && c.Email == "jane@x.com"
	})).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.PriceAfterDisc == nil && !s.DiscountApplied &&
			s.PriceBeforeDisc != nil && *s.PriceBeforeDisc == 1000
	})).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	result, err := suite.service.CreateClient(context.Background(), suite.trainerID, suite.baseRequest())
	suite.NoError(err)
	suite.Require().NotNil(result)
	suite.Nil(result.Subscription.PriceAfterDisc)
	suite.NotNil(result.Subscription.StartDate)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_DiscountComputed() {
	req := suite.baseRequest()
	req.Subscription.DiscountApplied = true
	req.Subscription.DiscountType = models.DiscountTypePercentage
	req.Subscription.DiscountValue = floatPtr(10)

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.PriceAfterDisc != nil && *s.PriceAfterDisc == 900
	})).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	result, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
	suite.Require().NotNil(result.Subscription.PriceAfterDisc)
	suite.InDelta(900, *result.Subscription.PriceAfterDisc, 0.001)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_MissingSubscription() {
	req := suite.baseRequest()
	req.Subscription = nil

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.ErrorIs(err, ErrValidation)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_MissingPackageID() {
	req := suite.baseRequest()
	req.Subscription.PackageID = nil

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.ErrorIs(err, ErrValidation)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_MissingClientPayload() {
	req := suite.baseRequest()
	req.Client = nil

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.ErrorIs(err, ErrValidation)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_NameResolvedFromAnswers() {
	formID := uuid.New()
	req := suite.baseRequest()
	req.Client.FullName = ""
	req.Client.SelectedFormID = &formID
	req.Answers = map[string]string{"q1": "Sarah Connor"}

	form := &models.Form{
		ID:        formID,
		TrainerID: suite.trainerID,
		Questions: []models.FormQuestion{{ID: "q1", Label: "Full name"}},
	}
	suite.formService.On("GetForm", mock.Anything, suite.trainerID, formID).Return(form, nil).Once()

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.Client) bool {
		return c.FullName == "Sarah Connor"
	})).Return(nil).Once()
	suite.checkInRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.CheckInSubmission) bool {
		return s.FilledByTrainer && s.FormID == formID
	})).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	result, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
	suite.Equal("Sarah Connor", result.Client.FullName)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_UnresolvableNameDefaults() {
	req := suite.baseRequest()
	req.Client.FullName = ""

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.Client) bool {
		return c.FullName == "Unknown Client"
	})).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_NotesCreated() {
	req := suite.baseRequest()
	req.Notes = []string{"prefers mornings", "knee injury history"}

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.noteRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
		return n.Content == "prefers mornings"
	})).Return(nil).Once()
	suite.noteRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
		return n.Content == "knee injury history"
	})).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_FutureInstallmentTriggersTask() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	req := suite.baseRequest()
	req.Subscription.PaymentStatus = models.PaymentStatusInstallments
	req.Installments = []InstallmentPayload{
		{Amount: floatPtr(500), Remaining: floatPtr(200), NextInstallment: tomorrow},
	}

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.installmentRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(i *models.Installment) bool {
		return i.NextInstallment != nil && i.Amount != nil && *i.Amount == 500
	})).Return(nil).Once()
	suite.taskService.On("GenerateInstallmentTask", mock.Anything, mock.Anything,
		mock.MatchedBy(func(in InstallmentTaskInput) bool {
			return in.TrainerID == suite.trainerID && in.ClientName == "Jane" &&
				in.Amount != nil && *in.Amount == 500
		})).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	result, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
	suite.Len(result.Installments, 1)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_BadNextInstallmentStoredAsNull() {
	req := suite.baseRequest()
	req.Installments = []InstallmentPayload{
		{Amount: floatPtr(500), NextInstallment: "not-a-date"},
	}

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.installmentRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(i *models.Installment) bool {
		return i.NextInstallment == nil
	})).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	result, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
	suite.Len(result.Installments, 1)
	suite.Nil(result.Installments[0].NextInstallment)
	suite.taskService.AssertNotCalled(suite.T(), "GenerateInstallmentTask", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_BadPaidDateSkipsInstallment() {
	req := suite.baseRequest()
	req.Installments = []InstallmentPayload{
		{Amount: floatPtr(500), PaidDate: "never"},
	}

	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	result, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.NoError(err)
	suite.Empty(result.Installments)
	suite.installmentRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestUpdateClient_UnknownClient() {
	clientID := uuid.New()
	suite.clientRepo.On("GetByID", mock.Anything, clientID).Return(nil, repositories.ErrNotFound).Once()

	_, err := suite.service.UpdateClient(context.Background(), suite.trainerID, clientID, suite.baseRequest())
	suite.ErrorIs(err, repositories.ErrNotFound)
}

func (suite *OnboardingServiceTestSuite) TestUpdateClient_OtherTrainersClient() {
	clientID := uuid.New()
	existing := &models.Client{ID: clientID, TrainerID: uuid.New()}
	suite.clientRepo.On("GetByID", mock.Anything, clientID).Return(existing, nil).Once()

	_, err := suite.service.UpdateClient(context.Background(), suite.trainerID, clientID, suite.baseRequest())
	suite.ErrorIs(err, repositories.ErrNotFound)
}

func (suite *OnboardingServiceTestSuite) TestUpdateClient_DeletionsAndImageCleanup() {
	clientID := uuid.New()
	subscriptionID := uuid.New()
	existing := &models.Client{ID: clientID, TrainerID: suite.trainerID}

	req := suite.baseRequest()
	req.Subscription.ID = &subscriptionID
	req.DeleteInstallmentIDs = []uuid.UUID{uuid.New()}
	req.DeleteTransactionImageIDs = []uuid.UUID{uuid.New()}
	req.DeleteSubscriptionImageIDs = []uuid.UUID{uuid.New()}

	suite.clientRepo.On("GetByID", mock.Anything, clientID).Return(existing, nil).Once()
	suite.pool.ExpectBegin()
	suite.clientRepo.On("Update", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.Client) bool {
		return c.ID == clientID
	})).Return(nil).Once()
	suite.subscriptionRepo.On("GetByID", mock.Anything, mock.Anything, subscriptionID).
		Return(&models.Subscription{ID: subscriptionID, ClientID: clientID}, nil).Once()
	suite.subscriptionRepo.On("Update", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.ID == subscriptionID && s.ClientID == clientID
	})).Return(nil).Once()
	suite.installmentRepo.On("DeleteByIDs", mock.Anything, mock.Anything, subscriptionID, req.DeleteInstallmentIDs).
		Return(nil).Once()
	suite.imageRepo.On("DeleteTransactionImages", mock.Anything, mock.Anything, req.DeleteTransactionImageIDs).
		Return([]string{"tx/receipt-1.jpg"}, nil).Once()
	suite.imageRepo.On("DeleteSubscriptionImages", mock.Anything, mock.Anything, req.DeleteSubscriptionImageIDs).
		Return([]string{"sub/contract-1.jpg"}, nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()
	suite.media.On("DeleteImages", mock.Anything, "media", []string{"tx/receipt-1.jpg", "sub/contract-1.jpg"}).Once()

	_, err := suite.service.UpdateClient(context.Background(), suite.trainerID, clientID, req)
	suite.NoError(err)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_ForeignFormRejectedWithoutAnswers() {
	formID := uuid.New()
	req := suite.baseRequest()
	req.Client.SelectedFormID = &formID

	suite.formService.On("GetForm", mock.Anything, suite.trainerID, formID).
		Return(nil, fmt.Errorf("%w: form %s does not belong to this trainer", ErrValidation, formID)).Once()

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, req)
	suite.ErrorIs(err, ErrValidation)
	suite.clientRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestCreateClient_RollsBackOnSubscriptionFailure() {
	suite.pool.ExpectBegin()
	suite.clientRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("insert failed")).Once()
	suite.pool.ExpectRollback()

	_, err := suite.service.CreateClient(context.Background(), suite.trainerID, suite.baseRequest())
	suite.Error(err)
	suite.installmentRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestUpdateClient_ForeignSubscriptionRejected() {
	clientID := uuid.New()
	subscriptionID := uuid.New()
	existing := &models.Client{ID: clientID, TrainerID: suite.trainerID}

	req := suite.baseRequest()
	req.Subscription.ID = &subscriptionID

	suite.clientRepo.On("GetByID", mock.Anything, clientID).Return(existing, nil).Once()
	suite.pool.ExpectBegin()
	suite.clientRepo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.subscriptionRepo.On("GetByID", mock.Anything, mock.Anything, subscriptionID).
		Return(&models.Subscription{ID: subscriptionID, ClientID: uuid.New()}, nil).Once()
	suite.pool.ExpectRollback()

	_, err := suite.service.UpdateClient(context.Background(), suite.trainerID, clientID, req)
	suite.ErrorIs(err, ErrValidation)
	suite.subscriptionRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OnboardingServiceTestSuite) TestUpdateClient_LatestSubmissionUpdatedInPlace() {
	clientID := uuid.New()
	formID := uuid.New()
	existing := &models.Client{ID: clientID, TrainerID: suite.trainerID}

	req := suite.baseRequest()
	req.Client.SelectedFormID = &formID
	req.Answers = map[string]string{"q1": "updated answer"}

	form := &models.Form{ID: formID, TrainerID: suite.trainerID}
	latest := &models.CheckInSubmission{
		ID:          uuid.New(),
		ClientID:    clientID,
		FormID:      formID,
		Answers:     map[string]string{"q1": "old answer"},
		SubmittedAt: time.Now().Add(-24 * time.Hour),
	}

	suite.formService.On("GetForm", mock.Anything, suite.trainerID, formID).Return(form, nil).Once()
	suite.clientRepo.On("GetByID", mock.Anything, clientID).Return(existing, nil).Once()
	suite.pool.ExpectBegin()
	suite.clientRepo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.checkInRepo.On("LatestByClientAndForm", mock.Anything, mock.Anything, clientID, formID).
		Return(latest, nil).Once()
	suite.checkInRepo.On("UpdateAnswers", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.CheckInSubmission) bool {
		return s.ID == latest.ID && s.Answers["q1"] == "updated answer" && s.FilledByTrainer
	})).Return(nil).Once()
	suite.subscriptionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.pool.ExpectCommit()
	suite.pool.ExpectRollback()

	_, err := suite.service.UpdateClient(context.Background(), suite.trainerID, clientID, req)
	suite.NoError(err)
}
