package services

import (
	"context"
	"fmt"
	"time"

	"coachcrm/internal/common"
	"coachcrm/internal/fieldmap"
	"coachcrm/internal/models"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ClientPayload carries the trainer-entered profile fields. Any of the
// scalar identity fields may be blank when the trainer relies on an intake
// form; resolution fills them from the submitted answers.
type ClientPayload struct {
	FullName         string      `json:"full_name"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	Gender           string      `json:"gender"`
	Age              string      `json:"age"`
	Source           string      `json:"source"`
	Level            string      `json:"level"`
	RegistrationDate string      `json:"registration_date"`
	Goals            []string    `json:"goals"`
	Injuries         []string    `json:"injuries"`
	SelectedFormID   *uuid.UUID  `json:"selected_form_id"`
	LabelIDs         []uuid.UUID `json:"label_ids"`
	Teams            []string    `json:"teams"`
}

type SubscriptionPayload struct {
	ID              *uuid.UUID `json:"id"`
	PackageID       *int64     `json:"package_id"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	DurationValue   *int       `json:"duration_value"`
	DurationUnit    string     `json:"duration_unit"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentMethod   string     `json:"payment_method"`
	PriceBeforeDisc *float64   `json:"price_before_disc"`
	DiscountApplied bool       `json:"discount_applied"`
	DiscountType    string     `json:"discount_type"`
	DiscountValue   *float64   `json:"discount_value"`
	OnHold          bool       `json:"on_hold"`
	HoldStartDate   string     `json:"hold_start_date"`
}

type InstallmentPayload struct {
	ID              *uuid.UUID `json:"id"`
	PaidDate        string     `json:"paid_date"`
	Amount          *float64   `json:"amount"`
	Remaining       *float64   `json:"remaining"`
	NextInstallment string     `json:"next_installment"`
	Status          string     `json:"status"`
}

type OnboardingRequest struct {
	Client       *ClientPayload       `json:"client"`
	Subscription *SubscriptionPayload `json:"subscription"`
	Installments []InstallmentPayload `json:"installments"`
	Notes        []string             `json:"notes"`
	Answers      map[string]string    `json:"answers"`

	DeleteInstallmentIDs       []uuid.UUID `json:"delete_installment_ids"`
	DeleteTransactionImageIDs  []uuid.UUID `json:"delete_transaction_image_ids"`
	DeleteSubscriptionImageIDs []uuid.UUID `json:"delete_subscription_image_ids"`
}

type OnboardingResult struct {
	Client       *models.Client        `json:"client"`
	Subscription *models.Subscription  `json:"subscription"`
	Installments []*models.Installment `json:"installments"`
}

// OnboardingService performs the create/edit client flow as one database
// transaction: profile, notes, intake submission, subscription, installments
// and automatic tasks all commit or roll back together.
type OnboardingService interface {
	CreateClient(ctx context.Context, trainerID uuid.UUID, req *OnboardingRequest) (*OnboardingResult, error)
	UpdateClient(ctx context.Context, trainerID, clientID uuid.UUID, req *OnboardingRequest) (*OnboardingResult, error)
}

type onboardingService struct {
	db               TxBeginner
	clientRepo       repositories.ClientRepository
	subscriptionRepo repositories.SubscriptionRepository
	installmentRepo  repositories.InstallmentRepository
	noteRepo         repositories.NoteRepository
	checkInRepo      repositories.CheckInRepository
	teamRepo         repositories.TeamAssignmentRepository
	labelRepo        repositories.LabelRepository
	imageRepo        repositories.ImageRepository
	formService      FormService
	taskService      TaskService
	media            MediaService
	mediaBucket      string
}

func NewOnboardingService(
	db TxBeginner,
	clientRepo repositories.ClientRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	installmentRepo repositories.InstallmentRepository,
	noteRepo repositories.NoteRepository,
	checkInRepo repositories.CheckInRepository,
	teamRepo repositories.TeamAssignmentRepository,
	labelRepo repositories.LabelRepository,
	imageRepo repositories.ImageRepository,
	formService FormService,
	taskService TaskService,
	media MediaService,
	mediaBucket string,
) OnboardingService {
	return &onboardingService{
		db:               db,
		clientRepo:       clientRepo,
		subscriptionRepo: subscriptionRepo,
		installmentRepo:  installmentRepo,
		noteRepo:         noteRepo,
		checkInRepo:      checkInRepo,
		teamRepo:         teamRepo,
		labelRepo:        labelRepo,
		imageRepo:        imageRepo,
		formService:      formService,
		taskService:      taskService,
		media:            media,
		mediaBucket:      mediaBucket,
	}
}

func (s *onboardingService) CreateClient(ctx context.Context, trainerID uuid.UUID, req *OnboardingRequest) (*OnboardingResult, error) {
	prepared, err := s.prepare(ctx, trainerID, req)
	if err != nil {
		return nil, err
	}

	client := prepared.client
	client.ID = uuid.New()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.clientRepo.Create(ctx, tx, client); err != nil {
		return nil, err
	}

	for _, content := range req.Notes {
		note := &models.Note{ID: uuid.New(), ClientID: client.ID, Content: content}
		if err := s.noteRepo.Create(ctx, tx, note); err != nil {
			return nil, err
		}
	}

	if err := s.writeMemberships(ctx, tx, trainerID, client, req.Client, false); err != nil {
		return nil, err
	}

	if len(req.Answers) > 0 && client.SelectedFormID != nil {
		sub := &models.CheckInSubmission{
			ID:              uuid.New(),
			ClientID:        client.ID,
			FormID:          *client.SelectedFormID,
			Answers:         req.Answers,
			FilledByTrainer: true,
			SubmittedAt:     time.Now(),
		}
		if err := s.checkInRepo.Create(ctx, tx, sub); err != nil {
			return nil, err
		}
	}

	subscription := prepared.subscription
	subscription.ID = uuid.New()
	subscription.ClientID = client.ID
	if err := s.subscriptionRepo.Create(ctx, tx, subscription); err != nil {
		return nil, err
	}

	installments, err := s.writeInstallments(ctx, tx, trainerID, client, subscription, req.Installments)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &OnboardingResult{Client: client, Subscription: subscription, Installments: installments}, nil
}

func (s *onboardingService) UpdateClient(ctx context.Context, trainerID, clientID uuid.UUID, req *OnboardingRequest) (*OnboardingResult, error) {
	prepared, err := s.prepare(ctx, trainerID, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if existing.TrainerID != trainerID {
		return nil, repositories.ErrNotFound
	}

	client := prepared.client
	client.ID = clientID
	client.CreatedAt = existing.CreatedAt

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.clientRepo.Update(ctx, tx, client); err != nil {
		return nil, err
	}

	if err := s.writeMemberships(ctx, tx, trainerID, client, req.Client, true); err != nil {
		return nil, err
	}

	if len(req.Answers) > 0 && client.SelectedFormID != nil {
		if err := s.upsertSubmission(ctx, tx, client, req.Answers); err != nil {
			return nil, err
		}
	}

	subscription := prepared.subscription
	subscription.ClientID = clientID
	if req.Subscription.ID != nil {
		current, err := s.subscriptionRepo.GetByID(ctx, tx, *req.Subscription.ID)
		if err != nil {
			return nil, err
		}
		if current.ClientID != clientID {
			return nil, fmt.Errorf("%w: subscription %s does not belong to this client", ErrValidation, *req.Subscription.ID)
		}
		subscription.ID = *req.Subscription.ID
		if err := s.subscriptionRepo.Update(ctx, tx, subscription); err != nil {
			return nil, err
		}
	} else {
		subscription.ID = uuid.New()
		if err := s.subscriptionRepo.Create(ctx, tx, subscription); err != nil {
			return nil, err
		}
	}

	// Deletions run before installment upserts so a removed row and its
	// replacement never coexist.
	var removedKeys []string
	if len(req.DeleteInstallmentIDs) > 0 {
		if err := s.installmentRepo.DeleteByIDs(ctx, tx, subscription.ID, req.DeleteInstallmentIDs); err != nil {
			return nil, err
		}
	}
	if len(req.DeleteTransactionImageIDs) > 0 {
		keys, err := s.imageRepo.DeleteTransactionImages(ctx, tx, req.DeleteTransactionImageIDs)
		if err != nil {
			return nil, err
		}
		removedKeys = append(removedKeys, keys...)
	}
	if len(req.DeleteSubscriptionImageIDs) > 0 {
		keys, err := s.imageRepo.DeleteSubscriptionImages(ctx, tx, req.DeleteSubscriptionImageIDs)
		if err != nil {
			return nil, err
		}
		removedKeys = append(removedKeys, keys...)
	}

	installments, err := s.writeInstallments(ctx, tx, trainerID, client, subscription, req.Installments)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	// Object storage is not transactional; rows are authoritative, so the
	// objects go only after the rows are committed gone.
	if len(removedKeys) > 0 && s.media != nil {
		s.media.DeleteImages(ctx, s.mediaBucket, removedKeys)
	}

	return &OnboardingResult{Client: client, Subscription: subscription, Installments: installments}, nil
}

type preparedOnboarding struct {
	client       *models.Client
	subscription *models.Subscription
}

// prepare validates the request and resolves everything that can fail
// before a transaction is opened.
func (s *onboardingService) prepare(ctx context.Context, trainerID uuid.UUID, req *OnboardingRequest) (*preparedOnboarding, error) {
	if req == nil || req.Client == nil {
		return nil, fmt.Errorf("%w: client payload is required", ErrValidation)
	}
	if req.Subscription == nil {
		return nil, fmt.Errorf("%w: subscription payload is required", ErrValidation)
	}
	if req.Subscription.PackageID == nil {
		return nil, fmt.Errorf("%w: subscription package id is required", ErrValidation)
	}

	// A selected form must exist and belong to this trainer even when the
	// request carries no answers.
	var (
		form *models.Form
		err  error
	)
	if req.Client.SelectedFormID != nil {
		form, err = s.formService.GetForm(ctx, trainerID, *req.Client.SelectedFormID)
		if err != nil {
			return nil, err
		}
	}
	history := resolutionHistory(req.Answers, form)

	p := req.Client
	client := &models.Client{
		TrainerID:      trainerID,
		FullName:       fieldmap.Resolve(fieldmap.FieldFullName, p.FullName, history),
		Phone:          fieldmap.Resolve(fieldmap.FieldPhone, p.Phone, history),
		Email:          fieldmap.Resolve(fieldmap.FieldEmail, p.Email, history),
		Gender:         fieldmap.Resolve(fieldmap.FieldGender, p.Gender, history),
		Age:            fieldmap.Resolve(fieldmap.FieldAge, p.Age, history),
		Source:         fieldmap.Resolve(fieldmap.FieldSource, p.Source, history),
		Level:          p.Level,
		Goals:          common.JoinList(p.Goals),
		Injuries:       common.JoinList(p.Injuries),
		SelectedFormID: p.SelectedFormID,
	}
	if client.FullName == "" {
		client.FullName = "Unknown Client"
	}

	client.RegistrationDate, err = common.ParseDate(p.RegistrationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid registration date %q", ErrValidation, p.RegistrationDate)
	}

	sp := req.Subscription
	priceAfter, applied, discountType := ApplyDiscount(DiscountInput{
		PriceBeforeDisc: sp.PriceBeforeDisc,
		DiscountApplied: sp.DiscountApplied,
		DiscountType:    sp.DiscountType,
		DiscountValue:   sp.DiscountValue,
	})

	subscription := &models.Subscription{
		PackageID:       sp.PackageID,
		DurationValue:   sp.DurationValue,
		DurationUnit:    sp.DurationUnit,
		PaymentStatus:   sp.PaymentStatus,
		PaymentMethod:   sp.PaymentMethod,
		PriceBeforeDisc: sp.PriceBeforeDisc,
		DiscountApplied: applied,
		DiscountType:    discountType,
		DiscountValue:   sp.DiscountValue,
		PriceAfterDisc:  priceAfter,
		OnHold:          sp.OnHold,
	}
	subscription.StartDate, err = common.ParseDate(sp.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subscription start date %q", ErrValidation, sp.StartDate)
	}
	subscription.EndDate, err = common.ParseDate(sp.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subscription end date %q", ErrValidation, sp.EndDate)
	}
	subscription.HoldStartDate, err = common.ParseDate(sp.HoldStartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hold start date %q", ErrValidation, sp.HoldStartDate)
	}

	return &preparedOnboarding{client: client, subscription: subscription}, nil
}

// resolutionHistory builds the resolution input for this request: just the
// incoming answers, declared by the selected form when one is set.
func resolutionHistory(answers map[string]string, form *models.Form) []fieldmap.Submission {
	if len(answers) == 0 {
		return nil
	}
	entry := fieldmap.Submission{Answers: answers}
	if form != nil {
		entry.Questions = form.Questions
	}
	return []fieldmap.Submission{entry}
}

// writeMemberships replaces label links and team assignments. On the edit
// path existing team assignments are cleared first.
func (s *onboardingService) writeMemberships(ctx context.Context, q repositories.Querier, trainerID uuid.UUID, client *models.Client, p *ClientPayload, replaceTeams bool) error {
	if p.LabelIDs != nil {
		if err := s.labelRepo.ReplaceClientLabels(ctx, q, client.ID, p.LabelIDs); err != nil {
			return err
		}
	}
	if p.Teams == nil {
		return nil
	}
	if replaceTeams {
		if err := s.teamRepo.DeleteByClient(ctx, q, client.ID); err != nil {
			return err
		}
	}
	for _, name := range p.Teams {
		assignment := &models.TeamAssignment{
			ID:        uuid.New(),
			TrainerID: trainerID,
			ClientID:  client.ID,
			TeamName:  name,
		}
		if err := s.teamRepo.Create(ctx, q, assignment); err != nil {
			return err
		}
	}
	return nil
}

// upsertSubmission updates the latest submission for the client and form
// in place, or creates one when none exists yet. The timestamp is always
// refreshed.
func (s *onboardingService) upsertSubmission(ctx context.Context, q repositories.Querier, client *models.Client, answers map[string]string) error {
	latest, err := s.checkInRepo.LatestByClientAndForm(ctx, q, client.ID, *client.SelectedFormID)
	if err != nil && err != repositories.ErrNotFound {
		return err
	}
	if latest != nil {
		latest.Answers = answers
		latest.FilledByTrainer = true
		latest.SubmittedAt = time.Now()
		return s.checkInRepo.UpdateAnswers(ctx, q, latest)
	}
	sub := &models.CheckInSubmission{
		ID:              uuid.New(),
		ClientID:        client.ID,
		FormID:          *client.SelectedFormID,
		Answers:         answers,
		FilledByTrainer: true,
		SubmittedAt:     time.Now(),
	}
	return s.checkInRepo.Create(ctx, q, sub)
}

// writeInstallments upserts each installment payload and triggers the
// automatic task generator for entries whose next due date has not passed.
// A bad paid date drops the entry; a bad next date is stored as null.
func (s *onboardingService) writeInstallments(ctx context.Context, q repositories.Querier, trainerID uuid.UUID, client *models.Client, subscription *models.Subscription, payloads []InstallmentPayload) ([]*models.Installment, error) {
	var installments []*models.Installment
	today := startOfDay(time.Now())

	for _, p := range payloads {
		paidDate, err := common.ParseDate(p.PaidDate)
		if err != nil {
			log.Warn().Str("client_id", client.ID.String()).Str("paid_date", p.PaidDate).
				Msg("skipping installment with unparseable paid date")
			continue
		}
		nextInstallment, err := common.ParseDate(p.NextInstallment)
		if err != nil {
			log.Warn().Str("client_id", client.ID.String()).Str("next_installment", p.NextInstallment).
				Msg("storing installment without next due date")
			nextInstallment = nil
		}

		inst := &models.Installment{
			SubscriptionID:  subscription.ID,
			PaidDate:        paidDate,
			Amount:          p.Amount,
			Remaining:       p.Remaining,
			NextInstallment: nextInstallment,
			Status:          p.Status,
		}
		if p.ID != nil {
			inst.ID = *p.ID
			if err := s.installmentRepo.Update(ctx, q, inst); err != nil {
				return nil, err
			}
		} else {
			inst.ID = uuid.New()
			if err := s.installmentRepo.Create(ctx, q, inst); err != nil {
				return nil, err
			}
		}
		installments = append(installments, inst)

		if inst.NextInstallment != nil && !inst.NextInstallment.Before(today) {
			err := s.taskService.GenerateInstallmentTask(ctx, q, InstallmentTaskInput{
				TrainerID:  trainerID,
				ClientID:   client.ID,
				ClientName: client.FullName,
				DueDate:    *inst.NextInstallment,
				Amount:     inst.Amount,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return installments, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
