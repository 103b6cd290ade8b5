package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"coachcrm/internal/common"
	"coachcrm/internal/models"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
)

const presignedURLExpiry = 15 * time.Minute

// ClientService serves the read side of the client aggregate and the
// cascade delete. Profile completion is derived on every call, never
// stored.
type ClientService interface {
	ListClients(ctx context.Context, trainerID uuid.UUID, search string) ([]*models.Client, error)
	GetClient(ctx context.Context, trainerID, clientID uuid.UUID) (*models.Client, error)
	DeleteClient(ctx context.Context, trainerID, clientID uuid.UUID) error
	// GetTransactionImageURL returns a short-lived presigned URL for a
	// stored payment proof.
	GetTransactionImageURL(ctx context.Context, imageID uuid.UUID) (string, error)
	// UploadTransactionImage stores a payment proof for an installment:
	// object first, then the row that makes it visible.
	UploadTransactionImage(ctx context.Context, installmentID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.TransactionImage, error)
	UploadSubscriptionImage(ctx context.Context, subscriptionID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.SubscriptionImage, error)
}

type clientService struct {
	db               TxBeginner
	clientRepo       repositories.ClientRepository
	subscriptionRepo repositories.SubscriptionRepository
	installmentRepo  repositories.InstallmentRepository
	noteRepo         repositories.NoteRepository
	checkInRepo      repositories.CheckInRepository
	teamRepo         repositories.TeamAssignmentRepository
	labelRepo        repositories.LabelRepository
	taskRepo         repositories.TaskRepository
	markerRepo       repositories.DeletedTaskMarkerRepository
	imageRepo        repositories.ImageRepository
	formService      FormService
	media            MediaService
	mediaBucket      string
}

func NewClientService(
	db TxBeginner,
	clientRepo repositories.ClientRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	installmentRepo repositories.InstallmentRepository,
	noteRepo repositories.NoteRepository,
	checkInRepo repositories.CheckInRepository,
	teamRepo repositories.TeamAssignmentRepository,
	labelRepo repositories.LabelRepository,
	taskRepo repositories.TaskRepository,
	markerRepo repositories.DeletedTaskMarkerRepository,
	imageRepo repositories.ImageRepository,
	formService FormService,
	media MediaService,
	mediaBucket string,
) ClientService {
	return &clientService{
		db:               db,
		clientRepo:       clientRepo,
		subscriptionRepo: subscriptionRepo,
		installmentRepo:  installmentRepo,
		noteRepo:         noteRepo,
		checkInRepo:      checkInRepo,
		teamRepo:         teamRepo,
		labelRepo:        labelRepo,
		taskRepo:         taskRepo,
		markerRepo:       markerRepo,
		imageRepo:        imageRepo,
		formService:      formService,
		media:            media,
		mediaBucket:      mediaBucket,
	}
}

func (s *clientService) ListClients(ctx context.Context, trainerID uuid.UUID, search string) ([]*models.Client, error) {
	clients, err := s.clientRepo.ListByTrainer(ctx, trainerID, common.SanitizeSearchQuery(search))
	if err != nil {
		return nil, err
	}
	for _, client := range clients {
		if err := s.hydrate(ctx, client); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

func (s *clientService) GetClient(ctx context.Context, trainerID, clientID uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TrainerID != trainerID {
		return nil, repositories.ErrNotFound
	}
	if err := s.hydrate(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// hydrate loads the relations completeness needs and annotates the result.
func (s *clientService) hydrate(ctx context.Context, client *models.Client) error {
	var err error
	if client.Subscriptions, err = s.subscriptionRepo.ListByClient(ctx, client.ID); err != nil {
		return err
	}
	for _, sub := range client.Subscriptions {
		if sub.Installments, err = s.installmentRepo.ListBySubscription(ctx, sub.ID); err != nil {
			return err
		}
	}
	if client.Notes, err = s.noteRepo.ListByClient(ctx, client.ID); err != nil {
		return err
	}
	if client.Submissions, err = s.checkInRepo.ListByClient(ctx, client.ID); err != nil {
		return err
	}
	if client.TeamAssignments, err = s.teamRepo.ListByClient(ctx, client.ID); err != nil {
		return err
	}
	if client.Labels, err = s.labelRepo.ListByClient(ctx, client.ID); err != nil {
		return err
	}

	formIDs := make([]uuid.UUID, 0, len(client.Submissions))
	for _, sub := range client.Submissions {
		formIDs = append(formIDs, sub.FormID)
	}
	forms, err := s.formService.GetForms(ctx, formIDs)
	if err != nil {
		return err
	}

	client.ProfileCompletion = EvaluateProfileCompletion(client, forms)
	return nil
}

// DeleteClient removes the client and every dependent row in one
// transaction, then drops the stored images once the rows are gone.
func (s *clientService) DeleteClient(ctx context.Context, trainerID, clientID uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.TrainerID != trainerID {
		return repositories.ErrNotFound
	}

	subscriptions, err := s.subscriptionRepo.ListByClient(ctx, clientID)
	if err != nil {
		return err
	}
	subscriptionIDs := make([]uuid.UUID, 0, len(subscriptions))
	for _, sub := range subscriptions {
		subscriptionIDs = append(subscriptionIDs, sub.ID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.noteRepo.DeleteByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.labelRepo.DeleteLinksByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.checkInRepo.DeleteByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.teamRepo.DeleteByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.markerRepo.DeleteByClient(ctx, tx, clientID); err != nil {
		return err
	}

	var removedKeys []string
	if len(subscriptionIDs) > 0 {
		keys, err := s.imageRepo.DeleteBySubscriptions(ctx, tx, subscriptionIDs)
		if err != nil {
			return err
		}
		removedKeys = keys
		if err := s.installmentRepo.DeleteBySubscriptions(ctx, tx, subscriptionIDs); err != nil {
			return err
		}
	}
	if err := s.subscriptionRepo.DeleteByClient(ctx, tx, clientID); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, tx, clientID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if len(removedKeys) > 0 && s.media != nil {
		s.media.DeleteImages(ctx, s.mediaBucket, removedKeys)
	}
	return nil
}

func (s *clientService) GetTransactionImageURL(ctx context.Context, imageID uuid.UUID) (string, error) {
	img, err := s.imageRepo.GetTransactionImage(ctx, imageID)
	if err != nil {
		return "", err
	}
	return s.media.GetPresignedURL(ctx, s.mediaBucket, img.ObjectKey, presignedURLExpiry)
}

func (s *clientService) UploadTransactionImage(ctx context.Context, installmentID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.TransactionImage, error) {
	img := &models.TransactionImage{
		ID:            uuid.New(),
		InstallmentID: installmentID,
		ObjectKey:     fmt.Sprintf("transactions/%s/%s%s", installmentID, uuid.New(), path.Ext(filename)),
	}
	if err := s.media.UploadImage(ctx, s.mediaBucket, img.ObjectKey, reader, size, contentType); err != nil {
		return nil, err
	}
	if err := s.insertImageRow(ctx, func(tx repositories.Querier) error {
		return s.imageRepo.CreateTransactionImage(ctx, tx, img)
	}, img.ObjectKey); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *clientService) UploadSubscriptionImage(ctx context.Context, subscriptionID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.SubscriptionImage, error) {
	img := &models.SubscriptionImage{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		ObjectKey:      fmt.Sprintf("subscriptions/%s/%s%s", subscriptionID, uuid.New(), path.Ext(filename)),
	}
	if err := s.media.UploadImage(ctx, s.mediaBucket, img.ObjectKey, reader, size, contentType); err != nil {
		return nil, err
	}
	if err := s.insertImageRow(ctx, func(tx repositories.Querier) error {
		return s.imageRepo.CreateSubscriptionImage(ctx, tx, img)
	}, img.ObjectKey); err != nil {
		return nil, err
	}
	return img, nil
}

// insertImageRow commits the row that makes an uploaded object reachable,
// dropping the object again when the row cannot be written.
func (s *clientService) insertImageRow(ctx context.Context, insert func(repositories.Querier) error, objectKey string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.media.DeleteImages(ctx, s.mediaBucket, []string{objectKey})
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insert(tx); err != nil {
		s.media.DeleteImages(ctx, s.mediaBucket, []string{objectKey})
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		s.media.DeleteImages(ctx, s.mediaBucket, []string{objectKey})
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
