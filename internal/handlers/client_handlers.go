package handlers

import (
	"errors"
	"net/http"

	"coachcrm/internal/common"
	"coachcrm/internal/repositories"
	"coachcrm/internal/services"

	"github.com/labstack/echo/v4"
)

// ClientHandlers handles HTTP requests for client onboarding and reads.
type ClientHandlers struct {
	onboardingService services.OnboardingService
	clientService     services.ClientService
}

func NewClientHandlers(onboardingService services.OnboardingService, clientService services.ClientService) *ClientHandlers {
	return &ClientHandlers{
		onboardingService: onboardingService,
		clientService:     clientService,
	}
}

// CreateClient handles POST /v1/clients
func (h *ClientHandlers) CreateClient(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	result, err := h.onboardingService.CreateClient(ctx, trainerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return common.SendValidationError(c, "request", err.Error())
		case errors.Is(err, repositories.ErrDuplicateKey):
			return common.SendClientError(c, "Record already exists")
		default:
			return common.SendServerError(c, "Failed to create client: "+err.Error())
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Client created successfully",
		"result":  result,
	})
}

// UpdateClient handles PUT /v1/clients/:id
func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "client id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	result, err := h.onboardingService.UpdateClient(ctx, trainerID, clientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return common.SendValidationError(c, "request", err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			return common.SendNotFoundError(c, "client")
		case errors.Is(err, repositories.ErrDuplicateKey):
			return common.SendClientError(c, "Record already exists")
		default:
			return common.SendServerError(c, "Failed to update client: "+err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Client updated successfully",
		"result":  result,
	})
}

// ListClients handles GET /v1/clients
func (h *ClientHandlers) ListClients(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clients, err := h.clientService.ListClients(ctx, trainerID, c.QueryParam("search"))
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve clients: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"total":   len(clients),
	})
}

// GetClient handles GET /v1/clients/:id
func (h *ClientHandlers) GetClient(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "client id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	client, err := h.clientService.GetClient(ctx, trainerID, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "client")
		}
		return common.SendServerError(c, "Failed to retrieve client: "+err.Error())
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /v1/clients/:id
func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "client id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.clientService.DeleteClient(ctx, trainerID, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "client")
		}
		return common.SendServerError(c, "Failed to delete client: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Client deleted successfully",
	})
}

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// UploadTransactionImage handles POST /v1/installments/:id/images
func (h *ClientHandlers) UploadTransactionImage(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetTrainerIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	installmentID, err := common.ValidateUUID(c.Param("id"), "installment id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "Image file is required")
	}
	if file.Size > maxImageSize {
		return common.SendValidationError(c, "image", "File size exceeds maximum limit of 5MB")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return common.SendValidationError(c, "image", "Invalid file type. Only JPEG, PNG and WebP images are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to open image file")
	}
	defer src.Close()

	img, err := h.clientService.UploadTransactionImage(ctx, installmentID, file.Filename, src, file.Size, contentType)
	if err != nil {
		return common.SendServerError(c, "Failed to upload image: "+err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Image uploaded successfully",
		"image":   img,
	})
}

// UploadSubscriptionImage handles POST /v1/subscriptions/:id/images
func (h *ClientHandlers) UploadSubscriptionImage(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetTrainerIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	subscriptionID, err := common.ValidateUUID(c.Param("id"), "subscription id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "Image file is required")
	}
	if file.Size > maxImageSize {
		return common.SendValidationError(c, "image", "File size exceeds maximum limit of 5MB")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return common.SendValidationError(c, "image", "Invalid file type. Only JPEG, PNG and WebP images are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to open image file")
	}
	defer src.Close()

	img, err := h.clientService.UploadSubscriptionImage(ctx, subscriptionID, file.Filename, src, file.Size, contentType)
	if err != nil {
		return common.SendServerError(c, "Failed to upload image: "+err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Image uploaded successfully",
		"image":   img,
	})
}

// GetTransactionImageURL handles GET /v1/clients/:id/images/:imageId/url
func (h *ClientHandlers) GetTransactionImageURL(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetTrainerIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	imageID, err := common.ValidateUUID(c.Param("imageId"), "image id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.clientService.GetTransactionImageURL(ctx, imageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "image")
		}
		return common.SendServerError(c, "Failed to generate download URL: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"url": url,
	})
}
