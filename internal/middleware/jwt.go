package middleware

import (
	"net/http"

	"coachcrm/internal/common"
	"coachcrm/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TrainerContext runs after the echo-jwt middleware has verified the token.
// It reads the subject claim, checks the trainer exists and puts the
// trainer id on the request context.
func TrainerContext(trainerRepo repositories.TrainerRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing trainer id in token")
			}

			trainerID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid trainer id format")
			}

			if _, err := trainerRepo.GetByID(c.Request().Context(), trainerID); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Trainer not found")
			}

			ctx := common.WithTrainerID(c.Request().Context(), trainerID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
