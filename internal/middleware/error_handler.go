package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-scheme-engine/internal/engine"
)

type ErrorResponse struct {
	Error      string   `json:"error"`
	Details    string   `json:"details,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// MapError translates engine and database errors into HTTP statuses.
// Business outcomes (not operational, not compatible) never reach this path;
// they are 200-class payloads carrying false plus reasons.
func MapError(err error) (int, ErrorResponse) {
	var cfgErr *engine.ConfigurationError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest, ErrorResponse{
			Error:      "invalid scheme configuration",
			Violations: cfgErr.Violations,
		}
	}

	if errors.Is(err, engine.ErrInvalidAmount) || errors.Is(err, engine.ErrAmountOutOfLimits) {
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "scheme not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23503": // foreign_key_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "referenced resource does not exist",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
