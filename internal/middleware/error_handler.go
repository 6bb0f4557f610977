package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/tender-pricing-engine/internal/pricing"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError translates domain and database errors to HTTP responses.
// Simulation failures keep their taxonomy: bad input is the caller's
// fault, an unresolvable plan is unprocessable, an unreadable catalog is
// a dependency outage.
func MapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, pricing.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid input", Details: err.Error()}
	case errors.Is(err, pricing.ErrPlanNotFound):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "financing plan not found", Details: err.Error()}
	case errors.Is(err, pricing.ErrDataUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "catalog unavailable"}
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
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
