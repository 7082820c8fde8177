// Package handler holds what the API and web handlers share.
package handler

import (
	"context"
	"errors"

	"StockCast/internal/domain/models"
	xhttp "StockCast/pkg/http"
)

// ToAppError maps pipeline errors onto HTTP statuses.
func ToAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, models.ErrInvalidMonth), errors.Is(err, models.ErrInvalidTicker):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError("no price data found for ticker and month").WithError(err)
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.UnprocessableError("not enough price data to forecast").WithError(err)
	case errors.Is(err, models.ErrSourceUnavailable), errors.Is(err, context.DeadlineExceeded):
		return xhttp.BadGatewayError("price source unavailable").WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}
