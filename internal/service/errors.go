package service

import (
	"errors"

	"github.com/lib/pq"

	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

const uniqueViolation = "23505"

func notFound(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrNotFound, message)
}

func invalid(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}

// invalidPayload wraps a validator failure, keeping per-field messages.
func invalidPayload(err error, message string) *appErrors.Error {
	wrapped := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	return appErrors.WithDetails(wrapped, validation.Details(err))
}

// writeFailed maps repository write errors: stale versions and unique
// violations become conflicts, anything else is internal.
func writeFailed(err error, message string) *appErrors.Error {
	if errors.Is(err, models.ErrStaleVersion) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "resource was modified by another request, reload and retry")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "resource already exists")
	}
	return appErrors.Internal(err, message)
}
