package services

import (
	stderrors "errors"

	"github.com/vytor/vocaquiz/internal/errors"
	"github.com/vytor/vocaquiz/internal/repository"
)

// storeError converts a word store failure into an AppError. Connection and
// credential failures become configuration errors.
func storeError(err error) error {
	if stderrors.Is(err, repository.ErrUnavailable) {
		return errors.NewConfigurationError(err)
	}
	return errors.NewInternalError(err)
}
