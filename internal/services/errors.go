// Package services holds the Q&A business operations. Services work against
// narrow store interfaces and return apperror values for every predictable
// failure so the HTTP layer can translate them in one place.
package services

import (
	"errors"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/store"
)

// notFound converts the store's sentinel into the taxonomy error for id.
// Other errors pass through unchanged.
func notFound(id domain.QuestionID, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.QuestionNotFound(string(id), err)
	}
	return err
}
