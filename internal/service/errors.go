package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// updateErr wraps a repo update failure. A bare ErrNotFound means the row was
// deleted after the caller read it, which Save reports as a not-found
// validation failure naming the entity.
func updateErr(op, entity string, id uuid.UUID, err error) error {
	var ve *domain.ValidationError
	if errors.Is(err, domain.ErrNotFound) && !errors.As(err, &ve) {
		return fmt.Errorf("%s: %w", op, domain.Invalid(domain.KindNotFound, "id", "%s with id %s not found", entity, id))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// parentErr converts a failed parent lookup into the referential error raised
// when a child names a parent that does not exist.
func parentErr(op, entity, field string, id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, domain.Invalid(domain.KindNotFound, field, "%s with id %s not found", entity, id))
	}
	return fmt.Errorf("%s: %w", op, err)
}
