package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// postgres unique_violation
const pgUniqueViolation = "23505"

// translate maps a driver or GORM error onto the domain error taxonomy.
// Errors that already are domain errors pass through unchanged.
func translate(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NotFound(resource)
	case isUniqueViolation(err):
		return shared.WrapDomainError(shared.CodeAlreadyExists, resource+" already exists", err)
	}
	return shared.Persistence(op+" "+resource, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	// connections opened without TranslateError
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
