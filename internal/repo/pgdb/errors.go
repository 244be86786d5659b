package pgdb

import (
	"errors"

	"auction-management-api/internal/repo/repo_errors"

	"github.com/lib/pq"
)

const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	uniqueViolationCode      = "23505"
)

// classifyPgError maps driver-level failures onto repo sentinels; anything
// it does not recognize passes through unchanged.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case serializationFailureCode, deadlockDetectedCode:
			return repo_errors.ErrSerialization
		case uniqueViolationCode:
			return repo_errors.ErrAlreadyExists
		}
	}

	return err
}
