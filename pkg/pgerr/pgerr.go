package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// UniqueViolation SQLSTATE нарушения уникального индекса
const UniqueViolation = "23505"

// IsUniqueViolation возвращает имя нарушенного ограничения, если err - нарушение уникальности
func IsUniqueViolation(err error) (constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == UniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
