package domain

import "errors"

// Error kinds. Every error returned across package boundaries wraps exactly one of them.
var (
	ErrValidation = errors.New("ValidationError")
	ErrConflict   = errors.New("ConflictError")
	ErrNotFound   = errors.New("NotFoundError")
	ErrStorage    = errors.New("StorageError")
)

// Error is a coded error of a given kind. Package sentinels are *Error values,
// so errors.Is matches both the sentinel itself and its kind.
type Error struct {
	kind    error
	Code    string
	Message string
}

// NewError creates a coded error of the given kind.
func NewError(kind error, code, message string) *Error {
	return &Error{kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the error kind.
func (e *Error) Kind() error {
	return e.kind
}

// KindOf returns the kind name of err ("ValidationError", "ConflictError", "NotFoundError",
// "StorageError") or an empty string when err carries no known kind.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation.Error()
	case errors.Is(err, ErrConflict):
		return ErrConflict.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrStorage):
		return ErrStorage.Error()
	default:
		return ""
	}
}

// CodeOf returns the machine-readable code of the outermost coded error in the chain,
// falling back to the kind name.
func CodeOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return KindOf(err)
}

// Domain validation errors shared by every layer.
var (
	ErrInvalidPCNumber       = NewError(ErrValidation, "InvalidPCNumber", "pc number must look like CS-01")
	ErrInvalidRowNumber      = NewError(ErrValidation, "InvalidRowNumber", "row number must be between 1 and 4")
	ErrInvalidPCStatus       = NewError(ErrValidation, "InvalidPCStatus", "pc status must be active, maintenance or inactive")
	ErrInvalidDate           = NewError(ErrValidation, "InvalidDate", "date must be in YYYY-MM-DD format")
	ErrInvalidSlot           = NewError(ErrValidation, "InvalidTimeSlot", "unknown time slot")
	ErrInvalidPriority       = NewError(ErrValidation, "InvalidPriority", "priority must be normal, high or urgent")
	ErrInvalidStatus         = NewError(ErrValidation, "InvalidStatus", "unknown booking status")
	ErrInvalidBookedFor      = NewError(ErrValidation, "InvalidBookedFor", "set at most one of student, teacher or batch, or a free-text bookedFor")
	ErrBookedForTooLong      = NewError(ErrValidation, "BookedForTooLong", "bookedFor is too long")
	ErrBookedForRefTooLong   = NewError(ErrValidation, "BookedForRefTooLong", "student, teacher or batch reference must be at most 64 characters")
	ErrActorTooLong          = NewError(ErrValidation, "ActorTooLong", "actor identity must be at most 64 characters")
	ErrIdempotencyKeyTooLong = NewError(ErrValidation, "IdempotencyKeyTooLong", "idempotency key must be at most 128 characters")
	ErrPurposeTooLong        = NewError(ErrValidation, "PurposeTooLong", "purpose is too long")
	ErrTeacherNameTooLong    = NewError(ErrValidation, "TeacherNameTooLong", "teacher name is too long")
	ErrNotesTooLong          = NewError(ErrValidation, "NotesTooLong", "notes must be at most 500 characters")
	ErrInvalidTransition     = NewError(ErrConflict, "InvalidStatusTransition", "booking status transition is not allowed")
)
