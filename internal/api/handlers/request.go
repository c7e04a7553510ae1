package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// ErrInvalidRequest возвращается, когда тело или параметры запроса не прошли проверку
var ErrInvalidRequest = domain.NewError(domain.ErrValidation, "InvalidRequest", "invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct проверяет теги validate у модели запроса
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(details, "; "))
}

// PathID извлекает положительный числовой параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidRequest, name)
	}
	return id, nil
}

// QueryString возвращает параметр запроса или nil, если он пуст
func QueryString(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}

// QueryID возвращает положительный числовой параметр запроса или nil, если он пуст
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	id, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidRequest, name)
	}
	return &id, nil
}
