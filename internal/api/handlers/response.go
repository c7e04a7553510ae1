package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgStorageError  = "хранилище временно недоступно"
	msgUnauthorized  = "требуется заголовок X-User-ID"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку с явным статусом, видом и кодом
func RespondError(w http.ResponseWriter, status int, kind, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: kind, Code: code, Message: message})
}

// RespondBadRequest отправляет 400 для некорректного запроса
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, domain.ErrValidation.Error(), "InvalidRequest", message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, domain.ErrNotFound.Error(), code, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, "AuthenticationError", "MissingUserID", msgUnauthorized)
}

// RespondInternalError отправляет 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "InternalError", "InternalError", msgInternalError)
}

// StatusOf возвращает HTTP статус для ошибки по ее виду
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отправляет ошибку сервиса или use case
// Детали ошибок хранилища и неизвестных ошибок клиенту не раскрываются
func RespondDomainError(w http.ResponseWriter, err error) {
	status := StatusOf(err)

	switch status {
	case http.StatusInternalServerError:
		RespondInternalError(w)
	case http.StatusServiceUnavailable:
		RespondError(w, status, domain.ErrStorage.Error(), domain.ErrStorage.Error(), msgStorageError)
	default:
		RespondError(w, status, domain.KindOf(err), domain.CodeOf(err), err.Error())
	}
}
