package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondDomainError(t *testing.T) {
	slotOccupied := domain.NewError(domain.ErrConflict, "SlotOccupied", "slot is already booked")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantCode   string
	}{
		{name: "validation", err: domain.ErrInvalidSlot, wantStatus: http.StatusBadRequest, wantKind: "ValidationError", wantCode: "InvalidTimeSlot"},
		{name: "wrapped conflict", err: fmt.Errorf("%w: CS-01", slotOccupied), wantStatus: http.StatusConflict, wantKind: "ConflictError", wantCode: "SlotOccupied"},
		{name: "not found", err: domain.NewError(domain.ErrNotFound, "PCNotFound", "pc not found"), wantStatus: http.StatusNotFound, wantKind: "NotFoundError", wantCode: "PCNotFound"},
		{name: "storage", err: fmt.Errorf("%w: dial tcp", domain.ErrStorage), wantStatus: http.StatusServiceUnavailable, wantKind: "StorageError", wantCode: "StorageError"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantKind: "InternalError", wantCode: "InternalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantKind, body.Error)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
			assert.NotContains(t, body.Message, "dial tcp")
		})
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"x"}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Date  string  `validate:"required"`
		PCIDs []int64 `validate:"dive,gt=0"`
	}

	assert.NoError(t, ValidateStruct(request{Date: "2024-06-01", PCIDs: []int64{1}}))

	err := ValidateStruct(request{PCIDs: []int64{0}})
	require.Error(t, err)
	assert.True(t, domain.KindOf(err) == "ValidationError")
	assert.Equal(t, "InvalidRequest", domain.CodeOf(err))
	assert.Contains(t, err.Error(), "Date")
}

func TestPathIDAndQueryID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/?pc=7", nil), map[string]string{"bookingId": "42"})

	id, err := PathID(r, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathID(r, "pcId")
	assert.Error(t, err)

	pc, err := QueryID(r, "pc")
	require.NoError(t, err)
	require.NotNil(t, pc)
	assert.Equal(t, int64(7), *pc)

	missing, err := QueryID(r, "date")
	require.NoError(t, err)
	assert.Nil(t, missing)

	r = httptest.NewRequest(http.MethodGet, "/?pc=abc", nil)
	_, err = QueryID(r, "pc")
	assert.Error(t, err)
}
