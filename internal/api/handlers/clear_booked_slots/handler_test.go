package clear_booked_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/lab-booking-service/internal/api/handlers"
	"github.com/m04kA/lab-booking-service/internal/api/middleware"
	"github.com/m04kA/lab-booking-service/internal/usecase/clear_booked_slots"
	"github.com/m04kA/lab-booking-service/pkg/logger"
)

type stubUseCase struct {
	got  *clear_booked_slots.Request
	resp *clear_booked_slots.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *clear_booked_slots.Request) (*clear_booked_slots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func send(h *Handler, body string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/lab/bookings/clear-bulk", strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), "admin"))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandlePartialSuccessIsOK(t *testing.T) {
	uc := &stubUseCase{resp: &clear_booked_slots.Response{
		MatchedCount: 3,
		ClearedCount: 2,
		Errors: []clear_booked_slots.ClearError{
			{BookingID: 9, PCID: 2, TimeSlot: "14:00-15:30", Reason: "StorageError", Message: "storage error"},
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := send(h, `{"date":"2024-06-01","timeSlot":"14:00-15:30","pcIds":[1,2,3],"confirmClear":true}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "admin", uc.got.Actor)
	assert.Equal(t, []int64{1, 2, 3}, uc.got.PCIDs)
	assert.True(t, uc.got.ConfirmClear)

	var resp clear_booked_slots.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.MatchedCount)
	assert.Equal(t, 2, resp.ClearedCount)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, int64(9), resp.Errors[0].BookingID)
}

func TestHandleEmptyErrorsList(t *testing.T) {
	h := NewHandler(&stubUseCase{resp: &clear_booked_slots.Response{}}, logger.NewNop())

	rec := send(h, `{"date":"2024-06-01","timeSlot":"all","confirmClear":true}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors":[]`)
}

func TestHandleConfirmationRequired(t *testing.T) {
	h := NewHandler(&stubUseCase{err: clear_booked_slots.ErrConfirmationRequired}, logger.NewNop())

	rec := send(h, `{"date":"2024-06-01","timeSlot":"all"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ConfirmationRequired", resp.Code)
}

func TestHandleRequiresUser(t *testing.T) {
	uc := &stubUseCase{}
	rec := send(NewHandler(uc, logger.NewNop()), `{"date":"2024-06-01","timeSlot":"all","confirmClear":true}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
