package create_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetbook-service/api"
	"vetbook-service/internal/http-server/handlers/bookings/create"
	"vetbook-service/pkg/response"
)

type stubCreator struct {
	resp *api.BookingResponse
	err  error
	got  *api.BookingRequest
}

func (s *stubCreator) SubmitBooking(_ context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)

	return rec
}

func validBody() map[string]any {
	return map[string]any{
		"clinic_slug":         "happy-paws",
		"appointment_date":    "2026-01-05",
		"appointment_time":    "09:00",
		"client_name":         "Claire Dubois",
		"consultation_reason": "vaccination",
	}
}

func TestCreate_Success(t *testing.T) {
	creator := &stubCreator{resp: &api.BookingResponse{
		ID:     "b-1",
		Status: "pending",
	}}

	rec := post(t, create.New(discardLogger(), creator), validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp create.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.Booking.ID)

	require.NotNil(t, creator.got)
	assert.Equal(t, "happy-paws", creator.got.ClinicSlug)
}

func TestCreate_MissingSlot(t *testing.T) {
	creator := &stubCreator{}

	body := validBody()
	delete(body, "appointment_time")

	rec := post(t, create.New(discardLogger(), creator), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, creator.got)
}

func TestCreate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", response.ErrValidation, http.StatusUnprocessableEntity},
		{"locked", response.ErrLocked, http.StatusLocked},
		{"blocked", response.ErrSlotBlocked, http.StatusConflict},
		{"occupied", response.ErrSlotNotAvailable, http.StatusConflict},
		{"conflict", response.ErrConflict, http.StatusConflict},
		{"not found", response.ErrNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creator := &stubCreator{err: tc.err}

			rec := post(t, create.New(discardLogger(), creator), validBody())

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
