package get_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetbook-service/api"
	"vetbook-service/internal/http-server/handlers/bookings/get"
	"vetbook-service/pkg/response"
)

type stubGetter struct {
	resp *api.BookingResponse
	err  error
}

func (s *stubGetter) GetBooking(_ context.Context, _ string) (*api.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func serve(getter *stubGetter, path string) *httptest.ResponseRecorder {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Get("/bookings/{id}", get.New(log, getter))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestGet_Success(t *testing.T) {
	getter := &stubGetter{resp: &api.BookingResponse{ID: "b-1", Status: "confirmed"}}

	rec := serve(getter, "/bookings/b-1")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp get.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.Booking.ID)
	assert.Equal(t, "confirmed", resp.Booking.Status)
}

func TestGet_NotFound(t *testing.T) {
	getter := &stubGetter{err: response.ErrNotFound}

	rec := serve(getter, "/bookings/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(response.NOT_FOUND), resp.Code)
}
