package paste

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type BookingPaster interface {
	PasteBooking(ctx context.Context, req *api.PasteRequest) (*api.BookingResponse, error)
}

type Request struct {
	api.PasteRequest
}

type Response struct {
	response.Response
	Booking api.BookingResponse `json:"booking,omitzero"`
}

func New(log *slog.Logger, paster BookingPaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.paste.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if req.Session == "" {
			log.Error("session is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "session is required"))
			return
		}

		if req.Date == "" || req.Time == "" || req.VetID == "" {
			log.Error("target slot is incomplete")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "appointment_date, appointment_time and vet_id are required"))
			return
		}

		booking, err := paster.PasteBooking(r.Context(), &req.PasteRequest)

		if errors.Is(err, response.ErrClipboardEmpty) {
			log.Error("clipboard is empty", slog.String("session", req.Session))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CLIPBOARD_EMPTY), "clipboard is empty"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("slot is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "slot is locked"))
			return
		}

		if errors.Is(err, response.ErrSlotBlocked) {
			log.Error("slot is blocked")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SLOT_NOT_AVAILABLE), "slot is blocked"))
			return
		}

		if errors.Is(err, response.ErrSlotNotAvailable) || errors.Is(err, response.ErrConflict) {
			log.Error("slot is not available")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SLOT_NOT_AVAILABLE), "slot is not available"))
			return
		}

		if err != nil {
			log.Error("Failed to paste booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to paste booking"))
			return
		}

		log.Info("Booking pasted", slog.String("booking_id", booking.ID))

		render.JSON(w, r, Response{
			Booking: *booking,
		})
	}
}
