package advice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AdviceProvider interface {
	Advice(ctx context.Context, bookingID string) (string, error)
}

type Response struct {
	response.Response
	api.AdviceResponse
}

func New(log *slog.Logger, provider AdviceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.advice.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		text, err := provider.Advice(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("booking not found", slog.String("booking_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
			return
		}

		// advice is display-only; an unavailable model is not an error state
		if err != nil {
			log.Warn("Advice unavailable", sl.Err(err))
			render.JSON(w, r, Response{
				AdviceResponse: api.AdviceResponse{Available: false},
			})
			return
		}

		log.Info("Advice retrieved", slog.String("booking_id", id))

		render.JSON(w, r, Response{
			AdviceResponse: api.AdviceResponse{Advice: text, Available: true},
		})
	}
}
