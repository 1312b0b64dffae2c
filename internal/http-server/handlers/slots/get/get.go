package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/internal/models"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SlotsProvider interface {
	AvailableSlots(ctx context.Context, clinicSlug string) ([]models.TimeSlot, error)
}

type Response struct {
	response.Response
	api.SlotsResponse
}

func New(log *slog.Logger, provider SlotsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			log.Error("slug is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "slug is required"))
			return
		}

		slots, err := provider.AvailableSlots(r.Context(), slug)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("clinic not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "clinic not found"))
			return
		}

		if err != nil {
			log.Error("Failed to compute slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to compute slots"))
			return
		}

		log.Info("Slots computed", slog.Int("count", len(slots)))

		render.JSON(w, r, Response{
			SlotsResponse: api.SlotsResponse{Slots: slots},
		})
	}
}
