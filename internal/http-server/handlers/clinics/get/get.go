package get

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

type ClinicGetter interface {
	GetClinicBySlug(ctx context.Context, slug string) (*api.ClinicResponse, error)
}

type Response struct {
	response.Response
	Clinic api.ClinicResponse `json:"clinic,omitzero"`
}

func New(log *slog.Logger, getter ClinicGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.clinics.get.New"

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

		clinic, err := getter.GetClinicBySlug(r.Context(), slug)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("clinic not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "clinic not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get clinic", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get clinic"))
			return
		}

		log.Info("Clinic retrieved", slog.String("clinic_id", clinic.ID))

		render.JSON(w, r, Response{
			Clinic: *clinic,
		})
	}
}
