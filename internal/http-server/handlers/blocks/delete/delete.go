package delete

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

type RangeUnblocker interface {
	UnblockRange(ctx context.Context, req *api.BlockRequest) (int, error)
}

type Request struct {
	api.BlockRequest
}

type Response struct {
	response.Response
	Deleted int `json:"deleted"`
}

func New(log *slog.Logger, unblocker RangeUnblocker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blocks.delete.New"

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

		if req.ClinicID == "" || req.VetID == "" || req.Date == "" {
			log.Error("clinic_id, vet_id or date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "clinic_id, vet_id and date are required"))
			return
		}

		deleted, err := unblocker.UnblockRange(r.Context(), &req.BlockRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("time range is empty")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "start_time must be before end_time"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("clinic not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "clinic not found"))
			return
		}

		if err != nil {
			log.Error("Failed to unblock range", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to unblock range"))
			return
		}

		log.Info("Range unblocked", slog.Int("deleted", deleted))

		render.JSON(w, r, Response{
			Deleted: deleted,
		})
	}
}
