package pending

import (
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/pkg/response"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Counter interface {
	Count(clinicID string) int
}

type Response struct {
	response.Response
	api.PendingCountResponse
}

func New(log *slog.Logger, counter Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.counts.pending.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		clinicID := chi.URLParam(r, "id")
		if clinicID == "" {
			log.Error("clinic id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "clinic id is required"))
			return
		}

		count := counter.Count(clinicID)

		log.Info("Pending count read", slog.String("clinic_id", clinicID), slog.Int("pending", count))

		render.JSON(w, r, Response{
			PendingCountResponse: api.PendingCountResponse{
				ClinicID: clinicID,
				Pending:  count,
			},
		})
	}
}
