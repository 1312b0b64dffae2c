package board

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vetbook-service/api"
	"vetbook-service/internal/schedule"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BoardProvider interface {
	PlanningBoard(ctx context.Context, clinicID, fromDate, toDate string) ([]api.BoardEntry, error)
}

type Response struct {
	response.Response
	Entries []api.BoardEntry `json:"entries"`
}

func New(log *slog.Logger, provider BoardProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.board.New"

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

		today := time.Now().Format(schedule.DateLayout)

		from := r.URL.Query().Get("from")
		if from == "" {
			from = today
		}

		to := r.URL.Query().Get("to")
		if to == "" {
			to = from
		}

		entries, err := provider.PlanningBoard(r.Context(), clinicID, from, to)
		if err != nil {
			log.Error("Failed to build planning board", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build planning board"))
			return
		}

		log.Info("Planning board built", slog.Int("entries", len(entries)))

		render.JSON(w, r, Response{
			Entries: entries,
		})
	}
}
