package clipboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/internal/planning"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ClipboardWriter interface {
	CopyToClipboard(ctx context.Context, bookingID, session string, action planning.Action) error
}

type Request struct {
	api.ClipboardRequest
}

type Response struct {
	response.Response
	Action string `json:"action"`
}

func New(log *slog.Logger, writer ClipboardWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.clipboard.New"

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

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if req.Session == "" {
			log.Error("session is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "session is required"))
			return
		}

		action := planning.Action(req.Action)
		if action != planning.ActionCut && action != planning.ActionCopy {
			log.Error("unknown clipboard action", slog.String("action", req.Action))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "action must be cut or copy"))
			return
		}

		err := writer.CopyToClipboard(r.Context(), id, req.Session, action)

		if errors.Is(err, response.ErrValidation) {
			log.Error("booking cannot go on the clipboard", slog.String("booking_id", id))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "blocked slots cannot be cut or copied"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("booking not found", slog.String("booking_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "booking not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update clipboard", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update clipboard"))
			return
		}

		log.Info("Clipboard updated", slog.String("booking_id", id), slog.String("action", req.Action))

		render.JSON(w, r, Response{
			Action: req.Action,
		})
	}
}
