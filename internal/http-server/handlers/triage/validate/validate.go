package validate

import (
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Validator interface {
	ValidateTriage(req *api.TriageValidateRequest) *api.TriageValidateResponse
}

type Request struct {
	api.TriageValidateRequest
}

type Response struct {
	response.Response
	api.TriageValidateResponse
}

func New(log *slog.Logger, validator Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.triage.validate.New"

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

		result := validator.ValidateTriage(&req.TriageValidateRequest)

		log.Info("Triage validated",
			slog.Bool("can_proceed", result.CanProceed),
			slog.Int("missing", len(result.MissingKeys)),
		)

		render.JSON(w, r, Response{
			TriageValidateResponse: *result,
		})
	}
}
