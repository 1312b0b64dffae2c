package questions

import (
	"errors"
	"log/slog"
	"net/http"

	"vetbook-service/api"
	"vetbook-service/pkg/response"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type QuestionsProvider interface {
	TriageQuestions(req *api.TriageQuestionsRequest) (*api.TriageQuestionsResponse, error)
}

type Request struct {
	api.TriageQuestionsRequest
}

type Response struct {
	response.Response
	api.TriageQuestionsResponse
}

func New(log *slog.Logger, provider QuestionsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.triage.questions.New"

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

		questions, err := provider.TriageQuestions(&req.TriageQuestionsRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("symptom selection is empty")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "select at least one symptom or describe one"))
			return
		}

		if err != nil {
			log.Error("Failed to build questions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build questions"))
			return
		}

		log.Info("Questions built", slog.Int("groups", len(questions.Groups)))

		render.JSON(w, r, Response{
			TriageQuestionsResponse: *questions,
		})
	}
}
