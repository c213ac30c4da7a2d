package quiz

import (
	"errors"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/render"
	"github.com/gokatarajesh/trivia-api/pkg/http/request"
)

// HTTPHandler provides the quiz endpoint.
type HTTPHandler struct {
	selector *Selector
}

func NewHTTPHandler(selector *Selector) *HTTPHandler {
	return &HTTPHandler{selector: selector}
}

type nextResponse struct {
	Success  bool               `json:"success"`
	Question *question.Question `json:"question"`
}

// Next handles POST /quizzes
func (h *HTTPHandler) Next(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := request.DecodeJSON(w, r, &req); err != nil {
		selections.WithLabelValues("rejected").Inc()
		httperrors.RespondUnprocessable(w)
		return
	}

	q, err := h.selector.Next(r.Context(), req)
	if err != nil {
		if !errors.Is(err, ErrMissingCategory) {
			logging.FromContext(r.Context()).Error().Err(err).Msg("select quiz question failed")
		}
		httperrors.RespondUnprocessable(w)
		return
	}

	render.JSON(w, http.StatusOK, nextResponse{Success: true, Question: q})
}
