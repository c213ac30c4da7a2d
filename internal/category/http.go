package category

import (
	"errors"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/render"
)

// HTTPHandler exposes the category listing.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type listResponse struct {
	Success    bool `json:"success"`
	Categories Map  `json:"categories"`
}

// List handles GET /categories.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		if !errors.Is(err, ErrNoCategories) {
			logging.FromContext(r.Context()).Error().Err(err).Msg("list categories failed")
		}
		httperrors.RespondNotFound(w)
		return
	}

	render.JSON(w, http.StatusOK, listResponse{
		Success:    true,
		Categories: MapOf(categories),
	})
}
