package question

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/render"
	"github.com/gokatarajesh/trivia-api/pkg/http/request"
)

// CategoryMapper supplies the category mapping attached to question listings.
type CategoryMapper interface {
	Map(ctx context.Context) (category.Map, error)
}

// HTTPHandler provides the question endpoints.
type HTTPHandler struct {
	svc        *Service
	categories CategoryMapper
}

func NewHTTPHandler(svc *Service, categories CategoryMapper) *HTTPHandler {
	return &HTTPHandler{svc: svc, categories: categories}
}

type listResponse struct {
	Success         bool         `json:"success"`
	Questions       []Question   `json:"questions"`
	TotalQuestions  int          `json:"total_questions"`
	Categories      category.Map `json:"categories"`
	CurrentCategory *int         `json:"current_category"`
}

type filteredResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *int       `json:"current_category"`
}

type createResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

type deleteResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// List handles GET /questions?page=N
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	page, err := h.svc.List(ctx, PageFromQuery(r.URL.Query()))
	if err != nil {
		if !errors.Is(err, ErrNoResults) {
			logger.Error().Err(err).Msg("list questions failed")
		}
		httperrors.RespondNotFound(w)
		return
	}

	categories, err := h.categories.Map(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("load categories failed")
		httperrors.RespondNotFound(w)
		return
	}

	render.JSON(w, http.StatusOK, listResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     categories,
	})
}

// ListByCategory handles GET /categories/{categoryID}/questions?page=N
func (h *HTTPHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := ParseID(chi.URLParam(r, "categoryID"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	page, err := h.svc.ListByCategory(r.Context(), categoryID, PageFromQuery(r.URL.Query()))
	if err != nil {
		if !errors.Is(err, ErrNoResults) {
			logging.FromContext(r.Context()).Error().Err(err).Int("category", categoryID).Msg("list questions by category failed")
		}
		httperrors.RespondNotFound(w)
		return
	}

	render.JSON(w, http.StatusOK, filteredResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: &categoryID,
	})
}

// Search handles POST /questions/search?page=N
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	page, err := h.svc.Search(r.Context(), req.SearchTerm, PageFromQuery(r.URL.Query()))
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			httperrors.RespondNotFound(w)
			return
		}
		logging.FromContext(r.Context()).Error().Err(err).Msg("search questions failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	render.JSON(w, http.StatusOK, filteredResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

// Create handles POST /questions
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	q, err := h.svc.Create(r.Context(), req)
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("create question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	render.JSON(w, http.StatusOK, createResponse{Success: true, Created: q.ID})
}

// Delete handles DELETE /questions/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		// not-found and failed deletes share 422 on the wire
		if errors.Is(err, ErrQuestionNotFound) {
			logger.Info().Int("question_id", id).Msg("delete of unknown question")
		} else {
			logger.Error().Err(err).Int("question_id", id).Msg("delete question failed")
		}
		httperrors.RespondUnprocessable(w)
		return
	}

	render.JSON(w, http.StatusOK, deleteResponse{Success: true, Deleted: id})
}

// ParseID parses a path id. Ids are 32-bit in the store, so larger values are rejected.
func ParseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func respondDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, request.ErrInvalidField) {
		httperrors.RespondUnprocessable(w)
		return
	}
	httperrors.RespondBadRequest(w)
}
