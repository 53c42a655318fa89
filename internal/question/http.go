package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes the question, category-question and quiz endpoints.
type HTTPHandler struct {
	svc        *Service
	categories CategoryLookup
	logger     zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, categories CategoryLookup, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:        svc,
		categories: categories,
		logger:     logger.With().Str("component", "question_http").Logger(),
	}
}

type postQuestionsRequest struct {
	Search     *string  `json:"search"`
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *flexInt `json:"category"`
	Difficulty *flexInt `json:"difficulty"`
}

type quizRequest struct {
	QuizCategory      *quizCategory `json:"quiz_category"`
	PreviousQuestions *[]flexInt    `json:"previous_questions"`
}

type quizCategory struct {
	ID *flexInt `json:"id"`
}

// HandleList handles GET /questions?page=n
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContextOr(ctx, h.logger)

	listing, err := h.svc.List(ctx, pageOf(r))
	if err != nil {
		log.Error().Err(err).Msg("list questions failed")
		httperrors.RespondInternalError(w)
		return
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"questions":        listing.Questions,
		"total_questions":  listing.Total,
		"current_category": nil,
		"categories":       categories,
	})
}

// HandleGet handles GET /questions/{id}
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	q, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		log := logging.FromContextOr(r.Context(), h.logger)
		log.Error().Err(err).Int64("question_id", id).Msg("get question failed")
		httperrors.RespondInternalError(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"question": q,
	})
}

// HandleDelete handles DELETE /questions/{id}
func (h *HTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	listing, err := h.svc.Delete(r.Context(), id, pageOf(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		log := logging.FromContextOr(r.Context(), h.logger)
		log.Error().Err(err).Int64("question_id", id).Msg("delete question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"deleted":         id,
		"questions":       listing.Questions,
		"total_questions": listing.Total,
	})
}

// HandlePost handles POST /questions. A non-null "search" key runs a search;
// anything else is treated as a create.
func (h *HTTPHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req postQuestionsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		if isMalformedJSON(err) {
			httperrors.RespondBadRequest(w)
			return
		}
		httperrors.RespondUnprocessable(w)
		return
	}

	if req.Search != nil {
		h.search(w, r, *req.Search)
		return
	}
	h.create(w, r, CreateInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.int64Ptr(),
		Difficulty: req.Difficulty.int64Ptr(),
	})
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, term string) {
	listing, err := h.svc.Search(r.Context(), term, pageOf(r))
	if err != nil {
		log := logging.FromContextOr(r.Context(), h.logger)
		log.Error().Err(err).Str("term", term).Msg("search questions failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"questions":       listing.Questions,
		"total_questions": listing.Total,
	})
}

func (h *HTTPHandler) create(w http.ResponseWriter, r *http.Request, in CreateInput) {
	log := logging.FromContextOr(r.Context(), h.logger)

	created, listing, err := h.svc.Create(r.Context(), in, pageOf(r))
	if err != nil {
		if errors.Is(err, ErrUnprocessable) {
			log.Debug().Err(err).Msg("create question rejected")
		} else {
			log.Error().Err(err).Msg("create question failed")
		}
		httperrors.RespondUnprocessable(w)
		return
	}

	log.Info().Int64("question_id", created.ID).Int64("category", created.Category).Msg("question created")
	httperrors.RespondSuccess(w, map[string]interface{}{
		"created":         created.ID,
		"questions":       listing.Questions,
		"total_questions": listing.Total,
	})
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=n
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContextOr(ctx, h.logger)

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	current, listing, err := h.svc.ListByCategory(ctx, id, pageOf(r))
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		log.Error().Err(err).Int64("category_id", id).Msg("list category questions failed")
		httperrors.RespondInternalError(w)
		return
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"questions":        listing.Questions,
		"total_questions":  listing.Total,
		"current_category": current,
		"categories":       categories,
	})
}

// HandleQuiz handles POST /quizzes
func (h *HTTPHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	if req.QuizCategory == nil || req.QuizCategory.ID == nil || req.PreviousQuestions == nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	previous := make([]int64, 0, len(*req.PreviousQuestions))
	for _, id := range *req.PreviousQuestions {
		previous = append(previous, int64(id))
	}
	categoryID := int64(*req.QuizCategory.ID)

	next, err := h.svc.NextQuizQuestion(r.Context(), categoryID, previous)
	if err != nil {
		log := logging.FromContextOr(r.Context(), h.logger)
		log.Error().Err(err).Int64("category_id", categoryID).Msg("quiz turn failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"question": next,
	})
}

func pageOf(r *http.Request) int {
	return ParsePage(r.URL.Query().Get("page"))
}

// pathID parses {id}; non-integers are reported as not found, like an unmatched route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func isMalformedJSON(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
