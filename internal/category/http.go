package category

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the category endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a category HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "category_http").Logger(),
	}
}

// HandleList handles GET /categories
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		log := logging.FromContextOr(r.Context(), h.logger)
		log.Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}

// HandleGet handles GET /categories/{id}
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		log := logging.FromContextOr(r.Context(), h.logger)
		log.Error().Err(err).Int64("category_id", id).Msg("get category failed")
		httperrors.RespondInternalError(w)
		return
	}

	httperrors.RespondSuccess(w, map[string]interface{}{
		"id":   c.ID,
		"type": c.Type,
	})
}
