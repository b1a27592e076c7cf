package films

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/oscars/internal/query"
	"github.com/HerbHall/oscars/internal/server"
	"github.com/HerbHall/oscars/pkg/models"
)

// ContentType is the media type of every successful films response.
const ContentType = "application/json; charset=UTF-8"

// QueryResponse is the response for GET /api/v1/collections/{collection}/films.
type QueryResponse struct {
	Result []models.Film `json:"result"`
}

// CollectionsResponse is the response for GET /api/v1/collections.
type CollectionsResponse struct {
	Result []string `json:"result"`
}

// Handler serves the films query API.
type Handler struct {
	service *Service
	metrics *Metrics
	logger  *zap.Logger
}

// NewHandler creates a new films API handler.
func NewHandler(service *Service, metrics *Metrics, logger *zap.Logger) *Handler {
	return &Handler{service: service, metrics: metrics, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/collections", h.handleListCollections)
	mux.HandleFunc("GET /api/v1/collections/{collection}/films", h.handleQueryFilms)
}

// handleQueryFilms returns the films of a collection matching the query.
//
//	@Summary		Query films
//	@Description	Filters a film collection, sorts the matches ascending and truncates them to an optional limit. All filters combine with AND.
//	@Tags			films
//	@Produce		json
//	@Param			collection path string true "Collection name" example(oscars)
//	@Param			title query string false "Exact title, case-insensitive"
//	@Param			year query int false "Exact year"
//	@Param			minYear query int false "Inclusive lower bound on year"
//	@Param			maxYear query int false "Inclusive upper bound on year"
//	@Param			minAwards query int false "Inclusive lower bound on awards"
//	@Param			maxAwards query int false "Inclusive upper bound on awards"
//	@Param			nominations query int false "Exact number of nominations"
//	@Param			isBestPicture query bool false "Best picture winner"
//	@Param			sortBy query string false "Sort key" Enums(title, year, awards, nominations) default(title)
//	@Param			limit query int false "Maximum number of results" minimum(0)
//	@Success		200 {object} QueryResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Failure		503 {object} server.Problem
//	@Router			/collections/{collection}/films [get]
func (h *Handler) handleQueryFilms(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	collection := r.PathValue("collection")

	spec, err := query.Parse(r.URL.Query())
	if err != nil {
		var ipe *query.InvalidParameterError
		if errors.As(err, &ipe) {
			// The collection is not resolved yet, so it is not used as a label.
			h.metrics.observeQuery("", OutcomeInvalidParameter, started, 0)
			server.InvalidParameter(w, ipe.Key, ipe.Error(), r.URL.Path)
			return
		}
		h.logger.Error("failed to parse query", zap.Error(err))
		server.InternalError(w, "failed to parse query", r.URL.Path)
		return
	}

	result, err := h.service.Query(r.Context(), collection, spec)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrCollectionNotFound):
		// Unknown names are not used as label values either.
		h.metrics.observeQuery("", OutcomeNotFound, started, 0)
		server.NotFound(w, "collection "+collection+" not found", r.URL.Path)
		return
	case errors.Is(err, query.ErrSourceUnavailable):
		h.logger.Error("failed to load collection",
			zap.String("collection", collection),
			zap.Error(err),
		)
		h.metrics.observeQuery(collection, OutcomeSourceUnavailable, started, 0)
		server.SourceUnavailable(w, "collection "+collection+" could not be read", r.URL.Path)
		return
	default:
		h.logger.Error("film query failed", zap.String("collection", collection), zap.Error(err))
		server.InternalError(w, "film query failed", r.URL.Path)
		return
	}

	h.metrics.observeQuery(collection, OutcomeOK, started, len(result))
	h.logger.Debug("film query served",
		zap.String("collection", collection),
		zap.String("query", r.URL.RawQuery),
		zap.Int("results", len(result)),
	)
	writeJSON(w, http.StatusOK, QueryResponse{Result: result})
}

// handleListCollections returns the names of all collections.
//
//	@Summary		List collections
//	@Description	Returns the names of the film collections that can be queried.
//	@Tags			films
//	@Produce		json
//	@Success		200 {object} CollectionsResponse
//	@Failure		503 {object} server.Problem
//	@Router			/collections [get]
func (h *Handler) handleListCollections(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Collections(r.Context())
	if err != nil {
		h.logger.Error("failed to list collections", zap.Error(err))
		server.SourceUnavailable(w, "collections could not be listed", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, CollectionsResponse{Result: names})
}

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
