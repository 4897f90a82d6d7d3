package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ashureev/mirror/internal/mirror"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// defaultMaxRequestBodySize is the default maximum allowed request body size (1MB).
const defaultMaxRequestBodySize = 1 << 20

const internalErrorMessage = "Something went wrong. Try again in a moment."

// ChatHandler exposes the classification pipeline over HTTP.
type ChatHandler struct {
	pipeline    *mirror.Pipeline
	model       string
	maxBodySize int64
	logger      *slog.Logger
}

// NewChatHandler creates a chat handler. A non-positive maxBodySize uses the default.
func NewChatHandler(pipeline *mirror.Pipeline, model string, maxBodySize int64, logger *slog.Logger) *ChatHandler {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxRequestBodySize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{
		pipeline:    pipeline,
		model:       model,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// RegisterRoutes registers chat routes.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.HandleChat)
		r.Get("/config", h.GetConfig)
	})
}

// HandleChat handles POST /api/chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	reqID := chiMiddleware.GetReqID(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.pipeline.Handle(r.Context(), body)
	if err != nil {
		var verr *mirror.ValidationError
		switch {
		case errors.As(err, &verr):
			JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Invalid request",
				"details": verr.Fields,
			})
		case errors.Is(err, mirror.ErrMissingUserMessage):
			Error(w, http.StatusBadRequest, "Missing user message")
		default:
			h.logger.Error("Chat route error", "error", err, "request_id", reqID)
			JSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Internal server error",
				"message": internalErrorMessage,
			})
		}
		return
	}

	h.logger.Info("Chat classified",
		"request_id", reqID,
		"outcome", result.Outcome,
		"bucket", result.Response.Bucket,
		"crisis", result.Response.Crisis,
	)
	JSON(w, http.StatusOK, result.Response)
}

// GetConfig returns the pipeline configuration for the frontend.
func (h *ChatHandler) GetConfig(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"model":          h.model,
		"digest_enabled": h.pipeline.IncludesDigest(),
		"prompt_version": mirror.PromptVersion,
	})
}
