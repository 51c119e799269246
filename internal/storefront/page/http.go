package page

import (
	"context"
	"net/http"
	"strconv"

	apperrors "storefront-workers/internal/common/errors"
	apphttp "storefront-workers/internal/common/http"
	"storefront-workers/internal/common/logger"
)

// Renderer is the page surface the HTTP handler serves.
type Renderer interface {
	Render(ctx context.Context, req Request) (*Page, error)
}

// HTTPHandler serves GET /v1/storefronts/{slug}/page.
type HTTPHandler struct {
	renderer Renderer
	logger   logger.Logger
}

func NewHTTPHandler(renderer Renderer, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{renderer: renderer, logger: log}
}

// Register mounts the page route on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/storefronts/{slug}/page", h.ServeHTTP)
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := Request{
		StoreSlug:          r.PathValue("slug"),
		TemplateID:         q.Get("template"),
		FallbackTemplateID: q.Get("fallback"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			apphttp.WriteError(w, apperrors.NewInvalidInputError("limit must be a non-negative integer"))
			return
		}
		req.ProductLimit = limit
	}

	page, err := h.renderer.Render(r.Context(), req)
	if err != nil {
		h.logger.Warn("page render failed", map[string]interface{}{
			"storeSlug": req.StoreSlug,
			"error":     err,
		})
		apphttp.WriteError(w, err)
		return
	}
	apphttp.WriteJSON(w, http.StatusOK, page)
}
