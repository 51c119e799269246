package composepage

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"storefront-workers/internal/common/camunda"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/storefront/page"
	tmpl "storefront-workers/internal/storefront/template"
)

const (
	TaskType = "compose-page"
)

type Handler struct {
	config   *Config
	renderer page.Renderer
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, renderer page.Renderer, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		renderer: renderer,
		runner:   camunda.NewJobRunner(TaskType, config.Timeout, obs, log),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}
	if strings.TrimSpace(input.StoreSlug) == "" {
		return nil, apperrors.NewInvalidInputError("storeSlug is required")
	}

	req := page.Request{
		StoreSlug:          input.StoreSlug,
		TemplateID:         input.TemplateID,
		FallbackTemplateID: input.FallbackTemplateID,
		ProductLimit:       input.ProductLimit,
	}
	if hasOverride(input.Override) {
		override, err := tmpl.Parse(input.Override)
		if err != nil {
			var invalid *tmpl.InvalidConfigError
			if errors.As(err, &invalid) {
				return nil, apperrors.NewTemplateConfigInvalidError(invalid.TemplateID, invalid.Problems)
			}
			return nil, apperrors.NewInternalError(err)
		}
		req.Override = override
	}

	p, err := h.renderer.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("page composed", map[string]interface{}{
		"storeSlug":  p.StoreSlug,
		"templateId": p.TemplateID,
		"renderId":   p.RenderID,
		"blocks":     len(p.Blocks),
	})
	return &Output{Page: p, BlockCount: len(p.Blocks)}, nil
}

func hasOverride(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
