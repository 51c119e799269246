package fetchstore

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"storefront-workers/internal/common/camunda"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/storefront/catalog"
)

const (
	TaskType = "fetch-store"
)

type Handler struct {
	config *Config
	stores catalog.StoreFetcher
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, stores catalog.StoreFetcher, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		stores: stores,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, obs, log),
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
	slug := strings.TrimSpace(input.StoreSlug)
	if slug == "" {
		return nil, apperrors.NewInvalidInputError("storeSlug is required")
	}

	store, err := h.stores.FetchStore(ctx, slug)
	if err != nil {
		return nil, catalog.ClassifyError("store", slug, err)
	}

	h.logger.Debug("store fetched", map[string]interface{}{
		"storeSlug":  slug,
		"storeId":    store.ID,
		"categories": len(store.Categories),
	})
	return &Output{
		Store:                store,
		StoreThemeOrTemplate: store.ThemeOrTemplate(),
		HasTemplateConfig:    len(store.TemplateConfig) > 0,
	}, nil
}
