package selecttemplate

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"storefront-workers/internal/common/camunda"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/models"
	"storefront-workers/internal/storefront/selection"
)

const (
	TaskType = "select-template"
)

type Handler struct {
	config   *Config
	strategy *selection.Strategy
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, strategy *selection.Strategy, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		strategy: strategy,
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

// Execute never rejects an unknown template id; the strategy falls back instead.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	storeValue := input.StoreThemeOrTemplate
	if storeValue == "" {
		storeValue = (&models.Store{Theme: input.Theme, TemplatePreference: input.TemplatePreference}).ThemeOrTemplate()
	}
	fallback := input.FallbackTemplateID
	if fallback == "" {
		fallback = h.config.DefaultFallbackID
	}

	sel := h.strategy.Select(input.ExplicitTemplateID, storeValue, fallback)
	h.logger.Info("template selected", map[string]interface{}{
		"storeSlug":  input.StoreSlug,
		"templateId": sel.TemplateID,
		"source":     string(sel.Source),
	})
	return &Output{
		SelectedTemplateID: sel.TemplateID,
		SelectionSource:    string(sel.Source),
	}, nil
}
