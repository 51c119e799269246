package resolvetemplateconfig

import (
	"context"
	"errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"storefront-workers/internal/common/camunda"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	tmpl "storefront-workers/internal/storefront/template"
)

const (
	TaskType = "resolve-template-config"
)

type Handler struct {
	config   *Config
	resolver *tmpl.Resolver
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, resolver *tmpl.Resolver, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		resolver: resolver,
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

	templateID := h.resolver.Normalize(input.TemplateID)
	out := &Output{
		TemplateID: templateID,
		Normalized: templateID != input.TemplateID,
		Source:     "default",
	}

	var override *tmpl.Configuration
	if len(input.Override) > 0 && string(input.Override) != "null" {
		parsed, err := tmpl.Parse(input.Override)
		if err != nil {
			var invalid *tmpl.InvalidConfigError
			if errors.As(err, &invalid) {
				return nil, apperrors.NewTemplateConfigInvalidError(invalid.TemplateID, invalid.Problems)
			}
			return nil, apperrors.NewTemplateConfigInvalidError(input.TemplateID, []string{err.Error()})
		}
		override = h.resolver.Bind(parsed)
		out.Source = "override"
	}

	out.Configuration = h.resolver.GetConfig(templateID, override)
	h.logger.Debug("template configuration resolved", map[string]interface{}{
		"requestedId": input.TemplateID,
		"templateId":  templateID,
		"source":      out.Source,
		"sections":    len(out.Configuration.Sections),
	})
	return out, nil
}
