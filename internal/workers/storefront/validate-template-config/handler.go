package validatetemplateconfig

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"storefront-workers/internal/common/camunda"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/storefront/alerts"
	"storefront-workers/internal/storefront/component"
	tmpl "storefront-workers/internal/storefront/template"
)

const (
	TaskType = "validate-template-config"
)

// ComponentLookup is the registry query used to find sections that would be skipped.
type ComponentLookup interface {
	Lookup(sectionType, templateID string) (component.Entry, bool)
}

type Handler struct {
	config   *Config
	resolver *tmpl.Resolver
	registry ComponentLookup
	notifier alerts.Notifier
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, resolver *tmpl.Resolver, registry ComponentLookup, notifier alerts.Notifier, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		resolver: resolver,
		registry: registry,
		notifier: notifier,
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

// Execute reports schema violations and unknown template ids as problems, and
// sections that would render nothing as warnings.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}
	if len(input.Configuration) == 0 {
		return nil, apperrors.NewInvalidInputError("configuration is required")
	}

	out := &Output{Problems: []string{}, Warnings: []string{}}
	cfg, err := tmpl.Parse(input.Configuration)
	if err != nil {
		var invalid *tmpl.InvalidConfigError
		if !errors.As(err, &invalid) {
			return nil, apperrors.NewInternalError(err)
		}
		out.TemplateID = invalid.TemplateID
		out.Problems = append(out.Problems, invalid.Problems...)
	} else {
		out.TemplateID = cfg.TemplateID
		h.checkSemantics(cfg, out)
	}
	out.Valid = len(out.Problems) == 0

	if out.Valid {
		h.logger.Info("template configuration valid", map[string]interface{}{
			"storeSlug":  input.StoreSlug,
			"templateId": out.TemplateID,
			"warnings":   len(out.Warnings),
		})
		return out, nil
	}

	h.logger.Warn("template configuration rejected", map[string]interface{}{
		"storeSlug":  input.StoreSlug,
		"templateId": out.TemplateID,
		"problems":   out.Problems,
	})

	if h.config.NotifyOnInvalid && h.notifier != nil {
		delivery, err := h.notifier.NotifyConfigInvalid(ctx, alerts.ConfigAlert{
			StoreSlug:  input.StoreSlug,
			TemplateID: out.TemplateID,
			Problems:   out.Problems,
			Origin:     alerts.OriginValidation,
		})
		if err != nil {
			return nil, err
		}
		out.AlertID = delivery.AlertID
	}

	if h.config.FailOnInvalid {
		return nil, apperrors.NewTemplateConfigInvalidError(out.TemplateID, out.Problems)
	}
	return out, nil
}

func (h *Handler) checkSemantics(cfg *tmpl.Configuration, out *Output) {
	templateID, known := h.resolver.Canonical(cfg.TemplateID)
	if !known {
		out.Problems = append(out.Problems, fmt.Sprintf("templateId %q is not a registered template", cfg.TemplateID))
	} else if templateID != cfg.TemplateID {
		out.Warnings = append(out.Warnings, fmt.Sprintf("templateId %q is stored as %q", cfg.TemplateID, templateID))
	}

	enabled := 0
	for _, sec := range cfg.Sections {
		if !sec.Config.Enabled {
			continue
		}
		enabled++

		sectionType := sec.Config.SectionType(sec.Key)
		if known {
			if _, ok := h.registry.Lookup(sectionType, templateID); !ok {
				out.Warnings = append(out.Warnings, fmt.Sprintf("section %q: no component for %q on %s, it will be skipped", sec.Key, sectionType, templateID))
			}
		}

		placeholders := component.Placeholders(sec.Config.Props)
		sort.Strings(placeholders)
		for _, path := range placeholders {
			if !component.KnownPlaceholder(path) {
				out.Warnings = append(out.Warnings, fmt.Sprintf("section %q: placeholder {{%s}} does not resolve", sec.Key, path))
			}
		}
	}
	if enabled == 0 {
		out.Warnings = append(out.Warnings, "no sections are enabled")
	}
}
