// Package page renders a storefront page: fetch, select, resolve, compose.
package page

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/models"
	"storefront-workers/internal/storefront/alerts"
	"storefront-workers/internal/storefront/catalog"
	"storefront-workers/internal/storefront/component"
	"storefront-workers/internal/storefront/compose"
	"storefront-workers/internal/storefront/selection"
	tmpl "storefront-workers/internal/storefront/template"
)

// ConfigSource names where the rendered configuration came from.
type ConfigSource string

const (
	ConfigFromOverride ConfigSource = "override"
	ConfigFromStore    ConfigSource = "store"
	ConfigFromDefault  ConfigSource = "default"
)

// Request is one page render.
type Request struct {
	StoreSlug          string
	TemplateID         string
	FallbackTemplateID string
	ProductLimit       int
	Override           *tmpl.Configuration
}

// Page is the composed result. TemplateID is the canonical id the blocks were
// composed under, which differs from the selection when an override names another template.
type Page struct {
	RenderID        string             `json:"renderId"`
	StoreID         string             `json:"storeId"`
	StoreSlug       string             `json:"storeSlug"`
	TemplateID      string             `json:"templateId"`
	SelectionSource selection.Source   `json:"selectionSource"`
	ConfigSource    ConfigSource       `json:"configSource"`
	Blocks          []*component.Block `json:"blocks"`
	Skipped         []string           `json:"skipped,omitempty"`
	RenderedAt      time.Time          `json:"renderedAt"`
}

// Deps are the collaborators of a Service. Notifier and Observability may be nil.
type Deps struct {
	Stores        catalog.StoreFetcher
	Products      catalog.ProductFetcher
	Strategy      *selection.Strategy
	Resolver      *tmpl.Resolver
	Composer      *compose.Composer
	Notifier      alerts.Notifier
	Observability *observability.Observability
}

// Options tune a Service.
type Options struct {
	ProductLimit int
	FetchTimeout time.Duration
}

type Service struct {
	deps   Deps
	opts   Options
	logger logger.Logger
}

func NewService(deps Deps, opts Options, log logger.Logger) *Service {
	if opts.ProductLimit <= 0 {
		opts.ProductLimit = catalog.DefaultProductLimit
	}
	return &Service{deps: deps, opts: opts, logger: log.WithFields(map[string]interface{}{"component": "page"})}
}

// Render fetches the store and its products concurrently, then selects, resolves and
// composes synchronously. Fetch failures abort the render before composition.
func (s *Service) Render(ctx context.Context, req Request) (*Page, error) {
	start := time.Now()
	page, err := s.render(ctx, req)

	templateID, status := "", "success"
	if page != nil {
		templateID = page.TemplateID
	}
	if err != nil {
		status = "error"
		if stdErr, ok := apperrors.AsStandardError(err); ok {
			status = string(stdErr.Code)
		}
	}
	s.deps.Observability.RecordRender(ctx, templateID, status, time.Since(start))
	return page, err
}

func (s *Service) render(ctx context.Context, req Request) (*Page, error) {
	slug := strings.TrimSpace(req.StoreSlug)
	if slug == "" {
		return nil, apperrors.NewInvalidInputError("storeSlug is required")
	}

	store, products, err := s.fetch(ctx, slug, req.ProductLimit)
	if err != nil {
		return nil, err
	}

	sel := s.deps.Strategy.Select(req.TemplateID, store.ThemeOrTemplate(), req.FallbackTemplateID)
	cfg, cfgSource := s.configFor(ctx, store, sel.TemplateID, req.Override)
	comp := s.deps.Composer.Compose(cfg, store, &models.ProductData{Products: products})
	templateID := comp.TemplateID
	if templateID == "" {
		templateID = sel.TemplateID
	}

	page := &Page{
		RenderID:        uuid.New().String(),
		StoreID:         store.ID,
		StoreSlug:       store.Slug,
		TemplateID:      templateID,
		SelectionSource: sel.Source,
		ConfigSource:    cfgSource,
		Blocks:          comp.Blocks(),
		Skipped:         comp.Missing(),
		RenderedAt:      time.Now().UTC(),
	}
	s.logger.Info("page rendered", map[string]interface{}{
		"renderId":        page.RenderID,
		"storeSlug":       page.StoreSlug,
		"templateId":      page.TemplateID,
		"selectedId":      sel.TemplateID,
		"selectionSource": string(page.SelectionSource),
		"configSource":    string(page.ConfigSource),
		"blocks":          len(page.Blocks),
		"skipped":         len(page.Skipped),
	})
	return page, nil
}

func (s *Service) fetch(ctx context.Context, slug string, limit int) (*models.Store, []models.Product, error) {
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}
	if limit <= 0 {
		limit = s.opts.ProductLimit
	}

	var (
		store    *models.Store
		products []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		store, err = s.deps.Stores.FetchStore(gctx, slug)
		return catalog.ClassifyError("store", slug, err)
	})
	g.Go(func() error {
		var err error
		products, err = s.deps.Products.FetchProducts(gctx, models.ProductFilter{StoreSlug: slug, Limit: limit})
		return catalog.ClassifyError("products", slug, err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, nil, apperrors.NewStoreNotFoundError(slug)
	}
	return store, products, nil
}

// configFor picks the configuration to compose: an explicit override, then the
// store's authored layout when it targets the selected template, then the built-in one.
// An authored layout that fails validation is reported and skipped. Overrides and
// authored layouts come back bound to the canonical template id.
func (s *Service) configFor(ctx context.Context, store *models.Store, templateID string, override *tmpl.Configuration) (*tmpl.Configuration, ConfigSource) {
	if override != nil {
		return s.deps.Resolver.Bind(s.deps.Resolver.GetConfig(templateID, override)), ConfigFromOverride
	}

	if len(store.TemplateConfig) > 0 {
		authored, err := tmpl.Parse(store.TemplateConfig)
		if err != nil {
			s.reportInvalid(ctx, store, templateID, err)
		} else if id, ok := s.deps.Resolver.Canonical(authored.TemplateID); ok && id == templateID {
			return s.deps.Resolver.Bind(authored), ConfigFromStore
		}
	}

	return s.deps.Resolver.GetConfig(templateID, nil), ConfigFromDefault
}

func (s *Service) reportInvalid(ctx context.Context, store *models.Store, templateID string, err error) {
	problems := []string{err.Error()}
	var invalid *tmpl.InvalidConfigError
	if errors.As(err, &invalid) {
		problems = invalid.Problems
	}

	s.logger.Error("stored template configuration is invalid, using built-in layout", map[string]interface{}{
		"storeSlug":  store.Slug,
		"templateId": templateID,
		"problems":   problems,
	})

	if s.deps.Notifier == nil {
		return
	}
	if _, alertErr := s.deps.Notifier.NotifyConfigInvalid(ctx, alerts.ConfigAlert{
		StoreSlug:  store.Slug,
		TemplateID: templateID,
		Problems:   problems,
		Origin:     alerts.OriginRender,
	}); alertErr != nil {
		s.logger.Warn("configuration alert failed", map[string]interface{}{"error": alertErr})
	}
}
