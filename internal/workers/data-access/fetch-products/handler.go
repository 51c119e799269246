package fetchproducts

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"storefront-workers/internal/common/camunda"
	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/models"
	"storefront-workers/internal/storefront/catalog"
)

const (
	TaskType = "fetch-products"
)

type Handler struct {
	config   *Config
	products catalog.ProductFetcher
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, products catalog.ProductFetcher, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		products: products,
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
	slug := strings.TrimSpace(input.StoreSlug)
	if slug == "" && input.StoreID == "" {
		return nil, apperrors.NewInvalidInputError("storeSlug or storeId is required")
	}
	if input.Limit < 0 {
		return nil, apperrors.NewInvalidInputError("limit must not be negative")
	}

	limit := input.Limit
	if limit == 0 {
		limit = h.config.DefaultLimit
	}
	filter := models.ProductFilter{
		StoreID:      input.StoreID,
		StoreSlug:    slug,
		CategoryID:   input.CategoryID,
		FeaturedOnly: input.FeaturedOnly,
		Limit:        limit,
	}

	products, err := h.products.FetchProducts(ctx, filter)
	if err != nil {
		return nil, catalog.ClassifyError("products", slug, err)
	}
	if products == nil {
		products = []models.Product{}
	}

	data := &models.ProductData{Products: products}
	brands := data.Brands()
	if brands == nil {
		brands = []string{}
	}

	h.logger.Debug("products fetched", map[string]interface{}{
		"storeSlug": slug,
		"storeId":   input.StoreID,
		"count":     len(products),
	})
	return &Output{Products: products, Count: len(products), Brands: brands}, nil
}
