package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	awsclients "storefront-workers/internal/common/aws"
	"storefront-workers/internal/common/camunda"
	"storefront-workers/internal/common/config"
	"storefront-workers/internal/common/database"
	httpx "storefront-workers/internal/common/http"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/observability"
	"storefront-workers/internal/storefront/alerts"
	"storefront-workers/internal/storefront/catalog"
	"storefront-workers/internal/storefront/component"
	"storefront-workers/internal/storefront/compose"
	"storefront-workers/internal/storefront/page"
	"storefront-workers/internal/storefront/selection"
	tmpl "storefront-workers/internal/storefront/template"
	"storefront-workers/pkg/registry"

	fp "storefront-workers/internal/workers/data-access/fetch-products"
	fs "storefront-workers/internal/workers/data-access/fetch-store"
	cp "storefront-workers/internal/workers/storefront/compose-page"
	rtc "storefront-workers/internal/workers/storefront/resolve-template-config"
	st "storefront-workers/internal/workers/storefront/select-template"
	vtc "storefront-workers/internal/workers/storefront/validate-template-config"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting storefront worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	var esClient *database.ElasticsearchClient
	if cfg.Storefront.ProductSource == config.ProductSourceElasticsearch {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	var redisClient *database.RedisClient
	if cfg.Storefront.CacheTTL > 0 {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Catalog sources ---
	var stores catalog.StoreFetcher = catalog.NewPostgresStoreRepository(pg.DB)
	var products catalog.ProductFetcher
	if esClient != nil {
		products = catalog.NewElasticsearchProductSearch(esClient.Client, cfg.Database.Elasticsearch.ProductIndex)
	} else {
		products = catalog.NewPostgresProductRepository(pg.DB)
	}
	if redisClient != nil {
		ttl := time.Duration(cfg.Storefront.CacheTTL) * time.Second
		stores = catalog.NewCachedStoreFetcher(stores, redisClient.Client, ttl, log)
		products = catalog.NewCachedProductFetcher(products, redisClient.Client, ttl, log)
	}

	// --- Templates, registry, selection ---
	resolver, err := tmpl.NewResolver(tmpl.DefaultTemplates(), cfg.Storefront.DefaultTemplateID)
	if err != nil {
		zapLog.Fatal("template resolver init failed", zap.Error(err))
	}

	entries, err := loadComponentEntries(cfg.Storefront.ManifestPath)
	if err != nil {
		zapLog.Fatal("component manifest load failed", zap.Error(err))
	}
	components, err := component.NewRegistry(entries, component.Builders(), log)
	if err != nil {
		zapLog.Fatal("component registry init failed", zap.Error(err))
	}

	strategy, err := selection.NewStrategy(resolver, cfg.Storefront.ThemeTemplates, log)
	if err != nil {
		zapLog.Fatal("template selection init failed", zap.Error(err))
	}

	var awsClients *awsclients.Clients
	if cfg.Alerts.Enabled {
		awsClients, err = awsclients.NewClients(ctx, cfg.Alerts.Region)
		if err != nil {
			zapLog.Fatal("aws clients init failed", zap.Error(err))
		}
	}
	alerter := alerts.NewAlerter(cfg.Alerts, awsClients, log)

	pages := page.NewService(page.Deps{
		Stores:        stores,
		Products:      products,
		Strategy:      strategy,
		Resolver:      resolver,
		Composer:      compose.NewComposer(components, compose.WithTemplateIDs(resolver)),
		Notifier:      alerter,
		Observability: obs,
	}, page.Options{
		ProductLimit: cfg.Storefront.FeaturedLimit,
		FetchTimeout: config.GetDuration(cfg.Storefront.FetchTimeout),
	}, log)

	zapLog.Info("Storefront services initialized",
		zap.Int("templates", len(resolver.IDs())),
		zap.Int("components", len(entries)),
		zap.String("productSource", cfg.Storefront.ProductSource),
		zap.Bool("cache", redisClient != nil),
	)

	// --- Zeebe workers ---
	var zeebe *camunda.Client
	var workers []*camunda.CamundaWorker
	if cfg.BrokerConfigured() {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClient(camunda.ClientConfigFrom(cfg.Camunda))
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		handlers := map[string]camunda.JobHandler{
			st.TaskType:  st.NewHandler(st.LoadConfig(config.GetWorkerConfig(cfg, st.TaskType), cfg.Storefront), strategy, obs, log),
			rtc.TaskType: rtc.NewHandler(rtc.LoadConfig(config.GetWorkerConfig(cfg, rtc.TaskType)), resolver, obs, log),
			vtc.TaskType: vtc.NewHandler(vtc.LoadConfig(config.GetWorkerConfig(cfg, vtc.TaskType), cfg.Alerts),
				resolver, components, alerter, obs, log),
			cp.TaskType: cp.NewHandler(cp.LoadConfig(config.GetWorkerConfig(cfg, cp.TaskType)), pages, obs, log),
			fs.TaskType: fs.NewHandler(fs.LoadConfig(config.GetWorkerConfig(cfg, fs.TaskType)), stores, obs, log),
			fp.TaskType: fp.NewHandler(fp.LoadConfig(config.GetWorkerConfig(cfg, fp.TaskType), cfg.Storefront), products, obs, log),
		}
		for taskType, handler := range handlers {
			if w := camunda.StartWorker(zeebe.Zeebe(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
				workers = append(workers, w)
			}
		}
		zapLog.Info("Workers registered", zap.Int("started", len(workers)))
	} else {
		zapLog.Info("No broker configured, serving HTTP only")
	}

	// --- HTTP: page API, health & metrics ---
	mux := http.NewServeMux()
	page.NewHTTPHandler(pages, log).Register(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		deps := []database.Pinger{pg}
		if esClient != nil {
			deps = append(deps, esClient)
		}
		if redisClient != nil {
			deps = append(deps, redisClient)
		}
		failures := database.CheckAll(r.Context(), 2*time.Second, deps...)
		if zeebe != nil {
			if err := zeebe.HealthCheck(r.Context()); err != nil {
				failures["zeebe"] = err.Error()
			}
		}
		if len(failures) > 0 {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "not ready",
				"failures": failures,
			})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	for _, w := range workers {
		w.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// loadComponentEntries reads the manifest at path, or returns the built-in
// entries when no path is configured.
func loadComponentEntries(path string) ([]component.Entry, error) {
	if path == "" {
		return component.DefaultEntries(), nil
	}
	m, err := registry.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return component.EntriesFromManifest(m, component.Builders())
}
