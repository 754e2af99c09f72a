package cmd

import (
	"context"

	"github.com/Wenqiii/pkvgo/core/ai"
	"github.com/Wenqiii/pkvgo/core/compress"
	"github.com/Wenqiii/pkvgo/core/config"
	"github.com/Wenqiii/pkvgo/core/enrich"
	"github.com/Wenqiii/pkvgo/core/file_store"
	"github.com/Wenqiii/pkvgo/internal/dao"
	"github.com/Wenqiii/pkvgo/internal/logic/ingest"
	"github.com/Wenqiii/pkvgo/internal/logic/retrieval"
	"github.com/gogf/gf/v2/frame/g"
)

var (
	ingestCoordinator *ingest.Coordinator
	retrievalService  *retrieval.Service
)

// InitAll initializes all components of the application
func init() {
	ctx := context.Background()

	// Validate configuration before initializing components
	g.Log().Info(ctx, "Validating application configuration...")
	err := config.ValidateConfiguration(ctx)
	if err != nil {
		g.Log().Fatalf(ctx, "Configuration validation failed:\n%v", err)
	}

	// Initialize database
	err = dao.InitDB()
	if err != nil {
		g.Log().Fatalf(ctx, "Database connection initialization failed: %v", err)
	}

	// Initialize storage system
	file_store.InitStorage()

	// Initialize compression engine
	engine := compress.NewEngine(ctx)

	// Initialize AI content service
	// AI未配置时用占位实现，摘要/分析降级，上传与本地要点提取不受影响
	var contentService ai.ContentService
	if config.AIConfigured(ctx) {
		cfg := config.GetChatModelConfig(ctx)
		contentService, err = ai.NewContentService(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model)
		if err != nil {
			g.Log().Warningf(ctx, "AI content service unavailable, enrichment degrades: %v", err)
			contentService = ai.NewUnavailableService()
		}
	} else {
		g.Log().Warningf(ctx, "AI model not configured, enrichment degrades to local extraction only")
		contentService = ai.NewUnavailableService()
	}

	// Initialize enrichment worker
	worker, err := enrich.NewWorker(contentService, dao.UpdateItemById, enrich.Options{
		Workers:        g.Cfg().MustGet(ctx, "enrich.workers", 4).Int(),
		SubtaskTimeout: g.Cfg().MustGet(ctx, "enrich.subtaskTimeout", "2m").Duration(),
		MaxKeyPoints:   g.Cfg().MustGet(ctx, "enrich.maxKeyPoints", 5).Int(),
	})
	if err != nil {
		g.Log().Fatalf(ctx, "Enrichment worker initialization failed: %v", err)
	}

	storage := file_store.GetStorage()
	buckets := file_store.GetBuckets()
	ingestCoordinator = ingest.NewCoordinator(engine, storage, buckets, worker)
	retrievalService = retrieval.NewService(engine, storage, buckets, worker)

	g.Log().Info(ctx, "✓ All components initialized successfully")
}
