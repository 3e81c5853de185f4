package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront-config-backend/internal/config"
	"storefront-config-backend/internal/handlers"
	"storefront-config-backend/internal/middleware"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/internal/repository"
	"storefront-config-backend/internal/service"
	"storefront-config-backend/pkg/cache"
	"storefront-config-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	rateLimits *middleware.RateLimitManager
	router     *gin.Engine
	server     *http.Server
}

type repositoryContainer struct {
	Layout   repository.LayoutRepository
	Section  repository.SectionRepository
	Block    repository.BlockRepository
	Template repository.TemplateRepository
	Widget   repository.WidgetRepository
	Theme    repository.ThemeRepository
}

type serviceContainer struct {
	Layout   *service.LayoutService
	Template *service.TemplateService
	Theme    *service.ThemeService
	Resolver *service.ResolverService
}

type handlerContainer struct {
	Layout     *handlers.LayoutHandler
	Template   *handlers.TemplateHandler
	Theme      *handlers.ThemeHandler
	Storefront *handlers.StorefrontHandler
	Cache      *handlers.CacheHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.initRepositories()
	app.initServices()
	app.initHandlers()

	app.rateLimits = middleware.NewRateLimitManager(context.Background())

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimits != nil {
		if err := a.rateLimits.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limit manager", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.PageLayout{},
		&models.Section{},
		&models.Block{},
		&models.Template{},
		&models.Widget{},
		&models.ThemeSettings{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_sections_layout_position ON sections(layout_id, position ASC)",
		"CREATE INDEX IF NOT EXISTS idx_blocks_section_position ON blocks(section_id, position ASC)",
		"CREATE INDEX IF NOT EXISTS idx_widgets_template_position ON widgets(template_id, position ASC)",
		"CREATE INDEX IF NOT EXISTS idx_sections_settings ON sections USING GIN (settings)",
		"CREATE INDEX IF NOT EXISTS idx_sections_style ON sections USING GIN (style)",
		"CREATE INDEX IF NOT EXISTS idx_blocks_content ON blocks USING GIN (content)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// initCache connects the fast-path store. When Redis is unreachable the app
// still comes up; every read falls back to relational assembly.
func (a *Application) initCache() error {
	if !a.cfg.EnableCache || !a.cfg.EnableRedis {
		c, _ := cache.NewCache("", false, 0)
		a.cache = c
		return nil
	}

	ttl := time.Duration(a.cfg.ConfigCacheTTL) * time.Second
	c, err := cache.NewCache(a.cfg.RedisURL, true, ttl)
	if err != nil {
		logger.Warn("Fast-path store unavailable, serving from database only", map[string]interface{}{
			"redis_url": a.cfg.RedisURL,
			"error":     err.Error(),
		})
		c, _ = cache.NewCache("", false, 0)
	}
	a.cache = c
	return nil
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Layout:   repository.NewLayoutRepository(a.db),
		Section:  repository.NewSectionRepository(a.db),
		Block:    repository.NewBlockRepository(a.db),
		Template: repository.NewTemplateRepository(a.db),
		Widget:   repository.NewWidgetRepository(a.db),
		Theme:    repository.NewThemeRepository(a.db),
	}
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Layout:   service.NewLayoutService(a.repositories.Layout, a.repositories.Section, a.repositories.Block),
		Template: service.NewTemplateService(a.repositories.Template, a.repositories.Widget),
		Theme:    service.NewThemeService(a.repositories.Theme),
		Resolver: service.NewResolverService(
			a.repositories.Layout,
			a.repositories.Section,
			a.repositories.Block,
			a.repositories.Theme,
			a.cache,
		),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Layout:     handlers.NewLayoutHandler(a.services.Layout, a.services.Resolver),
		Template:   handlers.NewTemplateHandler(a.services.Template),
		Theme:      handlers.NewThemeHandler(a.services.Theme),
		Storefront: handlers.NewStorefrontHandler(a.services.Resolver, a.services.Template),
		Cache:      handlers.NewCacheHandler(a.cache),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(func(c *gin.Context) {
		c.Set("rateLimitManager", a.rateLimits)
		c.Next()
	})
	router.Use(middleware.RateLimitMiddleware(a.cfg))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		storefront := v1.Group("/storefront/:storeId")
		{
			storefront.GET("/config/:pageType", a.handlers.Storefront.GetPageConfig)
			storefront.GET("/templates/:templateType/:name", a.handlers.Storefront.GetTemplate)
		}

		admin := v1.Group("/admin/stores/:storeId")
		{
			admin.POST("/layouts", a.handlers.Layout.CreateLayout)
			admin.GET("/layouts", a.handlers.Layout.GetLayouts)
			admin.GET("/layouts/:layoutId", a.handlers.Layout.GetLayout)
			admin.DELETE("/layouts/:layoutId", a.handlers.Layout.DeleteLayout)
			admin.POST("/layouts/:layoutId/validate", a.handlers.Layout.Validate)
			admin.POST("/layouts/:layoutId/publish", a.handlers.Layout.Publish)

			admin.POST("/layouts/:layoutId/sections", a.handlers.Layout.AddSection)
			admin.PUT("/layouts/:layoutId/sections/:sectionId", a.handlers.Layout.UpdateSection)
			admin.DELETE("/layouts/:layoutId/sections/:sectionId", a.handlers.Layout.RemoveSection)
			admin.POST("/layouts/:layoutId/sections/:sectionId/move", a.handlers.Layout.MoveSection)
			admin.PUT("/layouts/:layoutId/sections/:sectionId/visibility", a.handlers.Layout.SetSectionVisibility)
			admin.POST("/layouts/:layoutId/sections/:sectionId/duplicate", a.handlers.Layout.DuplicateSection)

			admin.POST("/layouts/:layoutId/sections/:sectionId/blocks", a.handlers.Layout.AddBlock)
			admin.PUT("/layouts/:layoutId/sections/:sectionId/blocks/:blockId", a.handlers.Layout.UpdateBlock)
			admin.DELETE("/layouts/:layoutId/sections/:sectionId/blocks/:blockId", a.handlers.Layout.RemoveBlock)
			admin.POST("/layouts/:layoutId/sections/:sectionId/blocks/:blockId/move", a.handlers.Layout.MoveBlock)
			admin.PUT("/layouts/:layoutId/sections/:sectionId/blocks/:blockId/visibility", a.handlers.Layout.SetBlockVisibility)

			admin.POST("/templates", a.handlers.Template.CreateTemplate)
			admin.GET("/templates", a.handlers.Template.GetTemplates)
			admin.GET("/templates/:templateId", a.handlers.Template.GetTemplate)
			admin.DELETE("/templates/:templateId", a.handlers.Template.DeleteTemplate)

			admin.POST("/templates/:templateId/widgets", a.handlers.Template.AddWidget)
			admin.PUT("/templates/:templateId/widgets/:widgetId", a.handlers.Template.UpdateWidget)
			admin.DELETE("/templates/:templateId/widgets/:widgetId", a.handlers.Template.RemoveWidget)
			admin.POST("/templates/:templateId/widgets/:widgetId/move", a.handlers.Template.MoveWidget)
			admin.PUT("/templates/:templateId/widgets/:widgetId/visibility", a.handlers.Template.SetWidgetVisibility)

			admin.GET("/theme", a.handlers.Theme.GetTheme)
			admin.PUT("/theme", a.handlers.Theme.UpdateTheme)

			admin.DELETE("/cache", a.handlers.Cache.InvalidateStore)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}
