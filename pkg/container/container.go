package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"framecanvas-backend/internal/config"
	infraCache "framecanvas-backend/internal/infrastructure/cache"
	"framecanvas-backend/internal/infrastructure/database"
	"framecanvas-backend/internal/infrastructure/storage"
	"framecanvas-backend/internal/shared/guard"
	"framecanvas-backend/internal/shared/utils"
	"framecanvas-backend/pkg/cache"
	"framecanvas-backend/pkg/jwt"

	auditHandler "framecanvas-backend/internal/domains/audit/handler"
	auditRepo "framecanvas-backend/internal/domains/audit/repository"
	auditService "framecanvas-backend/internal/domains/audit/service"
	categoryHandler "framecanvas-backend/internal/domains/category/handler"
	categoryRepo "framecanvas-backend/internal/domains/category/repository"
	categoryService "framecanvas-backend/internal/domains/category/service"
	profileHandler "framecanvas-backend/internal/domains/profile/handler"
	profileRepo "framecanvas-backend/internal/domains/profile/repository"
	profileService "framecanvas-backend/internal/domains/profile/service"
	templateHandler "framecanvas-backend/internal/domains/template/handler"
	templateRepo "framecanvas-backend/internal/domains/template/repository"
	templateService "framecanvas-backend/internal/domains/template/service"
	uploadHandler "framecanvas-backend/internal/domains/upload/handler"
	uploadService "framecanvas-backend/internal/domains/upload/service"
)

// Container is the root of the dependency graph. Initialization order:
// config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     *storage.MinIOStorage // nil when object storage is not configured
	AsynqClient *asynq.Client

	// Repositories
	CategoryRepo categoryRepo.Repository
	TemplateRepo templateRepo.Repository
	ProfileRepo  profileRepo.Repository
	AuditRepo    auditRepo.Repository

	// Services
	CategoryService categoryService.Service
	TemplateService templateService.Service
	ProfileService  profileService.Service
	AuditService    auditService.Service
	UploadService   uploadService.Service

	// Handlers
	CategoryHandler *categoryHandler.Handler
	TemplateHandler *templateHandler.Handler
	ProfileHandler  *profileHandler.Handler
	AuditHandler    *auditHandler.Handler
	UploadHandler   *uploadHandler.Handler
	GuardHandler    *guard.Handler
}

// NewContainer builds the whole dependency graph or fails fast.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")
	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// 2. Database
	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	if dir := utils.GetEnvVariable("MIGRATIONS_DIR", "migrations"); dir != "" {
		if err := db.Migrate(dir); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		log.Println("✅ Migrations applied")
	}

	// 3. Cache
	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	c.Cache = redisCache
	log.Println("✅ Redis connected")

	// 4. Object storage (optional)
	var signer templateService.Signer
	var objStorage uploadService.ObjectStorage
	if cfg.MinIO.Enabled() {
		log.Println("📦 Connecting to MinIO...")
		st, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to init object storage: %w", err)
		}
		c.Storage = st
		signer = st
		objStorage = st
		log.Println("✅ Object storage ready")
	} else {
		log.Println("⚠️  Object storage not configured, uploads run in validate-only mode")
	}

	// 5. Task queue client
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 6. Auth
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// 7. Repositories
	pool := db.Pool
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.TemplateRepo = templateRepo.NewPostgresRepository(pool)
	c.ProfileRepo = profileRepo.NewPostgresRepository(pool)
	c.AuditRepo = auditRepo.NewPostgresRepository(pool)

	// 8. Services
	c.AuditService = auditService.NewAuditService(c.AuditRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache, cfg.Catalog.CacheTTL)
	c.TemplateService = templateService.NewTemplateService(c.TemplateRepo, c.CategoryRepo, c.Cache, cfg.Catalog.CacheTTL, signer)
	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, cfg.Access, c.AuditService)
	c.UploadService = uploadService.NewUploadService(
		c.TemplateRepo,
		c.CategoryRepo,
		c.ProfileService,
		c.AuditService,
		c.Cache,
		objStorage,
		c.AsynqClient,
	)

	// 9. Handlers
	c.CategoryHandler = categoryHandler.NewHandler(c.CategoryService)
	c.TemplateHandler = templateHandler.NewHandler(c.TemplateService)
	c.ProfileHandler = profileHandler.NewHandler(c.ProfileService)
	c.AuditHandler = auditHandler.NewHandler(c.AuditService)
	c.UploadHandler = uploadHandler.NewHandler(c.UploadService)
	c.GuardHandler = guard.NewHandler(
		guard.NewPolicy(cfg.Access.OwnerEmail),
		cfg.Access.AdminEnabled,
		c.JWTManager,
	)

	log.Println("✅ Container ready")
	return c, nil
}

// Cleanup releases infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("✅ Container cleaned up")
}
