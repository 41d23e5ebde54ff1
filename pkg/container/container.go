package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	membershipHandler "library-backend/internal/domains/membership/handler"
	membershipRepo "library-backend/internal/domains/membership/repository"
	membershipService "library-backend/internal/domains/membership/service"
	transactionHandler "library-backend/internal/domains/transaction/handler"
	transactionRepo "library-backend/internal/domains/transaction/repository"
	transactionService "library-backend/internal/domains/transaction/service"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container holds the application dependency graph. Everything is a
// singleton built once at startup; construction order is config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo        userRepo.RepositoryInterface
	ItemRepo        catalogRepo.RepositoryInterface
	MembershipRepo  membershipRepo.RepositoryInterface
	TransactionRepo transactionRepo.RepositoryInterface

	UserService        userService.ServiceInterface
	CatalogService     catalogService.ServiceInterface
	MembershipService  membershipService.ServiceInterface
	TransactionService transactionService.ServiceInterface

	UserHandler        *userHandler.Handler
	CatalogHandler     *catalogHandler.Handler
	MembershipHandler  *membershipHandler.Handler
	TransactionHandler *transactionHandler.Handler
}

// NewContainer builds and initializes the full dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

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

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	// Cache is an optimization; a missing Redis degrades reads but must
	// not block startup.
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewRepository(pool)
	c.ItemRepo = catalogRepo.NewRepository(pool, c.Cache)
	c.MembershipRepo = membershipRepo.NewRepository(pool)
	c.TransactionRepo = transactionRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewService(
		c.UserRepo,
		c.JWTManager,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
	)
	c.CatalogService = catalogService.NewService(c.ItemRepo)
	c.MembershipService = membershipService.NewService(c.MembershipRepo)
	c.TransactionService = transactionService.NewService(
		c.TransactionRepo,
		c.Cache,
		decimal.NewFromInt(int64(c.Config.Library.FineRatePerDay)),
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.MembershipHandler = membershipHandler.NewHandler(c.MembershipService)
	c.TransactionHandler = transactionHandler.NewHandler(c.TransactionService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("failed to close redis: %v", err)
		}
	}
}
