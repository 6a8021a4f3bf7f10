package provider

import (
	"time"

	"github.com/cockpitforge/internal/cache"
	"github.com/cockpitforge/internal/config"
	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/queue"
	"github.com/cockpitforge/internal/repository"
	"github.com/cockpitforge/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	ProductRepo   repository.ProductRepository
	VariationRepo repository.VariationRepository
	AddOnRepo     repository.AddOnRepository
	BundleRepo    repository.BundleRepository
	CartRepo      repository.CartRepository
	CouponRepo    repository.CouponRepository
	OrderRepo     repository.OrderRepository

	// Services
	AuthService         *service.AuthService
	CatalogService      *service.CatalogService
	CouponService       *service.CouponService
	CartService         *service.CartService
	OrderService        *service.OrderService
	ProductAdminService *service.ProductAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariationRepo = repository.NewVariationRepository(db)
	c.AddOnRepo = repository.NewAddOnRepository(db)
	c.BundleRepo = repository.NewBundleRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	schemaCacheTTL := time.Duration(c.Config.Cart.SchemaCacheTTLSeconds) * time.Second
	cartExpireAfter := time.Duration(c.Config.Cart.ExpireMinutes) * time.Minute

	c.AuthService = service.NewAuthService(c.AdminRepo, c.Config.AdminJWT, c.Config.UserJWT)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, schemaCacheTTL)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.CatalogService, c.CouponService, cartExpireAfter)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.VariationRepo, c.CartService, c.CouponService)
	c.ProductAdminService = service.NewProductAdminService(c.ProductRepo, c.VariationRepo, c.AddOnRepo, c.BundleRepo, c.CatalogService, c.QueueClient)
}
