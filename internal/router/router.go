package router

import (
	"fmt"
	"strings"

	"github.com/cockpitforge/internal/cache"
	"github.com/cockpitforge/internal/config"
	adminhandlers "github.com/cockpitforge/internal/http/handlers/admin"
	publichandlers "github.com/cockpitforge/internal/http/handlers/public"
	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cf"
	}
	redisClient := cache.Client()
	cartRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:cart", redisPrefix),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.CartRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
		}

		// 购物车与订单接口（登录用户或游客会话）
		session := apiV1.Group("")
		session.Use(SessionMiddleware(c.AuthService))
		{
			session.GET("/cart", publicHandler.GetCart)
			session.POST("/cart/items", RateLimitMiddleware(redisClient, cartRule, KeyByIP), publicHandler.AddCartItem)
			session.PUT("/cart/items/:item_id", publicHandler.UpdateCartItem)
			session.DELETE("/cart/items/:item_id", publicHandler.DeleteCartItem)
			session.DELETE("/cart", publicHandler.ClearCart)
			session.POST("/cart/coupon", publicHandler.ApplyCoupon)
			session.DELETE("/cart/coupon", publicHandler.RemoveCoupon)
			session.POST("/orders", publicHandler.CreateOrder)
			session.GET("/orders", publicHandler.ListOrders)
			session.GET("/orders/:order_no", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.Login)

			// 需要鉴权的接口
			authorized := admin.Use(AdminJWTMiddleware(c.AuthService, c.AdminRepo))
			{
				authorized.GET("/me", adminHandler.Me)

				// 商品目录维护
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.POST("/products/:id/variation-groups", adminHandler.CreateVariationGroup)
				authorized.PUT("/variation-groups/:group_id", adminHandler.UpdateVariationGroup)
				authorized.DELETE("/variation-groups/:group_id", adminHandler.DeleteVariationGroup)
				authorized.POST("/variation-groups/:group_id/options", adminHandler.CreateVariationOption)
				authorized.PUT("/variation-options/:option_id", adminHandler.UpdateVariationOption)
				authorized.DELETE("/variation-options/:option_id", adminHandler.DeleteVariationOption)

				authorized.POST("/products/:id/addons", adminHandler.CreateAddOn)
				authorized.PUT("/addons/:addon_id", adminHandler.UpdateAddOn)
				authorized.DELETE("/addons/:addon_id", adminHandler.DeleteAddOn)
				authorized.POST("/addons/:addon_id/options", adminHandler.CreateAddOnOption)
				authorized.PUT("/addon-options/:option_id", adminHandler.UpdateAddOnOption)
				authorized.DELETE("/addon-options/:option_id", adminHandler.DeleteAddOnOption)

				authorized.POST("/products/:id/bundle-items", adminHandler.CreateBundleItem)
				authorized.PUT("/bundle-items/:item_id", adminHandler.UpdateBundleItem)
				authorized.DELETE("/bundle-items/:item_id", adminHandler.DeleteBundleItem)

				// 优惠券维护
				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
