package main

import (
	"time"

	"github.com/cockpitforge/internal/config"
	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 被捆绑引用的简单商品
	monitorStand := seedProduct(stdLog, models.Product{
		SKU:           "CF-STAND-01",
		Slug:          "triple-monitor-stand",
		Name:          "Triple Monitor Stand",
		Description:   "Heavy duty stand for a three screen setup.",
		Type:          constants.ProductTypeSimple,
		BasePrice:     money(449),
		StockQuantity: intPtr(15),
		IsActive:      true,
		SortOrder:     20,
	})

	throttle := seedProduct(stdLog, models.Product{
		SKU:           "CF-THROTTLE-01",
		Slug:          "throttle-quadrant",
		Name:          "Throttle Quadrant",
		Description:   "Modular throttle quadrant with swappable levers.",
		Type:          constants.ProductTypeConfigurable,
		BasePrice:     money(249),
		StockQuantity: intPtr(30),
		IsActive:      true,
		SortOrder:     30,
	})
	if throttle != nil {
		leverGroup := seedVariationGroup(stdLog, models.VariationGroup{
			ProductID:  throttle.ID,
			Name:       "Lever Count",
			Kind:       constants.VariationKindDropdown,
			IsRequired: true,
			SortOrder:  1,
		})
		if leverGroup != nil {
			seedVariationOption(stdLog, models.VariationOption{GroupID: leverGroup.ID, Label: "Two Levers", PriceAdjustment: money(0), IsDefault: true, SortOrder: 1})
			seedVariationOption(stdLog, models.VariationOption{GroupID: leverGroup.ID, Label: "Six Levers", PriceAdjustment: money(80), SortOrder: 2})
		}
	}

	// 旗舰驾驶舱（捆绑商品：变体组 + 附加项 + 捆绑项）
	cockpit := seedProduct(stdLog, models.Product{
		SKU:           "CF-COCKPIT-01",
		Slug:          "jetsim-pro-cockpit",
		Name:          "JetSim Pro Cockpit",
		Description:   "Full scale home cockpit frame with configurable controls.",
		Type:          constants.ProductTypeBundle,
		BasePrice:     money(999),
		StockQuantity: intPtr(25),
		IsActive:      true,
		SortOrder:     10,
	})
	if cockpit != nil {
		modelGroup := seedVariationGroup(stdLog, models.VariationGroup{
			ProductID:  cockpit.ID,
			Name:       "Flight Model",
			Kind:       constants.VariationKindDropdown,
			IsRequired: true,
			SortOrder:  1,
		})
		if modelGroup != nil {
			seedVariationOption(stdLog, models.VariationOption{GroupID: modelGroup.ID, Label: "Base Simulation Pack", PriceAdjustment: money(0), IsDefault: true, SortOrder: 1})
			seedVariationOption(stdLog, models.VariationOption{GroupID: modelGroup.ID, Label: "Pro Simulation Pack", PriceAdjustment: money(200), SortOrder: 2})
		}

		rudderGroup := seedVariationGroup(stdLog, models.VariationGroup{
			ProductID:  cockpit.ID,
			Name:       "Rudder Pedals",
			Kind:       constants.VariationKindDropdown,
			IsRequired: true,
			SortOrder:  2,
		})
		if rudderGroup != nil {
			seedVariationOption(stdLog, models.VariationOption{GroupID: rudderGroup.ID, Label: "Standard Pedals", PriceAdjustment: money(0), IsDefault: true, StockQuantity: intPtr(60), SortOrder: 1})
			seedVariationOption(stdLog, models.VariationOption{GroupID: rudderGroup.ID, Label: "Premium Pedals", PriceAdjustment: money(150), StockQuantity: intPtr(12), LowStockThreshold: 5, SortOrder: 2})
			seedVariationOption(stdLog, models.VariationOption{GroupID: rudderGroup.ID, Label: "Custom Pedals", PriceAdjustment: money(300), StockQuantity: intPtr(3), LowStockThreshold: 5, SortOrder: 3})
		}

		yokeGroup := seedVariationGroup(stdLog, models.VariationGroup{
			ProductID: cockpit.ID,
			Name:      "Yoke Upgrade",
			Kind:      constants.VariationKindDropdown,
			SortOrder: 3,
		})
		if yokeGroup != nil {
			seedVariationOption(stdLog, models.VariationOption{GroupID: yokeGroup.ID, Label: "None", PriceAdjustment: money(0), IsDefault: true, SortOrder: 1})
			seedVariationOption(stdLog, models.VariationOption{GroupID: yokeGroup.ID, Label: "Professional Yoke", PriceAdjustment: money(500), StockQuantity: intPtr(8), LowStockThreshold: 3, SortOrder: 2})
		}

		seedVariationGroup(stdLog, models.VariationGroup{
			ProductID: cockpit.ID,
			Name:      "Panel Engraving",
			Kind:      constants.VariationKindText,
			SortOrder: 4,
		})

		seedAddOn(stdLog, models.AddOn{
			ProductID: cockpit.ID,
			Name:      "Extended Warranty",
			Price:     money(99),
			SortOrder: 1,
		})
		assembly := seedAddOn(stdLog, models.AddOn{
			ProductID:  cockpit.ID,
			Name:       "Assembly Service",
			HasOptions: true,
			SortOrder:  2,
		})
		if assembly != nil {
			seedAddOnOption(stdLog, models.AddOnOption{AddOnID: assembly.ID, Label: "Basic Assembly", Price: money(149), IsDefault: true, SortOrder: 1})
			seedAddOnOption(stdLog, models.AddOnOption{AddOnID: assembly.ID, Label: "White Glove Assembly", Price: money(299), SortOrder: 2})
		}

		if monitorStand != nil {
			seedBundleItem(stdLog, models.BundleItem{
				ParentProductID: cockpit.ID,
				ItemProductID:   monitorStand.ID,
				ItemType:        constants.BundleItemTypeOptional,
				Quantity:        1,
				PriceAdjustment: money(399),
				SortOrder:       1,
			})
		}
		if throttle != nil {
			seedBundleItem(stdLog, models.BundleItem{
				ParentProductID: cockpit.ID,
				ItemProductID:   throttle.ID,
				ItemType:        constants.BundleItemTypeOptional,
				Quantity:        1,
				IsConfigurable:  true,
				PriceAdjustment: money(229),
				SortOrder:       2,
			})
		}
	}

	// 优惠券
	seedCoupon(stdLog, models.Coupon{
		Code:        "WELCOME10",
		Type:        constants.CouponTypePercent,
		Value:       money(10),
		MaxDiscount: money(100),
		IsActive:    true,
	})
	launchEnds := time.Now().AddDate(0, 3, 0)
	seedCoupon(stdLog, models.Coupon{
		Code:      "LAUNCH50",
		Type:      constants.CouponTypeFixed,
		Value:     money(50),
		MinAmount: money(500),
		EndsAt:    &launchEnds,
		IsActive:  true,
	})

	stdLog.Printf("Seed finished")
}

func money(amount float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

func intPtr(v int) *int {
	return &v
}
