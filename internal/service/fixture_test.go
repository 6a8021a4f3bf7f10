package service

import (
	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"

	"github.com/shopspring/decimal"
)

func testMoney(amount int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(amount))
}

func testIntPtr(v int) *int {
	return &v
}

// cockpitSchemaFixture 构造一个覆盖全部配置维度的驾驶舱 schema：
// 必选/可选下拉组、文本组、固定价与带选项附加项、普通与可配置捆绑项。
func cockpitSchemaFixture() *ProductSchema {
	stand := models.Product{
		ID:            2,
		Slug:          "triple-monitor-stand",
		Name:          "Triple Monitor Stand",
		Type:          constants.ProductTypeSimple,
		BasePrice:     testMoney(449),
		StockQuantity: testIntPtr(15),
		IsActive:      true,
	}
	throttle := models.Product{
		ID:        3,
		Slug:      "throttle-quadrant",
		Name:      "Throttle Quadrant",
		Type:      constants.ProductTypeConfigurable,
		BasePrice: testMoney(249),
		IsActive:  true,
	}

	return &ProductSchema{
		Product: models.Product{
			ID:        1,
			Slug:      "jetsim-pro-cockpit",
			Name:      "JetSim Pro Cockpit",
			Type:      constants.ProductTypeBundle,
			BasePrice: testMoney(999),
			IsActive:  true,
		},
		Groups: []models.VariationGroup{
			{
				ID: 10, ProductID: 1, Name: "Flight Model",
				Kind: constants.VariationKindDropdown, IsRequired: true,
				Options: []models.VariationOption{
					{ID: 101, GroupID: 10, Label: "Base Simulation Pack", PriceAdjustment: testMoney(0), IsDefault: true},
					{ID: 102, GroupID: 10, Label: "Pro Simulation Pack", PriceAdjustment: testMoney(200)},
				},
			},
			{
				ID: 11, ProductID: 1, Name: "Rudder Pedals",
				Kind: constants.VariationKindDropdown, IsRequired: true,
				Options: []models.VariationOption{
					{ID: 111, GroupID: 11, Label: "Standard Pedals", PriceAdjustment: testMoney(0), IsDefault: true, StockQuantity: testIntPtr(60)},
					{ID: 112, GroupID: 11, Label: "Premium Pedals", PriceAdjustment: testMoney(150), StockQuantity: testIntPtr(12), LowStockThreshold: 5},
					{ID: 113, GroupID: 11, Label: "Custom Pedals", PriceAdjustment: testMoney(300), StockQuantity: testIntPtr(3), LowStockThreshold: 5},
				},
			},
			{
				ID: 12, ProductID: 1, Name: "Yoke Upgrade",
				Kind: constants.VariationKindDropdown,
				Options: []models.VariationOption{
					{ID: 121, GroupID: 12, Label: "None", PriceAdjustment: testMoney(0), IsDefault: true},
					{ID: 122, GroupID: 12, Label: "Professional Yoke", PriceAdjustment: testMoney(500), StockQuantity: testIntPtr(8), LowStockThreshold: 3},
				},
			},
			{
				ID: 13, ProductID: 1, Name: "Panel Engraving",
				Kind: constants.VariationKindText,
			},
		},
		AddOns: []models.AddOn{
			{
				ID: 20, ProductID: 1, Name: "Extended Warranty",
				Price: testMoney(99),
			},
			{
				ID: 21, ProductID: 1, Name: "Assembly Service", HasOptions: true,
				Options: []models.AddOnOption{
					{ID: 211, AddOnID: 21, Label: "Basic Assembly", Price: testMoney(149), IsDefault: true},
					{ID: 212, AddOnID: 21, Label: "White Glove Assembly", Price: testMoney(299)},
				},
			},
		},
		BundleItems: []BundleItemSchema{
			{
				BundleItem: models.BundleItem{
					ID: 30, ParentProductID: 1, ItemProductID: 2,
					ItemType: constants.BundleItemTypeOptional, Quantity: 1,
					PriceAdjustment: testMoney(399),
					Item:            &stand,
				},
			},
			{
				BundleItem: models.BundleItem{
					ID: 31, ParentProductID: 1, ItemProductID: 3,
					ItemType: constants.BundleItemTypeOptional, Quantity: 1,
					IsConfigurable:  true,
					PriceAdjustment: testMoney(229),
					Item:            &throttle,
				},
				Sub: &ProductSchema{
					Product: throttle,
					Groups: []models.VariationGroup{
						{
							ID: 40, ProductID: 3, Name: "Lever Count",
							Kind: constants.VariationKindDropdown, IsRequired: true,
							Options: []models.VariationOption{
								{ID: 401, GroupID: 40, Label: "Two Levers", PriceAdjustment: testMoney(0), IsDefault: true},
								{ID: 402, GroupID: 40, Label: "Six Levers", PriceAdjustment: testMoney(80)},
							},
						},
					},
				},
			},
		},
	}
}
