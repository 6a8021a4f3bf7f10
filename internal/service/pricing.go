package service

import (
	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"

	"github.com/shopspring/decimal"
)

// ComputeUnitPrice 计算单价：
//
//	unitPrice = max(0, 基础价 + Σ变体调整 + Σ附加项价格 + Σ捆绑项贡献)
//
// 捆绑项贡献 = (price_adjustment + 可配置时被引用商品自身的 computePrice) × 数量。
// 全程原生 decimal 运算，只在最后统一 Round(2) 一次，负数钳制为零。
// 纯函数：无副作用，重复调用结果一致。
func ComputeUnitPrice(schema *ProductSchema, configuration *ValidatedConfiguration) models.Money {
	total := computeRawPrice(schema, configuration)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return models.NewMoneyFromDecimal(total)
}

func computeRawPrice(schema *ProductSchema, configuration *ValidatedConfiguration) decimal.Decimal {
	total := schema.Product.BasePrice.Decimal
	if configuration == nil {
		return total
	}
	for _, v := range configuration.Variations {
		total = total.Add(v.PriceAdjustment.Decimal)
	}
	for _, a := range configuration.AddOns {
		total = total.Add(a.Price.Decimal)
	}
	for _, b := range configuration.BundleItems {
		contribution := b.PriceAdjustment.Decimal
		if b.Sub != nil {
			if sub := findBundleSubSchema(schema, b.BundleItemID); sub != nil {
				contribution = contribution.Add(computeRawPrice(sub, b.Sub))
			}
		}
		quantity := b.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		total = total.Add(contribution.Mul(decimal.NewFromInt(int64(quantity))))
	}
	return total
}

func findBundleSubSchema(schema *ProductSchema, bundleItemID uint) *ProductSchema {
	for i := range schema.BundleItems {
		if schema.BundleItems[i].ID == bundleItemID {
			return schema.BundleItems[i].Sub
		}
	}
	return nil
}

// ComputePriceRange 计算商品派生价格区间：
// 必选组件取最便宜/最贵形态；可选组件默认不选，
// 负调整计入下界、正调整以最贵形态计入上界。
func ComputePriceRange(schema *ProductSchema) (models.Money, models.Money) {
	low, high := computeRawRange(schema)

	for i := range schema.BundleItems {
		item := &schema.BundleItems[i]
		quantity := decimal.NewFromInt(int64(maxInt(item.Quantity, 1)))

		itemLow := item.PriceAdjustment.Decimal
		itemHigh := item.PriceAdjustment.Decimal
		if item.IsConfigurable && item.Sub != nil {
			subLow, subHigh := computeRawRange(item.Sub)
			itemLow = itemLow.Add(subLow)
			itemHigh = itemHigh.Add(subHigh)
		}
		itemLow = itemLow.Mul(quantity)
		itemHigh = itemHigh.Mul(quantity)

		if item.ItemType == constants.BundleItemTypeRequired {
			low = low.Add(itemLow)
			high = high.Add(itemHigh)
		} else {
			// 可选项不计入下界，但负调整（捆绑折扣）能把下界压低
			low = low.Add(decimal.Min(decimal.Zero, itemLow))
			high = high.Add(decimal.Max(decimal.Zero, itemHigh))
		}
	}

	if low.IsNegative() {
		low = decimal.Zero
	}
	if high.IsNegative() {
		high = decimal.Zero
	}
	return models.NewMoneyFromDecimal(low), models.NewMoneyFromDecimal(high)
}

// computeRawRange 基础价 + 变体组 + 附加项的区间（不含捆绑项）
func computeRawRange(schema *ProductSchema) (decimal.Decimal, decimal.Decimal) {
	low := schema.Product.BasePrice.Decimal
	high := schema.Product.BasePrice.Decimal

	for i := range schema.Groups {
		group := &schema.Groups[i]
		if len(group.Options) == 0 || group.Kind == constants.VariationKindText {
			continue
		}
		minAdj, maxAdj := optionAdjustmentRange(group)
		switch {
		case group.Kind == constants.VariationKindBoolean:
			// 开关可关闭，下界不计，负调整仍计入下界
			low = low.Add(decimal.Min(decimal.Zero, minAdj))
			high = high.Add(decimal.Max(decimal.Zero, maxAdj))
		case group.IsRequired:
			low = low.Add(minAdj)
			high = high.Add(maxAdj)
		default:
			low = low.Add(decimal.Min(decimal.Zero, minAdj))
			high = high.Add(decimal.Max(decimal.Zero, maxAdj))
		}
	}

	for i := range schema.AddOns {
		addon := &schema.AddOns[i]
		minPrice, maxPrice := addonPriceRange(addon)
		if addon.IsRequired {
			low = low.Add(minPrice)
			high = high.Add(maxPrice)
		} else {
			low = low.Add(decimal.Min(decimal.Zero, minPrice))
			high = high.Add(decimal.Max(decimal.Zero, maxPrice))
		}
	}
	return low, high
}

func optionAdjustmentRange(group *models.VariationGroup) (decimal.Decimal, decimal.Decimal) {
	minAdj := group.Options[0].PriceAdjustment.Decimal
	maxAdj := minAdj
	for i := 1; i < len(group.Options); i++ {
		adj := group.Options[i].PriceAdjustment.Decimal
		minAdj = decimal.Min(minAdj, adj)
		maxAdj = decimal.Max(maxAdj, adj)
	}
	return minAdj, maxAdj
}

func addonPriceRange(addon *models.AddOn) (decimal.Decimal, decimal.Decimal) {
	if !addon.HasOptions || len(addon.Options) == 0 {
		return addon.Price.Decimal, addon.Price.Decimal
	}
	minPrice := addon.Options[0].Price.Decimal
	maxPrice := minPrice
	for i := 1; i < len(addon.Options); i++ {
		price := addon.Options[i].Price.Decimal
		minPrice = decimal.Min(minPrice, price)
		maxPrice = decimal.Max(maxPrice, price)
	}
	return minPrice, maxPrice
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
