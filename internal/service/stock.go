package service

import (
	"errors"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"
)

// StockWarning 非致命库存提示（随加购结果返回给前端展示）
type StockWarning struct {
	Kind  string `json:"kind"`  // out_of_stock / low_stock
	Unit  string `json:"unit"`  // variation_option / bundle_item / product
	ID    uint   `json:"id"`    // 组件ID
	Label string `json:"label"` // 展示名称
}

// StockResolution 库存消解结果：可选缺货组件已剔除的配置 + 警告列表
type StockResolution struct {
	Configuration *ValidatedConfiguration `json:"configuration"`
	Warnings      []StockWarning          `json:"warnings"`
}

// ResolveStock 对配置触达的所有跟踪库存组件做快照检查，
// 包括可配置捆绑项嵌套子配置里的选项库存。
// 必选组件缺货整单拒绝；可选组件缺货从配置中剔除并降级为警告
// （可选组件永不阻塞主商品购买）；低于阈值只提示不剔除。
// 纯快照读：不做预留，扣减延迟到订单确认，竞争下接受最后提交者赢。
func ResolveStock(schema *ProductSchema, configuration *ValidatedConfiguration) (*StockResolution, error) {
	if schema.Product.StockQuantity != nil && *schema.Product.StockQuantity <= 0 {
		return nil, &ConfigurationError{
			Err:    ErrRequiredComponentOutOfStock,
			Detail: schema.Product.Name,
		}
	}

	result := &StockResolution{
		Configuration: &ValidatedConfiguration{},
	}

	variations, warnings, err := resolveVariationStock(schema, configuration.Variations)
	if err != nil {
		return nil, err
	}
	result.Configuration.Variations = variations
	result.Warnings = append(result.Warnings, warnings...)

	// 附加项不跟踪库存，原样保留
	result.Configuration.AddOns = configuration.AddOns

	for _, b := range configuration.BundleItems {
		item := lookupBundleItem(schema, b.BundleItemID)
		if item != nil && item.Item != nil && item.Item.StockQuantity != nil && *item.Item.StockQuantity <= 0 {
			if item.ItemType == constants.BundleItemTypeRequired {
				return nil, &ConfigurationError{
					Err:          ErrRequiredComponentOutOfStock,
					BundleItemID: b.BundleItemID,
					Detail:       b.ItemName,
				}
			}
			result.Warnings = append(result.Warnings, StockWarning{
				Kind:  constants.StockWarningOutOfStock,
				Unit:  constants.StockUnitBundleItem,
				ID:    b.BundleItemID,
				Label: b.ItemName,
			})
			continue
		}

		// 嵌套子配置触达的选项库存同样检查
		if b.Sub != nil && item != nil && item.Sub != nil {
			subVariations, subWarnings, err := resolveVariationStock(item.Sub, b.Sub.Variations)
			if err != nil {
				if item.ItemType == constants.BundleItemTypeRequired {
					var cfgErr *ConfigurationError
					if errors.As(err, &cfgErr) {
						cfgErr.BundleItemID = b.BundleItemID
					}
					return nil, err
				}
				// 可选捆绑项内部的必选组件缺货：整项剔除并提示
				result.Warnings = append(result.Warnings, StockWarning{
					Kind:  constants.StockWarningOutOfStock,
					Unit:  constants.StockUnitBundleItem,
					ID:    b.BundleItemID,
					Label: b.ItemName,
				})
				continue
			}
			sub := *b.Sub
			sub.Variations = subVariations
			b.Sub = &sub
			result.Warnings = append(result.Warnings, subWarnings...)
		}
		result.Configuration.BundleItems = append(result.Configuration.BundleItems, b)
	}

	return result, nil
}

// resolveVariationStock 校验一组已消解变体选择触达的选项库存。
// 必选组缺货返回错误；可选组缺货剔除并给出警告。
func resolveVariationStock(schema *ProductSchema, variations []ResolvedVariation) ([]ResolvedVariation, []StockWarning, error) {
	kept := make([]ResolvedVariation, 0, len(variations))
	var warnings []StockWarning
	for _, v := range variations {
		group, option := lookupVariation(schema, v.GroupID, v.OptionID)
		if option == nil || option.StockQuantity == nil {
			kept = append(kept, v)
			continue
		}
		stock := *option.StockQuantity
		if stock <= 0 {
			if group != nil && group.IsRequired {
				return nil, nil, &ConfigurationError{
					Err:      ErrRequiredComponentOutOfStock,
					GroupID:  v.GroupID,
					OptionID: v.OptionID,
					Detail:   v.Label,
				}
			}
			warnings = append(warnings, StockWarning{
				Kind:  constants.StockWarningOutOfStock,
				Unit:  constants.StockUnitVariationOption,
				ID:    v.OptionID,
				Label: v.Label,
			})
			continue
		}
		if option.LowStockThreshold > 0 && stock <= option.LowStockThreshold {
			warnings = append(warnings, StockWarning{
				Kind:  constants.StockWarningLowStock,
				Unit:  constants.StockUnitVariationOption,
				ID:    v.OptionID,
				Label: v.Label,
			})
		}
		kept = append(kept, v)
	}
	return kept, warnings, nil
}

func lookupVariation(schema *ProductSchema, groupID, optionID uint) (*models.VariationGroup, *models.VariationOption) {
	for i := range schema.Groups {
		if schema.Groups[i].ID != groupID {
			continue
		}
		group := &schema.Groups[i]
		if optionID == 0 {
			return group, nil
		}
		return group, findOption(group, optionID)
	}
	// 组不属于该 schema 时视为未跟踪，选择原样保留
	return nil, nil
}

func lookupBundleItem(schema *ProductSchema, bundleItemID uint) *BundleItemSchema {
	for i := range schema.BundleItems {
		if schema.BundleItems[i].ID == bundleItemID {
			return &schema.BundleItems[i]
		}
	}
	return nil
}
