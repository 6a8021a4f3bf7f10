package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"
)

// RawConfiguration 客户提交的原始配置载荷。
// 按选择类型区分的 tagged union，逐项对照 schema 解码，
// 绝不在无 schema 约束下解释任意嵌套 map。
type RawConfiguration struct {
	Variations  map[string]RawVariationSelection `json:"variations"`
	AddOns      map[string]RawAddOnSelection     `json:"addons"`
	BundleItems map[string]RawBundleSelection    `json:"bundle_items"`
}

// RawVariationSelection 变体组选择（kind 决定有效字段）
type RawVariationSelection struct {
	Kind     string `json:"kind"`                // dropdown/image/text/boolean
	OptionID uint   `json:"option_id,omitempty"` // dropdown/image
	Enabled  *bool  `json:"enabled,omitempty"`   // boolean
	Value    string `json:"value,omitempty"`     // text
}

// RawAddOnSelection 附加项选择
type RawAddOnSelection struct {
	Selected bool `json:"selected"`
	OptionID uint `json:"option_id,omitempty"` // has_options 时的选项
}

// RawBundleSelection 捆绑项选择
type RawBundleSelection struct {
	Selected      bool              `json:"selected"`
	Configuration *RawConfiguration `json:"configuration,omitempty"` // is_configurable 时的嵌套子配置
}

// ParseRawConfiguration 解析请求体中的配置载荷
func ParseRawConfiguration(data json.RawMessage) (*RawConfiguration, error) {
	if len(data) == 0 {
		return &RawConfiguration{}, nil
	}
	var raw RawConfiguration
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Err: ErrConfigurationInvalid, Detail: err.Error()}
	}
	return &raw, nil
}

// ValidatedConfiguration 完全消解后的配置：默认值已代入、未知键已剥除、
// 条目按ID升序规范排序。签名与价格计算都以它为唯一输入。
type ValidatedConfiguration struct {
	Variations  []ResolvedVariation  `json:"variations"`
	AddOns      []ResolvedAddOn      `json:"addons,omitempty"`
	BundleItems []ResolvedBundleItem `json:"bundle_items,omitempty"`
}

// ResolvedVariation 已消解的变体选择
type ResolvedVariation struct {
	GroupID         uint         `json:"group_id"`
	GroupName       string       `json:"group_name"`
	Kind            string       `json:"kind"`
	OptionID        uint         `json:"option_id,omitempty"`
	Label           string       `json:"label,omitempty"`
	Value           string       `json:"value,omitempty"`
	Enabled         bool         `json:"enabled,omitempty"`
	PriceAdjustment models.Money `json:"price_adjustment"`
}

// ResolvedAddOn 已消解的附加项选择
type ResolvedAddOn struct {
	AddOnID  uint         `json:"addon_id"`
	Name     string       `json:"name"`
	OptionID uint         `json:"option_id,omitempty"`
	Label    string       `json:"label,omitempty"`
	Price    models.Money `json:"price"`
}

// ResolvedBundleItem 已消解的捆绑项选择
type ResolvedBundleItem struct {
	BundleItemID    uint                    `json:"bundle_item_id"`
	ItemProductID   uint                    `json:"item_product_id"`
	ItemName        string                  `json:"item_name"`
	ItemType        string                  `json:"item_type"`
	Quantity        int                     `json:"quantity"`
	PriceAdjustment models.Money            `json:"price_adjustment"`
	Sub             *ValidatedConfiguration `json:"configuration,omitempty"`
}

// Signature 规范化配置签名：对规范 JSON 取 sha256。
// 行身份 = (商品ID, 签名)。
func (c *ValidatedConfiguration) Signature() string {
	payload, err := json.Marshal(c)
	if err != nil {
		// 结构体序列化不应失败；空签名会被上层当作内部错误暴露
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// ToJSON 转为存储用 JSON 快照
func (c *ValidatedConfiguration) ToJSON() (models.JSON, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var out models.JSON
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigurationFromJSON 从存储快照还原配置
func ConfigurationFromJSON(data models.JSON) (*ValidatedConfiguration, error) {
	if data == nil {
		return &ValidatedConfiguration{}, nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out ValidatedConfiguration
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateConfiguration 按 schema 校验原始配置并消解为规范配置。
// 规则按序应用、首错即停：
//  1. 必选变体组必须有且仅有一个选择，缺失时代入默认选项，无默认则失败；
//  2. 选项必须属于其声称的变体组；
//  3. 必选附加项必须可消解（固定价直接代入，带选项的代入默认选项）；
//  4. 必选捆绑项隐式包含，客户输入不可取消（出现取消视为无效输入直接忽略）；
//  5. 可选捆绑项被选中且可配置时，按其商品 schema 递归校验嵌套子配置（仅一层）。
func ValidateConfiguration(schema *ProductSchema, raw *RawConfiguration) (*ValidatedConfiguration, error) {
	if raw == nil {
		raw = &RawConfiguration{}
	}
	out := &ValidatedConfiguration{}

	variations, err := resolveVariations(schema.Groups, raw.Variations)
	if err != nil {
		return nil, err
	}
	out.Variations = variations

	addons, err := resolveAddOns(schema.AddOns, raw.AddOns)
	if err != nil {
		return nil, err
	}
	out.AddOns = addons

	bundles, err := resolveBundleItems(schema.BundleItems, raw.BundleItems)
	if err != nil {
		return nil, err
	}
	out.BundleItems = bundles

	sortConfiguration(out)
	return out, nil
}

func resolveVariations(groups []models.VariationGroup, selections map[string]RawVariationSelection) ([]ResolvedVariation, error) {
	resolved := make([]ResolvedVariation, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		sel, present := selections[strconv.FormatUint(uint64(group.ID), 10)]
		if present && sel.Kind != "" && sel.Kind != group.Kind {
			return nil, &ConfigurationError{
				Err:     ErrConfigurationInvalid,
				GroupID: group.ID,
				Detail:  "selection kind mismatch",
			}
		}

		switch group.Kind {
		case constants.VariationKindDropdown, constants.VariationKindImage:
			entry, err := resolveOptionSelection(group, sel, present)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				resolved = append(resolved, *entry)
			}
		case constants.VariationKindBoolean:
			entry, err := resolveBooleanSelection(group, sel, present)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				resolved = append(resolved, *entry)
			}
		case constants.VariationKindText:
			value := strings.TrimSpace(sel.Value)
			if value == "" {
				if group.IsRequired {
					return nil, &ConfigurationError{Err: ErrMissingRequiredVariation, GroupID: group.ID}
				}
				continue
			}
			resolved = append(resolved, ResolvedVariation{
				GroupID:   group.ID,
				GroupName: group.Name,
				Kind:      group.Kind,
				Value:     value,
			})
		default:
			return nil, &ConfigurationError{
				Err:     ErrConfigurationInvalid,
				GroupID: group.ID,
				Detail:  "unknown variation kind",
			}
		}
	}
	// schema 之外的组ID直接剥除，不报错
	return resolved, nil
}

// resolveOptionSelection 消解 dropdown/image 组：显式选项优先，缺失代入默认
func resolveOptionSelection(group *models.VariationGroup, sel RawVariationSelection, present bool) (*ResolvedVariation, error) {
	var option *models.VariationOption
	if present && sel.OptionID != 0 {
		option = findOption(group, sel.OptionID)
		if option == nil {
			return nil, &ConfigurationError{
				Err:      ErrInvalidOptionReference,
				GroupID:  group.ID,
				OptionID: sel.OptionID,
			}
		}
	} else {
		option = defaultOption(group)
		if option == nil {
			if group.IsRequired {
				return nil, &ConfigurationError{Err: ErrMissingRequiredVariation, GroupID: group.ID}
			}
			return nil, nil
		}
	}
	return &ResolvedVariation{
		GroupID:         group.ID,
		GroupName:       group.Name,
		Kind:            group.Kind,
		OptionID:        option.ID,
		Label:           option.Label,
		PriceAdjustment: option.PriceAdjustment,
	}, nil
}

// resolveBooleanSelection 消解 boolean 组：未提交时以默认选项的 is_default 为准，
// 关闭态是合法的零成本缺省，从不报错
func resolveBooleanSelection(group *models.VariationGroup, sel RawVariationSelection, present bool) (*ResolvedVariation, error) {
	enabled := false
	if present && sel.Enabled != nil {
		enabled = *sel.Enabled
	} else if option := defaultOption(group); option != nil {
		enabled = true
	}
	if !enabled {
		return nil, nil
	}
	entry := &ResolvedVariation{
		GroupID:   group.ID,
		GroupName: group.Name,
		Kind:      group.Kind,
		Enabled:   true,
	}
	// 开关的价格挂在组的首个选项上
	if len(group.Options) > 0 {
		entry.OptionID = group.Options[0].ID
		entry.Label = group.Options[0].Label
		entry.PriceAdjustment = group.Options[0].PriceAdjustment
	}
	return entry, nil
}

func resolveAddOns(addons []models.AddOn, selections map[string]RawAddOnSelection) ([]ResolvedAddOn, error) {
	resolved := make([]ResolvedAddOn, 0, len(addons))
	for i := range addons {
		addon := &addons[i]
		sel, present := selections[strconv.FormatUint(uint64(addon.ID), 10)]
		selected := present && sel.Selected
		if addon.IsRequired {
			selected = true
		}
		if !selected {
			continue
		}

		entry := ResolvedAddOn{
			AddOnID: addon.ID,
			Name:    addon.Name,
		}
		if !addon.HasOptions {
			entry.Price = addon.Price
			resolved = append(resolved, entry)
			continue
		}

		var option *models.AddOnOption
		if present && sel.OptionID != 0 {
			option = findAddOnOption(addon, sel.OptionID)
			if option == nil {
				return nil, &ConfigurationError{
					Err:      ErrInvalidAddOnReference,
					AddOnID:  addon.ID,
					OptionID: sel.OptionID,
				}
			}
		} else {
			option = defaultAddOnOption(addon)
			if option == nil {
				if addon.IsRequired {
					return nil, &ConfigurationError{Err: ErrMissingRequiredAddOn, AddOnID: addon.ID}
				}
				return nil, &ConfigurationError{
					Err:     ErrInvalidAddOnReference,
					AddOnID: addon.ID,
					Detail:  "option selection required",
				}
			}
		}
		entry.OptionID = option.ID
		entry.Label = option.Label
		entry.Price = option.Price
		resolved = append(resolved, entry)
	}
	return resolved, nil
}

func resolveBundleItems(items []BundleItemSchema, selections map[string]RawBundleSelection) ([]ResolvedBundleItem, error) {
	resolved := make([]ResolvedBundleItem, 0, len(items))
	for i := range items {
		item := &items[i]
		sel, present := selections[strconv.FormatUint(uint64(item.ID), 10)]

		included := item.ItemType == constants.BundleItemTypeRequired
		if !included {
			included = present && sel.Selected
		}
		if !included {
			continue
		}

		entry := ResolvedBundleItem{
			BundleItemID:    item.ID,
			ItemProductID:   item.ItemProductID,
			ItemType:        item.ItemType,
			Quantity:        item.Quantity,
			PriceAdjustment: item.PriceAdjustment,
		}
		if entry.Quantity <= 0 {
			entry.Quantity = 1
		}
		if item.Item != nil {
			entry.ItemName = item.Item.Name
		}

		if item.IsConfigurable && item.Sub != nil {
			var nestedRaw *RawConfiguration
			if present {
				nestedRaw = sel.Configuration
			}
			sub, err := ValidateConfiguration(item.Sub, nestedRaw)
			if err != nil {
				return nil, &ConfigurationError{
					Err:          ErrBundleConfigurationInvalid,
					BundleItemID: item.ID,
					Detail:       err.Error(),
				}
			}
			entry.Sub = sub
		}
		resolved = append(resolved, entry)
	}
	return resolved, nil
}

func sortConfiguration(c *ValidatedConfiguration) {
	sort.Slice(c.Variations, func(i, j int) bool {
		return c.Variations[i].GroupID < c.Variations[j].GroupID
	})
	sort.Slice(c.AddOns, func(i, j int) bool {
		return c.AddOns[i].AddOnID < c.AddOns[j].AddOnID
	})
	sort.Slice(c.BundleItems, func(i, j int) bool {
		return c.BundleItems[i].BundleItemID < c.BundleItems[j].BundleItemID
	})
}

func findOption(group *models.VariationGroup, optionID uint) *models.VariationOption {
	for i := range group.Options {
		if group.Options[i].ID == optionID {
			return &group.Options[i]
		}
	}
	return nil
}

func defaultOption(group *models.VariationGroup) *models.VariationOption {
	for i := range group.Options {
		if group.Options[i].IsDefault {
			return &group.Options[i]
		}
	}
	return nil
}

func findAddOnOption(addon *models.AddOn, optionID uint) *models.AddOnOption {
	for i := range addon.Options {
		if addon.Options[i].ID == optionID {
			return &addon.Options[i]
		}
	}
	return nil
}

func defaultAddOnOption(addon *models.AddOn) *models.AddOnOption {
	for i := range addon.Options {
		if addon.Options[i].IsDefault {
			return &addon.Options[i]
		}
	}
	return nil
}
