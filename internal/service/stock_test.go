package service

import (
	"errors"
	"testing"

	"github.com/cockpitforge/internal/constants"
)

func TestResolveStockProductOutOfStock(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.Product.StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	_, err = ResolveStock(schema, validated)
	if !errors.Is(err, ErrRequiredComponentOutOfStock) {
		t.Fatalf("want ErrRequiredComponentOutOfStock got %v", err)
	}
}

func TestResolveStockRequiredOptionOutOfStock(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.Groups[1].Options[2].StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"11": {OptionID: 113},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	_, err = ResolveStock(schema, validated)
	if !errors.Is(err, ErrRequiredComponentOutOfStock) {
		t.Fatalf("want ErrRequiredComponentOutOfStock got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ConfigurationError got %T", err)
	}
	if cfgErr.GroupID != 11 || cfgErr.OptionID != 113 {
		t.Fatalf("locator want (11, 113) got (%d, %d)", cfgErr.GroupID, cfgErr.OptionID)
	}
}

func TestResolveStockOptionalOptionDowngradedToWarning(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.Groups[2].Options[1].StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"12": {OptionID: 122},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		t.Fatalf("resolve stock failed: %v", err)
	}
	for _, v := range resolution.Configuration.Variations {
		if v.OptionID == 122 {
			t.Fatalf("out of stock optional option must be removed")
		}
	}
	if len(resolution.Warnings) != 1 {
		t.Fatalf("warnings want 1 got %d", len(resolution.Warnings))
	}
	warning := resolution.Warnings[0]
	if warning.Kind != constants.StockWarningOutOfStock || warning.ID != 122 {
		t.Fatalf("warning want out_of_stock on 122 got %s on %d", warning.Kind, warning.ID)
	}

	// 剔除后计价不含缺货升级件
	price := ComputeUnitPrice(schema, resolution.Configuration)
	if price.String() != "999.00" {
		t.Fatalf("price after removal want 999.00 got %s", price)
	}
}

func TestResolveStockLowStockWarningKeepsSelection(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"11": {OptionID: 113},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		t.Fatalf("resolve stock failed: %v", err)
	}
	kept := false
	for _, v := range resolution.Configuration.Variations {
		if v.OptionID == 113 {
			kept = true
		}
	}
	if !kept {
		t.Fatalf("low stock selection must be kept")
	}
	if len(resolution.Warnings) != 1 || resolution.Warnings[0].Kind != constants.StockWarningLowStock {
		t.Fatalf("want single low_stock warning got %+v", resolution.Warnings)
	}
}

func TestResolveStockOptionalBundleItemDowngradedToWarning(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[0].Item.StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"30": {Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		t.Fatalf("resolve stock failed: %v", err)
	}
	if len(resolution.Configuration.BundleItems) != 0 {
		t.Fatalf("out of stock optional bundle item must be removed")
	}
	if len(resolution.Warnings) != 1 || resolution.Warnings[0].Unit != constants.StockUnitBundleItem {
		t.Fatalf("want single bundle_item warning got %+v", resolution.Warnings)
	}
}

func TestResolveStockRequiredBundleItemOutOfStock(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[0].ItemType = constants.BundleItemTypeRequired
	schema.BundleItems[0].Item.StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	_, err = ResolveStock(schema, validated)
	if !errors.Is(err, ErrRequiredComponentOutOfStock) {
		t.Fatalf("want ErrRequiredComponentOutOfStock got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ConfigurationError got %T", err)
	}
	if cfgErr.BundleItemID != 30 {
		t.Fatalf("bundle_item_id want 30 got %d", cfgErr.BundleItemID)
	}
}

func TestResolveStockNestedOptionOutOfStockPrunesOptionalBundle(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[1].Sub.Groups[0].Options[1].StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"31": {
				Selected: true,
				Configuration: &RawConfiguration{
					Variations: map[string]RawVariationSelection{
						"40": {OptionID: 402},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		t.Fatalf("resolve stock failed: %v", err)
	}
	if len(resolution.Configuration.BundleItems) != 0 {
		t.Fatalf("bundle item with out of stock nested option must be removed")
	}
	if len(resolution.Warnings) != 1 {
		t.Fatalf("warnings want 1 got %+v", resolution.Warnings)
	}
	warning := resolution.Warnings[0]
	if warning.Unit != constants.StockUnitBundleItem || warning.ID != 31 {
		t.Fatalf("warning want bundle_item on 31 got %s on %d", warning.Unit, warning.ID)
	}

	price := ComputeUnitPrice(schema, resolution.Configuration)
	if price.String() != "999.00" {
		t.Fatalf("price after removal want 999.00 got %s", price)
	}
}

func TestResolveStockNestedOptionOutOfStockFailsRequiredBundle(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[1].ItemType = constants.BundleItemTypeRequired
	schema.BundleItems[1].Sub.Groups[0].Options[1].StockQuantity = testIntPtr(0)

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"31": {
				Configuration: &RawConfiguration{
					Variations: map[string]RawVariationSelection{
						"40": {OptionID: 402},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	_, err = ResolveStock(schema, validated)
	if !errors.Is(err, ErrRequiredComponentOutOfStock) {
		t.Fatalf("want ErrRequiredComponentOutOfStock got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ConfigurationError got %T", err)
	}
	if cfgErr.BundleItemID != 31 || cfgErr.OptionID != 402 {
		t.Fatalf("locator want (31, 402) got (%d, %d)", cfgErr.BundleItemID, cfgErr.OptionID)
	}
}

func TestResolveStockNestedLowStockWarningKeepsBundle(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[1].Sub.Groups[0].Options[1].StockQuantity = testIntPtr(2)
	schema.BundleItems[1].Sub.Groups[0].Options[1].LowStockThreshold = 3

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"31": {
				Selected: true,
				Configuration: &RawConfiguration{
					Variations: map[string]RawVariationSelection{
						"40": {OptionID: 402},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		t.Fatalf("resolve stock failed: %v", err)
	}
	if len(resolution.Configuration.BundleItems) != 1 {
		t.Fatalf("bundle item with low stock nested option must be kept")
	}
	sub := resolution.Configuration.BundleItems[0].Sub
	if sub == nil || len(sub.Variations) != 1 || sub.Variations[0].OptionID != 402 {
		t.Fatalf("nested selection must survive, got %+v", sub)
	}
	if len(resolution.Warnings) != 1 || resolution.Warnings[0].Kind != constants.StockWarningLowStock || resolution.Warnings[0].ID != 402 {
		t.Fatalf("want single low_stock warning on 402 got %+v", resolution.Warnings)
	}
}

func TestResolveStockUntrackedComponentsPassThrough(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"10": {OptionID: 102},
		},
		AddOns: map[string]RawAddOnSelection{
			"20": {Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		t.Fatalf("resolve stock failed: %v", err)
	}
	if len(resolution.Warnings) != 0 {
		t.Fatalf("untracked components should not warn, got %+v", resolution.Warnings)
	}
	if resolution.Configuration.Signature() != validated.Signature() {
		t.Fatalf("untracked configuration must survive stock resolution unchanged")
	}
}
