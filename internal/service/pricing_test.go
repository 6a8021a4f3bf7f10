package service

import (
	"testing"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"

	"github.com/shopspring/decimal"
)

func validateFixtureConfiguration(t *testing.T, raw *RawConfiguration) (*ProductSchema, *ValidatedConfiguration) {
	t.Helper()
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, raw)
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	return schema, validated
}

func TestComputeUnitPriceDefaults(t *testing.T) {
	schema, validated := validateFixtureConfiguration(t, &RawConfiguration{})
	price := ComputeUnitPrice(schema, validated)
	if price.String() != "999.00" {
		t.Fatalf("default price want 999.00 got %s", price)
	}
}

func TestComputeUnitPriceFullyLoaded(t *testing.T) {
	schema, validated := validateFixtureConfiguration(t, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"10": {Kind: constants.VariationKindDropdown, OptionID: 102},
			"11": {Kind: constants.VariationKindDropdown, OptionID: 113},
			"12": {Kind: constants.VariationKindDropdown, OptionID: 122},
		},
		BundleItems: map[string]RawBundleSelection{
			"30": {Selected: true},
		},
	})
	// 999 + 200 + 300 + 500 + 399
	price := ComputeUnitPrice(schema, validated)
	if price.String() != "2398.00" {
		t.Fatalf("fully loaded price want 2398.00 got %s", price)
	}
}

func TestComputeUnitPriceWithoutBundleItem(t *testing.T) {
	schema, validated := validateFixtureConfiguration(t, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"10": {OptionID: 102},
			"11": {OptionID: 113},
			"12": {OptionID: 122},
		},
	})
	price := ComputeUnitPrice(schema, validated)
	if price.String() != "1999.00" {
		t.Fatalf("price without bundle item want 1999.00 got %s", price)
	}
}

func TestComputeUnitPriceConfigurableBundleItem(t *testing.T) {
	schema, validated := validateFixtureConfiguration(t, &RawConfiguration{
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
	// 999 + (229 + 249 + 80)
	price := ComputeUnitPrice(schema, validated)
	if price.String() != "1557.00" {
		t.Fatalf("configurable bundle price want 1557.00 got %s", price)
	}
}

func TestComputeUnitPriceClampsNegativeToZero(t *testing.T) {
	schema := &ProductSchema{
		Product: models.Product{ID: 5, BasePrice: testMoney(10)},
		Groups: []models.VariationGroup{
			{
				ID: 50, ProductID: 5, Name: "Trade-in", Kind: constants.VariationKindDropdown, IsRequired: true,
				Options: []models.VariationOption{
					{ID: 501, GroupID: 50, Label: "Full frame trade-in", PriceAdjustment: testMoney(-50), IsDefault: true},
				},
			},
		},
	}
	validated, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	price := ComputeUnitPrice(schema, validated)
	if !price.Decimal.Equal(decimal.Zero) {
		t.Fatalf("clamped price want 0 got %s", price)
	}
}

func TestComputePriceRangeNegativeBundleAdjustmentLowersFloor(t *testing.T) {
	schema := &ProductSchema{
		Product: models.Product{ID: 7, BasePrice: testMoney(100)},
		BundleItems: []BundleItemSchema{
			{
				BundleItem: models.BundleItem{
					ID: 70, ParentProductID: 7, ItemProductID: 2,
					ItemType: constants.BundleItemTypeOptional, Quantity: 1,
					PriceAdjustment: testMoney(-50),
				},
			},
		},
	}
	priceMin, priceMax := ComputePriceRange(schema)
	if priceMin.String() != "50.00" {
		t.Fatalf("price_min want 50.00 got %s", priceMin)
	}
	if priceMax.String() != "100.00" {
		t.Fatalf("price_max want 100.00 got %s", priceMax)
	}

	// 选中折扣捆绑项的有效配置必须仍落在区间内
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"70": {Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	price := ComputeUnitPrice(schema, validated)
	if price.String() != "50.00" {
		t.Fatalf("discounted price want 50.00 got %s", price)
	}
	if price.Decimal.LessThan(priceMin.Decimal) || price.Decimal.GreaterThan(priceMax.Decimal) {
		t.Fatalf("price %s outside range %s..%s", price, priceMin, priceMax)
	}
}

func TestComputeUnitPriceRoundsOnceAtTheEnd(t *testing.T) {
	// 20 个每项 0.004 的调整：逐项四舍五入会全部归零，
	// 最后统一舍入则累计为 0.08。
	schema := &ProductSchema{
		Product: models.Product{ID: 8, BasePrice: testMoney(10)},
	}
	for i := 0; i < 20; i++ {
		groupID := uint(800 + i)
		schema.Groups = append(schema.Groups, models.VariationGroup{
			ID: groupID, ProductID: 8, Name: "Shim", Kind: constants.VariationKindDropdown, IsRequired: true,
			Options: []models.VariationOption{
				{
					ID: groupID*10 + 1, GroupID: groupID, Label: "Standard",
					PriceAdjustment: models.Money{Decimal: decimal.NewFromFloat(0.004)},
					IsDefault:       true,
				},
			},
		})
	}
	validated, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	price := ComputeUnitPrice(schema, validated)
	if price.String() != "10.08" {
		t.Fatalf("round-once price want 10.08 got %s", price)
	}
	if again := ComputeUnitPrice(schema, validated); again.String() != price.String() {
		t.Fatalf("repeated call want %s got %s", price, again)
	}
}

func TestComputePriceRange(t *testing.T) {
	schema := cockpitSchemaFixture()
	priceMin, priceMax := ComputePriceRange(schema)
	if priceMin.String() != "999.00" {
		t.Fatalf("price_min want 999.00 got %s", priceMin)
	}
	// 999+200+300+500 + 99+299 + 399 + (229+249+80)
	if priceMax.String() != "3354.00" {
		t.Fatalf("price_max want 3354.00 got %s", priceMax)
	}
}

func TestComputePriceRangeRequiredBundleItem(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[0].ItemType = constants.BundleItemTypeRequired

	priceMin, priceMax := ComputePriceRange(schema)
	if priceMin.String() != "1398.00" {
		t.Fatalf("price_min with required bundle want 1398.00 got %s", priceMin)
	}
	if priceMax.String() != "3354.00" {
		t.Fatalf("price_max with required bundle want 3354.00 got %s", priceMax)
	}
}

func TestComputePriceRangeNegativeAdjustmentLowersFloor(t *testing.T) {
	schema := &ProductSchema{
		Product: models.Product{ID: 6, BasePrice: testMoney(100)},
		Groups: []models.VariationGroup{
			{
				ID: 60, ProductID: 6, Name: "Finish", Kind: constants.VariationKindDropdown,
				Options: []models.VariationOption{
					{ID: 601, GroupID: 60, Label: "Bare aluminium", PriceAdjustment: testMoney(-30)},
					{ID: 602, GroupID: 60, Label: "Powder coat", PriceAdjustment: testMoney(20)},
				},
			},
		},
	}
	priceMin, priceMax := ComputePriceRange(schema)
	if priceMin.String() != "70.00" {
		t.Fatalf("price_min want 70.00 got %s", priceMin)
	}
	if priceMax.String() != "120.00" {
		t.Fatalf("price_max want 120.00 got %s", priceMax)
	}
}
