package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"
)

func TestValidateConfigurationSubstitutesDefaults(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	if len(validated.Variations) != 3 {
		t.Fatalf("variations want 3 got %d", len(validated.Variations))
	}
	wantOptions := []uint{101, 111, 121}
	for i, want := range wantOptions {
		if validated.Variations[i].OptionID != want {
			t.Fatalf("variation %d option want %d got %d", i, want, validated.Variations[i].OptionID)
		}
	}
	if len(validated.AddOns) != 0 {
		t.Fatalf("addons want 0 got %d", len(validated.AddOns))
	}
	if len(validated.BundleItems) != 0 {
		t.Fatalf("bundle items want 0 got %d", len(validated.BundleItems))
	}
}

func TestValidateConfigurationMissingRequiredVariation(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.Groups[0].Options[0].IsDefault = false

	_, err := ValidateConfiguration(schema, &RawConfiguration{})
	if !errors.Is(err, ErrMissingRequiredVariation) {
		t.Fatalf("want ErrMissingRequiredVariation got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ConfigurationError got %T", err)
	}
	if cfgErr.GroupID != 10 {
		t.Fatalf("group_id want 10 got %d", cfgErr.GroupID)
	}
}

func TestValidateConfigurationInvalidOptionReference(t *testing.T) {
	schema := cockpitSchemaFixture()
	_, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"11": {OptionID: 9999},
		},
	})
	if !errors.Is(err, ErrInvalidOptionReference) {
		t.Fatalf("want ErrInvalidOptionReference got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ConfigurationError got %T", err)
	}
	if cfgErr.GroupID != 11 || cfgErr.OptionID != 9999 {
		t.Fatalf("locator want (11, 9999) got (%d, %d)", cfgErr.GroupID, cfgErr.OptionID)
	}
}

func TestValidateConfigurationKindMismatch(t *testing.T) {
	schema := cockpitSchemaFixture()
	_, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"10": {Kind: constants.VariationKindText, Value: "noop"},
		},
	})
	if !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("want ErrConfigurationInvalid got %v", err)
	}
}

func TestValidateConfigurationStripsUnknownKeys(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"9999": {OptionID: 1},
		},
		AddOns: map[string]RawAddOnSelection{
			"8888": {Selected: true},
		},
		BundleItems: map[string]RawBundleSelection{
			"7777": {Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	for _, v := range validated.Variations {
		if v.GroupID == 9999 {
			t.Fatalf("unknown group survived validation")
		}
	}
	if len(validated.AddOns) != 0 || len(validated.BundleItems) != 0 {
		t.Fatalf("unknown addon/bundle keys survived validation")
	}
}

func TestValidateConfigurationTextVariation(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"13": {Kind: constants.VariationKindText, Value: "  N123AB  "},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	var entry *ResolvedVariation
	for i := range validated.Variations {
		if validated.Variations[i].GroupID == 13 {
			entry = &validated.Variations[i]
		}
	}
	if entry == nil {
		t.Fatalf("text variation missing from resolved configuration")
	}
	if entry.Value != "N123AB" {
		t.Fatalf("text value want N123AB got %q", entry.Value)
	}
}

func TestValidateConfigurationBooleanVariation(t *testing.T) {
	enabled := true
	schema := &ProductSchema{
		Product: models.Product{ID: 7, BasePrice: testMoney(100)},
		Groups: []models.VariationGroup{
			{
				ID: 70, ProductID: 7, Name: "LED Backlight", Kind: constants.VariationKindBoolean,
				Options: []models.VariationOption{
					{ID: 701, GroupID: 70, Label: "LED Backlight", PriceAdjustment: testMoney(25)},
				},
			},
		},
	}

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"70": {Kind: constants.VariationKindBoolean, Enabled: &enabled},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	if len(validated.Variations) != 1 || !validated.Variations[0].Enabled {
		t.Fatalf("boolean variation not resolved as enabled")
	}
	if validated.Variations[0].PriceAdjustment.String() != "25.00" {
		t.Fatalf("boolean adjustment want 25.00 got %s", validated.Variations[0].PriceAdjustment)
	}

	// 未提交且无默认选项时视为关闭，不报错
	validated, err = ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	if len(validated.Variations) != 0 {
		t.Fatalf("disabled boolean should be absent, got %d variations", len(validated.Variations))
	}
}

func TestValidateConfigurationAddOnDefaults(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		AddOns: map[string]RawAddOnSelection{
			"20": {Selected: true},
			"21": {Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	if len(validated.AddOns) != 2 {
		t.Fatalf("addons want 2 got %d", len(validated.AddOns))
	}
	if validated.AddOns[0].Price.String() != "99.00" {
		t.Fatalf("flat addon price want 99.00 got %s", validated.AddOns[0].Price)
	}
	// 带选项附加项未指定选项时代入默认选项
	if validated.AddOns[1].OptionID != 211 || validated.AddOns[1].Price.String() != "149.00" {
		t.Fatalf("addon default option want (211, 149.00) got (%d, %s)",
			validated.AddOns[1].OptionID, validated.AddOns[1].Price)
	}
}

func TestValidateConfigurationRequiredAddOnImplicit(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.AddOns[0].IsRequired = true

	validated, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	if len(validated.AddOns) != 1 || validated.AddOns[0].AddOnID != 20 {
		t.Fatalf("required addon not implicitly included")
	}
}

func TestValidateConfigurationInvalidAddOnOption(t *testing.T) {
	schema := cockpitSchemaFixture()
	_, err := ValidateConfiguration(schema, &RawConfiguration{
		AddOns: map[string]RawAddOnSelection{
			"21": {Selected: true, OptionID: 9999},
		},
	})
	if !errors.Is(err, ErrInvalidAddOnReference) {
		t.Fatalf("want ErrInvalidAddOnReference got %v", err)
	}
}

func TestValidateConfigurationRequiredBundleDeselectIgnored(t *testing.T) {
	schema := cockpitSchemaFixture()
	schema.BundleItems[0].ItemType = constants.BundleItemTypeRequired

	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"30": {Selected: false},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}
	if len(validated.BundleItems) != 1 || validated.BundleItems[0].BundleItemID != 30 {
		t.Fatalf("required bundle item must stay included")
	}
}

func TestValidateConfigurationNestedBundleFailure(t *testing.T) {
	schema := cockpitSchemaFixture()
	_, err := ValidateConfiguration(schema, &RawConfiguration{
		BundleItems: map[string]RawBundleSelection{
			"31": {
				Selected: true,
				Configuration: &RawConfiguration{
					Variations: map[string]RawVariationSelection{
						"40": {OptionID: 9999},
					},
				},
			},
		},
	})
	if !errors.Is(err, ErrBundleConfigurationInvalid) {
		t.Fatalf("want ErrBundleConfigurationInvalid got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ConfigurationError got %T", err)
	}
	if cfgErr.BundleItemID != 31 {
		t.Fatalf("bundle_item_id want 31 got %d", cfgErr.BundleItemID)
	}
}

func TestSignatureStableAcrossKeyOrder(t *testing.T) {
	schema := cockpitSchemaFixture()

	first, err := ParseRawConfiguration(json.RawMessage(
		`{"variations":{"10":{"option_id":102},"11":{"option_id":113}},"bundle_items":{"30":{"selected":true}}}`))
	if err != nil {
		t.Fatalf("parse first payload failed: %v", err)
	}
	second, err := ParseRawConfiguration(json.RawMessage(
		`{"bundle_items":{"30":{"selected":true}},"variations":{"11":{"option_id":113},"10":{"option_id":102}}}`))
	if err != nil {
		t.Fatalf("parse second payload failed: %v", err)
	}

	validatedFirst, err := ValidateConfiguration(schema, first)
	if err != nil {
		t.Fatalf("validate first failed: %v", err)
	}
	validatedSecond, err := ValidateConfiguration(schema, second)
	if err != nil {
		t.Fatalf("validate second failed: %v", err)
	}

	sigFirst := validatedFirst.Signature()
	sigSecond := validatedSecond.Signature()
	if sigFirst == "" {
		t.Fatalf("signature is empty")
	}
	if sigFirst != sigSecond {
		t.Fatalf("signatures differ: %s vs %s", sigFirst, sigSecond)
	}
}

func TestSignatureDistinguishesConfigurations(t *testing.T) {
	schema := cockpitSchemaFixture()

	base, err := ValidateConfiguration(schema, &RawConfiguration{})
	if err != nil {
		t.Fatalf("validate base failed: %v", err)
	}
	upgraded, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"10": {OptionID: 102},
		},
	})
	if err != nil {
		t.Fatalf("validate upgraded failed: %v", err)
	}
	if base.Signature() == upgraded.Signature() {
		t.Fatalf("different configurations produced equal signatures")
	}
}

func TestParseRawConfigurationInvalidPayload(t *testing.T) {
	_, err := ParseRawConfiguration(json.RawMessage(`{"variations": [1, 2]}`))
	if !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("want ErrConfigurationInvalid got %v", err)
	}
}

func TestConfigurationJSONRoundTrip(t *testing.T) {
	schema := cockpitSchemaFixture()
	validated, err := ValidateConfiguration(schema, &RawConfiguration{
		Variations: map[string]RawVariationSelection{
			"10": {OptionID: 102},
		},
		BundleItems: map[string]RawBundleSelection{
			"30": {Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("validate configuration failed: %v", err)
	}

	snapshot, err := validated.ToJSON()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	restored, err := ConfigurationFromJSON(snapshot)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Signature() != validated.Signature() {
		t.Fatalf("signature changed across snapshot round trip")
	}
}
