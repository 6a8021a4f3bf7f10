package service

import (
	"errors"
	"testing"

	"github.com/cockpitforge/internal/models"
)

func TestGetProductBySlugBuildsSchema(t *testing.T) {
	env := setupCartServiceTest(t)

	schema, err := env.catalog.GetProductBySlug("jetsim-pro-cockpit")
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if schema.Product.ID != env.cockpitID {
		t.Fatalf("product id want %d got %d", env.cockpitID, schema.Product.ID)
	}
	if len(schema.Groups) != 2 {
		t.Fatalf("groups want 2 got %d", len(schema.Groups))
	}
	if len(schema.Groups[0].Options) != 2 {
		t.Fatalf("model group options want 2 got %d", len(schema.Groups[0].Options))
	}
	if len(schema.BundleItems) != 1 {
		t.Fatalf("bundle items want 1 got %d", len(schema.BundleItems))
	}
	if schema.BundleItems[0].Item == nil || schema.BundleItems[0].Item.Slug != "triple-monitor-stand" {
		t.Fatalf("bundle item must carry the referenced product")
	}
	// 快照本体不携带关联，避免载荷重复
	if schema.Product.VariationGroups != nil || schema.Product.BundleItems != nil {
		t.Fatalf("schema product must not duplicate associations")
	}
}

func TestGetProductBySlugNotFound(t *testing.T) {
	env := setupCartServiceTest(t)
	if _, err := env.catalog.GetProductBySlug("no-such-slug"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestGetProductBySlugHidesInactive(t *testing.T) {
	env := setupCartServiceTest(t)
	if err := env.db.Model(&models.Product{}).
		Where("id = ?", env.cockpitID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if _, err := env.catalog.GetProductBySlug("jetsim-pro-cockpit"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product want ErrProductNotFound got %v", err)
	}
}

func TestLoadSchemaNotFound(t *testing.T) {
	env := setupCartServiceTest(t)
	if _, err := env.catalog.LoadSchema(99999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestRecomputePriceRangePersists(t *testing.T) {
	env := setupCartServiceTest(t)

	if err := env.catalog.RecomputePriceRange(env.cockpitID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	var got models.Product
	if err := env.db.First(&got, env.cockpitID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.PriceMin.String() != "999.00" {
		t.Fatalf("price_min want 999.00 got %s", got.PriceMin)
	}
	// 999 + 200 + 500 + 399
	if got.PriceMax.String() != "2098.00" {
		t.Fatalf("price_max want 2098.00 got %s", got.PriceMax)
	}
}

func TestRecomputeAllPriceRanges(t *testing.T) {
	env := setupCartServiceTest(t)

	if err := env.catalog.RecomputeAllPriceRanges(); err != nil {
		t.Fatalf("recompute all failed: %v", err)
	}

	var got models.Product
	if err := env.db.First(&got, env.cockpitID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.PriceMin.String() != "999.00" || got.PriceMax.String() != "2098.00" {
		t.Fatalf("range want 999.00..2098.00 got %s..%s", got.PriceMin, got.PriceMax)
	}
}
