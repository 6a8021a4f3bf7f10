package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductAdminTest(t *testing.T) (*ProductAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_admin_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.VariationGroup{}, &models.VariationOption{},
		&models.AddOn{}, &models.AddOnOption{}, &models.BundleItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	catalog := NewCatalogService(productRepo, 0)
	svc := NewProductAdminService(
		productRepo,
		repository.NewVariationRepository(db),
		repository.NewAddOnRepository(db),
		repository.NewBundleRepository(db),
		catalog,
		nil,
	)
	return svc, db
}

func createAdminTestProduct(t *testing.T, svc *ProductAdminService, slug, productType string) *models.Product {
	t.Helper()
	product, err := svc.CreateProduct(ProductInput{
		SKU:       "SKU-" + slug,
		Slug:      slug,
		Name:      "Product " + slug,
		Type:      productType,
		BasePrice: testMoney(100),
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	return product
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupProductAdminTest(t)
	createAdminTestProduct(t, svc, "frame-kit", constants.ProductTypeSimple)

	_, err := svc.CreateProduct(ProductInput{
		Slug: "frame-kit", Name: "Duplicate", Type: constants.ProductTypeSimple,
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("want ErrSlugTaken got %v", err)
	}
}

func TestCreateProductValidatesInput(t *testing.T) {
	svc, _ := setupProductAdminTest(t)

	if _, err := svc.CreateProduct(ProductInput{Slug: "", Name: "X", Type: constants.ProductTypeSimple}); !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("empty slug want ErrConfigurationInvalid got %v", err)
	}
	if _, err := svc.CreateProduct(ProductInput{Slug: "x", Name: "X", Type: "mystery"}); !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("bad type want ErrConfigurationInvalid got %v", err)
	}
}

func TestUpdateProductSlugConflict(t *testing.T) {
	svc, _ := setupProductAdminTest(t)
	createAdminTestProduct(t, svc, "first", constants.ProductTypeSimple)
	second := createAdminTestProduct(t, svc, "second", constants.ProductTypeSimple)

	_, err := svc.UpdateProduct(second.ID, ProductInput{
		Slug: "first", Name: "Second", Type: constants.ProductTypeSimple,
		BasePrice: testMoney(100), IsActive: true,
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("want ErrSlugTaken got %v", err)
	}
}

func TestCreateBundleItemGuards(t *testing.T) {
	svc, _ := setupProductAdminTest(t)
	bundle := createAdminTestProduct(t, svc, "cockpit", constants.ProductTypeBundle)
	simple := createAdminTestProduct(t, svc, "stand", constants.ProductTypeSimple)
	otherBundle := createAdminTestProduct(t, svc, "mega-bundle", constants.ProductTypeBundle)

	// 父商品必须是 bundle
	if _, err := svc.CreateBundleItem(simple.ID, BundleItemInput{
		ItemProductID: bundle.ID, ItemType: constants.BundleItemTypeOptional,
	}); !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("non-bundle parent want ErrConfigurationInvalid got %v", err)
	}

	// 被引用商品不可再是 bundle
	if _, err := svc.CreateBundleItem(bundle.ID, BundleItemInput{
		ItemProductID: otherBundle.ID, ItemType: constants.BundleItemTypeOptional,
	}); !errors.Is(err, ErrBundleNesting) {
		t.Fatalf("nested bundle want ErrBundleNesting got %v", err)
	}

	item, err := svc.CreateBundleItem(bundle.ID, BundleItemInput{
		ItemProductID: simple.ID, ItemType: constants.BundleItemTypeOptional,
		PriceAdjustment: testMoney(50),
	})
	if err != nil {
		t.Fatalf("create bundle item failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("quantity default want 1 got %d", item.Quantity)
	}
}

func TestSchemaMutationRefreshesPriceRange(t *testing.T) {
	svc, db := setupProductAdminTest(t)
	product := createAdminTestProduct(t, svc, "configurable-desk", constants.ProductTypeConfigurable)

	group, err := svc.CreateVariationGroup(product.ID, VariationGroupInput{
		Name: "Width", Kind: constants.VariationKindDropdown, IsRequired: true,
	})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	if _, err := svc.CreateVariationOption(group.ID, VariationOptionInput{
		Label: "Narrow", PriceAdjustment: testMoney(0), IsDefault: true,
	}); err != nil {
		t.Fatalf("create narrow option failed: %v", err)
	}
	if _, err := svc.CreateVariationOption(group.ID, VariationOptionInput{
		Label: "Wide", PriceAdjustment: testMoney(60),
	}); err != nil {
		t.Fatalf("create wide option failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.PriceMin.String() != "100.00" || got.PriceMax.String() != "160.00" {
		t.Fatalf("range want 100.00..160.00 got %s..%s", got.PriceMin, got.PriceMax)
	}
}

func TestVariationGroupLifecycle(t *testing.T) {
	svc, _ := setupProductAdminTest(t)
	product := createAdminTestProduct(t, svc, "rig", constants.ProductTypeConfigurable)

	group, err := svc.CreateVariationGroup(product.ID, VariationGroupInput{
		Name: "Mount", Kind: constants.VariationKindDropdown,
	})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}

	updated, err := svc.UpdateVariationGroup(group.ID, VariationGroupInput{
		Name: "Mount Type", Kind: constants.VariationKindDropdown, IsRequired: true,
	})
	if err != nil {
		t.Fatalf("update group failed: %v", err)
	}
	if updated.Name != "Mount Type" || !updated.IsRequired {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.DeleteVariationGroup(group.ID); err != nil {
		t.Fatalf("delete group failed: %v", err)
	}
	if err := svc.DeleteVariationGroup(group.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted group want ErrProductNotFound got %v", err)
	}

	if _, err := svc.CreateVariationGroup(product.ID, VariationGroupInput{Name: "Bad", Kind: "hologram"}); !errors.Is(err, ErrConfigurationInvalid) {
		t.Fatalf("bad kind want ErrConfigurationInvalid got %v", err)
	}
	if _, err := svc.CreateVariationGroup(99999, VariationGroupInput{Name: "Ghost", Kind: constants.VariationKindDropdown}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
}

func TestAddOnLifecycle(t *testing.T) {
	svc, _ := setupProductAdminTest(t)
	product := createAdminTestProduct(t, svc, "seat", constants.ProductTypeConfigurable)

	addon, err := svc.CreateAddOn(product.ID, AddOnInput{Name: "Lumbar Support", Price: testMoney(35)})
	if err != nil {
		t.Fatalf("create addon failed: %v", err)
	}

	option, err := svc.CreateAddOnOption(addon.ID, AddOnOptionInput{Label: "Memory Foam", Price: testMoney(55)})
	if err != nil {
		t.Fatalf("create addon option failed: %v", err)
	}

	if _, err := svc.UpdateAddOnOption(option.ID, AddOnOptionInput{Label: "Gel Foam", Price: testMoney(65)}); err != nil {
		t.Fatalf("update addon option failed: %v", err)
	}
	if err := svc.DeleteAddOnOption(option.ID); err != nil {
		t.Fatalf("delete addon option failed: %v", err)
	}
	if err := svc.DeleteAddOn(addon.ID); err != nil {
		t.Fatalf("delete addon failed: %v", err)
	}
	if _, err := svc.UpdateAddOn(addon.ID, AddOnInput{Name: "Gone"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted addon want ErrProductNotFound got %v", err)
	}
}
