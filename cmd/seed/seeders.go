package main

import (
	"errors"
	"log"

	"github.com/cockpitforge/internal/models"

	"gorm.io/gorm"
)

// seedProduct 按 slug 幂等创建商品，返回已存在或新建的记录
func seedProduct(stdLog *log.Logger, p models.Product) *models.Product {
	var existing models.Product
	err := models.DB.Where("slug = ?", p.Slug).First(&existing).Error
	if err == nil {
		stdLog.Printf("Product %s already exists, skipped", p.Slug)
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query product %s: %v", p.Slug, err)
		return nil
	}
	if err := models.DB.Create(&p).Error; err != nil {
		stdLog.Printf("Failed to create product %s: %v", p.Slug, err)
		return nil
	}
	stdLog.Printf("Product %s created", p.Slug)
	return &p
}

// seedVariationGroup 按（商品ID, 名称）幂等创建变体组
func seedVariationGroup(stdLog *log.Logger, g models.VariationGroup) *models.VariationGroup {
	var existing models.VariationGroup
	err := models.DB.Where("product_id = ? AND name = ?", g.ProductID, g.Name).First(&existing).Error
	if err == nil {
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query variation group %s: %v", g.Name, err)
		return nil
	}
	if err := models.DB.Create(&g).Error; err != nil {
		stdLog.Printf("Failed to create variation group %s: %v", g.Name, err)
		return nil
	}
	stdLog.Printf("Variation group %s created", g.Name)
	return &g
}

// seedVariationOption 按（变体组ID, 标签）幂等创建选项
func seedVariationOption(stdLog *log.Logger, o models.VariationOption) {
	var existing models.VariationOption
	err := models.DB.Where("group_id = ? AND label = ?", o.GroupID, o.Label).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query variation option %s: %v", o.Label, err)
		return
	}
	if err := models.DB.Create(&o).Error; err != nil {
		stdLog.Printf("Failed to create variation option %s: %v", o.Label, err)
		return
	}
	stdLog.Printf("Variation option %s created", o.Label)
}

// seedAddOn 按（商品ID, 名称）幂等创建附加项
func seedAddOn(stdLog *log.Logger, a models.AddOn) *models.AddOn {
	var existing models.AddOn
	err := models.DB.Where("product_id = ? AND name = ?", a.ProductID, a.Name).First(&existing).Error
	if err == nil {
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query addon %s: %v", a.Name, err)
		return nil
	}
	if err := models.DB.Create(&a).Error; err != nil {
		stdLog.Printf("Failed to create addon %s: %v", a.Name, err)
		return nil
	}
	stdLog.Printf("Addon %s created", a.Name)
	return &a
}

// seedAddOnOption 按（附加项ID, 标签）幂等创建选项
func seedAddOnOption(stdLog *log.Logger, o models.AddOnOption) {
	var existing models.AddOnOption
	err := models.DB.Where("addon_id = ? AND label = ?", o.AddOnID, o.Label).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query addon option %s: %v", o.Label, err)
		return
	}
	if err := models.DB.Create(&o).Error; err != nil {
		stdLog.Printf("Failed to create addon option %s: %v", o.Label, err)
		return
	}
	stdLog.Printf("Addon option %s created", o.Label)
}

// seedBundleItem 按（父商品ID, 子商品ID）幂等创建捆绑项
func seedBundleItem(stdLog *log.Logger, b models.BundleItem) {
	var existing models.BundleItem
	err := models.DB.Where("parent_product_id = ? AND item_product_id = ?", b.ParentProductID, b.ItemProductID).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query bundle item %d: %v", b.ItemProductID, err)
		return
	}
	if err := models.DB.Create(&b).Error; err != nil {
		stdLog.Printf("Failed to create bundle item %d: %v", b.ItemProductID, err)
		return
	}
	stdLog.Printf("Bundle item %d created", b.ItemProductID)
}

// seedCoupon 按优惠码幂等创建优惠券
func seedCoupon(stdLog *log.Logger, cp models.Coupon) {
	var existing models.Coupon
	err := models.DB.Where("code = ?", cp.Code).First(&existing).Error
	if err == nil {
		stdLog.Printf("Coupon %s already exists, skipped", cp.Code)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		stdLog.Printf("Failed to query coupon %s: %v", cp.Code, err)
		return
	}
	if err := models.DB.Create(&cp).Error; err != nil {
		stdLog.Printf("Failed to create coupon %s: %v", cp.Code, err)
		return
	}
	stdLog.Printf("Coupon %s created", cp.Code)
}
