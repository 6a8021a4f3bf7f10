package repository

import (
	"errors"

	"github.com/cockpitforge/internal/models"

	"gorm.io/gorm"
)

// BundleRepository 捆绑项数据访问接口
type BundleRepository interface {
	GetByID(id uint) (*models.BundleItem, error)
	ListByParent(parentProductID uint) ([]models.BundleItem, error)
	Create(item *models.BundleItem) error
	Update(item *models.BundleItem) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) BundleRepository
}

// GormBundleRepository GORM 实现
type GormBundleRepository struct {
	db *gorm.DB
}

// NewBundleRepository 创建捆绑项仓库
func NewBundleRepository(db *gorm.DB) *GormBundleRepository {
	return &GormBundleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBundleRepository) WithTx(tx *gorm.DB) BundleRepository {
	if tx == nil {
		return r
	}
	return &GormBundleRepository{db: tx}
}

// GetByID 获取捆绑项（含被引用商品）
func (r *GormBundleRepository) GetByID(id uint) (*models.BundleItem, error) {
	var item models.BundleItem
	err := r.db.Preload("Item").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByParent 列出捆绑商品的全部捆绑项
func (r *GormBundleRepository) ListByParent(parentProductID uint) ([]models.BundleItem, error) {
	var items []models.BundleItem
	if err := r.db.Preload("Item").
		Where("parent_product_id = ?", parentProductID).
		Order("sort_order ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建捆绑项
func (r *GormBundleRepository) Create(item *models.BundleItem) error {
	return r.db.Create(item).Error
}

// Update 更新捆绑项
func (r *GormBundleRepository) Update(item *models.BundleItem) error {
	return r.db.Save(item).Error
}

// Delete 删除捆绑项
func (r *GormBundleRepository) Delete(id uint) error {
	return r.db.Delete(&models.BundleItem{}, id).Error
}
