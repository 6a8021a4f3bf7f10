package repository

import (
	"errors"

	"github.com/cockpitforge/internal/models"

	"gorm.io/gorm"
)

// VariationRepository 变体组/选项数据访问接口
type VariationRepository interface {
	GetGroupByID(id uint) (*models.VariationGroup, error)
	CreateGroup(group *models.VariationGroup) error
	UpdateGroup(group *models.VariationGroup) error
	DeleteGroup(id uint) error
	GetOptionByID(id uint) (*models.VariationOption, error)
	CreateOption(option *models.VariationOption) error
	UpdateOption(option *models.VariationOption) error
	DeleteOption(id uint) error
	ConsumeOptionStock(id uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) VariationRepository
}

// GormVariationRepository GORM 实现
type GormVariationRepository struct {
	db *gorm.DB
}

// NewVariationRepository 创建变体仓库
func NewVariationRepository(db *gorm.DB) *GormVariationRepository {
	return &GormVariationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariationRepository) WithTx(tx *gorm.DB) VariationRepository {
	if tx == nil {
		return r
	}
	return &GormVariationRepository{db: tx}
}

// GetGroupByID 获取变体组（含选项）
func (r *GormVariationRepository) GetGroupByID(id uint) (*models.VariationGroup, error) {
	var group models.VariationGroup
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup 创建变体组
func (r *GormVariationRepository) CreateGroup(group *models.VariationGroup) error {
	return r.db.Create(group).Error
}

// UpdateGroup 更新变体组
func (r *GormVariationRepository) UpdateGroup(group *models.VariationGroup) error {
	return r.db.Save(group).Error
}

// DeleteGroup 删除变体组及其选项
func (r *GormVariationRepository) DeleteGroup(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.VariationOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.VariationGroup{}, id).Error
	})
}

// GetOptionByID 获取变体选项
func (r *GormVariationRepository) GetOptionByID(id uint) (*models.VariationOption, error) {
	var option models.VariationOption
	err := r.db.First(&option, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// CreateOption 创建变体选项
func (r *GormVariationRepository) CreateOption(option *models.VariationOption) error {
	return r.db.Create(option).Error
}

// UpdateOption 更新变体选项
func (r *GormVariationRepository) UpdateOption(option *models.VariationOption) error {
	return r.db.Save(option).Error
}

// DeleteOption 删除变体选项
func (r *GormVariationRepository) DeleteOption(id uint) error {
	return r.db.Delete(&models.VariationOption{}, id).Error
}

// ConsumeOptionStock 扣减选项库存（仅对跟踪库存的选项生效）
func (r *GormVariationRepository) ConsumeOptionStock(id uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, nil
	}
	result := r.db.Model(&models.VariationOption{}).
		Where("id = ? AND stock_quantity IS NOT NULL AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	return result.RowsAffected, result.Error
}
