package repository

import (
	"errors"

	"github.com/cockpitforge/internal/models"

	"gorm.io/gorm"
)

// AddOnRepository 附加项数据访问接口
type AddOnRepository interface {
	GetByID(id uint) (*models.AddOn, error)
	Create(addon *models.AddOn) error
	Update(addon *models.AddOn) error
	Delete(id uint) error
	GetOptionByID(id uint) (*models.AddOnOption, error)
	CreateOption(option *models.AddOnOption) error
	UpdateOption(option *models.AddOnOption) error
	DeleteOption(id uint) error
	WithTx(tx *gorm.DB) AddOnRepository
}

// GormAddOnRepository GORM 实现
type GormAddOnRepository struct {
	db *gorm.DB
}

// NewAddOnRepository 创建附加项仓库
func NewAddOnRepository(db *gorm.DB) *GormAddOnRepository {
	return &GormAddOnRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddOnRepository) WithTx(tx *gorm.DB) AddOnRepository {
	if tx == nil {
		return r
	}
	return &GormAddOnRepository{db: tx}
}

// GetByID 获取附加项（含选项）
func (r *GormAddOnRepository) GetByID(id uint) (*models.AddOn, error) {
	var addon models.AddOn
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&addon, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addon, nil
}

// Create 创建附加项
func (r *GormAddOnRepository) Create(addon *models.AddOn) error {
	return r.db.Create(addon).Error
}

// Update 更新附加项
func (r *GormAddOnRepository) Update(addon *models.AddOn) error {
	return r.db.Save(addon).Error
}

// Delete 删除附加项及其选项
func (r *GormAddOnRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("addon_id = ?", id).Delete(&models.AddOnOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AddOn{}, id).Error
	})
}

// GetOptionByID 获取附加项选项
func (r *GormAddOnRepository) GetOptionByID(id uint) (*models.AddOnOption, error) {
	var option models.AddOnOption
	err := r.db.First(&option, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// CreateOption 创建附加项选项
func (r *GormAddOnRepository) CreateOption(option *models.AddOnOption) error {
	return r.db.Create(option).Error
}

// UpdateOption 更新附加项选项
func (r *GormAddOnRepository) UpdateOption(option *models.AddOnOption) error {
	return r.db.Save(option).Error
}

// DeleteOption 删除附加项选项
func (r *GormAddOnRepository) DeleteOption(id uint) error {
	return r.db.Delete(&models.AddOnOption{}, id).Error
}
