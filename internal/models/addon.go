package models

import (
	"time"

	"gorm.io/gorm"
)

// AddOn 商品附加项表
type AddOn struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                // 主键
	ProductID  uint           `gorm:"not null;index" json:"product_id"`                    // 所属商品ID
	Name       string         `gorm:"not null" json:"name"`                                // 附加项名称
	IsRequired bool           `gorm:"not null;default:false" json:"is_required"`           // 是否必选
	HasOptions bool           `gorm:"not null;default:false" json:"has_options"`           // 是否携带选项（false 时使用固定价格）
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 固定价格（has_options=false 时生效）
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	Options []AddOnOption `gorm:"foreignKey:AddOnID" json:"options,omitempty"` // 选项列表
}

// TableName 指定表名
func (AddOn) TableName() string {
	return "addons"
}

// AddOnOption 附加项选项表
type AddOnOption struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // 主键
	AddOnID   uint           `gorm:"column:addon_id;not null;index" json:"addon_id"`     // 所属附加项ID
	Label     string         `gorm:"not null" json:"label"`                              // 选项名称
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 选项价格
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"`           // 是否默认选项
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (AddOnOption) TableName() string {
	return "addon_options"
}
