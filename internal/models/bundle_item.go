package models

import (
	"time"

	"gorm.io/gorm"
)

// BundleItem 捆绑项表（引用其他商品，不拥有其生命周期）
type BundleItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	ParentProductID uint           `gorm:"not null;index" json:"parent_product_id"`                       // 所属捆绑商品ID
	ItemProductID   uint           `gorm:"not null;index" json:"item_product_id"`                         // 被引用商品ID（引用关系，被引用商品不可再是 bundle）
	ItemType        string         `gorm:"type:varchar(20);not null;default:'optional'" json:"item_type"` // 类型（required/optional）
	Quantity        int            `gorm:"not null;default:1" json:"quantity"`                            // 数量
	IsConfigurable  bool           `gorm:"not null;default:false" json:"is_configurable"`                 // 被引用商品的变体组是否需要配置
	PriceAdjustment Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_adjustment"` // 价格调整（在被引用商品自身价格之上的增量，如捆绑折扣）
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                             // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Item *Product `gorm:"foreignKey:ItemProductID" json:"item,omitempty"` // 被引用商品
}

// TableName 指定表名
func (BundleItem) TableName() string {
	return "bundle_items"
}
