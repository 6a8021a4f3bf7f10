package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                    // 主键
	SKU           string         `gorm:"column:sku;uniqueIndex;not null" json:"sku"`              // 商品编码
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                        // 唯一标识
	Name          string         `gorm:"not null" json:"name"`                                    // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                            // 商品描述
	Type          string         `gorm:"type:varchar(20);not null;default:'simple'" json:"type"`  // 商品类型（simple/configurable/bundle）
	BasePrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"` // 基础价格
	StockQuantity *int           `gorm:"column:stock_quantity" json:"stock_quantity"`             // 库存数量（仅 simple 商品，null 表示不跟踪）
	PriceMin      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_min"`  // 最低可达价格（派生缓存）
	PriceMax      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_max"`  // 最高可达价格（派生缓存）
	Images        StringArray    `gorm:"type:json" json:"images"`                                 // 图片数组
	Tags          StringArray    `gorm:"type:json" json:"tags"`                                   // 标签数组
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                     // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                       // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	// 关联
	VariationGroups []VariationGroup `gorm:"foreignKey:ProductID" json:"variation_groups,omitempty"` // 变体组
	AddOns          []AddOn          `gorm:"foreignKey:ProductID" json:"addons,omitempty"`           // 附加项
	BundleItems     []BundleItem     `gorm:"foreignKey:ParentProductID" json:"bundle_items,omitempty"` // 捆绑项
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
