package models

import (
	"time"

	"gorm.io/gorm"
)

// VariationGroup 商品变体组表（一个可选维度，如座椅颜色）
type VariationGroup struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	ProductID  uint           `gorm:"not null;index" json:"product_id"`                         // 所属商品ID
	Name       string         `gorm:"not null" json:"name"`                                     // 变体组名称
	Kind       string         `gorm:"type:varchar(20);not null;default:'dropdown'" json:"kind"` // 类型（dropdown/image/text/boolean）
	IsRequired bool           `gorm:"not null;default:false" json:"is_required"`                // 是否必选
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`                        // 排序权重
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Options []VariationOption `gorm:"foreignKey:GroupID" json:"options,omitempty"` // 选项列表
}

// TableName 指定表名
func (VariationGroup) TableName() string {
	return "variation_groups"
}

// VariationOption 变体选项表
type VariationOption struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                          // 主键
	GroupID           uint           `gorm:"not null;index" json:"group_id"`                                // 所属变体组ID
	Label             string         `gorm:"not null" json:"label"`                                         // 选项名称
	ImageURL          string         `gorm:"type:varchar(500)" json:"image_url"`                            // 选项图片（kind=image 时使用）
	PriceAdjustment   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_adjustment"` // 价格调整（有符号增量，可为负）
	IsDefault         bool           `gorm:"not null;default:false" json:"is_default"`                      // 是否默认选项
	StockQuantity     *int           `gorm:"column:stock_quantity" json:"stock_quantity"`                   // 库存数量（null 表示不跟踪/不限量）
	LowStockThreshold int            `gorm:"not null;default:0" json:"low_stock_threshold"`                 // 低库存预警阈值
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`                             // 排序权重
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (VariationOption) TableName() string {
	return "variation_options"
}
