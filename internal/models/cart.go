package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车聚合（按用户或游客会话归属，首次加购时惰性创建）
type Cart struct {
	ID         uint           `gorm:"primarykey" json:"id"`                           // 主键
	UserID     uint           `gorm:"index" json:"user_id"`                           // 用户ID（游客为 0）
	SessionID  string         `gorm:"type:varchar(64);index" json:"session_id"`       // 游客会话ID
	CouponCode string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`  // 已应用的优惠码（折扣每次重算，不落库）
	ExpiresAt  *time.Time     `gorm:"index" json:"expires_at"`                        // 过期时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                        // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车行项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车行项（行身份 = 商品ID + 配置签名）
type CartItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                                        // 主键
	CartID          uint           `gorm:"not null;uniqueIndex:idx_cart_product_config" json:"cart_id"`                 // 购物车ID
	ProductID       uint           `gorm:"not null;uniqueIndex:idx_cart_product_config" json:"product_id"`              // 商品ID
	ConfigSignature string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_product_config" json:"config_signature"` // 配置签名（规范化配置的 sha256）
	ConfigJSON      JSON           `gorm:"type:json" json:"configuration"`                                              // 已解析配置快照
	UnitPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`                     // 单价（写入后不可变）
	Quantity        int            `gorm:"not null" json:"quantity"`                                                    // 数量
	TotalPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`                    // 小计 = 单价 × 数量
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                                     // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                              // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
