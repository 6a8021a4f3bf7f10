package service

import (
	"errors"
	"fmt"
)

// 业务错误定义，由各 handler 映射为响应码与多语言文案
var (
	// 商品/购物车/订单
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")

	// 配置校验（用户可纠正，按失败顺序 fail-fast）
	ErrMissingRequiredVariation   = errors.New("missing required variation")
	ErrInvalidOptionReference     = errors.New("invalid option reference")
	ErrMissingRequiredAddOn       = errors.New("missing required addon")
	ErrInvalidAddOnReference      = errors.New("invalid addon reference")
	ErrInvalidBundleItemReference = errors.New("invalid bundle item reference")
	ErrBundleConfigurationInvalid = errors.New("bundle configuration invalid")
	ErrConfigurationInvalid       = errors.New("configuration invalid")

	// 库存（必选组件缺货整单拒绝，可选组件缺货降级为警告）
	ErrRequiredComponentOutOfStock = errors.New("required component out of stock")

	// 优惠券
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon inactive")
	ErrCouponNotStarted = errors.New("coupon not started")
	ErrCouponExpired    = errors.New("coupon expired")
	ErrCouponUsageLimit = errors.New("coupon usage limit reached")
	ErrCouponMinAmount  = errors.New("coupon min amount not met")

	// 管理后台
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSlugTaken          = errors.New("slug already taken")
	ErrBundleNesting      = errors.New("bundle item cannot reference a bundle product")
)

// ConfigurationError 携带出错组件定位信息的校验/库存错误，
// 前端据此把原因渲染到对应选择器旁。Unwrap 返回哨兵错误用于分类。
type ConfigurationError struct {
	Err          error  // 哨兵错误
	GroupID      uint   // 出错变体组ID
	OptionID     uint   // 出错选项ID
	AddOnID      uint   // 出错附加项ID
	BundleItemID uint   // 出错捆绑项ID
	Detail       string // 补充说明
}

// Error 实现 error 接口
func (e *ConfigurationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	return e.Err.Error()
}

// Unwrap 返回哨兵错误
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Fields 返回非零定位字段，用于响应体与日志
func (e *ConfigurationError) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if e.GroupID != 0 {
		fields["group_id"] = e.GroupID
	}
	if e.OptionID != 0 {
		fields["option_id"] = e.OptionID
	}
	if e.AddOnID != 0 {
		fields["addon_id"] = e.AddOnID
	}
	if e.BundleItemID != 0 {
		fields["bundle_item_id"] = e.BundleItemID
	}
	if e.Detail != "" {
		fields["detail"] = e.Detail
	}
	return fields
}
