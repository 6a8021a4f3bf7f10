package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "forbidden",
		"error.not_found":              "not found",
		"error.internal":               "internal error",
		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.auth_header_missing":    "authorization header missing",
		"error.auth_header_invalid":    "authorization header invalid",
		"error.token_invalid":          "token invalid",
		"error.jwt_secret_missing":     "jwt secret not configured",
		"error.login_failed":           "username or password incorrect",
		"error.admin_id_invalid":       "admin identity invalid",
		"error.admin_id_type_invalid":  "admin identity malformed",

		"error.product_not_found":    "product not found",
		"error.product_fetch_failed": "failed to load product",
		"error.slug_taken":           "slug already taken",
		"error.bundle_nesting":       "a bundle item cannot reference another bundle",

		"error.configuration_invalid":           "configuration invalid",
		"error.missing_required_variation":      "a required variation is missing",
		"error.invalid_option_reference":        "selected option does not belong to this product",
		"error.missing_required_addon":          "a required add-on is missing",
		"error.invalid_addon_reference":         "selected add-on option does not belong to this product",
		"error.invalid_bundle_item_reference":   "referenced bundle item does not belong to this product",
		"error.bundle_configuration_invalid":    "bundle item configuration invalid",
		"error.required_component_out_of_stock": "a required component is out of stock",

		"error.cart_not_found":      "cart not found or expired",
		"error.cart_item_not_found": "cart item not found",
		"error.cart_empty":          "cart is empty",
		"error.quantity_invalid":    "quantity must be greater than zero",
		"error.cart_add_failed":     "failed to add to cart",
		"error.cart_update_failed":  "failed to update cart",
		"error.cart_fetch_failed":   "failed to load cart",

		"error.coupon_not_found":    "coupon not found",
		"error.coupon_inactive":     "coupon is not active",
		"error.coupon_not_started":  "coupon is not started yet",
		"error.coupon_expired":      "coupon has expired",
		"error.coupon_usage_limit":  "coupon usage limit reached",
		"error.coupon_min_amount":   "order amount below coupon minimum",
		"error.coupon_apply_failed": "failed to apply coupon",

		"error.order_not_found":     "order not found",
		"error.order_create_failed": "failed to create order",
		"error.order_fetch_failed":  "failed to load order",

		"error.admin_save_failed": "operation failed",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数有误",
		"error.unauthorized":           "未授权",
		"error.forbidden":              "没有权限",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后重试",
		"error.auth_header_missing":    "缺少认证头",
		"error.auth_header_invalid":    "认证头格式错误",
		"error.token_invalid":          "令牌无效",
		"error.jwt_secret_missing":     "JWT 密钥未配置",
		"error.login_failed":           "用户名或密码错误",
		"error.admin_id_invalid":       "管理员身份无效",
		"error.admin_id_type_invalid":  "管理员身份格式错误",

		"error.product_not_found":    "商品不存在",
		"error.product_fetch_failed": "商品加载失败",
		"error.slug_taken":           "slug 已被占用",
		"error.bundle_nesting":       "捆绑项不能引用另一个捆绑商品",

		"error.configuration_invalid":           "配置无效",
		"error.missing_required_variation":      "缺少必选变体",
		"error.invalid_option_reference":        "所选选项不属于该商品",
		"error.missing_required_addon":          "缺少必选附加项",
		"error.invalid_addon_reference":         "所选附加项选项不属于该商品",
		"error.invalid_bundle_item_reference":   "所引用的捆绑项不属于该商品",
		"error.bundle_configuration_invalid":    "捆绑项配置无效",
		"error.required_component_out_of_stock": "必选组件已缺货",

		"error.cart_not_found":      "购物车不存在或已过期",
		"error.cart_item_not_found": "购物车行项不存在",
		"error.cart_empty":          "购物车为空",
		"error.quantity_invalid":    "数量必须大于零",
		"error.cart_add_failed":     "加入购物车失败",
		"error.cart_update_failed":  "更新购物车失败",
		"error.cart_fetch_failed":   "购物车加载失败",

		"error.coupon_not_found":    "优惠券不存在",
		"error.coupon_inactive":     "优惠券未启用",
		"error.coupon_not_started":  "优惠券尚未生效",
		"error.coupon_expired":      "优惠券已过期",
		"error.coupon_usage_limit":  "优惠券已达使用上限",
		"error.coupon_min_amount":   "未达到优惠券使用门槛",
		"error.coupon_apply_failed": "优惠券应用失败",

		"error.order_not_found":     "订单不存在",
		"error.order_create_failed": "创建订单失败",
		"error.order_fetch_failed":  "订单加载失败",

		"error.admin_save_failed": "操作失败",
	},
}
