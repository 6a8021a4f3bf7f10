package constants

// 商品类型
const (
	ProductTypeSimple       = "simple"       // 固定价格商品
	ProductTypeConfigurable = "configurable" // 可配置商品
	ProductTypeBundle       = "bundle"       // 捆绑商品
)

// 变体组类型
const (
	VariationKindDropdown = "dropdown" // 下拉选项
	VariationKindImage    = "image"    // 图片选项
	VariationKindText     = "text"     // 文本输入
	VariationKindBoolean  = "boolean"  // 布尔开关
)

// 捆绑项类型
const (
	BundleItemTypeRequired = "required" // 必选捆绑项
	BundleItemTypeOptional = "optional" // 可选捆绑项
)

// 优惠券类型
const (
	CouponTypeFixed   = "fixed"   // 固定金额
	CouponTypePercent = "percent" // 百分比
)

// 订单状态
const (
	OrderStatusPending   = "pending"   // 待支付
	OrderStatusPaid      = "paid"      // 已支付
	OrderStatusCanceled  = "canceled"  // 已取消
	OrderStatusCompleted = "completed" // 已完成
)

// 库存预警提示类型
const (
	StockWarningOutOfStock = "out_of_stock" // 可选组件缺货被移除
	StockWarningLowStock   = "low_stock"    // 库存低于阈值
)

// 库存预警组件类型
const (
	StockUnitVariationOption = "variation_option" // 变体选项
	StockUnitAddOn           = "addon"            // 附加项
	StockUnitBundleItem      = "bundle_item"      // 捆绑项
	StockUnitProduct         = "product"          // 商品本体
)

// 区域与展示币种
const (
	RegionUS = "us" // 美国区
	RegionEU = "eu" // 欧洲区

	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"

	CurrencySymbolUSD = "$"
	CurrencySymbolEUR = "€"
)

// 队列名称
const (
	QueueDefault = "default"
)

// 队列任务类型
const (
	TaskPriceRangeRecompute = "catalog:price_range_recompute" // 重算商品派生价格区间
)

// 上下文键
const (
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
	ContextKeyAdminID   = "admin_id"
)
