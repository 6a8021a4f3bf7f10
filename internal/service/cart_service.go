package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartIdentity 购物车归属：登录用户或游客会话，显式随每个操作传递
type CartIdentity struct {
	UserID    uint
	SessionID string
}

// Valid 判断归属是否可用
func (i CartIdentity) Valid() bool {
	return i.UserID != 0 || i.SessionID != ""
}

// CartTotals 购物车合计（派生值，每次变更重算，从不独立存储）
type CartTotals struct {
	Subtotal models.Money `json:"subtotal"`
	Discount models.Money `json:"discount"`
	Shipping models.Money `json:"shipping"` // 占位，恒为 0
	Tax      models.Money `json:"tax"`      // 占位，恒为 0
	Total    models.Money `json:"total"`
}

// CartView 购物车视图：行项 + 重算后的合计
type CartView struct {
	Cart       *models.Cart `json:"cart"`
	CouponCode string       `json:"coupon_code,omitempty"`
	Totals     CartTotals   `json:"totals"`
}

// AddLineInput 加购输入
type AddLineInput struct {
	ProductID     uint            `json:"product_id"`
	Configuration json.RawMessage `json:"configuration"`
	Quantity      int             `json:"quantity"`
}

// AddLineResult 加购结果：落库行项 + 库存警告 + 重算后的购物车
type AddLineResult struct {
	Item     *models.CartItem `json:"item"`
	Warnings []StockWarning   `json:"warnings"`
	Cart     *CartView        `json:"cart"`
}

// CartService 购物车服务：加购流水线与行项维护
type CartService struct {
	cartRepo    repository.CartRepository
	catalog     *CatalogService
	coupons     *CouponService
	expireAfter time.Duration
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, catalog *CatalogService, coupons *CouponService, expireAfter time.Duration) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		catalog:     catalog,
		coupons:     coupons,
		expireAfter: expireAfter,
	}
}

// AddLine 执行完整加购流水线：
// 加载 schema → 校验配置 → 库存消解 → 计价 → 行项合并落库。
// 行身份 = (商品ID, 配置签名)，重复加购同一配置合并数量而非新增行；
// 整个写入在一个事务内，要么完整提交一行，要么毫无痕迹。
func (s *CartService) AddLine(identity CartIdentity, input AddLineInput) (*AddLineResult, error) {
	if !identity.Valid() {
		return nil, ErrCartNotFound
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	schema, err := s.catalog.LoadSchema(input.ProductID)
	if err != nil {
		return nil, err
	}
	raw, err := ParseRawConfiguration(input.Configuration)
	if err != nil {
		return nil, err
	}
	validated, err := ValidateConfiguration(schema, raw)
	if err != nil {
		return nil, err
	}
	resolution, err := ResolveStock(schema, validated)
	if err != nil {
		return nil, err
	}

	// 校验通过后计价与落库不允许再出用户错误，任何失败都是内部错误
	unitPrice := ComputeUnitPrice(schema, resolution.Configuration)
	signature := resolution.Configuration.Signature()
	if signature == "" {
		return nil, errors.New("configuration signature failed")
	}
	configJSON, err := resolution.Configuration.ToJSON()
	if err != nil {
		return nil, err
	}

	var item *models.CartItem
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		cart, err := s.getOrCreateCart(repo, identity)
		if err != nil {
			return err
		}

		existing, err := repo.FindItemBySignature(cart.ID, input.ProductID, signature)
		if err != nil {
			return err
		}
		if existing != nil {
			// 单价一经写入不可变，合并只改数量
			existing.Quantity += input.Quantity
			existing.TotalPrice = lineTotal(existing.UnitPrice, existing.Quantity)
			if err := repo.UpdateItem(existing); err != nil {
				return err
			}
			item = existing
			return s.touchCart(repo, cart)
		}

		created := &models.CartItem{
			CartID:          cart.ID,
			ProductID:       input.ProductID,
			ConfigSignature: signature,
			ConfigJSON:      configJSON,
			UnitPrice:       unitPrice,
			Quantity:        input.Quantity,
			TotalPrice:      lineTotal(unitPrice, input.Quantity),
		}
		if err := repo.CreateItem(created); err != nil {
			return err
		}
		item = created
		return s.touchCart(repo, cart)
	})
	if err != nil {
		return nil, err
	}

	view, err := s.GetCart(identity)
	if err != nil {
		return nil, err
	}
	return &AddLineResult{
		Item:     item,
		Warnings: resolution.Warnings,
		Cart:     view,
	}, nil
}

// UpdateQuantity 修改行项数量
func (s *CartService) UpdateQuantity(identity CartIdentity, itemID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		item, err := repo.GetItemByID(cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		item.Quantity = quantity
		item.TotalPrice = lineTotal(item.UnitPrice, quantity)
		if err := repo.UpdateItem(item); err != nil {
			return err
		}
		return s.touchCart(repo, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(identity)
}

// RemoveLine 删除行项
func (s *CartService) RemoveLine(identity CartIdentity, itemID uint) (*CartView, error) {
	cart, err := s.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		item, err := repo.GetItemByID(cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		if err := repo.DeleteItem(cart.ID, itemID); err != nil {
			return err
		}
		return s.touchCart(repo, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(identity)
}

// Clear 清空购物车
func (s *CartService) Clear(identity CartIdentity) (*CartView, error) {
	cart, err := s.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return emptyCartView(), nil
	}
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		if err := repo.ClearItems(cart.ID); err != nil {
			return err
		}
		cart.CouponCode = ""
		return s.touchCart(repo, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(identity)
}

// ApplyCoupon 应用优惠码：按当前小计评估通过后记录在购物车上。
// 折扣金额不落库，之后每次读取/变更都重新评估。
func (s *CartService) ApplyCoupon(identity CartIdentity, code string) (*CartView, error) {
	cart, err := s.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartNotFound
	}

	subtotal := cartSubtotal(cart)
	if _, _, err := s.coupons.Evaluate(code, subtotal); err != nil {
		return nil, err
	}
	cart.CouponCode = code
	if err := s.cartRepo.Update(cart); err != nil {
		return nil, err
	}
	return s.GetCart(identity)
}

// RemoveCoupon 移除优惠码
func (s *CartService) RemoveCoupon(identity CartIdentity) (*CartView, error) {
	cart, err := s.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	cart.CouponCode = ""
	if err := s.cartRepo.Update(cart); err != nil {
		return nil, err
	}
	return s.GetCart(identity)
}

// GetCart 获取购物车视图（合计每次现算）
func (s *CartService) GetCart(identity CartIdentity) (*CartView, error) {
	cart, err := s.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return emptyCartView(), nil
	}
	return s.buildView(cart), nil
}

// loadCart 按归属加载购物车，已过期视同不存在（清理交给后台任务）
func (s *CartService) loadCart(identity CartIdentity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, nil
	}
	var cart *models.Cart
	var err error
	if identity.UserID != 0 {
		cart, err = s.cartRepo.GetByUser(identity.UserID)
	} else {
		cart, err = s.cartRepo.GetBySession(identity.SessionID)
	}
	if err != nil {
		return nil, err
	}
	if cart != nil && cart.ExpiresAt != nil && cart.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return cart, nil
}

// getOrCreateCart 首次加购惰性创建购物车
func (s *CartService) getOrCreateCart(repo repository.CartRepository, identity CartIdentity) (*models.Cart, error) {
	var cart *models.Cart
	var err error
	if identity.UserID != 0 {
		cart, err = repo.GetByUser(identity.UserID)
	} else {
		cart, err = repo.GetBySession(identity.SessionID)
	}
	if err != nil {
		return nil, err
	}
	if cart != nil && (cart.ExpiresAt == nil || cart.ExpiresAt.After(time.Now())) {
		return cart, nil
	}

	expiresAt := time.Now().Add(s.expireAfter)
	cart = &models.Cart{
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
		ExpiresAt: &expiresAt,
	}
	if err := repo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// touchCart 每次变更顺延过期时间
func (s *CartService) touchCart(repo repository.CartRepository, cart *models.Cart) error {
	expiresAt := time.Now().Add(s.expireAfter)
	cart.ExpiresAt = &expiresAt
	return repo.Update(cart)
}

func (s *CartService) buildView(cart *models.Cart) *CartView {
	subtotal := cartSubtotal(cart)
	discount := decimal.Zero
	couponCode := cart.CouponCode
	if couponCode != "" {
		evaluated, _, err := s.coupons.Evaluate(couponCode, subtotal)
		if err == nil {
			discount = evaluated
		}
		// 评估失败（券失效/门槛不再满足）时折扣归零，码保留由用户处理
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return &CartView{
		Cart:       cart,
		CouponCode: couponCode,
		Totals: CartTotals{
			Subtotal: models.NewMoneyFromDecimal(subtotal),
			Discount: models.NewMoneyFromDecimal(discount),
			Shipping: models.Money{},
			Tax:      models.Money{},
			Total:    models.NewMoneyFromDecimal(total),
		},
	}
}

func emptyCartView() *CartView {
	return &CartView{
		Totals: CartTotals{
			Subtotal: models.Money{},
			Discount: models.Money{},
			Shipping: models.Money{},
			Tax:      models.Money{},
			Total:    models.Money{},
		},
	}
}

func cartSubtotal(cart *models.Cart) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}
	return subtotal
}

func lineTotal(unitPrice models.Money, quantity int) models.Money {
	return models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}
