package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务：购物车转单与订单查询
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
	cartService   *CartService
	couponService *CouponService
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
	cartService *CartService,
	couponService *CouponService,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		variationRepo: variationRepo,
		cartService:   cartService,
		couponService: couponService,
	}
}

// Checkout 购物车转单：行项连同配置与单价一起冻结为订单项
// （此后目录怎么变都不再重算），扣减涉及组件的参考库存
// （快照式扣减，最后提交者赢），最后销毁购物车。
func (s *OrderService) Checkout(identity CartIdentity) (*models.Order, error) {
	cart, err := s.cartService.loadCart(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := cartSubtotal(cart)
	discount := decimal.Zero
	var coupon *models.Coupon
	if cart.CouponCode != "" {
		evaluated, matched, err := s.couponService.Evaluate(cart.CouponCode, subtotal)
		if err != nil {
			// 券在结算前失效属于用户可纠正错误，拒绝下单让用户先移除
			return nil, err
		}
		discount = evaluated
		coupon = matched
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := &models.Order{
		OrderNo:        newOrderNo(),
		UserID:         cart.UserID,
		SessionID:      cart.SessionID,
		Status:         constants.OrderStatusPending,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		TotalAmount:    models.NewMoneyFromDecimal(total),
		CouponCode:     cart.CouponCode,
	}
	for _, item := range cart.Items {
		productName := ""
		if item.Product != nil {
			productName = item.Product.Name
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     productName,
			ConfigJSON:      item.ConfigJSON,
			ConfigSignature: item.ConfigSignature,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			TotalPrice:      item.TotalPrice,
		})
	}

	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		s.consumeStock(tx, cart.Items)
		if coupon != nil {
			if err := s.couponService.couponRepo.WithTx(tx).IncrementUsage(coupon.ID); err != nil {
				return err
			}
		}
		// 购物车随下单成功销毁
		return s.cartRepo.WithTx(tx).Delete(cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// consumeStock 扣减行项触达的跟踪库存组件。
// 参考性扣减：扣不到（已被并发订单清空）记日志放行，不回滚订单。
func (s *OrderService) consumeStock(tx *gorm.DB, items []models.CartItem) {
	productRepo := s.productRepo.WithTx(tx)
	variationRepo := s.variationRepo.WithTx(tx)

	for _, item := range items {
		if _, err := productRepo.ConsumeStock(item.ProductID, item.Quantity); err != nil {
			logger.Warnw("order_stock_consume_failed",
				"product_id", item.ProductID, "error", err)
		}

		configuration, err := ConfigurationFromJSON(item.ConfigJSON)
		if err != nil {
			logger.Warnw("order_config_decode_failed",
				"product_id", item.ProductID, "error", err)
			continue
		}
		for _, v := range configuration.Variations {
			if v.OptionID == 0 {
				continue
			}
			if _, err := variationRepo.ConsumeOptionStock(v.OptionID, item.Quantity); err != nil {
				logger.Warnw("order_option_stock_consume_failed",
					"option_id", v.OptionID, "error", err)
			}
		}
		for _, b := range configuration.BundleItems {
			quantity := b.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			if _, err := productRepo.ConsumeStock(b.ItemProductID, quantity*item.Quantity); err != nil {
				logger.Warnw("order_bundle_stock_consume_failed",
					"item_product_id", b.ItemProductID, "error", err)
			}
			if b.Sub == nil {
				continue
			}
			// 嵌套子配置选中的选项同样扣减
			for _, v := range b.Sub.Variations {
				if v.OptionID == 0 {
					continue
				}
				if _, err := variationRepo.ConsumeOptionStock(v.OptionID, quantity*item.Quantity); err != nil {
					logger.Warnw("order_option_stock_consume_failed",
						"option_id", v.OptionID, "error", err)
				}
			}
		}
	}
}

// GetOrder 按订单号获取订单（仅限本人/本会话）
func (s *OrderService) GetOrder(identity CartIdentity, orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" || !identity.Valid() {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || !orderOwnedBy(order, identity) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 本人/本会话订单列表
func (s *OrderService) ListOrders(identity CartIdentity, page, pageSize int) ([]models.Order, int64, error) {
	if !identity.Valid() {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
	})
}

func orderOwnedBy(order *models.Order, identity CartIdentity) bool {
	if identity.UserID != 0 {
		return order.UserID == identity.UserID
	}
	return order.UserID == 0 && order.SessionID == identity.SessionID
}

func newOrderNo() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return fmt.Sprintf("CF%s%s", time.Now().Format("20060102150405"), fragment)
}
