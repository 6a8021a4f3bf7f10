package service

import (
	"strings"
	"time"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Evaluate 按当前小计评估优惠码，返回折扣金额与命中的优惠券。
// 折扣从不缓存：小计每次变化都必须重新评估。
func (s *CouponService) Evaluate(code string, subtotal decimal.Decimal) (decimal.Decimal, *models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return decimal.Zero, nil, ErrCouponNotFound
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if coupon == nil {
		return decimal.Zero, nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return decimal.Zero, nil, ErrCouponInactive
	}
	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return decimal.Zero, nil, ErrCouponNotStarted
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return decimal.Zero, nil, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return decimal.Zero, nil, ErrCouponUsageLimit
	}
	if coupon.MinAmount.IsPositive() && subtotal.LessThan(coupon.MinAmount.Decimal) {
		return decimal.Zero, nil, ErrCouponMinAmount
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case constants.CouponTypeFixed:
		discount = coupon.Value.Decimal
	case constants.CouponTypePercent:
		discount = subtotal.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero, nil, ErrCouponInactive
	}
	if coupon.MaxDiscount.IsPositive() {
		discount = decimal.Min(discount, coupon.MaxDiscount.Decimal)
	}
	// 折扣不得超过小计，总额不为负
	discount = decimal.Min(discount, subtotal)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2), coupon, nil
}

// MarkUsed 累加优惠券使用次数（下单时调用）
func (s *CouponService) MarkUsed(couponID uint) error {
	return s.couponRepo.IncrementUsage(couponID)
}

// CouponInput 优惠券创建/更新输入
type CouponInput struct {
	Code        string       `json:"code"`
	Type        string       `json:"type"`
	Value       models.Money `json:"value"`
	MinAmount   models.Money `json:"min_amount"`
	MaxDiscount models.Money `json:"max_discount"`
	UsageLimit  int          `json:"usage_limit"`
	StartsAt    *time.Time   `json:"starts_at"`
	EndsAt      *time.Time   `json:"ends_at"`
	IsActive    bool         `json:"is_active"`
}

// List 优惠券列表（管理端）
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// Get 获取优惠券（管理端）
func (s *CouponService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create 创建优惠券（管理端）
func (s *CouponService) Create(input CouponInput) (*models.Coupon, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" || !validCouponType(input.Type) {
		return nil, ErrConfigurationInvalid
	}
	coupon := &models.Coupon{
		Code:        code,
		Type:        input.Type,
		Value:       input.Value,
		MinAmount:   input.MinAmount,
		MaxDiscount: input.MaxDiscount,
		UsageLimit:  input.UsageLimit,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsActive:    input.IsActive,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券（管理端）
func (s *CouponService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if code := strings.TrimSpace(input.Code); code != "" {
		coupon.Code = code
	}
	if validCouponType(input.Type) {
		coupon.Type = input.Type
	}
	coupon.Value = input.Value
	coupon.MinAmount = input.MinAmount
	coupon.MaxDiscount = input.MaxDiscount
	coupon.UsageLimit = input.UsageLimit
	coupon.StartsAt = input.StartsAt
	coupon.EndsAt = input.EndsAt
	coupon.IsActive = input.IsActive
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券（管理端）
func (s *CouponService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.couponRepo.Delete(id)
}

func validCouponType(couponType string) bool {
	return couponType == constants.CouponTypeFixed || couponType == constants.CouponTypePercent
}
