package public

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID     uint            `json:"product_id" binding:"required"`
	Configuration json.RawMessage `json:"configuration"`
	Quantity      int             `json:"quantity"`
}

// UpdateCartItemRequest 更新行项数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest 应用优惠券请求
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}

	view, err := h.CartService.GetCart(identity)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购：校验配置、消解库存并计价后落库
func (h *Handler) AddCartItem(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.CartService.AddLine(identity, service.AddLineInput{
		ProductID:     req.ProductID,
		Configuration: req.Configuration,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateCartItem 更新行项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.UpdateQuantity(identity, itemID, req.Quantity)
	if err != nil {
		respondCartUpdateError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 删除行项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	view, err := h.CartService.RemoveLine(identity, itemID)
	if err != nil {
		respondCartUpdateError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}

	view, err := h.CartService.Clear(identity)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}
	response.Success(c, view)
}

// ApplyCoupon 应用优惠券
func (h *Handler) ApplyCoupon(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.ApplyCoupon(identity, strings.TrimSpace(req.Code))
	if err != nil {
		respondCartCouponError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCoupon 移除优惠券
func (h *Handler) RemoveCoupon(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}

	view, err := h.CartService.RemoveCoupon(identity)
	if err != nil {
		respondCartUpdateError(c, err)
		return
	}
	response.Success(c, view)
}

func parseItemID(c *gin.Context) (uint, bool) {
	raw := c.Param("item_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_not_found", nil)
		return 0, false
	}
	return uint(id), true
}
