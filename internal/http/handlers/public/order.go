package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder 结算：把当前购物车冻结为订单
func (h *Handler) CreateOrder(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}

	order, err := h.OrderService.Checkout(identity)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	requestLog(c).Infow("order_created",
		"order_no", order.OrderNo,
		"total", order.TotalAmount,
	)
	response.Success(c, order)
}

// GetOrder 按订单号查询订单
func (h *Handler) GetOrder(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.GetOrder(identity, orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// ListOrders 查询当前归属下的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	identity, ok := cartIdentity(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrders(identity, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, buildPagination(page, pageSize, total))
}
