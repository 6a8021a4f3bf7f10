package admin

import (
	"errors"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BundleItemRequest 捆绑项请求
type BundleItemRequest struct {
	ItemProductID   uint    `json:"item_product_id" binding:"required"`
	ItemType        string  `json:"item_type" binding:"required"`
	Quantity        int     `json:"quantity"`
	IsConfigurable  bool    `json:"is_configurable"`
	PriceAdjustment float64 `json:"price_adjustment"`
	SortOrder       int     `json:"sort_order"`
}

func (r BundleItemRequest) toInput() service.BundleItemInput {
	return service.BundleItemInput{
		ItemProductID:   r.ItemProductID,
		ItemType:        r.ItemType,
		Quantity:        r.Quantity,
		IsConfigurable:  r.IsConfigurable,
		PriceAdjustment: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.PriceAdjustment)),
		SortOrder:       r.SortOrder,
	}
}

// CreateBundleItem 创建捆绑项
func (h *Handler) CreateBundleItem(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req BundleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.ProductAdminService.CreateBundleItem(productID, req.toInput())
	if err != nil {
		respondBundleAdminError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateBundleItem 更新捆绑项
func (h *Handler) UpdateBundleItem(c *gin.Context) {
	itemID, ok := parsePathID(c, "item_id")
	if !ok {
		return
	}
	var req BundleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.ProductAdminService.UpdateBundleItem(itemID, req.toInput())
	if err != nil {
		respondBundleAdminError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteBundleItem 删除捆绑项
func (h *Handler) DeleteBundleItem(c *gin.Context) {
	itemID, ok := parsePathID(c, "item_id")
	if !ok {
		return
	}

	if err := h.ProductAdminService.DeleteBundleItem(itemID); err != nil {
		respondBundleAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondBundleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrBundleNesting):
		respondError(c, response.CodeBadRequest, "error.bundle_nesting", nil)
	case errors.Is(err, service.ErrConfigurationInvalid):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.admin_save_failed", err)
	}
}
