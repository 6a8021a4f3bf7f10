package admin

import (
	"errors"
	"strings"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VariationGroupRequest 变体组请求
type VariationGroupRequest struct {
	Name       string `json:"name" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
	IsRequired bool   `json:"is_required"`
	SortOrder  int    `json:"sort_order"`
}

// VariationOptionRequest 变体选项请求
type VariationOptionRequest struct {
	Label             string  `json:"label" binding:"required"`
	ImageURL          string  `json:"image_url"`
	PriceAdjustment   float64 `json:"price_adjustment"`
	IsDefault         bool    `json:"is_default"`
	StockQuantity     *int    `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	SortOrder         int     `json:"sort_order"`
}

func (r VariationGroupRequest) toInput() service.VariationGroupInput {
	return service.VariationGroupInput{
		Name:       strings.TrimSpace(r.Name),
		Kind:       r.Kind,
		IsRequired: r.IsRequired,
		SortOrder:  r.SortOrder,
	}
}

func (r VariationOptionRequest) toInput() service.VariationOptionInput {
	return service.VariationOptionInput{
		Label:             strings.TrimSpace(r.Label),
		ImageURL:          strings.TrimSpace(r.ImageURL),
		PriceAdjustment:   models.NewMoneyFromDecimal(decimal.NewFromFloat(r.PriceAdjustment)),
		IsDefault:         r.IsDefault,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
		SortOrder:         r.SortOrder,
	}
}

// CreateVariationGroup 创建变体组
func (h *Handler) CreateVariationGroup(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req VariationGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	group, err := h.ProductAdminService.CreateVariationGroup(productID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, group)
}

// UpdateVariationGroup 更新变体组
func (h *Handler) UpdateVariationGroup(c *gin.Context) {
	groupID, ok := parsePathID(c, "group_id")
	if !ok {
		return
	}
	var req VariationGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	group, err := h.ProductAdminService.UpdateVariationGroup(groupID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, group)
}

// DeleteVariationGroup 删除变体组
func (h *Handler) DeleteVariationGroup(c *gin.Context) {
	groupID, ok := parsePathID(c, "group_id")
	if !ok {
		return
	}

	if err := h.ProductAdminService.DeleteVariationGroup(groupID); err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateVariationOption 创建变体选项
func (h *Handler) CreateVariationOption(c *gin.Context) {
	groupID, ok := parsePathID(c, "group_id")
	if !ok {
		return
	}
	var req VariationOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	option, err := h.ProductAdminService.CreateVariationOption(groupID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, option)
}

// UpdateVariationOption 更新变体选项
func (h *Handler) UpdateVariationOption(c *gin.Context) {
	optionID, ok := parsePathID(c, "option_id")
	if !ok {
		return
	}
	var req VariationOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	option, err := h.ProductAdminService.UpdateVariationOption(optionID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, option)
}

// DeleteVariationOption 删除变体选项
func (h *Handler) DeleteVariationOption(c *gin.Context) {
	optionID, ok := parsePathID(c, "option_id")
	if !ok {
		return
	}

	if err := h.ProductAdminService.DeleteVariationOption(optionID); err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondVariationAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrConfigurationInvalid):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.admin_save_failed", err)
	}
}
