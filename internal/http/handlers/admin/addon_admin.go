package admin

import (
	"strings"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddOnRequest 附加项请求
type AddOnRequest struct {
	Name       string  `json:"name" binding:"required"`
	IsRequired bool    `json:"is_required"`
	HasOptions bool    `json:"has_options"`
	Price      float64 `json:"price"`
	SortOrder  int     `json:"sort_order"`
}

// AddOnOptionRequest 附加项选项请求
type AddOnOptionRequest struct {
	Label     string  `json:"label" binding:"required"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"is_default"`
	SortOrder int     `json:"sort_order"`
}

func (r AddOnRequest) toInput() service.AddOnInput {
	return service.AddOnInput{
		Name:       strings.TrimSpace(r.Name),
		IsRequired: r.IsRequired,
		HasOptions: r.HasOptions,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		SortOrder:  r.SortOrder,
	}
}

func (r AddOnOptionRequest) toInput() service.AddOnOptionInput {
	return service.AddOnOptionInput{
		Label:     strings.TrimSpace(r.Label),
		Price:     models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		IsDefault: r.IsDefault,
		SortOrder: r.SortOrder,
	}
}

// CreateAddOn 创建附加项
func (h *Handler) CreateAddOn(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req AddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	addon, err := h.ProductAdminService.CreateAddOn(productID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, addon)
}

// UpdateAddOn 更新附加项
func (h *Handler) UpdateAddOn(c *gin.Context) {
	addonID, ok := parsePathID(c, "addon_id")
	if !ok {
		return
	}
	var req AddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	addon, err := h.ProductAdminService.UpdateAddOn(addonID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, addon)
}

// DeleteAddOn 删除附加项
func (h *Handler) DeleteAddOn(c *gin.Context) {
	addonID, ok := parsePathID(c, "addon_id")
	if !ok {
		return
	}

	if err := h.ProductAdminService.DeleteAddOn(addonID); err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateAddOnOption 创建附加项选项
func (h *Handler) CreateAddOnOption(c *gin.Context) {
	addonID, ok := parsePathID(c, "addon_id")
	if !ok {
		return
	}
	var req AddOnOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	option, err := h.ProductAdminService.CreateAddOnOption(addonID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, option)
}

// UpdateAddOnOption 更新附加项选项
func (h *Handler) UpdateAddOnOption(c *gin.Context) {
	optionID, ok := parsePathID(c, "option_id")
	if !ok {
		return
	}
	var req AddOnOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	option, err := h.ProductAdminService.UpdateAddOnOption(optionID, req.toInput())
	if err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, option)
}

// DeleteAddOnOption 删除附加项选项
func (h *Handler) DeleteAddOnOption(c *gin.Context) {
	optionID, ok := parsePathID(c, "option_id")
	if !ok {
		return
	}

	if err := h.ProductAdminService.DeleteAddOnOption(optionID); err != nil {
		respondVariationAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
