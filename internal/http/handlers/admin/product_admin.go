package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	SKU           string   `json:"sku"`
	Slug          string   `json:"slug" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Type          string   `json:"type" binding:"required"`
	BasePrice     float64  `json:"base_price"`
	StockQuantity *int     `json:"stock_quantity"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	IsActive      bool     `json:"is_active"`
	SortOrder     int      `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		SKU:           strings.TrimSpace(r.SKU),
		Slug:          strings.TrimSpace(r.Slug),
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Type:          r.Type,
		BasePrice:     models.NewMoneyFromDecimal(decimal.NewFromFloat(r.BasePrice)),
		StockQuantity: r.StockQuantity,
		Images:        models.StringArray(r.Images),
		Tags:          models.StringArray(r.Tags),
		IsActive:      r.IsActive,
		SortOrder:     r.SortOrder,
	}
}

// ListProducts 商品列表（管理端）
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductAdminService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, buildPagination(page, pageSize, total))
}

// GetProduct 商品详情（管理端）
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductAdminService.Get(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductAdminService.CreateProduct(req.toInput())
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductAdminService.UpdateProduct(productID, req.toInput())
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	if err := h.ProductAdminService.DeleteProduct(productID); err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "error.slug_taken", nil)
	case errors.Is(err, service.ErrBundleNesting):
		respondError(c, response.CodeBadRequest, "error.bundle_nesting", nil)
	case errors.Is(err, service.ErrConfigurationInvalid):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.admin_save_failed", err)
	}
}
