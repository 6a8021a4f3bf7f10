package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/repository"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	productType := strings.TrimSpace(c.Query("type"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Type:       productType,
		Search:     search,
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	currency, symbol := resolveRegionCurrency(c.Query("region"))
	response.SuccessWithPage(c, gin.H{
		"products":        products,
		"currency":        currency,
		"currency_symbol": symbol,
	}, buildPagination(page, pageSize, total))
}

// resolveRegionCurrency 按区域返回展示币种，未知区域回落美区
func resolveRegionCurrency(region string) (string, string) {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case constants.RegionEU:
		return constants.CurrencyEUR, constants.CurrencySymbolEUR
	default:
		return constants.CurrencyUSD, constants.CurrencySymbolUSD
	}
}

// GetProduct 获取商品配置 schema（按 slug）
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	schema, err := h.CatalogService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, schema)
}
