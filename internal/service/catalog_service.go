package service

import (
	"context"
	"time"

	"github.com/cockpitforge/internal/cache"
	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"
)

// ProductSchema 商品配置 schema 的不可变快照。
// 变体组/附加项/捆绑项按 sort_order 排好序；捆绑项展开被引用商品
// 的一级子 schema（子 schema 不再含捆绑项）。
type ProductSchema struct {
	Product     models.Product          `json:"product"`
	Groups      []models.VariationGroup `json:"groups"`
	AddOns      []models.AddOn          `json:"addons"`
	BundleItems []BundleItemSchema      `json:"bundle_items"`
}

// BundleItemSchema 捆绑项及其被引用商品信息
type BundleItemSchema struct {
	models.BundleItem
	Sub *ProductSchema `json:"sub,omitempty"` // is_configurable 时的被引用商品子 schema
}

// CatalogService 商品目录服务：schema 加载与派生价格区间维护
type CatalogService struct {
	productRepo    repository.ProductRepository
	schemaCacheTTL time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, schemaCacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		productRepo:    productRepo,
		schemaCacheTTL: schemaCacheTTL,
	}
}

// ListProducts 商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProductBySlug 按 slug 获取上架商品及其 schema
func (s *CatalogService) GetProductBySlug(slug string) (*ProductSchema, error) {
	product, err := s.productRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return buildSchema(product, true), nil
}

// LoadSchema 加载商品配置 schema 快照（缓存仅为性能优化，冷读同样正确）
func (s *CatalogService) LoadSchema(productID uint) (*ProductSchema, error) {
	if cache.Enabled() && s.schemaCacheTTL > 0 {
		var cached ProductSchema
		hit, err := cache.GetJSON(context.Background(), cache.ProductSchemaKey(productID), &cached)
		if err != nil {
			logger.Warnw("schema_cache_read_failed", "product_id", productID, "error", err)
		}
		if hit && cached.Product.ID != 0 {
			return &cached, nil
		}
	}

	product, err := s.productRepo.GetSchemaByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	schema := buildSchema(product, true)

	if cache.Enabled() && s.schemaCacheTTL > 0 {
		if err := cache.SetJSON(context.Background(), cache.ProductSchemaKey(productID), schema, s.schemaCacheTTL); err != nil {
			logger.Warnw("schema_cache_write_failed", "product_id", productID, "error", err)
		}
	}
	return schema, nil
}

// InvalidateSchema 失效 schema 缓存（每次后台目录变更后调用）
func (s *CatalogService) InvalidateSchema(productID uint) {
	if !cache.Enabled() {
		return
	}
	if err := cache.Del(context.Background(), cache.ProductSchemaKey(productID)); err != nil {
		logger.Warnw("schema_cache_invalidate_failed", "product_id", productID, "error", err)
	}
}

// RecomputePriceRange 重算并持久化商品派生价格区间（price_min/price_max）
func (s *CatalogService) RecomputePriceRange(productID uint) error {
	product, err := s.productRepo.GetSchemaByID(productID, false)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	schema := buildSchema(product, false)
	priceMin, priceMax := ComputePriceRange(schema)
	if err := s.productRepo.UpdatePriceRange(productID, priceMin, priceMax); err != nil {
		return err
	}
	s.InvalidateSchema(productID)
	return nil
}

// RecomputeAllPriceRanges 批量重算全部可配置/捆绑商品的价格区间
func (s *CatalogService) RecomputeAllPriceRanges() error {
	ids, err := s.productRepo.ListConfigurableIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.RecomputePriceRange(id); err != nil {
			logger.Warnw("price_range_recompute_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// buildSchema 把带关联的商品整理成 schema 快照。
// withSub 控制是否为可配置捆绑项展开被引用商品的一级子 schema。
func buildSchema(product *models.Product, withSub bool) *ProductSchema {
	schema := &ProductSchema{
		Product: *product,
		Groups:  product.VariationGroups,
		AddOns:  product.AddOns,
	}
	// 快照本体不再携带关联，避免载荷重复
	schema.Product.VariationGroups = nil
	schema.Product.AddOns = nil
	schema.Product.BundleItems = nil

	for _, item := range product.BundleItems {
		entry := BundleItemSchema{BundleItem: item}
		if withSub && item.IsConfigurable && item.Item != nil {
			entry.Sub = buildSubSchema(item.Item)
		}
		if entry.BundleItem.Item != nil {
			// 子层引用商品同样去掉关联，只保留本体字段
			flat := *entry.BundleItem.Item
			flat.VariationGroups = nil
			flat.AddOns = nil
			flat.BundleItems = nil
			entry.BundleItem.Item = &flat
		}
		schema.BundleItems = append(schema.BundleItems, entry)
	}
	return schema
}

// buildSubSchema 被引用商品的一级子 schema：只含变体组与附加项，
// 不再含捆绑项（被引用商品不可是 bundle）。
func buildSubSchema(item *models.Product) *ProductSchema {
	sub := &ProductSchema{
		Product: *item,
		Groups:  item.VariationGroups,
		AddOns:  item.AddOns,
	}
	sub.Product.VariationGroups = nil
	sub.Product.AddOns = nil
	sub.Product.BundleItems = nil
	return sub
}
