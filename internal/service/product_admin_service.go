package service

import (
	"strings"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/logger"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/queue"
	"github.com/cockpitforge/internal/repository"
)

// ProductInput 商品创建/更新输入
type ProductInput struct {
	SKU           string             `json:"sku"`
	Slug          string             `json:"slug"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Type          string             `json:"type"`
	BasePrice     models.Money       `json:"base_price"`
	StockQuantity *int               `json:"stock_quantity"`
	Images        models.StringArray `json:"images"`
	Tags          models.StringArray `json:"tags"`
	IsActive      bool               `json:"is_active"`
	SortOrder     int                `json:"sort_order"`
}

// VariationGroupInput 变体组输入
type VariationGroupInput struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	IsRequired bool   `json:"is_required"`
	SortOrder  int    `json:"sort_order"`
}

// VariationOptionInput 变体选项输入
type VariationOptionInput struct {
	Label             string       `json:"label"`
	ImageURL          string       `json:"image_url"`
	PriceAdjustment   models.Money `json:"price_adjustment"`
	IsDefault         bool         `json:"is_default"`
	StockQuantity     *int         `json:"stock_quantity"`
	LowStockThreshold int          `json:"low_stock_threshold"`
	SortOrder         int          `json:"sort_order"`
}

// AddOnInput 附加项输入
type AddOnInput struct {
	Name       string       `json:"name"`
	IsRequired bool         `json:"is_required"`
	HasOptions bool         `json:"has_options"`
	Price      models.Money `json:"price"`
	SortOrder  int          `json:"sort_order"`
}

// AddOnOptionInput 附加项选项输入
type AddOnOptionInput struct {
	Label     string       `json:"label"`
	Price     models.Money `json:"price"`
	IsDefault bool         `json:"is_default"`
	SortOrder int          `json:"sort_order"`
}

// BundleItemInput 捆绑项输入
type BundleItemInput struct {
	ItemProductID   uint         `json:"item_product_id"`
	ItemType        string       `json:"item_type"`
	Quantity        int          `json:"quantity"`
	IsConfigurable  bool         `json:"is_configurable"`
	PriceAdjustment models.Money `json:"price_adjustment"`
	SortOrder       int          `json:"sort_order"`
}

// ProductAdminService 商品目录管理服务（唯一的目录写入路径）。
// 每次涉及定价 schema 的变更都失效 schema 缓存并触发价格区间重算。
type ProductAdminService struct {
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
	addonRepo     repository.AddOnRepository
	bundleRepo    repository.BundleRepository
	catalog       *CatalogService
	queueClient   *queue.Client
}

// NewProductAdminService 创建商品管理服务
func NewProductAdminService(
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
	addonRepo repository.AddOnRepository,
	bundleRepo repository.BundleRepository,
	catalog *CatalogService,
	queueClient *queue.Client,
) *ProductAdminService {
	return &ProductAdminService{
		productRepo:   productRepo,
		variationRepo: variationRepo,
		addonRepo:     addonRepo,
		bundleRepo:    bundleRepo,
		catalog:       catalog,
		queueClient:   queueClient,
	}
}

// List 商品列表（管理端，包含下架商品）
func (s *ProductAdminService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get 获取商品及完整 schema（管理端）
func (s *ProductAdminService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetSchemaByID(id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct 创建商品
func (s *ProductAdminService) CreateProduct(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || strings.TrimSpace(input.Name) == "" || !validProductType(input.Type) {
		return nil, ErrConfigurationInvalid
	}
	count, err := s.productRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}
	product := &models.Product{
		SKU:           strings.TrimSpace(input.SKU),
		Slug:          slug,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Type:          input.Type,
		BasePrice:     input.BasePrice,
		StockQuantity: input.StockQuantity,
		PriceMin:      input.BasePrice,
		PriceMax:      input.BasePrice,
		Images:        input.Images,
		Tags:          input.Tags,
		IsActive:      input.IsActive,
		SortOrder:     input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *ProductAdminService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != product.Slug {
		count, err := s.productRepo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugTaken
		}
		product.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" {
		product.SKU = sku
	}
	if validProductType(input.Type) {
		product.Type = input.Type
	}
	product.Description = input.Description
	product.BasePrice = input.BasePrice
	product.StockQuantity = input.StockQuantity
	product.Images = input.Images
	product.Tags = input.Tags
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(id)
	return product, nil
}

// DeleteProduct 删除商品
func (s *ProductAdminService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.catalog.InvalidateSchema(id)
	return nil
}

// CreateVariationGroup 创建变体组
func (s *ProductAdminService) CreateVariationGroup(productID uint, input VariationGroupInput) (*models.VariationGroup, error) {
	if _, err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" || !validVariationKind(input.Kind) {
		return nil, ErrConfigurationInvalid
	}
	group := &models.VariationGroup{
		ProductID:  productID,
		Name:       strings.TrimSpace(input.Name),
		Kind:       input.Kind,
		IsRequired: input.IsRequired,
		SortOrder:  input.SortOrder,
	}
	if err := s.variationRepo.CreateGroup(group); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(productID)
	return group, nil
}

// UpdateVariationGroup 更新变体组
func (s *ProductAdminService) UpdateVariationGroup(groupID uint, input VariationGroupInput) (*models.VariationGroup, error) {
	group, err := s.variationRepo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrProductNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		group.Name = name
	}
	if validVariationKind(input.Kind) {
		group.Kind = input.Kind
	}
	group.IsRequired = input.IsRequired
	group.SortOrder = input.SortOrder
	if err := s.variationRepo.UpdateGroup(group); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(group.ProductID)
	return group, nil
}

// DeleteVariationGroup 删除变体组及其选项
func (s *ProductAdminService) DeleteVariationGroup(groupID uint) error {
	group, err := s.variationRepo.GetGroupByID(groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrProductNotFound
	}
	if err := s.variationRepo.DeleteGroup(groupID); err != nil {
		return err
	}
	s.afterSchemaMutation(group.ProductID)
	return nil
}

// CreateVariationOption 创建变体选项
func (s *ProductAdminService) CreateVariationOption(groupID uint, input VariationOptionInput) (*models.VariationOption, error) {
	group, err := s.variationRepo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrProductNotFound
	}
	if strings.TrimSpace(input.Label) == "" {
		return nil, ErrConfigurationInvalid
	}
	option := &models.VariationOption{
		GroupID:           groupID,
		Label:             strings.TrimSpace(input.Label),
		ImageURL:          input.ImageURL,
		PriceAdjustment:   input.PriceAdjustment,
		IsDefault:         input.IsDefault,
		StockQuantity:     input.StockQuantity,
		LowStockThreshold: input.LowStockThreshold,
		SortOrder:         input.SortOrder,
	}
	if err := s.variationRepo.CreateOption(option); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(group.ProductID)
	return option, nil
}

// UpdateVariationOption 更新变体选项
func (s *ProductAdminService) UpdateVariationOption(optionID uint, input VariationOptionInput) (*models.VariationOption, error) {
	option, err := s.variationRepo.GetOptionByID(optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, ErrProductNotFound
	}
	group, err := s.variationRepo.GetGroupByID(option.GroupID)
	if err != nil {
		return nil, err
	}
	if label := strings.TrimSpace(input.Label); label != "" {
		option.Label = label
	}
	option.ImageURL = input.ImageURL
	option.PriceAdjustment = input.PriceAdjustment
	option.IsDefault = input.IsDefault
	option.StockQuantity = input.StockQuantity
	option.LowStockThreshold = input.LowStockThreshold
	option.SortOrder = input.SortOrder
	if err := s.variationRepo.UpdateOption(option); err != nil {
		return nil, err
	}
	if group != nil {
		s.afterSchemaMutation(group.ProductID)
	}
	return option, nil
}

// DeleteVariationOption 删除变体选项
func (s *ProductAdminService) DeleteVariationOption(optionID uint) error {
	option, err := s.variationRepo.GetOptionByID(optionID)
	if err != nil {
		return err
	}
	if option == nil {
		return ErrProductNotFound
	}
	group, err := s.variationRepo.GetGroupByID(option.GroupID)
	if err != nil {
		return err
	}
	if err := s.variationRepo.DeleteOption(optionID); err != nil {
		return err
	}
	if group != nil {
		s.afterSchemaMutation(group.ProductID)
	}
	return nil
}

// CreateAddOn 创建附加项
func (s *ProductAdminService) CreateAddOn(productID uint, input AddOnInput) (*models.AddOn, error) {
	if _, err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrConfigurationInvalid
	}
	addon := &models.AddOn{
		ProductID:  productID,
		Name:       strings.TrimSpace(input.Name),
		IsRequired: input.IsRequired,
		HasOptions: input.HasOptions,
		Price:      input.Price,
		SortOrder:  input.SortOrder,
	}
	if err := s.addonRepo.Create(addon); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(productID)
	return addon, nil
}

// UpdateAddOn 更新附加项
func (s *ProductAdminService) UpdateAddOn(addonID uint, input AddOnInput) (*models.AddOn, error) {
	addon, err := s.addonRepo.GetByID(addonID)
	if err != nil {
		return nil, err
	}
	if addon == nil {
		return nil, ErrProductNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		addon.Name = name
	}
	addon.IsRequired = input.IsRequired
	addon.HasOptions = input.HasOptions
	addon.Price = input.Price
	addon.SortOrder = input.SortOrder
	if err := s.addonRepo.Update(addon); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(addon.ProductID)
	return addon, nil
}

// DeleteAddOn 删除附加项及其选项
func (s *ProductAdminService) DeleteAddOn(addonID uint) error {
	addon, err := s.addonRepo.GetByID(addonID)
	if err != nil {
		return err
	}
	if addon == nil {
		return ErrProductNotFound
	}
	if err := s.addonRepo.Delete(addonID); err != nil {
		return err
	}
	s.afterSchemaMutation(addon.ProductID)
	return nil
}

// CreateAddOnOption 创建附加项选项
func (s *ProductAdminService) CreateAddOnOption(addonID uint, input AddOnOptionInput) (*models.AddOnOption, error) {
	addon, err := s.addonRepo.GetByID(addonID)
	if err != nil {
		return nil, err
	}
	if addon == nil {
		return nil, ErrProductNotFound
	}
	if strings.TrimSpace(input.Label) == "" {
		return nil, ErrConfigurationInvalid
	}
	option := &models.AddOnOption{
		AddOnID:   addonID,
		Label:     strings.TrimSpace(input.Label),
		Price:     input.Price,
		IsDefault: input.IsDefault,
		SortOrder: input.SortOrder,
	}
	if err := s.addonRepo.CreateOption(option); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(addon.ProductID)
	return option, nil
}

// UpdateAddOnOption 更新附加项选项
func (s *ProductAdminService) UpdateAddOnOption(optionID uint, input AddOnOptionInput) (*models.AddOnOption, error) {
	option, err := s.addonRepo.GetOptionByID(optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, ErrProductNotFound
	}
	addon, err := s.addonRepo.GetByID(option.AddOnID)
	if err != nil {
		return nil, err
	}
	if label := strings.TrimSpace(input.Label); label != "" {
		option.Label = label
	}
	option.Price = input.Price
	option.IsDefault = input.IsDefault
	option.SortOrder = input.SortOrder
	if err := s.addonRepo.UpdateOption(option); err != nil {
		return nil, err
	}
	if addon != nil {
		s.afterSchemaMutation(addon.ProductID)
	}
	return option, nil
}

// DeleteAddOnOption 删除附加项选项
func (s *ProductAdminService) DeleteAddOnOption(optionID uint) error {
	option, err := s.addonRepo.GetOptionByID(optionID)
	if err != nil {
		return err
	}
	if option == nil {
		return ErrProductNotFound
	}
	addon, err := s.addonRepo.GetByID(option.AddOnID)
	if err != nil {
		return err
	}
	if err := s.addonRepo.DeleteOption(optionID); err != nil {
		return err
	}
	if addon != nil {
		s.afterSchemaMutation(addon.ProductID)
	}
	return nil
}

// CreateBundleItem 创建捆绑项。
// 被引用商品不可再是 bundle：嵌套深度在数据模型层面封顶一级。
func (s *ProductAdminService) CreateBundleItem(parentProductID uint, input BundleItemInput) (*models.BundleItem, error) {
	parent, err := s.requireProduct(parentProductID)
	if err != nil {
		return nil, err
	}
	if parent.Type != constants.ProductTypeBundle {
		return nil, ErrConfigurationInvalid
	}
	item, err := s.requireProduct(input.ItemProductID)
	if err != nil {
		return nil, err
	}
	if item.Type == constants.ProductTypeBundle {
		return nil, ErrBundleNesting
	}
	if !validBundleItemType(input.ItemType) {
		return nil, ErrConfigurationInvalid
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	bundleItem := &models.BundleItem{
		ParentProductID: parentProductID,
		ItemProductID:   input.ItemProductID,
		ItemType:        input.ItemType,
		Quantity:        quantity,
		IsConfigurable:  input.IsConfigurable,
		PriceAdjustment: input.PriceAdjustment,
		SortOrder:       input.SortOrder,
	}
	if err := s.bundleRepo.Create(bundleItem); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(parentProductID)
	return bundleItem, nil
}

// UpdateBundleItem 更新捆绑项
func (s *ProductAdminService) UpdateBundleItem(bundleItemID uint, input BundleItemInput) (*models.BundleItem, error) {
	bundleItem, err := s.bundleRepo.GetByID(bundleItemID)
	if err != nil {
		return nil, err
	}
	if bundleItem == nil {
		return nil, ErrProductNotFound
	}
	if input.ItemProductID != 0 && input.ItemProductID != bundleItem.ItemProductID {
		item, err := s.requireProduct(input.ItemProductID)
		if err != nil {
			return nil, err
		}
		if item.Type == constants.ProductTypeBundle {
			return nil, ErrBundleNesting
		}
		bundleItem.ItemProductID = input.ItemProductID
	}
	if validBundleItemType(input.ItemType) {
		bundleItem.ItemType = input.ItemType
	}
	if input.Quantity > 0 {
		bundleItem.Quantity = input.Quantity
	}
	bundleItem.IsConfigurable = input.IsConfigurable
	bundleItem.PriceAdjustment = input.PriceAdjustment
	bundleItem.SortOrder = input.SortOrder
	if err := s.bundleRepo.Update(bundleItem); err != nil {
		return nil, err
	}
	s.afterSchemaMutation(bundleItem.ParentProductID)
	return bundleItem, nil
}

// DeleteBundleItem 删除捆绑项
func (s *ProductAdminService) DeleteBundleItem(bundleItemID uint) error {
	bundleItem, err := s.bundleRepo.GetByID(bundleItemID)
	if err != nil {
		return err
	}
	if bundleItem == nil {
		return ErrProductNotFound
	}
	if err := s.bundleRepo.Delete(bundleItemID); err != nil {
		return err
	}
	s.afterSchemaMutation(bundleItem.ParentProductID)
	return nil
}

func (s *ProductAdminService) requireProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// afterSchemaMutation 目录定价变更后的统一收尾：
// 失效 schema 缓存，同步重算该商品的价格区间，再入队异步兜底。
func (s *ProductAdminService) afterSchemaMutation(productID uint) {
	s.catalog.InvalidateSchema(productID)
	if err := s.catalog.RecomputePriceRange(productID); err != nil {
		logger.Warnw("price_range_recompute_failed", "product_id", productID, "error", err)
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueuePriceRangeRecompute(queue.PriceRangeRecomputePayload{ProductID: productID}); err != nil {
			logger.Warnw("price_range_recompute_enqueue_failed", "product_id", productID, "error", err)
		}
	}
}

func validProductType(productType string) bool {
	switch productType {
	case constants.ProductTypeSimple, constants.ProductTypeConfigurable, constants.ProductTypeBundle:
		return true
	}
	return false
}

func validVariationKind(kind string) bool {
	switch kind {
	case constants.VariationKindDropdown, constants.VariationKindImage,
		constants.VariationKindText, constants.VariationKindBoolean:
		return true
	}
	return false
}

func validBundleItemType(itemType string) bool {
	return itemType == constants.BundleItemTypeRequired || itemType == constants.BundleItemTypeOptional
}
