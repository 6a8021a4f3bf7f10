package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cockpitforge/internal/constants"
	"github.com/cockpitforge/internal/models"
	"github.com/cockpitforge/internal/repository"
)

func setupOrderServiceTest(t *testing.T) (*cartTestEnv, *OrderService) {
	t.Helper()
	env := setupCartServiceTest(t)
	if err := env.db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate orders failed: %v", err)
	}
	orders := NewOrderService(
		repository.NewOrderRepository(env.db),
		repository.NewCartRepository(env.db),
		repository.NewProductRepository(env.db),
		repository.NewVariationRepository(env.db),
		env.carts,
		env.coupons,
	)
	return env, orders
}

func TestCheckoutFreezesPricesAndDestroysCart(t *testing.T) {
	env, orders := setupOrderServiceTest(t)
	identity := CartIdentity{SessionID: "sess-checkout"}
	coupon := createTestCoupon(t, env.db, models.Coupon{
		Code:      "FLAT100",
		Type:      constants.CouponTypeFixed,
		Value:     testMoney(100),
		MinAmount: testMoney(1500),
		IsActive:  true,
	})

	if _, err := env.carts.AddLine(identity, AddLineInput{
		ProductID:     env.cockpitID,
		Configuration: env.proConfiguration(),
		Quantity:      2,
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.carts.ApplyCoupon(identity, "FLAT100"); err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}

	order, err := orders.Checkout(identity)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "CF") {
		t.Fatalf("order no want CF prefix got %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.Subtotal.String() != "2398.00" || order.DiscountAmount.String() != "100.00" || order.TotalAmount.String() != "2298.00" {
		t.Fatalf("totals want 2398.00/100.00/2298.00 got %s/%s/%s",
			order.Subtotal, order.DiscountAmount, order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("order items want 1 got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.UnitPrice.String() != "1199.00" || item.Quantity != 2 || item.TotalPrice.String() != "2398.00" {
		t.Fatalf("frozen line want 1199.00 x2 = 2398.00 got %s x%d = %s",
			item.UnitPrice, item.Quantity, item.TotalPrice)
	}
	if item.ConfigSignature == "" {
		t.Fatalf("config signature must be frozen on the order item")
	}

	// 购物车随下单销毁
	view, err := env.carts.GetCart(identity)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.Cart != nil && len(view.Cart.Items) != 0 {
		t.Fatalf("cart must be destroyed after checkout")
	}

	// 优惠券使用次数累加
	var got models.Coupon
	if err := env.db.First(&got, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if got.UsedCount != 1 {
		t.Fatalf("used_count want 1 got %d", got.UsedCount)
	}
}

func TestCheckoutPricesStayFrozenAfterCatalogChange(t *testing.T) {
	env, orders := setupOrderServiceTest(t)
	identity := CartIdentity{SessionID: "sess-frozen"}

	if _, err := env.carts.AddLine(identity, AddLineInput{
		ProductID:     env.cockpitID,
		Configuration: env.proConfiguration(),
		Quantity:      1,
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 行项单价在加购时已冻结，后续调价不影响
	if err := env.db.Model(&models.VariationOption{}).
		Where("id = ?", env.proOptionID).
		Update("price_adjustment", testMoney(999)).Error; err != nil {
		t.Fatalf("reprice option failed: %v", err)
	}

	order, err := orders.Checkout(identity)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.TotalAmount.String() != "1199.00" {
		t.Fatalf("total want frozen 1199.00 got %s", order.TotalAmount)
	}
}

func TestCheckoutConsumesTrackedStock(t *testing.T) {
	env, orders := setupOrderServiceTest(t)
	identity := CartIdentity{SessionID: "sess-stock"}

	configuration := json.RawMessage(fmt.Sprintf(
		`{"variations":{"%d":{"option_id":%d}},"bundle_items":{"%d":{"selected":true}}}`,
		env.yokeGroupID, env.yokeOptionID, env.standItemID))
	if _, err := env.carts.AddLine(identity, AddLineInput{
		ProductID:     env.cockpitID,
		Configuration: configuration,
		Quantity:      2,
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := orders.Checkout(identity); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var yoke models.VariationOption
	if err := env.db.First(&yoke, env.yokeOptionID).Error; err != nil {
		t.Fatalf("reload yoke option failed: %v", err)
	}
	if yoke.StockQuantity == nil || *yoke.StockQuantity != 6 {
		t.Fatalf("yoke stock want 6 got %v", yoke.StockQuantity)
	}

	var stand models.Product
	if err := env.db.First(&stand, env.standID).Error; err != nil {
		t.Fatalf("reload stand failed: %v", err)
	}
	if stand.StockQuantity == nil || *stand.StockQuantity != 13 {
		t.Fatalf("stand stock want 13 got %v", stand.StockQuantity)
	}
}

func TestCheckoutConsumesNestedOptionStock(t *testing.T) {
	env, orders := setupOrderServiceTest(t)
	identity := CartIdentity{SessionID: "sess-nested-stock"}

	// 把支架改为可配置捆绑项并挂一个跟踪库存的面板选项
	plateGroup := models.VariationGroup{
		ProductID: env.standID, Name: "Plate Finish",
		Kind: constants.VariationKindDropdown, IsRequired: true, SortOrder: 1,
	}
	if err := env.db.Create(&plateGroup).Error; err != nil {
		t.Fatalf("create plate group failed: %v", err)
	}
	matte := models.VariationOption{GroupID: plateGroup.ID, Label: "Matte", PriceAdjustment: testMoney(0), IsDefault: true, SortOrder: 1}
	carbon := models.VariationOption{GroupID: plateGroup.ID, Label: "Carbon", PriceAdjustment: testMoney(40), StockQuantity: testIntPtr(10), SortOrder: 2}
	if err := env.db.Create(&matte).Error; err != nil {
		t.Fatalf("create matte option failed: %v", err)
	}
	if err := env.db.Create(&carbon).Error; err != nil {
		t.Fatalf("create carbon option failed: %v", err)
	}
	if err := env.db.Model(&models.BundleItem{}).
		Where("id = ?", env.standItemID).
		Update("is_configurable", true).Error; err != nil {
		t.Fatalf("mark bundle item configurable failed: %v", err)
	}

	configuration := json.RawMessage(fmt.Sprintf(
		`{"bundle_items":{"%d":{"selected":true,"configuration":{"variations":{"%d":{"option_id":%d}}}}}}`,
		env.standItemID, plateGroup.ID, carbon.ID))
	if _, err := env.carts.AddLine(identity, AddLineInput{
		ProductID:     env.cockpitID,
		Configuration: configuration,
		Quantity:      2,
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := orders.Checkout(identity); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var got models.VariationOption
	if err := env.db.First(&got, carbon.ID).Error; err != nil {
		t.Fatalf("reload carbon option failed: %v", err)
	}
	if got.StockQuantity == nil || *got.StockQuantity != 8 {
		t.Fatalf("nested option stock want 8 got %v", got.StockQuantity)
	}

	var stand models.Product
	if err := env.db.First(&stand, env.standID).Error; err != nil {
		t.Fatalf("reload stand failed: %v", err)
	}
	if stand.StockQuantity == nil || *stand.StockQuantity != 13 {
		t.Fatalf("stand stock want 13 got %v", stand.StockQuantity)
	}
}

func TestCheckoutRequiresCartWithItems(t *testing.T) {
	_, orders := setupOrderServiceTest(t)
	if _, err := orders.Checkout(CartIdentity{SessionID: "sess-none"}); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("missing cart want ErrCartNotFound got %v", err)
	}
	if _, err := orders.Checkout(CartIdentity{}); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("empty identity want ErrCartNotFound got %v", err)
	}
}

func TestCheckoutRejectsLapsedCoupon(t *testing.T) {
	env, orders := setupOrderServiceTest(t)
	identity := CartIdentity{SessionID: "sess-lapsed"}
	coupon := createTestCoupon(t, env.db, models.Coupon{
		Code: "SHORTLIVED", Type: constants.CouponTypeFixed, Value: testMoney(10), IsActive: true,
	})

	if _, err := env.carts.AddLine(identity, AddLineInput{ProductID: env.cockpitID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.carts.ApplyCoupon(identity, "SHORTLIVED"); err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if err := env.db.Model(&models.Coupon{}).Where("id = ?", coupon.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate coupon failed: %v", err)
	}

	if _, err := orders.Checkout(identity); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("want ErrCouponInactive got %v", err)
	}
}

func TestOrderOwnership(t *testing.T) {
	env, orders := setupOrderServiceTest(t)
	owner := CartIdentity{SessionID: "sess-owner"}

	if _, err := env.carts.AddLine(owner, AddLineInput{ProductID: env.cockpitID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	created, err := orders.Checkout(owner)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	got, err := orders.GetOrder(owner, created.OrderNo)
	if err != nil {
		t.Fatalf("owner get order failed: %v", err)
	}
	if got.OrderNo != created.OrderNo {
		t.Fatalf("order no mismatch")
	}

	if _, err := orders.GetOrder(CartIdentity{SessionID: "sess-stranger"}, created.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("stranger want ErrOrderNotFound got %v", err)
	}
	if _, err := orders.GetOrder(CartIdentity{UserID: 7}, created.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user want ErrOrderNotFound got %v", err)
	}

	list, total, err := orders.ListOrders(owner, 1, 20)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("owner list want 1 order got total=%d len=%d", total, len(list))
	}
	strangerList, strangerTotal, err := orders.ListOrders(CartIdentity{SessionID: "sess-stranger"}, 1, 20)
	if err != nil {
		t.Fatalf("stranger list failed: %v", err)
	}
	if strangerTotal != 0 || len(strangerList) != 0 {
		t.Fatalf("stranger list want empty got total=%d len=%d", strangerTotal, len(strangerList))
	}
}
