package public

import (
	"errors"

	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	var cfgErr *service.ConfigurationError
	hasFields := errors.As(err, &cfgErr) && len(cfgErr.Fields()) > 0
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			if hasFields {
				respondErrorWithData(c, rule.code, rule.key, cfgErr.Fields(), nil)
			} else {
				respondError(c, rule.code, rule.key, nil)
			}
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var configurationErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrMissingRequiredVariation, code: response.CodeBadRequest, key: "error.missing_required_variation"},
	{target: service.ErrInvalidOptionReference, code: response.CodeBadRequest, key: "error.invalid_option_reference"},
	{target: service.ErrMissingRequiredAddOn, code: response.CodeBadRequest, key: "error.missing_required_addon"},
	{target: service.ErrInvalidAddOnReference, code: response.CodeBadRequest, key: "error.invalid_addon_reference"},
	{target: service.ErrInvalidBundleItemReference, code: response.CodeBadRequest, key: "error.invalid_bundle_item_reference"},
	{target: service.ErrBundleConfigurationInvalid, code: response.CodeBadRequest, key: "error.bundle_configuration_invalid"},
	{target: service.ErrConfigurationInvalid, code: response.CodeBadRequest, key: "error.configuration_invalid"},
	{target: service.ErrRequiredComponentOutOfStock, code: response.CodeBadRequest, key: "error.required_component_out_of_stock"},
}

var cartLineErrorRules = []mappedHandlerError{
	{target: service.ErrCartNotFound, code: response.CodeNotFound, key: "error.cart_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, key: "error.coupon_not_found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, key: "error.coupon_inactive"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, key: "error.coupon_not_started"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, key: "error.coupon_expired"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, key: "error.coupon_usage_limit"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, key: "error.coupon_min_amount"},
}

var checkoutExtraErrorRules = []mappedHandlerError{
	{target: service.ErrCartNotFound, code: response.CodeBadRequest, key: "error.cart_not_found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrRequiredComponentOutOfStock, code: response.CodeBadRequest, key: "error.required_component_out_of_stock"},
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(configurationErrorRules, cartLineErrorRules), response.CodeInternal, "error.cart_add_failed")
}

func respondCartUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartLineErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondCartCouponError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartLineErrorRules, couponErrorRules, []mappedHandlerError{
		{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	}), response.CodeInternal, "error.coupon_apply_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutExtraErrorRules, couponErrorRules), response.CodeInternal, "error.order_create_failed")
}
