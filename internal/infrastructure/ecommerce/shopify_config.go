package ecommerce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Shopify Admin REST API defaults
const (
	ShopifyDefaultAPIVersion = "2024-01"
	// ShopifyMaxPageSize is the largest page the orders endpoint will return
	ShopifyMaxPageSize     = 250
	ShopifyDefaultTimeout  = 30
	shopifyAccessTokenHead = "X-Shopify-Access-Token"
)

// ShopifyConfig holds configuration for the Shopify Admin API integration
type ShopifyConfig struct {
	// ShopDomain is the store's myshopify domain, e.g. "spicebox.myshopify.com"
	ShopDomain string `validate:"required,hostname_rfc1123"`
	// AccessToken is the Admin API access token of the private app
	AccessToken string `validate:"required"`
	// APIVersion is the dated Admin API version
	APIVersion string `validate:"required"`
	// APIBaseURL overrides "https://{ShopDomain}"; used against test servers
	APIBaseURL string `validate:"omitempty,url"`
	// PageSize is the number of orders requested per page
	PageSize int `validate:"min=1,max=250"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `validate:"min=1"`
}

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingShopDomain  = errors.New("shopify: shop domain is required")
	ErrShopifyConfigMissingAccessToken = errors.New("shopify: access token is required")
	ErrShopifyConfigInvalid            = errors.New("shopify: invalid configuration")
)

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(shopDomain, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		ShopDomain:     shopDomain,
		AccessToken:    accessToken,
		APIVersion:     ShopifyDefaultAPIVersion,
		PageSize:       ShopifyMaxPageSize,
		TimeoutSeconds: ShopifyDefaultTimeout,
	}
}

// Validate fills in defaults, normalizes the shop domain and validates the
// configuration.
func (c *ShopifyConfig) Validate() error {
	c.ShopDomain = normalizeShopDomain(c.ShopDomain)
	if c.ShopDomain == "" {
		return ErrShopifyConfigMissingShopDomain
	}
	if c.AccessToken == "" {
		return ErrShopifyConfigMissingAccessToken
	}
	if c.APIVersion == "" {
		c.APIVersion = ShopifyDefaultAPIVersion
	}
	if c.PageSize == 0 {
		c.PageSize = ShopifyMaxPageSize
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = ShopifyDefaultTimeout
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://" + c.ShopDomain
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrShopifyConfigInvalid, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrShopifyConfigInvalid, err)
	}
	return nil
}

// OrdersURL returns the orders collection endpoint for the configured version
func (c *ShopifyConfig) OrdersURL() string {
	return fmt.Sprintf("%s/admin/api/%s/orders.json", c.APIBaseURL, c.APIVersion)
}

// normalizeShopDomain strips a scheme and trailing slashes from domain
func normalizeShopDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}
