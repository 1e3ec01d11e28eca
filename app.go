package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/config"
	"github.com/tebele-dev/tailor-made-couture/controllers"
	"github.com/tebele-dev/tailor-made-couture/logger"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	awspkg "github.com/tebele-dev/tailor-made-couture/pkg/aws"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"github.com/tebele-dev/tailor-made-couture/routes"
	"github.com/tebele-dev/tailor-made-couture/services"
	"go.uber.org/zap"
)

const serviceName = "storefront"

// infrastructure is everything main connects before the services are built.
// Nil AWS clients disable the matching feature.
type infrastructure struct {
	store     repository.KVStore
	orders    repository.OrderRepository
	publisher awspkg.SNSPublisher
	metrics   *awspkg.MetricsClient
}

func (i infrastructure) recorder() awspkg.MetricsRecorder {
	if i.metrics == nil {
		return nil
	}
	return i.metrics
}

// newRouter wires services, controllers and middleware into one engine.
func newRouter(cfg *config.Config, log *zap.Logger, infra infrastructure) (*gin.Engine, error) {
	hub := services.NewNotificationHub(log)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	auth, err := services.NewAuthService(infra.store, tokens, cfg.SessionTTL, infra.recorder(), log)
	if err != nil {
		return nil, err
	}

	catalog := services.NewCatalogService(log)
	cart := services.NewCartService(infra.store, cfg.CartTTL, hub, log)
	addressBook := services.NewAddressBookService(infra.store, hub, log)
	checkout := services.NewCheckoutService(cart, addressBook, infra.orders, infra.publisher, infra.recorder(), hub,
		services.CheckoutConfig{
			ShippingFlatRate: cfg.ShippingFlatRate,
			TaxRate:          cfg.TaxRate,
			OrderTopicARN:    cfg.OrderSNSTopicARN,
			SessionTTL:       cfg.CheckoutIdleTTL,
		}, log)

	h := routes.Controllers{
		Auth:          controllers.NewAuthController(auth, cfg.TokenTTL, cfg.Env == "production"),
		Catalog:       controllers.NewCatalogController(catalog, services.NewDesignService(catalog, log)),
		Cart:          controllers.NewCartController(cart, catalog),
		Checkout:      controllers.NewCheckoutController(checkout),
		AddressBook:   controllers.NewAddressBookController(addressBook),
		Notifications: controllers.NewNotificationController(hub),
		Consent:       controllers.NewConsentController(services.NewConsentService(log)),
		Inventory:     controllers.NewInventoryController(services.NewInventoryService(catalog, cfg.LowStockThreshold, infra.recorder(), log)),
		Fabrics:       controllers.NewFabricController(services.NewFabricService(catalog, log)),
		AdminDesign:   controllers.NewAdminDesignController(services.NewAdminDesignService(catalog, hub, log)),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.Metrics(infra.metrics, serviceName))
	r.Use(middleware.Identity(auth))
	r.Use(apperrors.ErrorMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})
	routes.Register(r, h)
	return r, nil
}
