package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront-api/internal/commerce"
	"storefront-api/internal/domain"
	cartsvc "storefront-api/internal/service/cart"
	checkoutsvc "storefront-api/internal/service/checkout"
)

// Deps carries the services the routes depend on. Interfaces are declared
// here so handler tests can stub them.
type Deps struct {
	CartSvc     cartService
	CheckoutSvc checkoutService
	CatalogSvc  catalogService
	OrderAPI    orderAPI
	Sessions    sessionService
}

type cartService interface {
	Get(ctx context.Context, sessionToken string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionToken string, in cartsvc.AddItemInput) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionToken string, productID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionToken string, productID int64) (*domain.Cart, error)
	Clear(ctx context.Context, sessionToken string) error
	Replace(ctx context.Context, sessionToken string, items []cartsvc.AddItemInput) (*domain.Cart, error)
}

type checkoutService interface {
	Submit(ctx context.Context, sessionToken string, in checkoutsvc.SubmitInput) (*checkoutsvc.SubmitResult, error)
	OptionsFor(ctx context.Context, customerID int64) *checkoutsvc.Options
}

type catalogService interface {
	Products(ctx context.Context, first int, after string) (*domain.ProductPage, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error)
}

type orderAPI interface {
	GetOrder(ctx context.Context, orderID int64) (*commerce.Order, error)
}

type sessionService interface {
	Issue() string
	Valid(token string) bool
	TTLSeconds() int
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	switch {
	case deps.CartSvc == nil:
		return nil, errors.New("cart service required")
	case deps.CheckoutSvc == nil:
		return nil, errors.New("checkout service required")
	case deps.CatalogSvc == nil:
		return nil, errors.New("catalog service required")
	case deps.OrderAPI == nil:
		return nil, errors.New("order api required")
	case deps.Sessions == nil:
		return nil, errors.New("session service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(sessionMiddleware(deps.Sessions))

	api.GET("/cart", getCartHandler(deps.CartSvc))
	api.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	api.PUT("/cart/items/:productId", updateCartItemHandler(deps.CartSvc))
	api.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
	api.DELETE("/cart", clearCartHandler(deps.CartSvc))
	api.PUT("/cart", replaceCartHandler(deps.CartSvc))

	api.GET("/checkout/options", checkoutOptionsHandler(deps.CheckoutSvc))
	api.POST("/checkout", submitCheckoutHandler(deps.CheckoutSvc))

	api.GET("/orders/:id", getOrderHandler(deps.OrderAPI))

	api.GET("/catalog/products", listProductsHandler(deps.CatalogSvc))
	api.GET("/catalog/products/:slug", getProductHandler(deps.CatalogSvc))

	return router, nil
}
