package httpserver

import (
	"log"

	statsrepo "russo-backend/internal/repository/stats"
	widgetrepo "russo-backend/internal/repository/widget"
	cartsvc "russo-backend/internal/service/cart"
	catalogsvc "russo-backend/internal/service/catalog"
	identitysvc "russo-backend/internal/service/identity"
	ordersvc "russo-backend/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services and repositories handlers depend on.
type Deps struct {
	IdentitySvc *identitysvc.Service
	CatalogSvc  *catalogsvc.Service
	CartSvc     *cartsvc.Service
	OrderSvc    *ordersvc.Service
	WidgetRepo  widgetrepo.Repository
	StatsRepo   statsrepo.Repository
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/register", registerHandler(deps.IdentitySvc, logger))
	router.POST("/auth/verify", verifyHandler(deps.IdentitySvc, logger))
	router.POST("/auth/login", loginHandler(deps.IdentitySvc, logger))
	router.POST("/auth/resend", resendHandler(deps.IdentitySvc, logger))

	router.GET("/products", listProductsHandler(deps.CatalogSvc, logger))
	router.GET("/products/search", searchProductsHandler(deps.CatalogSvc, logger))
	router.GET("/products/:productId", getProductHandler(deps.CatalogSvc, logger))
	router.GET("/categories", categoriesHandler(deps.CatalogSvc, logger))
	router.GET("/widgets", listWidgetsHandler(deps.WidgetRepo, logger))

	authed := router.Group("/", authMiddleware(deps.IdentitySvc))
	{
		authed.GET("/me", meHandler())
		authed.PUT("/me/preferences", preferencesHandler(deps.IdentitySvc, logger))

		authed.GET("/cart", getCartHandler(deps.CartSvc, logger))
		authed.POST("/cart/add", addCartItemHandler(deps.CartSvc, logger))
		authed.PUT("/cart/update/:itemId", updateCartItemHandler(deps.CartSvc, logger))
		authed.DELETE("/cart/remove/:itemId", removeCartItemHandler(deps.CartSvc, logger))
		authed.DELETE("/cart/clear", clearCartHandler(deps.CartSvc, logger))

		authed.POST("/orders/create", createOrderHandler(deps.OrderSvc, logger))
		authed.GET("/orders", listOrdersHandler(deps.OrderSvc, logger))
		authed.GET("/orders/:orderId", getOrderHandler(deps.OrderSvc, logger))

		admin := authed.Group("/", adminMiddleware())
		{
			admin.PUT("/orders/:orderId/status", updateOrderStatusHandler(deps.OrderSvc, logger))
			admin.POST("/admin/products", createProductHandler(deps.CatalogSvc, logger))
			admin.PUT("/admin/products/:productId/model", attachModelHandler(deps.CatalogSvc, logger))
			admin.GET("/admin/dashboard", dashboardHandler(deps.StatsRepo, logger))
			admin.POST("/admin/widgets", createWidgetHandler(deps.WidgetRepo, logger))
			admin.PUT("/admin/widgets/:widgetId", updateWidgetHandler(deps.WidgetRepo, logger))
			admin.DELETE("/admin/widgets/:widgetId", deleteWidgetHandler(deps.WidgetRepo, logger))
		}
	}

	return router
}
