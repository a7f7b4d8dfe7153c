package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/shopfusion/backend/internal/handlers"
	"github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/models"
)

type Deps struct {
	Auth      *auth.Middleware
	JWTSecret []byte

	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	AdminHandler    *handlers.AdminHandler
	ReviewHandler   *handlers.ReviewHandler
	SearchHandler   *handlers.SearchHandler
	SettingsHandler *handlers.SettingsHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	jwt := auth.JWT(d.JWTSecret)
	login := []echo.MiddlewareFunc{jwt, d.Auth.LoadUser}

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.GET("/search", d.SearchHandler.Handler)
	v1.GET("/settings", d.SettingsHandler.GetSettings)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts, d.Auth.OptionalUser)
	products.GET("/:id", d.ProductHandler.GetProduct, d.Auth.OptionalUser)
	products.GET("/:id/reviews", d.ReviewHandler.ListReviews)
	products.POST("/:id/reviews", d.ReviewHandler.CreateReview, login...)

	seller := []echo.MiddlewareFunc{jwt, d.Auth.LoadUser, auth.RequireRole(models.RoleSeller, models.RoleAdmin)}
	products.POST("", d.ProductHandler.CreateProduct, seller...)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, seller...)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, seller...)

	cart := v1.Group("/cart", login...)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items/:id", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:id", d.CartHandler.DeleteItem)

	orders := v1.Group("/orders", login...)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/disputes", d.OrderHandler.OpenDispute)

	admin := v1.Group("/admin", jwt, d.Auth.LoadUser, auth.RequireRole(models.RoleAdmin))
	admin.GET("/products/moderation", d.AdminHandler.ListModerationQueue)
	admin.PATCH("/products/moderation/:moderationId", d.AdminHandler.ReviewProduct)
	admin.PATCH("/disputes/:id", d.AdminHandler.ResolveDispute)
}
