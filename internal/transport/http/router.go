package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/yschan/shop-backend/internal/handlers"
	"github.com/yschan/shop-backend/internal/handlers/cart"
	"github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/upload"
)

type Deps struct {
	DB             *gorm.DB
	AuthGate       *auth.Gate
	UploadGate     *upload.Gate
	UserHandler    *handlers.UserHandler
	ProductHandler *handlers.ProductHandler
	HomeHandler    *handlers.HomeHandler
	CartHandler    *cart.CartHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	login := d.AuthGate.Require
	registered := d.AuthGate.RequireRegistered
	uploads := d.UploadGate.Middleware

	users := e.Group("/users")
	users.POST("", d.UserHandler.Register, uploads)
	users.GET("", d.UserHandler.Profile, login)
	users.POST("/login", d.UserHandler.Login)
	users.DELETE("/logout", d.UserHandler.Logout, login)
	users.POST("/extend", d.UserHandler.Extend, registered)

	users.GET("/cart", d.CartHandler.GetCart, login)
	users.POST("/cart", d.CartHandler.AddToCart, login)
	users.PATCH("/cart", d.CartHandler.EditCart, login)

	users.GET("/favorite", d.CartHandler.GetFavorites, login)
	users.POST("/favorite", d.CartHandler.AddFavorite, login)
	users.DELETE("/favorite", d.CartHandler.DeleteFavorite, login)

	users.POST("/checkout", d.CartHandler.Checkout, login)
	users.GET("/orders", d.CartHandler.GetOrders, login)
	users.GET("/orders/all", d.CartHandler.GetAllOrders, login)
	users.PATCH("/orders/:id", d.CartHandler.EditOrder, login)
	users.DELETE("/orders/:id", d.CartHandler.DeleteOrder, login)

	users.GET("/all", d.UserHandler.ListUsers, login)
	users.DELETE("/:id", d.UserHandler.DeleteUser, login)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/all", d.ProductHandler.GetAllProducts, login)
	products.GET("/query", d.ProductHandler.QueryProducts)
	products.GET("/cate", d.ProductHandler.GetProductsByCate)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, login, uploads)
	products.PATCH("/:id", d.ProductHandler.EditProduct, login, uploads)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, login)

	homes := e.Group("/homes")
	homes.GET("", d.HomeHandler.GetHomes)
	homes.GET("/:id", d.HomeHandler.GetHome)
	homes.POST("", d.HomeHandler.CreateHome, login, uploads)
	homes.PATCH("/:id", d.HomeHandler.EditHome, login, uploads)
	homes.DELETE("/:id", d.HomeHandler.DeleteHome, login)
}
