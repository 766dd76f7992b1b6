package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	_ "bookstore/internal/docs"
	"bookstore/internal/handlers"
	"bookstore/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the HTTP handlers mounted by the server.
type Handlers struct {
	Orders     *handlers.OrderHandlers
	Products   *handlers.ProductHandlers
	Users      *handlers.UserHandlers
	Cart       *handlers.CartHandlers
	Auth       *handlers.AuthHandlers
	Statistics *handlers.StatisticsHandlers
	Keywords   *handlers.SearchKeywordHandlers
	Categories *handlers.CategoryHandlers
	Comments   *handlers.CommentHandlers
	Ratings    *handlers.RatingHandlers
	Health     *handlers.HealthHandlers
}

// Server wraps the echo instance serving the bookstore API.
type Server struct {
	echo *echo.Echo
	addr string
}

// New builds the echo instance with global middleware and every route.
func New(addr string, h *Handlers, jwt *middleware.JWTMiddleware) *Server {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	if h.Health != nil {
		e.GET("/health", h.Health.HealthCheck)
		e.GET("/health/ready", h.Health.ReadinessCheck)
		e.GET("/health/live", h.Health.LivenessCheck)
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	versions := middleware.NewVersionMiddleware()
	v1 := versions.VersionRoute(e, versions.GetCurrentVersion())
	registerRoutes(v1, h, jwt.Authenticate())

	return &Server{echo: e, addr: addr}
}

func registerRoutes(api *echo.Group, h *Handlers, authenticate echo.MiddlewareFunc) {
	admin := middleware.RequireAdmin()

	// Authentication routes
	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout, authenticate)
	auth.GET("/me", h.Auth.Me, authenticate)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// Orders. Customers reach only their own orders; the handlers check ownership.
	orders := api.Group("/orders", authenticate)
	orders.GET("/get-list", h.Orders.GetList, admin)
	orders.GET("/get-lists", h.Orders.GetLists, admin)
	orders.GET("/get-list-by-field", h.Orders.GetListByField, admin)
	orders.GET("/order-detail/:id", h.Orders.GetDetail)
	orders.GET("/receipt/:id", h.Orders.Receipt)
	orders.POST("/create", h.Orders.CreateOrder)
	orders.PUT("/cancel/:id", h.Orders.CancelOrder)
	orders.PUT("/update/:id", h.Orders.UpdateOrder, admin)
	orders.PUT("/payment/:id", h.Orders.UpdatePayment, admin)
	orders.DELETE("/delete/:id", h.Orders.DeleteOrder, admin)

	// Product catalogue is public to read
	products := api.Group("/products")
	products.GET("/get-list", h.Products.GetList)
	products.GET("/get-lists", h.Products.GetLists)
	products.GET("/product-detail/:id", h.Products.GetDetail)
	products.GET("/search", h.Products.Search)
	products.GET("/get-new-products", h.Products.GetNewProducts)
	products.GET("/get-sale-products", h.Products.GetSaleProducts)
	products.GET("/get-products-by-category", h.Products.GetByCategory)
	products.POST("/create", h.Products.CreateProduct, authenticate, admin)
	products.PUT("/update/:id", h.Products.UpdateProduct, authenticate, admin)
	products.PUT("/toggle-status/:id", h.Products.ToggleStatus, authenticate, admin)
	products.PUT("/toggle-trash/:id", h.Products.ToggleTrash, authenticate, admin)
	products.DELETE("/delete/:id", h.Products.DeleteProduct, authenticate, admin)
	products.POST("/upload-image/:id", h.Products.UploadImage, authenticate, admin)

	categories := api.Group("/categories")
	categories.GET("/get-list", h.Categories.GetList)
	categories.GET("/get-lists", h.Categories.GetLists)
	categories.GET("/get-list-by-field", h.Categories.GetListByField)
	categories.GET("/category-detail/:id", h.Categories.GetDetail)
	categories.GET("/status/:status", h.Categories.GetByStatus)
	categories.GET("/trash/:trash", h.Categories.GetByTrash)
	categories.POST("/create", h.Categories.CreateCategory, authenticate, admin)
	categories.PUT("/update/:id", h.Categories.UpdateCategory, authenticate, admin)
	categories.PUT("/update-status/:id", h.Categories.UpdateStatus, authenticate, admin)
	categories.PUT("/update-trash/:id", h.Categories.UpdateTrash, authenticate, admin)
	categories.DELETE("/delete/:id", h.Categories.DeleteCategory, authenticate, admin)
	categories.POST("/upload-illustration/:id", h.Categories.UploadIllustration, authenticate, admin)

	// Comments and ratings are public to read; the services check authorship on writes.
	comments := api.Group("/comments")
	comments.GET("/get-all", h.Comments.GetAll)
	comments.GET("/detail/:id", h.Comments.GetDetail)
	comments.GET("/list", h.Comments.GetList)
	comments.GET("/list-by-field", h.Comments.GetListByField)
	comments.GET("/list-by-user-book", h.Comments.GetListByUserAndBook)
	comments.POST("/create", h.Comments.CreateComment, authenticate)
	comments.PUT("/update/:id", h.Comments.UpdateComment, authenticate)
	comments.DELETE("/delete/:id", h.Comments.DeleteComment, authenticate)

	ratings := api.Group("/ratings")
	ratings.GET("/list/:productId", h.Ratings.ListByProduct)
	ratings.GET("/summary/:productId", h.Ratings.Summary)
	ratings.POST("/create", h.Ratings.CreateRating, authenticate)
	ratings.DELETE("/delete/:id", h.Ratings.DeleteRating, authenticate)

	cart := api.Group("/cart", authenticate)
	cart.GET("/:userId", h.Cart.GetCart)
	cart.POST("/add", h.Cart.AddItem)
	cart.PUT("/update", h.Cart.UpdateItem)
	cart.DELETE("/remove", h.Cart.RemoveItem)
	cart.DELETE("/clear/:userId", h.Cart.Clear)

	self := middleware.RequireSelfOrAdmin("id")
	users := api.Group("/users")
	users.POST("/create", h.Users.CreateUser)
	users.GET("/get-list", h.Users.GetList, authenticate, admin)
	users.GET("/get-lists", h.Users.GetLists, authenticate, admin)
	users.GET("/user-detail/:id", h.Users.GetDetail, authenticate, self)
	users.PUT("/update/:id", h.Users.UpdateUser, authenticate, self)
	users.DELETE("/delete/:id", h.Users.DeleteUser, authenticate, admin)
	users.POST("/upload-avatar/:id", h.Users.UploadAvatar, authenticate, self)

	stats := api.Group("/statistics", authenticate, admin)
	stats.GET("/total-products-sold", h.Statistics.ProductsSold)
	stats.GET("/order-count-by-status", h.Statistics.OrderCountByStatus)
	stats.GET("/best-selling", h.Statistics.BestSelling)
	stats.GET("/top-keywords", h.Statistics.TopKeywords)
	stats.GET("/monthly-revenue", h.Statistics.MonthlyRevenue)
	stats.GET("/daily-revenue", h.Statistics.DailyRevenue)

	keywords := api.Group("/search/keywords", authenticate, admin)
	keywords.GET("", h.Keywords.GetList)
	keywords.DELETE("/:id", h.Keywords.Delete)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Bookstore API listening on %s", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests for at most timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
