package rest

import (
	"net/http"
	"time"

	"campuseats-be/internal/canteen"
	"campuseats-be/internal/config"
	"campuseats-be/internal/logger"
	"campuseats-be/internal/menu"
	"campuseats-be/internal/middleware"
	"campuseats-be/internal/order"
	"campuseats-be/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Users    user.Service
	Canteens canteen.Service
	Menus    menu.Service
	Orders   order.Service
}

// NewRouter wires every route group with its middleware chain. Rate
// limiting sits inside the groups so authenticated traffic is bucketed
// per user rather than per IP.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(svcs.Users)
	canteenHandler := NewCanteenHandler(svcs.Canteens, svcs.Menus)
	orderHandler := NewOrderHandler(svcs.Orders)
	managerHandler := NewManagerHandler(svcs.Canteens, svcs.Menus, svcs.Orders)
	adminHandler := NewAdminHandler(svcs.Canteens, svcs.Users, svcs.Orders)

	api := r.Group("/api")

	auth := api.Group("/auth", middleware.RateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.RequireAuth(), authHandler.Me)
	}

	public := api.Group("", middleware.RateLimit())
	{
		public.GET("/canteens", canteenHandler.List)
		public.GET("/canteens/:id", canteenHandler.Get)
		public.GET("/canteens/:id/menu", canteenHandler.Menu)
	}

	student := api.Group("/orders",
		middleware.RequireAuth(),
		middleware.RequireRole(user.RoleStudent),
		middleware.RateLimit(),
	)
	{
		student.POST("", orderHandler.Create)
		student.GET("", orderHandler.History)
		student.GET("/:id", orderHandler.Detail)
	}

	manager := api.Group("/manager",
		middleware.RequireAuth(),
		middleware.RequireRole(user.RoleManager),
		middleware.RateLimit(),
	)
	{
		manager.GET("/canteen", managerHandler.Canteen)
		manager.PUT("/canteen", managerHandler.UpdateCanteen)

		manager.GET("/menu", managerHandler.Menu)
		manager.POST("/menu", managerHandler.CreateMenuItem)
		manager.PUT("/menu/:id", managerHandler.UpdateMenuItem)
		manager.DELETE("/menu/:id", managerHandler.DeleteMenuItem)

		manager.GET("/orders", managerHandler.Orders)
		manager.GET("/orders/:id", managerHandler.OrderDetail)
		manager.PATCH("/orders/:id/status", managerHandler.UpdateOrderStatus)

		manager.GET("/stats", managerHandler.Stats)
	}

	admin := api.Group("/admin",
		middleware.RequireAuth(),
		middleware.RequireRole(user.RoleAdmin),
		middleware.RateLimit(),
	)
	{
		admin.POST("/canteens", adminHandler.CreateCanteen)
		admin.POST("/users/manager", adminHandler.CreateManager)
		admin.GET("/stats", adminHandler.Stats)
	}

	return r
}
