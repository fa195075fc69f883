package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/internal/config"
	"github.com/tavola-dev/tavola/internal/handlers"
	"github.com/tavola-dev/tavola/internal/services"
	"github.com/tavola-dev/tavola/internal/types"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	handlers.UploadDir = cfg.UploadDir
	handlers.StrictOrderStatus = cfg.StrictOrderStatus
	handlers.Notifier = &services.Notifier{
		DiscordWebhook: cfg.DiscordWebhook,
		SlackWebhook:   cfg.SlackWebhook,
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static(types.UploadsPrefix, cfg.UploadDir)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Tavola restaurant API is running")
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/change-password", handlers.ChangePassword)

		users := api.Group("/users")
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:email", handlers.GetUser)
			users.DELETE("/:email", handlers.DeleteUser)
		}

		dishes := api.Group("/dishes")
		{
			dishes.GET("", handlers.ListDishes)
			dishes.POST("", handlers.CreateDish)
			dishes.PUT("/:id", handlers.UpdateDish)
			dishes.DELETE("/:id", handlers.DeleteDish)
		}

		cart := api.Group("/cart")
		{
			cart.GET("/:email", handlers.GetCart)
			cart.POST("/:email", handlers.AddCartItem)
			cart.DELETE("/:email", handlers.ClearCart)
			cart.DELETE("/:email/:dishId", handlers.RemoveCartItem)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.ListOrders)
			orders.GET("/:email", handlers.ListUserOrders)
			orders.PUT("/:id/status", handlers.UpdateOrderStatus)
		}

		export := api.Group("/export")
		{
			export.GET("/dishes", handlers.ExportDishes)
			export.GET("/orders", handlers.ExportOrders)
		}

		api.GET("/ws/orders/:email", handlers.OrderUpdatesSocket)
	}

	return r
}
