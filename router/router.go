package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dugubuyan/ai-receiption/controllers"
	"github.com/dugubuyan/ai-receiption/middlewares"
	"github.com/dugubuyan/ai-receiption/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	configCtrl := controllers.NewConfigController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	userCtrl := controllers.NewUserController(db)
	chatCtrl := controllers.NewChatController(services.GetChatService())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	configs := r.Group("/api/configs")
	{
		configs.GET("", configCtrl.GetAllConfigs)
		configs.GET("/:key", configCtrl.GetConfigByKey)
		configs.PUT("/:key", configCtrl.UpsertConfig)
		configs.DELETE("/:key", configCtrl.DeleteConfig)
	}

	menu := r.Group("/api/menu")
	{
		menu.GET("", menuCtrl.GetAllMenuItems)
		menu.POST("", menuCtrl.CreateMenuItem)
		menu.POST("/upload", menuCtrl.UploadMenu)
		menu.GET("/:id", menuCtrl.GetMenuItemByID)
		menu.PUT("/:id", menuCtrl.UpdateMenuItem)
		menu.DELETE("/:id", menuCtrl.DeleteMenuItem)
	}

	orders := r.Group("/api/orders")
	{
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("", orderCtrl.GetAllOrders)
		// registered before /:id so "stats" is not parsed as an order id
		orders.GET("/stats/history", orderCtrl.GetOrderStats)
		orders.GET("/:id", orderCtrl.GetOrderByID)
		orders.PUT("/:id/status", orderCtrl.UpdateOrderStatus)
	}

	auth := r.Group("/api/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	users := r.Group("/api/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/profile", userCtrl.GetProfile)
		users.GET("", userCtrl.GetAllUsers)
	}

	r.POST("/chat", chatCtrl.Chat)
	r.POST("/chatText", chatCtrl.ChatText)

	serveAdminUI(r)

	return r
}

// serveAdminUI serves the built admin SPA when a client/dist bundle is
// present next to the binary, falling back to index.html for SPA routes.
func serveAdminUI(r *gin.Engine) {
	workDir, _ := os.Getwd()
	distPath := filepath.Join(workDir, "client", "dist")

	if _, err := os.Stat(distPath); os.IsNotExist(err) {
		return
	}

	r.Static("/assets", filepath.Join(distPath, "assets"))
	r.StaticFile("/", filepath.Join(distPath, "index.html"))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(filepath.Join(distPath, "index.html"))
	})
}
