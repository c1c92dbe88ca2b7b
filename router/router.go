package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contactless-ordering/controllers"
	"contactless-ordering/middlewares"
	"contactless-ordering/models"
)

// SetupRouter wires the API. The transition graph is passed through to
// the order controller; nil means any enum value is accepted as a next
// status.
func SetupRouter(db *gorm.DB, transitions models.OrderTransitions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	// Registered before any route: gin middleware added with Use after
	// routes are wired never runs for them.
	rateLimiter := middlewares.NewRateLimiter(100, 60)
	r.Use(rateLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, transitions)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      AUTH
	// ----------------------------------------------------------------
	auth := api.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}
	api.GET("/auth/me", middlewares.AuthMiddleware(), userCtrl.GetMe)

	// ----------------------------------------------------------------
	//                      USERS (admin)
	// ----------------------------------------------------------------
	users := api.Group("/users")
	users.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin))
	{
		users.GET("", userCtrl.GetAllUsers)
		users.POST("", userCtrl.CreateUser)
		users.GET("/:user_id", userCtrl.GetUserByID)
		users.PUT("/:user_id", userCtrl.UpdateUser)
		users.DELETE("/:user_id", userCtrl.DeleteUser)
	}

	// ----------------------------------------------------------------
	//                      MENU
	// ----------------------------------------------------------------
	menu := api.Group("/menu")
	{
		menu.GET("", menuCtrl.GetAllMenuItems)
		menu.GET("/:menu_id", menuCtrl.GetMenuItemByID)

		menu.POST("", middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleStaff, models.RoleAdmin),
			menuCtrl.CreateMenuItem)
		menu.PUT("/:menu_id", middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleStaff, models.RoleAdmin),
			menuCtrl.UpdateMenuItem)
		menu.DELETE("/:menu_id", middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			menuCtrl.DeleteMenuItem)

		menu.POST("/:menu_id/rate", middlewares.AuthMiddleware(), menuCtrl.RateMenuItem)
	}

	// ----------------------------------------------------------------
	//                      ORDERS
	// ----------------------------------------------------------------
	orders := api.Group("/orders")
	orders.Use(middlewares.AuthMiddleware())
	{
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("/myorders", orderCtrl.GetMyOrders)
		orders.GET("/:order_id", orderCtrl.GetOrderByID)
		orders.PUT("/:order_id", orderCtrl.UpdateOrder)

		orders.GET("", middlewares.RequireRoles(models.RoleStaff, models.RoleAdmin),
			orderCtrl.GetAllOrders)
		orders.PUT("/:order_id/status", middlewares.RequireRoles(models.RoleStaff, models.RoleAdmin),
			orderCtrl.UpdateOrderStatus)
		orders.DELETE("/:order_id", middlewares.RequireRoles(models.RoleAdmin),
			orderCtrl.DeleteOrder)
	}

	return r
}
