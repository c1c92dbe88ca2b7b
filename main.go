package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"contactless-ordering/config"
	"contactless-ordering/models"
	"contactless-ordering/router"
	"contactless-ordering/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Staff tooling moves orders along the default graph; set
	// ORDER_TRANSITIONS=any to restore the unchecked behavior where any
	// enum value is accepted as the next status.
	transitions := models.DefaultOrderTransitions
	if os.Getenv("ORDER_TRANSITIONS") == "any" {
		transitions = nil
	}

	r := router.SetupRouter(db, transitions)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.MenuRating{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEvent{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
