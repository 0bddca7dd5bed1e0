package main

import (
	"fmt"
	"os"
	"time"

	"ticket-booking/database"
	"ticket-booking/logger"
	"ticket-booking/routes"
	"ticket-booking/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       50 * 1024 * 1024, // 50MB body limit
	})
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
		fmt.Println("Error loading .env file", env)
	}
	logger.Success("Server is running on ip: " + os.Getenv("APP_HOST") + " port: " + os.Getenv("APP_PORT") +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	// The record store is file-backed unless a database is configured.
	// With a database, the collections live in the records table and the
	// audit/log tables are available too.
	var db *gorm.DB
	var store storage.Store

	if os.Getenv("DB_HOST") != "" {
		var err error
		db, err = database.InitDB()
		if err != nil {
			logger.Error("Failed to connect to the database", err)
			return
		}
		store = storage.NewGormStore(db)
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		fileStore, err := storage.NewFileStore(dataDir)
		if err != nil {
			logger.Error("Failed to initialize file store", err)
			return
		}
		store = fileStore
		logger.Info("No database configured, using file store in " + dataDir)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, store)

	app_host := os.Getenv("APP_HOST")
	app_port := os.Getenv("APP_PORT")
	app.Listen(app_host + ":" + app_port)
}
