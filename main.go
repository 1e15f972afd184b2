package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"productstore/internal/handlers"
	"productstore/internal/middleware"
	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/internal/services"
	"productstore/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "products.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("STATIC_DIR", "./static")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repository ---
	productRepo, err := newProductRepository()
	if err != nil {
		log.Fatalf("Failed to initialize product store: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// When no broker URL is configured the service runs without lifecycle
	// events rather than refusing to start.
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	// --- Initialize Service and Handler ---
	productService := services.NewProductService(productRepo, publisher)
	productHandler := handlers.NewProductHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(middleware.RequestID())
	app.Use(logger.New())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  fiber.StatusOK,
			"message": "OK",
		})
	})

	// --- Static Admin Page ---
	app.Static("/", viper.GetString("STATIC_DIR"))

	// --- API Routes ---
	productHandler.RegisterRoutes(app)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newProductRepository builds the product store selected by DB_DRIVER:
// "sqlite" (default), "postgres", or "memory".
func newProductRepository() (repositories.ProductRepository, error) {
	driver := viper.GetString("DB_DRIVER")
	dsn := viper.GetString("DB_DSN")

	var dialector gorm.Dialector
	switch driver {
	case "memory":
		return repositories.NewMemoryProductRepository(), nil
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, err
	}
	return repositories.NewGORMProductRepository(db), nil
}
