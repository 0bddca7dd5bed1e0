package database

import (
	"fmt"
	"os"

	"ticket-booking/logger"
	"ticket-booking/models/booking"
	"ticket-booking/models/log"
	"ticket-booking/models/payment_proof"
	"ticket-booking/models/record"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in stages
func autoMigrate() error {
	// Stage 1: The key/value record store backing the booking collections
	stage1Models := []interface{}{
		&record.Record{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Audit and operational tables
	stage2Models := []interface{}{
		&booking.FlowEvent{},
		&payment_proof.ProofRequest{},
		&log.Log{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Flow event indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_booking_flow_events_session_id ON booking_flow_events(session_id)").Error; err != nil {
		return fmt.Errorf("failed to create flow event session_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_booking_flow_events_booking_id ON booking_flow_events(booking_id)").Error; err != nil {
		return fmt.Errorf("failed to create flow event booking_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_booking_flow_events_event_type ON booking_flow_events(event_type)").Error; err != nil {
		return fmt.Errorf("failed to create flow event event_type index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_booking_flow_events_created_at ON booking_flow_events(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create flow event created_at index: %w", err)
	}

	// Payment proof indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_payment_proof_requests_booking_id ON payment_proof_requests(booking_id)").Error; err != nil {
		return fmt.Errorf("failed to create payment proof booking_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_payment_proof_requests_status ON payment_proof_requests(status)").Error; err != nil {
		return fmt.Errorf("failed to create payment proof status index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
