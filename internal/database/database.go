package database

import (
	"log"
	"os"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// pendingRequestIndex guards the at-most-one-pending rule at the database.
// AutoMigrate cannot build it: the index must coalesce the nullable
// interest_id, because Postgres treats NULLs as distinct and a plain unique
// index would admit two racing interest-less requests for the same pair.
const pendingRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_request_key
ON connection_requests (sender_id, receiver_id, kind, COALESCE(interest_id, 0))
WHERE status = 'pending' AND deleted_at IS NULL`

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true, // surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// Run migrations
	err = DB.AutoMigrate(
		&models.User{},
		&models.Interest{},
		&models.ConnectionRequest{},
		&models.Connection{},
		&models.Circle{},
		&models.CircleMembership{},
		&models.Habit{},
		&models.HabitEntry{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err = DB.Exec(pendingRequestIndex).Error; err != nil {
		log.Fatalf("Failed to create pending request index: %v", err)
	}

	log.Println("Database migrated successfully.")
}
