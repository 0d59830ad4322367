package db

import (
	"log"
	"os"
	"strings"

	"carriertalk/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the database named by DATABASE_URL (postgres:// or sqlite://,
// defaulting to a local sqlite file), runs migrations and seeds carriers.
func Init() (*gorm.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "sqlite://carriertalk.db"
		log.Println("DATABASE_URL not set, defaulting to 'sqlite://carriertalk.db'")
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dbURL, "postgres://"):
		dialector = postgres.Open(strings.TrimPrefix(dbURL, "postgres://"))
	case strings.HasPrefix(dbURL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(dbURL, "sqlite://"))
	default:
		log.Fatalf("Invalid DATABASE_URL prefix, must start with 'postgres://' or 'sqlite://'")
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	log.Println("Database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	seedCarriers(conn)
	return conn, nil
}

// Migrate runs the schema migrations for all entities.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Carrier{},
		&models.RateSubmission{},
		&models.InsuranceInfo{},
		&models.Comment{},
		&models.Vote{},
		&models.Notification{},
		&models.ReputationLog{},
	)
}

func seedCarriers(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Carrier{}).Count(&count)
	if count > 0 {
		return
	}

	carriers := []models.Carrier{
		{Name: "Bluegrass Freight Lines", DOTNumber: "1204567", MCNumber: "458812", HomeState: "KY"},
		{Name: "High Plains Carriers", DOTNumber: "2310988", MCNumber: "771203", HomeState: "NE"},
		{Name: "Gulf Coast Transport", DOTNumber: "3145021", MCNumber: "902114", HomeState: "TX"},
	}
	for _, carrier := range carriers {
		if err := conn.Create(&carrier).Error; err != nil {
			log.Printf("Failed to seed carrier %s: %v", carrier.Name, err)
		}
	}
	log.Println("Initial carriers created")
}
