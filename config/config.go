package config

import (
	"os"

	"restaurant-orders-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs auth tokens — read from env or fallback
var JWTSecret []byte

type Config struct {
	Port   string
	DBPath string
	IsProd bool
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment (and .env if present)
func Load() *Config {
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_orders_super_secret_2026"))
	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DATABASE_PATH", "restaurant_orders.db"),
		IsProd: os.Getenv("GIN_MODE") == "release",
	}
}

// InitDB opens the SQLite database, migrates all models and seeds the
// three role groups.
func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	for _, name := range models.AllGroups {
		if err := DB.FirstOrCreate(&models.Group{}, models.Group{Name: name}).Error; err != nil {
			logrus.Fatalf("failed to seed group %q: %v", name, err)
		}
	}

	logrus.Info("database connected and migrated")
}
