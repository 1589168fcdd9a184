package config

import (
	"fmt"
	"log"
	"os"

	"github.com/farouk24967/NutriVision/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment")
	}
}

// InitStore selects the key-value persistence backend from STORAGE_DRIVER:
// "postgres" (default), "redis" or "memory".
func InitStore() storage.Store {
	switch os.Getenv("STORAGE_DRIVER") {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return storage.NewRedisStore(client)

	case "memory":
		return storage.NewMemoryStore()

	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		if err := db.AutoMigrate(&storage.Record{}); err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
		return storage.NewPostgresStore(db)
	}
}
