package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gerejaku_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=gerejaku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // plays nice with PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// light ping so the pool is warm before the first real request
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
