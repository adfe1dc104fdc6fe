package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AppName     string
	AdminEmail  string
	FrontendURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using ENV from system")
		} else {
			log.Println("✅ .env file loaded!")
		}
	} else {
		log.Println("🚀 Running in Railway, using ENV from system")
	}

	AppName = GetEnv("APP_NAME", "GerejaKu")
	AdminEmail = GetEnv("ADMIN_EMAIL")
	FrontendURL = GetEnv("FRONTEND_URL")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// MAIL CONFIG
// =======================
// MailConfig is built once from ENV and handed to the notifier at construction
// time, so no package keeps a mutable mail client as module state.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func LoadMailConfig() MailConfig {
	port := 587
	if v := GetEnv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}
	return MailConfig{
		Host:     GetEnv("SMTP_HOST"),
		Port:     port,
		Username: GetEnv("SMTP_USER"),
		Password: GetEnv("SMTP_PASS"),
		From:     GetEnv("SMTP_FROM", GetEnv("SMTP_USER")),
		FromName: GetEnv("SMTP_FROM_NAME", AppName),
	}
}

// Configured reports whether SMTP can actually be dialed.
func (m MailConfig) Configured() bool {
	return m.Host != "" && m.From != ""
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
