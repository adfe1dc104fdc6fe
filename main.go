package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"gerejaku_backend/internals/configs"
	database "gerejaku_backend/internals/databases"
	"gerejaku_backend/internals/mailer"
	middlewares "gerejaku_backend/internals/middlewares"
	routes "gerejaku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// ✉️ SMTP notifier (fallback ke log bila belum dikonfigurasi)
	notifier := mailer.New(configs.LoadMailConfig())

	// ❤️ Health check (anti-cold start)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, notifier)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
