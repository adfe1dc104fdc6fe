// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	formRoute "gerejaku_backend/internals/features/forms/route"
	memberRoute "gerejaku_backend/internals/features/members/route"
	baptismRoute "gerejaku_backend/internals/features/services/baptism/route"
	burialRoute "gerejaku_backend/internals/features/services/burial/route"
	dedicationRoute "gerejaku_backend/internals/features/services/dedication/route"
	marriageRoute "gerejaku_backend/internals/features/services/marriage/route"
	"gerejaku_backend/internals/mailer"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, n mailer.Notifier) {
	startTime = time.Now()

	api := app.Group("/api")

	// ===================== MEMBERS =====================
	log.Println("[INFO] Setting up MemberRoutes...")
	memberRoute.MemberRoutes(api, db)

	// ===================== SERVICES =====================
	log.Println("[INFO] Setting up BaptismRoutes...")
	baptismRoute.BaptismRoutes(api, db, n)

	log.Println("[INFO] Setting up MarriageRoutes...")
	marriageRoute.MarriageRoutes(api, db, n)

	log.Println("[INFO] Setting up BurialRoutes...")
	burialRoute.BurialRoutes(api, db, n)

	log.Println("[INFO] Setting up DedicationRoutes...")
	dedicationRoute.DedicationRoutes(api, db, n)

	// ===================== FORMS =====================
	log.Println("[INFO] Setting up FormRoutes...")
	formRoute.FormRoutes(api, db, n)

	// ===================== UTILS =====================
	app.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"uptime": time.Since(startTime).String()})
	})
}
