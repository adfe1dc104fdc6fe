// file: internals/features/forms/route/form_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "gerejaku_backend/internals/features/forms/controller"
	"gerejaku_backend/internals/mailer"
	"gerejaku_backend/internals/middlewares"
)

func FormRoutes(api fiber.Router, db *gorm.DB, n mailer.Notifier) {
	ctl := controller.NewFormController(db, n)

	grp := api.Group("/forms")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", middlewares.FormSubmitRateLimiter(), ctl.Create)
	grp.Put("/:id/review", ctl.Review)
	grp.Delete("/:id", ctl.Delete)
}
