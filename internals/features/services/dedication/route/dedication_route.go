// file: internals/features/services/dedication/route/dedication_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "gerejaku_backend/internals/features/services/dedication/controller"
	"gerejaku_backend/internals/mailer"
)

func DedicationRoutes(api fiber.Router, db *gorm.DB, n mailer.Notifier) {
	ctl := controller.NewDedicationController(db, n)

	grp := api.Group("/dedications")
	grp.Get("/", ctl.List)
	grp.Get("/export/excel", ctl.ExportExcel)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
