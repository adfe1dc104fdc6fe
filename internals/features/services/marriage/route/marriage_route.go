// file: internals/features/services/marriage/route/marriage_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "gerejaku_backend/internals/features/services/marriage/controller"
	"gerejaku_backend/internals/mailer"
)

func MarriageRoutes(api fiber.Router, db *gorm.DB, n mailer.Notifier) {
	ctl := controller.NewMarriageController(db, n)

	grp := api.Group("/marriages")
	grp.Get("/", ctl.List)
	grp.Get("/export/excel", ctl.ExportExcel)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
