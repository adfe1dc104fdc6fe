// file: internals/features/services/baptism/route/baptism_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "gerejaku_backend/internals/features/services/baptism/controller"
	"gerejaku_backend/internals/mailer"
)

func BaptismRoutes(api fiber.Router, db *gorm.DB, n mailer.Notifier) {
	ctl := controller.NewBaptismController(db, n)

	grp := api.Group("/baptisms")
	grp.Get("/", ctl.List)
	grp.Get("/export/excel", ctl.ExportExcel)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
